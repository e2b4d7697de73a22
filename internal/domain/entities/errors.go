package entities

import "errors"

// Entity validation errors
var (
	ErrInvalidEmail     = errors.New("invalid email")
	ErrInvalidName      = errors.New("invalid name")
	ErrInvalidIssueType = errors.New("invalid issue type")
	ErrInvalidSeverity  = errors.New("invalid severity")
	ErrInvalidStatus    = errors.New("invalid meeting status")
	ErrInvalidTimeRange = errors.New("meeting end time is before start time")
)
