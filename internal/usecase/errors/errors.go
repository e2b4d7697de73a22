package errors

import "errors"

// Common errors
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden access")
	ErrNotFound      = errors.New("resource not found")
	ErrAlreadyExists = errors.New("resource already exists")
	ErrConflict      = errors.New("resource conflict")
)

// Auth errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
	ErrInvalidOAuthState  = errors.New("invalid oauth state")
)

// User errors
var (
	ErrUserNotFound = errors.New("user not found")
)

// Meeting errors
var (
	ErrMeetingNotFound  = errors.New("meeting not found")
	ErrMeetingCancelled = errors.New("meeting already cancelled")
	ErrInvalidIssueType = errors.New("invalid issue type")
	ErrInvalidSeverity  = errors.New("invalid severity")
)

// Flag errors
var (
	ErrFlagNotFound        = errors.New("flag not found")
	ErrFlagAlreadyResolved = errors.New("flag already resolved")
)

// Audit errors
var (
	ErrAuditInProgress = errors.New("audit already in progress")
)

// Calendar errors
var (
	ErrCalendarNotConnected = errors.New("calendar not connected")
	ErrCalendarSyncFailed   = errors.New("calendar sync failed")
)

// Assistant errors
var (
	ErrSummaryNotFound  = errors.New("summary not found")
	ErrGenerationFailed = errors.New("content generation failed")
)
