package meeting

import "github.com/google/uuid"

// ListMeetingsRequest carries the query filters for listing meetings
type ListMeetingsRequest struct {
	From        string `query:"from"`
	To          string `query:"to"`
	Status      string `query:"status" validate:"omitempty,oneof=scheduled cancelled completed"`
	FlaggedOnly bool   `query:"flagged_only"`
	Limit       int    `query:"limit" validate:"omitempty,min=1,max=500"`
	Offset      int    `query:"offset" validate:"omitempty,min=0"`
}

// FlagMeetingRequest creates a manual flag on a meeting
type FlagMeetingRequest struct {
	IssueType   string `json:"issue_type" validate:"required"`
	Description string `json:"description" validate:"required,max=2000"`
	Severity    string `json:"severity" validate:"required"`
}

// BulkCancelRequest cancels a batch of meetings
type BulkCancelRequest struct {
	MeetingIDs []uuid.UUID `json:"meeting_ids" validate:"required,min=1,max=100"`
}
