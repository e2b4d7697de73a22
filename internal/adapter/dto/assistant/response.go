package assistant

import (
	"time"

	"github.com/google/uuid"
)

// AgendaResponse carries a generated or saved agenda
type AgendaResponse struct {
	Agenda string `json:"agenda"`
}

// ActionItemResponse is one follow-up task extracted from a summary
type ActionItemResponse struct {
	Assignee string  `json:"assignee"`
	Task     string  `json:"task"`
	DueDate  *string `json:"due_date,omitempty"`
}

// SummaryResponse represents a stored meeting summary
type SummaryResponse struct {
	ID          uuid.UUID            `json:"id"`
	MeetingID   uuid.UUID            `json:"meeting_id"`
	Summary     string               `json:"summary"`
	ActionItems []ActionItemResponse `json:"action_items"`
	CreatedAt   time.Time            `json:"created_at"`
}

// ListSummariesResponse wraps the summary list
type ListSummariesResponse struct {
	Summaries []*SummaryResponse `json:"summaries"`
	Count     int                `json:"count"`
}
