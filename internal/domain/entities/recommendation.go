package entities

import "github.com/google/uuid"

// Attendee recommendation actions
const (
	RecommendationOptional = "OPTIONAL"
	RecommendationRemove   = "REMOVE"
)

// AttendeeRecommendation suggests what to do with one attendee of a meeting
type AttendeeRecommendation struct {
	Attendee       Attendee `json:"attendee"`
	Recommendation string   `json:"recommendation"`
	Reason         string   `json:"reason"`
}

// BulkCancelResult reports the outcome for one meeting in a bulk cancel
// request
type BulkCancelResult struct {
	MeetingID uuid.UUID `json:"meeting_id"`
	Cancelled bool      `json:"cancelled"`
	Error     string    `json:"error,omitempty"`
}
