package meeting

import (
	"time"

	"github.com/google/uuid"
)

// AttendeeResponse represents one attendee of a meeting
type AttendeeResponse struct {
	Email    string `json:"email"`
	Name     string `json:"name,omitempty"`
	Status   string `json:"status,omitempty"`
	Optional bool   `json:"optional"`
}

// FlagResponse represents an efficiency flag on a meeting
type FlagResponse struct {
	ID               uuid.UUID  `json:"id"`
	MeetingID        uuid.UUID  `json:"meeting_id"`
	IssueType        string     `json:"issue_type"`
	Description      string     `json:"description"`
	Severity         string     `json:"severity"`
	Suggestions      []string   `json:"suggestions,omitempty"`
	EstimatedSavings float64    `json:"estimated_savings"`
	IsResolved       bool       `json:"is_resolved"`
	ResolvedAt       *time.Time `json:"resolved_at,omitempty"`
	AutoDetected     bool       `json:"auto_detected"`
	CreatedAt        time.Time  `json:"created_at"`
}

// MeetingResponse represents a meeting with its attendees and flags
type MeetingResponse struct {
	ID              uuid.UUID          `json:"id"`
	ExternalID      *string            `json:"external_id,omitempty"`
	Title           string             `json:"title"`
	Description     *string            `json:"description,omitempty"`
	StartTime       time.Time          `json:"start_time"`
	EndTime         time.Time          `json:"end_time"`
	DurationMinutes float64            `json:"duration_minutes"`
	IsRecurring     bool               `json:"is_recurring"`
	Organizer       string             `json:"organizer,omitempty"`
	HasAgenda       bool               `json:"has_agenda"`
	Status          string             `json:"status"`
	InviteeCount    int                `json:"invitee_count"`
	AttendeeCount   *int               `json:"attendee_count,omitempty"`
	Attendees       []AttendeeResponse `json:"attendees"`
	Flags           []FlagResponse     `json:"flags"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

// ListMeetingsResponse wraps the meeting list
type ListMeetingsResponse struct {
	Meetings []*MeetingResponse `json:"meetings"`
	Count    int                `json:"count"`
}

// AnalysisResponse reports the outcome of a quick analysis run
type AnalysisResponse struct {
	FlaggedCount    int                `json:"flagged_count"`
	FlaggedMeetings []*MeetingResponse `json:"flagged_meetings"`
}
