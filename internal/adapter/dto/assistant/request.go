package assistant

import "github.com/google/uuid"

// GenerateAgendaRequest asks for a generated agenda. MeetingID is optional;
// when present the agenda is also stored on that meeting.
type GenerateAgendaRequest struct {
	MeetingID       *uuid.UUID `json:"meeting_id,omitempty"`
	Title           string     `json:"title" validate:"required,max=255"`
	Context         string     `json:"context,omitempty" validate:"max=2000"`
	DurationMinutes int        `json:"duration_minutes,omitempty" validate:"omitempty,min=5,max=480"`
	Attendees       []string   `json:"attendees,omitempty" validate:"max=50"`
}

// SaveAgendaRequest stores a caller-provided agenda on a meeting
type SaveAgendaRequest struct {
	MeetingID uuid.UUID `json:"meeting_id" validate:"required"`
	Agenda    string    `json:"agenda" validate:"required"`
}

// GenerateSummaryRequest asks for a transcript summary
type GenerateSummaryRequest struct {
	MeetingID  uuid.UUID `json:"meeting_id" validate:"required"`
	Transcript string    `json:"transcript" validate:"required"`
}
