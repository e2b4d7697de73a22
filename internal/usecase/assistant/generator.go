package assistant

import "context"

// AgendaRequest carries everything the generator needs to draft an agenda
type AgendaRequest struct {
	Title           string
	Context         string
	DurationMinutes int
	Attendees       []string
}

// SummaryRequest carries a meeting transcript for summarization. Transcript
// is already truncated to the configured limit by the service.
type SummaryRequest struct {
	MeetingTitle string
	Attendees    []string
	Transcript   string
}

// Generator produces meeting content as opaque text. The OpenAI-backed
// implementation and the static demo implementation are interchangeable;
// callers never inspect the structure of what comes back beyond the
// action-item line format.
type Generator interface {
	// GenerateAgenda drafts a numbered agenda with time allocations
	GenerateAgenda(ctx context.Context, req AgendaRequest) (string, error)

	// SummarizeTranscript returns a prose summary and a block of action-item
	// lines in "Person: Task (Due date)" form
	SummarizeTranscript(ctx context.Context, req SummaryRequest) (summary string, actionItems string, err error)
}
