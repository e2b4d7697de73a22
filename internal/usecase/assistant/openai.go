package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/meetwiselabs/meetwise/pkg/ai"
)

const (
	agendaSystemPrompt  = "You are an expert meeting facilitator. Generate practical, time-efficient agendas."
	summarySystemPrompt = "You are an expert meeting analyst. Be concise and factual."

	defaultAgendaMinutes = 30
)

// OpenAIGenerator produces agendas and summaries through the OpenAI chat
// completions API
type OpenAIGenerator struct {
	client *ai.OpenAIClient
}

// NewOpenAIGenerator creates a new OpenAI-backed generator
func NewOpenAIGenerator(client *ai.OpenAIClient) *OpenAIGenerator {
	return &OpenAIGenerator{client: client}
}

// GenerateAgenda drafts a numbered agenda with time allocations
func (g *OpenAIGenerator) GenerateAgenda(ctx context.Context, req AgendaRequest) (string, error) {
	duration := req.DurationMinutes
	if duration <= 0 {
		duration = defaultAgendaMinutes
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Generate a professional and structured agenda for a %d-minute meeting titled %q.", duration, req.Title)
	if len(req.Attendees) > 0 {
		fmt.Fprintf(&b, " The meeting will include %d participants: %s.", len(req.Attendees), strings.Join(req.Attendees, ", "))
	}
	if req.Context != "" {
		fmt.Fprintf(&b, " Additional context: %s", req.Context)
	}
	b.WriteString(`

Provide a clear agenda with time allocations for each item. Include an introduction, main discussion points, and time for next steps or action items at the end. Format the agenda as a numbered list with time allocations in parentheses. For example:

1. Introduction and meeting goals (5 min)
2. [Topic] (10 min)
3. [Another topic] (10 min)
4. Next steps and action items (5 min)

Please generate an agenda that is appropriate for this specific meeting:`)

	agenda, err := g.client.Complete(ctx, agendaSystemPrompt, b.String(), 500, 0.7)
	if err != nil {
		return "", fmt.Errorf("failed to generate agenda: %w", err)
	}
	return strings.TrimSpace(agenda), nil
}

// SummarizeTranscript produces a prose summary and an action-item block in
// two completion calls, mirroring how a human would split the work
func (g *OpenAIGenerator) SummarizeTranscript(ctx context.Context, req SummaryRequest) (string, string, error) {
	attendees := strings.Join(req.Attendees, ", ")

	summaryPrompt := fmt.Sprintf(`Summarize the key points from this meeting transcript.
Meeting title: %q
Attendees: %s

Provide a concise summary (2-3 paragraphs) covering the main topics discussed and decisions made.

Transcript:
%s`, req.MeetingTitle, attendees, req.Transcript)

	summary, err := g.client.Complete(ctx, summarySystemPrompt, summaryPrompt, 500, 0.5)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate summary: %w", err)
	}

	actionItemsPrompt := fmt.Sprintf(`Extract all action items and follow-up tasks from this meeting transcript.
Meeting title: %q
Attendees: %s

Format each action item as: "Person: Task (Due date if mentioned)"

Transcript:
%s`, req.MeetingTitle, attendees, req.Transcript)

	actionItems, err := g.client.Complete(ctx, summarySystemPrompt, actionItemsPrompt, 500, 0.5)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract action items: %w", err)
	}

	return strings.TrimSpace(summary), strings.TrimSpace(actionItems), nil
}
