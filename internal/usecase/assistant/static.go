package assistant

import (
	"context"
	"fmt"
	"strings"
)

// StaticGenerator returns canned content for demo deployments without an
// API key. Output is deterministic for a given request.
type StaticGenerator struct{}

// NewStaticGenerator creates a new static generator
func NewStaticGenerator() *StaticGenerator {
	return &StaticGenerator{}
}

// GenerateAgenda returns a templated agenda shaped around the request
func (g *StaticGenerator) GenerateAgenda(_ context.Context, req AgendaRequest) (string, error) {
	duration := req.DurationMinutes
	if duration <= 0 {
		duration = defaultAgendaMinutes
	}

	main := duration * 6 / 10
	wrap := duration * 2 / 10

	return fmt.Sprintf(`1. Welcome & Introductions (5 min)
   - Brief check-in from all participants
   - Review meeting objectives

2. %s - Main Discussion (%d min)
   - Status updates and progress review
   - Key challenges and blockers
   - Solutions and next steps

3. Action Items & Next Steps (%d min)
   - Assign ownership and deadlines
   - Review timeline and milestones

4. Wrap-up & Next Meeting (5 min)
   - Confirm action items
   - Schedule follow-up if needed`, req.Title, main, wrap), nil
}

// SummarizeTranscript returns a canned summary and action-item block
func (g *StaticGenerator) SummarizeTranscript(_ context.Context, req SummaryRequest) (string, string, error) {
	summary := fmt.Sprintf(`**Meeting Summary: %s**

The team discussed the weekly project status and upcoming milestones. Key topics included:

• Project timeline review and current progress
• Resource allocation for next quarter
• Risk mitigation strategies for identified blockers
• Action items and next steps for team members

Overall, the meeting was productive with clear outcomes and accountability established.`, req.MeetingTitle)

	assignees := []string{"John", "Sarah", "Mike"}
	for i, a := range req.Attendees {
		if i >= len(assignees) {
			break
		}
		assignees[i] = a
	}

	actionItems := fmt.Sprintf(`• %s: Complete API documentation review (Friday)
• %s: Schedule follow-up meeting with stakeholders (next week)
• %s: Provide updated budget estimates (Wednesday)
• Team: Submit weekly status reports by EOD Monday`,
		assignees[0], assignees[1], assignees[2])

	return summary, strings.TrimSpace(actionItems), nil
}
