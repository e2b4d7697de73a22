package assistant

import (
	"testing"
)

func TestParseActionItems(t *testing.T) {
	t.Run("bulleted person task and due date", func(t *testing.T) {
		text := `• John: Complete API documentation review (Friday)
• Sarah: Schedule follow-up meeting with stakeholders (next week)
• Team: Submit weekly status reports by EOD Monday`

		items := ParseActionItems(text)
		if len(items) != 3 {
			t.Fatalf("expected 3 items, got %d", len(items))
		}

		if items[0].Assignee != "John" {
			t.Errorf("expected assignee John, got %q", items[0].Assignee)
		}
		if items[0].Task != "Complete API documentation review" {
			t.Errorf("unexpected task: %q", items[0].Task)
		}
		if items[0].DueDate == nil || *items[0].DueDate != "Friday" {
			t.Errorf("expected due date Friday, got %v", items[0].DueDate)
		}

		if items[2].Assignee != "Team" {
			t.Errorf("expected assignee Team, got %q", items[2].Assignee)
		}
		if items[2].DueDate != nil {
			t.Errorf("expected no due date, got %v", items[2].DueDate)
		}
	})

	t.Run("unstructured line falls back to unassigned", func(t *testing.T) {
		items := ParseActionItems("Circulate the final design document")
		if len(items) != 1 {
			t.Fatalf("expected 1 item, got %d", len(items))
		}
		if items[0].Assignee != "Unassigned" {
			t.Errorf("expected Unassigned, got %q", items[0].Assignee)
		}
	})

	t.Run("short noise is dropped", func(t *testing.T) {
		items := ParseActionItems("n/a\n\nok")
		if len(items) != 0 {
			t.Fatalf("expected no items, got %d", len(items))
		}
	})

	t.Run("empty input", func(t *testing.T) {
		if items := ParseActionItems(""); len(items) != 0 {
			t.Fatalf("expected no items, got %d", len(items))
		}
	})
}
