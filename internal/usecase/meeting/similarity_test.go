package meeting

import (
	"testing"

	"github.com/meetwiselabs/meetwise/internal/domain/entities"
)

func attendees(emails ...string) []entities.Attendee {
	out := make([]entities.Attendee, 0, len(emails))
	for _, e := range emails {
		out = append(out, entities.Attendee{Email: e})
	}
	return out
}

func TestTitleSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"containment", "Weekly Sync", "weekly sync with design", 0.9},
		{"identical", "Sprint Planning", "Sprint Planning", 0.9},
		{"no overlap", "Budget Review", "Design Critique", 0.0},
		{"short words ignored", "the sync", "the standup", 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := titleSimilarity(tt.a, tt.b); got != tt.want {
				t.Errorf("titleSimilarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}

	t.Run("partial word overlap", func(t *testing.T) {
		// "planning" and "session" shared; union has 4 words
		got := titleSimilarity("planning session alpha", "planning session beta")
		if got != 0.5 {
			t.Errorf("expected 0.5, got %v", got)
		}
	})
}

func TestAttendeeOverlap(t *testing.T) {
	t.Run("full overlap", func(t *testing.T) {
		a := attendees("a@x.com", "b@x.com")
		if got := attendeeOverlap(a, a); got != 1.0 {
			t.Errorf("expected 1.0, got %v", got)
		}
	})

	t.Run("partial overlap", func(t *testing.T) {
		a := attendees("a@x.com", "b@x.com", "c@x.com")
		b := attendees("b@x.com", "c@x.com", "d@x.com")
		// 2 common / 4 union
		if got := attendeeOverlap(a, b); got != 0.5 {
			t.Errorf("expected 0.5, got %v", got)
		}
	})

	t.Run("empty side is zero", func(t *testing.T) {
		if got := attendeeOverlap(nil, attendees("a@x.com")); got != 0 {
			t.Errorf("expected 0, got %v", got)
		}
	})
}
