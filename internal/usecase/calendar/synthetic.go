package calendar

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/meetwiselabs/meetwise/internal/domain/entities"
)

// SyntheticSource generates a deterministic calendar for demo deployments:
// the same window always yields the same events, so audits and dashboards
// are reproducible without a Google account. Deleted events stay deleted
// for the lifetime of the process.
type SyntheticSource struct {
	mu      sync.Mutex
	deleted map[string]struct{}
}

// NewSyntheticSource creates a new synthetic event source
func NewSyntheticSource() *SyntheticSource {
	return &SyntheticSource{
		deleted: make(map[string]struct{}),
	}
}

var teamAttendees = []entities.CalendarAttendee{
	{Email: "alex@demo.meetwise.dev", Name: "Alex Rivera", Status: "accepted"},
	{Email: "sam@demo.meetwise.dev", Name: "Sam Chen", Status: "accepted"},
	{Email: "jordan@demo.meetwise.dev", Name: "Jordan Patel", Status: "accepted"},
	{Email: "casey@demo.meetwise.dev", Name: "Casey Kim", Status: "tentative"},
	{Email: "morgan@demo.meetwise.dev", Name: "Morgan Lee", Status: "accepted"},
	{Email: "taylor@demo.meetwise.dev", Name: "Taylor Brooks", Status: "needsAction", Optional: true},
	{Email: "riley@demo.meetwise.dev", Name: "Riley Novak", Status: "accepted"},
	{Email: "drew@demo.meetwise.dev", Name: "Drew Okafor", Status: "accepted"},
	{Email: "quinn@demo.meetwise.dev", Name: "Quinn Vasquez", Status: "declined", Optional: true},
	{Email: "avery@demo.meetwise.dev", Name: "Avery Stone", Status: "accepted"},
}

const planningAgenda = "Agenda:\n1. Review last sprint's carryover\n2. Walk through prioritized backlog\n3. Capacity check and commitments\n4. Risks and dependencies"

// ListEvents generates the demo calendar for the window
func (s *SyntheticSource) ListEvents(_ context.Context, _ *entities.User, from, to time.Time) ([]entities.CalendarEvent, error) {
	var events []entities.CalendarEvent

	day := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	for ; !day.After(to); day = day.AddDate(0, 0, 1) {
		for _, ev := range s.eventsForDay(day) {
			if ev.Start.Before(from) || ev.Start.After(to) {
				continue
			}
			if s.isDeleted(ev.ID) {
				continue
			}
			events = append(events, ev)
		}
	}

	return events, nil
}

// DeleteEvent hides the event from subsequent listings
func (s *SyntheticSource) DeleteEvent(_ context.Context, _ *entities.User, eventID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted[eventID] = struct{}{}
	return nil
}

func (s *SyntheticSource) isDeleted(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.deleted[id]
	return ok
}

// eventsForDay builds the fixed schedule for one calendar day. Weekends are
// empty. The schedule deliberately contains the patterns the audit flags:
// an agenda-less recurring standup, back-to-back blocks, a long planning
// session, and an oversized all-hands.
func (s *SyntheticSource) eventsForDay(day time.Time) []entities.CalendarEvent {
	weekday := day.Weekday()
	if weekday == time.Saturday || weekday == time.Sunday {
		return nil
	}

	at := func(hour, min int) time.Time {
		return time.Date(day.Year(), day.Month(), day.Day(), hour, min, 0, 0, day.Location())
	}
	id := func(slug string) string {
		return fmt.Sprintf("synthetic-%s-%s", slug, day.Format("2006-01-02"))
	}

	events := []entities.CalendarEvent{
		{
			ID:               id("standup"),
			Title:            "Daily Standup",
			Start:            at(9, 30),
			End:              at(9, 45),
			RecurringEventID: "synthetic-standup",
			Organizer:        teamAttendees[0].Email,
			Attendees:        teamAttendees[:6],
		},
		{
			ID:        id("focus-sync"),
			Title:     "Focus Area Sync",
			Start:     at(9, 45),
			End:       at(10, 30),
			Organizer: teamAttendees[1].Email,
			Attendees: teamAttendees[:4],
		},
	}

	switch weekday {
	case time.Monday:
		events = append(events, entities.CalendarEvent{
			ID:          id("planning"),
			Title:       "Sprint Planning",
			Description: planningAgenda,
			Start:       at(10, 30),
			End:         at(13, 0),
			Organizer:   teamAttendees[0].Email,
			Attendees:   teamAttendees[:7],
		})
	case time.Tuesday:
		events = append(events,
			entities.CalendarEvent{
				ID:        id("design-review"),
				Title:     "Design Review",
				Start:     at(13, 0),
				End:       at(14, 0),
				Organizer: teamAttendees[2].Email,
				Attendees: teamAttendees[:5],
			},
			entities.CalendarEvent{
				ID:        id("design-review-eng"),
				Title:     "Design Review 2",
				Start:     at(13, 30),
				End:       at(14, 30),
				Organizer: teamAttendees[3].Email,
				Attendees: teamAttendees[:5],
			},
		)
	case time.Thursday:
		events = append(events, entities.CalendarEvent{
			ID:        id("all-hands"),
			Title:     "Department All Hands",
			Start:     at(15, 0),
			End:       at(16, 30),
			Organizer: teamAttendees[4].Email,
			Attendees: teamAttendees,
		})
	}

	return events
}
