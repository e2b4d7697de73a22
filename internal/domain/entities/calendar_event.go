package entities

import "time"

// CalendarEvent is a normalized event from an external calendar, before it
// becomes a Meeting. Source adapters map their wire formats into this shape.
type CalendarEvent struct {
	ID               string
	Title            string
	Description      string
	Start            time.Time
	End              time.Time
	RecurringEventID string
	Organizer        string
	Attendees        []CalendarAttendee
}

// CalendarAttendee is one invitee on a calendar event
type CalendarAttendee struct {
	Email    string
	Name     string
	Status   string
	Optional bool
}
