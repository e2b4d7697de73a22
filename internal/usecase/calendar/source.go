package calendar

import (
	"context"
	"time"

	"github.com/meetwiselabs/meetwise/internal/domain/entities"
)

// EventSource lists and deletes events on a user's calendar. The concrete
// source (Google Calendar or the synthetic demo source) is chosen once at
// startup from config.
type EventSource interface {
	// ListEvents returns the user's events with a start time inside
	// [from, to], expanded to single occurrences
	ListEvents(ctx context.Context, user *entities.User, from, to time.Time) ([]entities.CalendarEvent, error)

	// DeleteEvent removes one event from the user's calendar. Deleting an
	// event that is already gone is not an error.
	DeleteEvent(ctx context.Context, user *entities.User, eventID string) error
}
