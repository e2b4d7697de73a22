package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/meetwiselabs/meetwise/internal/domain/entities"
)

// MeetingFilters represents filter options for listing meetings
type MeetingFilters struct {
	UserID      uuid.UUID
	StartAfter  *time.Time
	StartBefore *time.Time
	Status      *entities.MeetingStatus
	FlaggedOnly bool
	Limit       int
	Offset      int
}

// MeetingRepository defines the interface for meeting data access
type MeetingRepository interface {
	// Create creates a new meeting
	Create(ctx context.Context, meeting *entities.Meeting) error

	// FindByID retrieves a meeting owned by the given user
	FindByID(ctx context.Context, id, userID uuid.UUID) (*entities.Meeting, error)

	// Upsert creates or updates a meeting keyed by (external_id, user_id).
	// This is the single fetch-or-create contract used by calendar sync.
	Upsert(ctx context.Context, meeting *entities.Meeting) error

	// ReplaceAttendees deletes the meeting's attendee rows and inserts the
	// given set in their place
	ReplaceAttendees(ctx context.Context, meetingID uuid.UUID, attendees []entities.Attendee) error

	// List retrieves meetings with filters, ordered by start time ascending,
	// with attendees and flags preloaded
	List(ctx context.Context, filters MeetingFilters) ([]*entities.Meeting, error)

	// FindInWindow retrieves a user's meetings with start time inside
	// [from, to], ordered by start time, with attendees and flags preloaded
	FindInWindow(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*entities.Meeting, error)

	// FindUpcoming retrieves a user's future, non-cancelled meetings with
	// attendees and unresolved flags preloaded
	FindUpcoming(ctx context.Context, userID uuid.UUID, now time.Time) ([]*entities.Meeting, error)

	// Update updates an existing meeting
	Update(ctx context.Context, meeting *entities.Meeting) error

	// UpdateStatus updates the lifecycle status of a meeting
	UpdateStatus(ctx context.Context, meetingID uuid.UUID, status entities.MeetingStatus) error

	// SetAgenda stores a generated agenda as the meeting description and
	// marks the meeting as having one
	SetAgenda(ctx context.Context, meetingID uuid.UUID, agenda string) error
}

// FlagRepository defines the interface for meeting flag data access
type FlagRepository interface {
	// Create creates a new flag
	Create(ctx context.Context, flag *entities.MeetingFlag) error

	// FindByID retrieves a flag scoped to a meeting and owning user
	FindByID(ctx context.Context, flagID, meetingID, userID uuid.UUID) (*entities.MeetingFlag, error)

	// Resolve marks a flag as resolved
	Resolve(ctx context.Context, flagID uuid.UUID) error

	// DeleteAutoDetected removes all auto-detected flags for a user; a full
	// re-audit calls this before regenerating findings
	DeleteAutoDetected(ctx context.Context, userID uuid.UUID) error

	// DeleteByUser removes all flags for a user
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}

// StatRepository defines the interface for weekly stat data access
type StatRepository interface {
	// SetMeetingHours sets total_meeting_hours for (user, weekStart),
	// creating the row if needed
	SetMeetingHours(ctx context.Context, userID uuid.UUID, weekStart time.Time, hours float64) error

	// SetAuditTotals sets hours_saved and meetings_flagged for the week
	SetAuditTotals(ctx context.Context, userID uuid.UUID, weekStart time.Time, hoursSaved float64, flagged int) error

	// SetFlaggedCount sets meetings_flagged for the week, leaving the other
	// columns alone
	SetFlaggedCount(ctx context.Context, userID uuid.UUID, weekStart time.Time, flagged int) error

	// IncrementHoursSaved adds to hours_saved for the week
	IncrementHoursSaved(ctx context.Context, userID uuid.UUID, weekStart time.Time, hours float64) error

	// IncrementCancelled adds to meetings_cancelled for the week
	IncrementCancelled(ctx context.Context, userID uuid.UUID, weekStart time.Time, n int) error

	// FindRange retrieves stats with week_start inside [from, to], ordered
	// by week_start ascending
	FindRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*entities.WeeklyStat, error)
}
