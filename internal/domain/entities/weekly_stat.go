package entities

import (
	"time"

	"github.com/google/uuid"
)

// WeeklyStat is a per-user, per-week aggregate of meeting load and realized
// savings. Rows are upserted keyed by (user_id, week_start).
type WeeklyStat struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_weekly_stats_user_week" json:"user_id"`
	WeekStart time.Time `gorm:"not null;uniqueIndex:idx_weekly_stats_user_week" json:"week_start"`

	TotalMeetingHours float64 `gorm:"default:0" json:"total_meeting_hours"`
	HoursSaved        float64 `gorm:"default:0" json:"hours_saved"`
	MeetingsFlagged   int     `gorm:"default:0" json:"meetings_flagged"`
	MeetingsCancelled int     `gorm:"default:0" json:"meetings_cancelled"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for WeeklyStat
func (WeeklyStat) TableName() string {
	return "weekly_stats"
}

// StartOfWeek normalizes a time to the Monday 00:00:00 boundary of its week.
// Every weekly aggregation must use this helper so hours roll up into
// exactly one bucket.
func StartOfWeek(t time.Time) time.Time {
	weekday := int(t.Weekday())
	// Sunday is 0 in time.Weekday; shift it to the end of the week
	if weekday == 0 {
		weekday = 7
	}
	day := t.AddDate(0, 0, -(weekday - 1))
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, t.Location())
}
