package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/meetwiselabs/meetwise/internal/domain/entities"
	"github.com/meetwiselabs/meetwise/internal/domain/repositories"
)

// statRepository implements the StatRepository interface
type statRepository struct {
	db *gorm.DB
}

// NewStatRepository creates a new weekly stat repository
func NewStatRepository(db *gorm.DB) repositories.StatRepository {
	return &statRepository{db: db}
}

// SetMeetingHours sets total_meeting_hours for the week
func (r *statRepository) SetMeetingHours(ctx context.Context, userID uuid.UUID, weekStart time.Time, hours float64) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "week_start"}},
			DoUpdates: clause.AssignmentColumns([]string{"total_meeting_hours", "updated_at"}),
		}).
		Create(&entities.WeeklyStat{
			UserID:            userID,
			WeekStart:         weekStart,
			TotalMeetingHours: hours,
		}).Error
}

// SetAuditTotals sets hours_saved and meetings_flagged for the week
func (r *statRepository) SetAuditTotals(ctx context.Context, userID uuid.UUID, weekStart time.Time, hoursSaved float64, flagged int) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "week_start"}},
			DoUpdates: clause.AssignmentColumns([]string{"hours_saved", "meetings_flagged", "updated_at"}),
		}).
		Create(&entities.WeeklyStat{
			UserID:          userID,
			WeekStart:       weekStart,
			HoursSaved:      hoursSaved,
			MeetingsFlagged: flagged,
		}).Error
}

// SetFlaggedCount sets meetings_flagged for the week
func (r *statRepository) SetFlaggedCount(ctx context.Context, userID uuid.UUID, weekStart time.Time, flagged int) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "week_start"}},
			DoUpdates: clause.AssignmentColumns([]string{"meetings_flagged", "updated_at"}),
		}).
		Create(&entities.WeeklyStat{
			UserID:          userID,
			WeekStart:       weekStart,
			MeetingsFlagged: flagged,
		}).Error
}

// IncrementHoursSaved adds to hours_saved for the week
func (r *statRepository) IncrementHoursSaved(ctx context.Context, userID uuid.UUID, weekStart time.Time, hours float64) error {
	return r.increment(ctx, userID, weekStart, "hours_saved", hours)
}

// IncrementCancelled adds to meetings_cancelled for the week
func (r *statRepository) IncrementCancelled(ctx context.Context, userID uuid.UUID, weekStart time.Time, n int) error {
	return r.increment(ctx, userID, weekStart, "meetings_cancelled", float64(n))
}

func (r *statRepository) increment(ctx context.Context, userID uuid.UUID, weekStart time.Time, column string, delta float64) error {
	res := r.db.WithContext(ctx).
		Model(&entities.WeeklyStat{}).
		Where("user_id = ? AND week_start = ?", userID, weekStart).
		UpdateColumn(column, gorm.Expr(column+" + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}

	stat := &entities.WeeklyStat{UserID: userID, WeekStart: weekStart}
	switch column {
	case "hours_saved":
		stat.HoursSaved = delta
	case "meetings_cancelled":
		stat.MeetingsCancelled = int(delta)
	}
	return r.db.WithContext(ctx).Create(stat).Error
}

// FindRange retrieves stats with week_start inside [from, to]
func (r *statRepository) FindRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*entities.WeeklyStat, error) {
	var stats []*entities.WeeklyStat
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND week_start >= ? AND week_start <= ?", userID, from, to).
		Order("week_start ASC").
		Find(&stats).Error
	return stats, err
}
