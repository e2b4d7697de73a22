package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/meetwiselabs/meetwise/internal/domain/entities"
	"github.com/meetwiselabs/meetwise/internal/domain/repositories"
)

// flagRepository implements the FlagRepository interface
type flagRepository struct {
	db *gorm.DB
}

// NewFlagRepository creates a new flag repository
func NewFlagRepository(db *gorm.DB) repositories.FlagRepository {
	return &flagRepository{db: db}
}

// Create creates a new flag
func (r *flagRepository) Create(ctx context.Context, flag *entities.MeetingFlag) error {
	return r.db.WithContext(ctx).Create(flag).Error
}

// FindByID retrieves a flag scoped to a meeting and owning user
func (r *flagRepository) FindByID(ctx context.Context, flagID, meetingID, userID uuid.UUID) (*entities.MeetingFlag, error) {
	var flag entities.MeetingFlag
	err := r.db.WithContext(ctx).
		Where("id = ? AND meeting_id = ? AND user_id = ?", flagID, meetingID, userID).
		First(&flag).Error

	if err != nil {
		return nil, err
	}
	return &flag, nil
}

// Resolve marks a flag as resolved
func (r *flagRepository) Resolve(ctx context.Context, flagID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&entities.MeetingFlag{}).
		Where("id = ?", flagID).
		Updates(map[string]interface{}{
			"is_resolved": true,
			"resolved_at": gorm.Expr("NOW()"),
		}).Error
}

// DeleteAutoDetected removes all auto-detected flags for a user
func (r *flagRepository) DeleteAutoDetected(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND auto_detected = ?", userID, true).
		Delete(&entities.MeetingFlag{}).
		Error
}

// DeleteByUser removes all flags for a user
func (r *flagRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&entities.MeetingFlag{}).
		Error
}
