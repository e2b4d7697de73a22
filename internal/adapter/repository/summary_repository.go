package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/meetwiselabs/meetwise/internal/domain/entities"
	"github.com/meetwiselabs/meetwise/internal/domain/repositories"
)

// summaryRepository implements the SummaryRepository interface
type summaryRepository struct {
	db *gorm.DB
}

// NewSummaryRepository creates a new summary repository
func NewSummaryRepository(db *gorm.DB) repositories.SummaryRepository {
	return &summaryRepository{db: db}
}

// Create creates a new summary
func (r *summaryRepository) Create(ctx context.Context, summary *entities.Summary) error {
	return r.db.WithContext(ctx).Create(summary).Error
}

// FindByID retrieves a summary owned by the given user
func (r *summaryRepository) FindByID(ctx context.Context, id, userID uuid.UUID) (*entities.Summary, error) {
	var summary entities.Summary
	err := r.db.WithContext(ctx).
		Preload("Meeting").
		Where("id = ? AND user_id = ?", id, userID).
		First(&summary).Error
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// List retrieves a user's summaries, newest first
func (r *summaryRepository) List(ctx context.Context, userID uuid.UUID, meetingID *uuid.UUID) ([]*entities.Summary, error) {
	var summaries []*entities.Summary

	query := r.db.WithContext(ctx).
		Preload("Meeting").
		Where("user_id = ?", userID)
	if meetingID != nil {
		query = query.Where("meeting_id = ?", *meetingID)
	}

	err := query.Order("created_at DESC").Find(&summaries).Error
	return summaries, err
}
