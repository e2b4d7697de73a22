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

// meetingRepository implements the MeetingRepository interface
type meetingRepository struct {
	db *gorm.DB
}

// NewMeetingRepository creates a new meeting repository
func NewMeetingRepository(db *gorm.DB) repositories.MeetingRepository {
	return &meetingRepository{db: db}
}

// Create creates a new meeting
func (r *meetingRepository) Create(ctx context.Context, meeting *entities.Meeting) error {
	return r.db.WithContext(ctx).Create(meeting).Error
}

// FindByID retrieves a meeting owned by the given user
func (r *meetingRepository) FindByID(ctx context.Context, id, userID uuid.UUID) (*entities.Meeting, error) {
	var meeting entities.Meeting
	err := r.db.WithContext(ctx).
		Preload("Attendees").
		Preload("Flags").
		Where("id = ? AND user_id = ?", id, userID).
		First(&meeting).Error

	if err != nil {
		return nil, err
	}
	return &meeting, nil
}

// Upsert creates or updates a meeting keyed by (external_id, user_id)
func (r *meetingRepository) Upsert(ctx context.Context, meeting *entities.Meeting) error {
	if meeting.ExternalID == nil {
		return r.db.WithContext(ctx).Create(meeting).Error
	}

	var existing entities.Meeting
	err := r.db.WithContext(ctx).
		Where("external_id = ? AND user_id = ?", *meeting.ExternalID, meeting.UserID).
		First(&existing).Error

	switch {
	case err == nil:
		meeting.ID = existing.ID
		meeting.CreatedAt = existing.CreatedAt
		return r.db.WithContext(ctx).
			Model(&entities.Meeting{}).
			Where("id = ?", existing.ID).
			Updates(map[string]interface{}{
				"title":          meeting.Title,
				"description":    meeting.Description,
				"start_time":     meeting.StartTime,
				"end_time":       meeting.EndTime,
				"is_recurring":   meeting.IsRecurring,
				"recurrence_id":  meeting.RecurrenceID,
				"organizer":      meeting.Organizer,
				"has_agenda":     meeting.HasAgenda,
				"invitee_count":  meeting.InviteeCount,
				"attendee_count": meeting.AttendeeCount,
				"zoom_meeting_id": meeting.ZoomMeetingID,
			}).Error
	case err == gorm.ErrRecordNotFound:
		return r.db.WithContext(ctx).Omit(clause.Associations).Create(meeting).Error
	default:
		return err
	}
}

// ReplaceAttendees swaps the meeting's attendee set
func (r *meetingRepository) ReplaceAttendees(ctx context.Context, meetingID uuid.UUID, attendees []entities.Attendee) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("meeting_id = ?", meetingID).Delete(&entities.Attendee{}).Error; err != nil {
			return err
		}
		if len(attendees) == 0 {
			return nil
		}
		for i := range attendees {
			attendees[i].MeetingID = meetingID
		}
		return tx.Create(&attendees).Error
	})
}

// List retrieves meetings with filters
func (r *meetingRepository) List(ctx context.Context, filters repositories.MeetingFilters) ([]*entities.Meeting, error) {
	var meetings []*entities.Meeting

	query := r.db.WithContext(ctx).
		Preload("Attendees").
		Preload("Flags").
		Where("user_id = ?", filters.UserID)

	if filters.StartAfter != nil {
		query = query.Where("start_time >= ?", *filters.StartAfter)
	}
	if filters.StartBefore != nil {
		query = query.Where("start_time <= ?", *filters.StartBefore)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	if err := query.Order("start_time ASC").Find(&meetings).Error; err != nil {
		return nil, err
	}

	if filters.FlaggedOnly {
		flagged := meetings[:0]
		for _, m := range meetings {
			if len(m.Flags) > 0 {
				flagged = append(flagged, m)
			}
		}
		meetings = flagged
	}

	return meetings, nil
}

// FindInWindow retrieves a user's meetings inside [from, to]
func (r *meetingRepository) FindInWindow(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*entities.Meeting, error) {
	var meetings []*entities.Meeting
	err := r.db.WithContext(ctx).
		Preload("Attendees").
		Preload("Flags").
		Where("user_id = ? AND start_time >= ? AND start_time <= ?", userID, from, to).
		Order("start_time ASC").
		Find(&meetings).Error
	return meetings, err
}

// FindUpcoming retrieves future, non-cancelled meetings with unresolved flags
func (r *meetingRepository) FindUpcoming(ctx context.Context, userID uuid.UUID, now time.Time) ([]*entities.Meeting, error) {
	var meetings []*entities.Meeting
	err := r.db.WithContext(ctx).
		Preload("Attendees").
		Preload("Flags", "is_resolved = ?", false).
		Where("user_id = ? AND start_time >= ? AND status <> ?", userID, now, entities.MeetingStatusCancelled).
		Order("start_time ASC").
		Find(&meetings).Error
	return meetings, err
}

// Update updates an existing meeting
func (r *meetingRepository) Update(ctx context.Context, meeting *entities.Meeting) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(meeting).Error
}

// UpdateStatus updates the lifecycle status of a meeting
func (r *meetingRepository) UpdateStatus(ctx context.Context, meetingID uuid.UUID, status entities.MeetingStatus) error {
	return r.db.WithContext(ctx).
		Model(&entities.Meeting{}).
		Where("id = ?", meetingID).
		Update("status", status).
		Error
}

// SetAgenda stores an agenda as the description and flips has_agenda
func (r *meetingRepository) SetAgenda(ctx context.Context, meetingID uuid.UUID, agenda string) error {
	return r.db.WithContext(ctx).
		Model(&entities.Meeting{}).
		Where("id = ?", meetingID).
		Updates(map[string]interface{}{
			"description": agenda,
			"has_agenda":  true,
		}).Error
}
