package calendar

import (
	"context"
	stderrors "errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/meetwiselabs/meetwise/internal/domain/entities"
	"github.com/meetwiselabs/meetwise/internal/domain/repositories"
	"github.com/meetwiselabs/meetwise/internal/usecase/errors"
)

const (
	// DefaultLookbackDays and DefaultLookaheadDays bound the sync window
	// when the caller does not override it
	DefaultLookbackDays  = 30
	DefaultLookaheadDays = 30

	// agendaMinLength is the description length past which an event counts
	// as having an agenda
	agendaMinLength = 20

	// minInvitees filters out personal events; a calendar entry needs at
	// least this many people to be a meeting
	minInvitees = 2
)

var zoomMeetingRe = regexp.MustCompile(`zoom\.us/j/(\d+)`)

// SyncResult reports the outcome of one sync run
type SyncResult struct {
	EventCount   int `json:"event_count"`
	SkippedCount int `json:"skipped_count"`
}

// Service pulls events from the configured source and mirrors them into the
// meetings table.
type Service struct {
	source      EventSource
	meetingRepo repositories.MeetingRepository
	statRepo    repositories.StatRepository
	userRepo    repositories.UserRepository
	logger      *zap.Logger
}

// NewService creates a new calendar sync service
func NewService(
	source EventSource,
	meetingRepo repositories.MeetingRepository,
	statRepo repositories.StatRepository,
	userRepo repositories.UserRepository,
	logger *zap.Logger,
) *Service {
	return &Service{
		source:      source,
		meetingRepo: meetingRepo,
		statRepo:    statRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

// Sync fetches the user's calendar events around now and upserts them as
// meetings, keyed by external event id so a re-sync updates in place.
// Events without a title, with fewer than two invitees, or with an end at
// or before their start are skipped. Finishes by recomputing the current
// week's total meeting hours.
func (s *Service) Sync(ctx context.Context, userID uuid.UUID, lookbackDays, lookaheadDays int) (*SyncResult, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if lookbackDays <= 0 {
		lookbackDays = DefaultLookbackDays
	}
	if lookaheadDays <= 0 {
		lookaheadDays = DefaultLookaheadDays
	}

	now := time.Now()
	from := now.AddDate(0, 0, -lookbackDays)
	to := now.AddDate(0, 0, lookaheadDays)

	events, err := s.source.ListEvents(ctx, user, from, to)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrCalendarSyncFailed, err)
	}

	result := &SyncResult{}
	for _, ev := range events {
		if !eligible(ev) {
			result.SkippedCount++
			continue
		}

		meeting := meetingFromEvent(userID, ev)
		if err := s.meetingRepo.Upsert(ctx, meeting); err != nil {
			return nil, fmt.Errorf("failed to upsert meeting %q: %w", ev.Title, err)
		}

		attendees := make([]entities.Attendee, 0, len(ev.Attendees))
		for _, a := range ev.Attendees {
			attendees = append(attendees, entities.Attendee{
				Email:          a.Email,
				Name:           a.Name,
				ResponseStatus: a.Status,
				IsOptional:     a.Optional,
			})
		}
		if err := s.meetingRepo.ReplaceAttendees(ctx, meeting.ID, attendees); err != nil {
			return nil, fmt.Errorf("failed to replace attendees for %q: %w", ev.Title, err)
		}

		result.EventCount++
	}

	if err := s.updateWeeklyHours(ctx, userID, now); err != nil {
		return nil, err
	}

	s.logger.Info("calendar sync completed",
		zap.String("user_id", userID.String()),
		zap.Int("events", result.EventCount),
		zap.Int("skipped", result.SkippedCount),
	)

	return result, nil
}

// eligible filters out events that are not real meetings
func eligible(ev entities.CalendarEvent) bool {
	if ev.Title == "" {
		return false
	}
	if len(ev.Attendees) < minInvitees {
		return false
	}
	if !ev.End.After(ev.Start) {
		return false
	}
	return true
}

// meetingFromEvent maps a calendar event to the meeting entity
func meetingFromEvent(userID uuid.UUID, ev entities.CalendarEvent) *entities.Meeting {
	externalID := ev.ID
	meeting := &entities.Meeting{
		ExternalID:   &externalID,
		UserID:       userID,
		Title:        ev.Title,
		StartTime:    ev.Start,
		EndTime:      ev.End,
		IsRecurring:  ev.RecurringEventID != "",
		Organizer:    ev.Organizer,
		HasAgenda:    len(ev.Description) > agendaMinLength,
		Status:       entities.MeetingStatusScheduled,
		InviteeCount: len(ev.Attendees),
	}
	if ev.Description != "" {
		desc := ev.Description
		meeting.Description = &desc
	}
	if ev.RecurringEventID != "" {
		rid := ev.RecurringEventID
		meeting.RecurrenceID = &rid
	}
	if m := zoomMeetingRe.FindStringSubmatch(ev.Description); m != nil {
		zoomID := m[1]
		meeting.ZoomMeetingID = &zoomID
	}
	return meeting
}

// updateWeeklyHours recomputes total meeting hours for the current week
func (s *Service) updateWeeklyHours(ctx context.Context, userID uuid.UUID, now time.Time) error {
	weekStart := entities.StartOfWeek(now)
	weekEnd := weekStart.AddDate(0, 0, 7)

	meetings, err := s.meetingRepo.FindInWindow(ctx, userID, weekStart, weekEnd)
	if err != nil {
		return fmt.Errorf("failed to load weekly meetings: %w", err)
	}

	total := 0.0
	for _, m := range meetings {
		total += m.DurationHours()
	}

	if err := s.statRepo.SetMeetingHours(ctx, userID, weekStart, total); err != nil {
		return fmt.Errorf("failed to update weekly hours: %w", err)
	}
	return nil
}
