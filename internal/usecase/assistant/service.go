package assistant

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/meetwiselabs/meetwise/internal/domain/entities"
	"github.com/meetwiselabs/meetwise/internal/domain/repositories"
	"github.com/meetwiselabs/meetwise/internal/usecase/errors"
)

// maxTranscriptChars bounds what is sent to the generator; longer
// transcripts are truncated, not rejected
const maxTranscriptChars = 4000

// Service generates agendas and summaries through the configured generator
// and persists the results.
type Service struct {
	meetingRepo repositories.MeetingRepository
	summaryRepo repositories.SummaryRepository
	generator   Generator
	logger      *zap.Logger
}

// NewService creates a new assistant service
func NewService(
	meetingRepo repositories.MeetingRepository,
	summaryRepo repositories.SummaryRepository,
	generator Generator,
	logger *zap.Logger,
) *Service {
	return &Service{
		meetingRepo: meetingRepo,
		summaryRepo: summaryRepo,
		generator:   generator,
		logger:      logger,
	}
}

// GenerateAgendaInput is the request for agenda generation. MeetingID is
// optional; when present the agenda is also stored on that meeting.
type GenerateAgendaInput struct {
	MeetingID       *uuid.UUID
	Title           string
	Context         string
	DurationMinutes int
	Attendees       []string
}

// GenerateAgenda drafts an agenda for a meeting. When the input names a
// meeting the user owns, the agenda is written back as its description and
// the meeting is marked as having one; generation still succeeds if the
// meeting does not exist.
func (s *Service) GenerateAgenda(ctx context.Context, userID uuid.UUID, input GenerateAgendaInput) (string, error) {
	if input.Title == "" {
		return "", errors.ErrInvalidInput
	}

	agenda, err := s.generator.GenerateAgenda(ctx, AgendaRequest{
		Title:           input.Title,
		Context:         input.Context,
		DurationMinutes: input.DurationMinutes,
		Attendees:       input.Attendees,
	})
	if err != nil {
		return "", err
	}

	if input.MeetingID != nil {
		_, err := s.meetingRepo.FindByID(ctx, *input.MeetingID, userID)
		switch {
		case stderrors.Is(err, gorm.ErrRecordNotFound):
			// Agenda is still returned; there is just nowhere to store it
		case err != nil:
			return "", fmt.Errorf("failed to load meeting: %w", err)
		default:
			if err := s.meetingRepo.SetAgenda(ctx, *input.MeetingID, agenda); err != nil {
				return "", fmt.Errorf("failed to store agenda: %w", err)
			}
		}
	}

	return agenda, nil
}

// SaveAgenda stores a caller-provided agenda on a meeting the user owns
func (s *Service) SaveAgenda(ctx context.Context, userID, meetingID uuid.UUID, agenda string) (*entities.Meeting, error) {
	if agenda == "" {
		return nil, errors.ErrInvalidInput
	}

	if _, err := s.meetingRepo.FindByID(ctx, meetingID, userID); err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrMeetingNotFound
		}
		return nil, fmt.Errorf("failed to load meeting: %w", err)
	}

	if err := s.meetingRepo.SetAgenda(ctx, meetingID, agenda); err != nil {
		return nil, fmt.Errorf("failed to store agenda: %w", err)
	}

	meeting, err := s.meetingRepo.FindByID(ctx, meetingID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload meeting: %w", err)
	}
	return meeting, nil
}

// GenerateSummary summarizes a transcript of a meeting the user owns,
// extracts structured action items, and persists the result
func (s *Service) GenerateSummary(ctx context.Context, userID, meetingID uuid.UUID, transcript string) (*entities.Summary, []entities.ActionItem, error) {
	if transcript == "" {
		return nil, nil, errors.ErrInvalidInput
	}

	meeting, err := s.meetingRepo.FindByID(ctx, meetingID, userID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, errors.ErrMeetingNotFound
		}
		return nil, nil, fmt.Errorf("failed to load meeting: %w", err)
	}

	attendees := make([]string, 0, len(meeting.Attendees))
	for _, a := range meeting.Attendees {
		name := a.Name
		if name == "" {
			name = a.Email
		}
		attendees = append(attendees, name)
	}

	if len(transcript) > maxTranscriptChars {
		transcript = transcript[:maxTranscriptChars]
	}

	summaryText, actionItemsText, err := s.generator.SummarizeTranscript(ctx, SummaryRequest{
		MeetingTitle: meeting.Title,
		Attendees:    attendees,
		Transcript:   transcript,
	})
	if err != nil {
		return nil, nil, err
	}

	items := ParseActionItems(actionItemsText)
	encoded, err := json.Marshal(items)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode action items: %w", err)
	}

	summary := &entities.Summary{
		MeetingID:   meetingID,
		UserID:      userID,
		SummaryText: summaryText,
		ActionItems: datatypes.JSON(encoded),
	}
	if err := s.summaryRepo.Create(ctx, summary); err != nil {
		return nil, nil, fmt.Errorf("failed to persist summary: %w", err)
	}

	s.logger.Info("summary generated",
		zap.String("meeting_id", meetingID.String()),
		zap.Int("action_items", len(items)),
	)

	return summary, items, nil
}

// ListSummaries retrieves the user's summaries, optionally scoped to one
// meeting
func (s *Service) ListSummaries(ctx context.Context, userID uuid.UUID, meetingID *uuid.UUID) ([]*entities.Summary, error) {
	summaries, err := s.summaryRepo.List(ctx, userID, meetingID)
	if err != nil {
		return nil, fmt.Errorf("failed to list summaries: %w", err)
	}
	return summaries, nil
}

// GetSummary retrieves one summary the user owns
func (s *Service) GetSummary(ctx context.Context, id, userID uuid.UUID) (*entities.Summary, error) {
	summary, err := s.summaryRepo.FindByID(ctx, id, userID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrSummaryNotFound
		}
		return nil, fmt.Errorf("failed to get summary: %w", err)
	}
	return summary, nil
}
