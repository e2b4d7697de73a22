package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/meetwiselabs/meetwise/internal/domain/entities"
	"github.com/meetwiselabs/meetwise/internal/domain/repositories"
	"github.com/meetwiselabs/meetwise/internal/infrastructure/cache"
	"github.com/meetwiselabs/meetwise/internal/usecase/errors"
)

const (
	// auditWindow is how far the audit looks around now, in both directions
	auditWindow = 30 * 24 * time.Hour

	// auditLockTTL bounds how long a crashed run can block the next one
	auditLockTTL = 5 * time.Minute
)

// Service runs full audits and cancellation scoring against a user's
// persisted meetings.
type Service struct {
	meetingRepo repositories.MeetingRepository
	flagRepo    repositories.FlagRepository
	statRepo    repositories.StatRepository
	engine      *Engine
	locker      cache.Locker
	logger      *zap.Logger
}

// NewService creates a new audit service
func NewService(
	meetingRepo repositories.MeetingRepository,
	flagRepo repositories.FlagRepository,
	statRepo repositories.StatRepository,
	locker cache.Locker,
	logger *zap.Logger,
) *Service {
	return &Service{
		meetingRepo: meetingRepo,
		flagRepo:    flagRepo,
		statRepo:    statRepo,
		engine:      NewEngine(),
		locker:      locker,
		logger:      logger,
	}
}

// RunFullAudit audits all of the user's meetings within the audit window,
// replaces their auto-detected flags with the fresh findings, and writes the
// totals to the current week's stats row. Running it twice back to back
// yields the same flags; manually created flags are never touched.
//
// Only one audit per user runs at a time; a second concurrent call fails
// with ErrAuditInProgress.
func (s *Service) RunFullAudit(ctx context.Context, userID uuid.UUID) (*entities.AuditReport, error) {
	lockKey := fmt.Sprintf("audit:lock:%s", userID)
	acquired, err := s.locker.Acquire(ctx, lockKey, auditLockTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire audit lock: %w", err)
	}
	if !acquired {
		return nil, errors.ErrAuditInProgress
	}
	defer func() {
		if err := s.locker.Release(context.WithoutCancel(ctx), lockKey); err != nil {
			s.logger.Warn("failed to release audit lock", zap.String("user_id", userID.String()), zap.Error(err))
		}
	}()

	now := time.Now()
	meetings, err := s.meetingRepo.FindInWindow(ctx, userID, now.Add(-auditWindow), now.Add(auditWindow))
	if err != nil {
		return nil, fmt.Errorf("failed to load meetings: %w", err)
	}

	findings := s.engine.Run(meetings)

	// Drop the previous run's flags before persisting the new ones so
	// repeated audits do not accumulate duplicates
	if err := s.flagRepo.DeleteAutoDetected(ctx, userID); err != nil {
		return nil, fmt.Errorf("failed to clear auto-detected flags: %w", err)
	}

	report := &entities.AuditReport{Findings: findings}
	for _, f := range findings {
		report.TotalIssues++
		switch f.Severity {
		case entities.SeverityCritical:
			report.CriticalIssues++
		case entities.SeverityHigh:
			report.HighIssues++
		}
		report.EstimatedTotalSavings += f.EstimatedSavings

		if len(f.AffectedMeetings) == 0 {
			continue
		}
		flag, err := flagFromFinding(userID, f)
		if err != nil {
			return nil, err
		}
		if err := s.flagRepo.Create(ctx, flag); err != nil {
			return nil, fmt.Errorf("failed to persist flag: %w", err)
		}
	}

	weekStart := entities.StartOfWeek(now)
	if err := s.statRepo.SetAuditTotals(ctx, userID, weekStart, report.EstimatedTotalSavings, report.TotalIssues); err != nil {
		return nil, fmt.Errorf("failed to update weekly stats: %w", err)
	}

	s.logger.Info("audit completed",
		zap.String("user_id", userID.String()),
		zap.Int("meetings", len(meetings)),
		zap.Int("issues", report.TotalIssues),
		zap.Float64("estimated_savings", report.EstimatedTotalSavings),
	)

	return report, nil
}

// SuggestCancellations scores the user's upcoming meetings and returns the
// candidates worth cancelling or reviewing, highest score first.
func (s *Service) SuggestCancellations(ctx context.Context, userID uuid.UUID) ([]entities.CancellationCandidate, error) {
	meetings, err := s.meetingRepo.FindUpcoming(ctx, userID, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to load upcoming meetings: %w", err)
	}
	return ScoreCancellations(meetings), nil
}

// flagFromFinding materializes a finding as a flag on its first affected
// meeting
func flagFromFinding(userID uuid.UUID, f entities.AuditFinding) (*entities.MeetingFlag, error) {
	suggestions, err := json.Marshal(f.Suggestions)
	if err != nil {
		return nil, fmt.Errorf("failed to encode suggestions: %w", err)
	}

	return &entities.MeetingFlag{
		MeetingID:        f.AffectedMeetings[0],
		UserID:           userID,
		IssueType:        f.Type,
		Description:      f.Description,
		Severity:         f.Severity,
		Suggestions:      datatypes.JSON(suggestions),
		EstimatedSavings: f.EstimatedSavings,
		AutoDetected:     true,
	}, nil
}
