package meeting

import (
	"context"
	stderrors "errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/meetwiselabs/meetwise/internal/domain/entities"
	"github.com/meetwiselabs/meetwise/internal/domain/repositories"
	"github.com/meetwiselabs/meetwise/internal/usecase/errors"
)

// Analysis thresholds for the quick per-meeting pass. These complement the
// audit engine; the quick pass works off invitee counts and title similarity
// rather than schedule shape.
const (
	// attendanceRateFloor marks a meeting as poorly attended when actual
	// attendance falls below this share of invitees
	attendanceRateFloor = 0.7

	// largeMeetingInvitees triggers the large-meeting quick flag
	largeMeetingInvitees = 8

	// redundancyThreshold applies to both title similarity and attendee
	// overlap; a pair must clear both to be called redundant
	redundancyThreshold = 0.7

	// conflictBuffer widens the window used to find an attendee's nearby
	// meetings
	conflictBuffer = 2 * time.Hour

	// frequentParticipantMeetings is how many similar meetings make someone
	// a core participant
	frequentParticipantMeetings = 3
)

// EventDeleter removes an event from the user's external calendar. Bulk
// cancel uses it best-effort; a nil deleter skips the external call.
type EventDeleter interface {
	DeleteEvent(ctx context.Context, user *entities.User, externalID string) error
}

// Service covers meeting reads, manual flagging, the quick analysis pass,
// attendee recommendations, and bulk cancellation.
type Service struct {
	meetingRepo repositories.MeetingRepository
	flagRepo    repositories.FlagRepository
	statRepo    repositories.StatRepository
	userRepo    repositories.UserRepository
	deleter     EventDeleter
	logger      *zap.Logger
}

// NewService creates a new meeting service. deleter may be nil when no
// external calendar is configured.
func NewService(
	meetingRepo repositories.MeetingRepository,
	flagRepo repositories.FlagRepository,
	statRepo repositories.StatRepository,
	userRepo repositories.UserRepository,
	deleter EventDeleter,
	logger *zap.Logger,
) *Service {
	return &Service{
		meetingRepo: meetingRepo,
		flagRepo:    flagRepo,
		statRepo:    statRepo,
		userRepo:    userRepo,
		deleter:     deleter,
		logger:      logger,
	}
}

// List retrieves the user's meetings with optional filters
func (s *Service) List(ctx context.Context, filters repositories.MeetingFilters) ([]*entities.Meeting, error) {
	meetings, err := s.meetingRepo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list meetings: %w", err)
	}
	return meetings, nil
}

// Get retrieves one meeting owned by the user
func (s *Service) Get(ctx context.Context, id, userID uuid.UUID) (*entities.Meeting, error) {
	meeting, err := s.meetingRepo.FindByID(ctx, id, userID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrMeetingNotFound
		}
		return nil, fmt.Errorf("failed to get meeting: %w", err)
	}
	return meeting, nil
}

// Flag attaches a manual flag to a meeting
func (s *Service) Flag(ctx context.Context, userID, meetingID uuid.UUID, issueType entities.IssueType, description string, severity entities.Severity) (*entities.MeetingFlag, error) {
	if !issueType.IsValid() {
		return nil, errors.ErrInvalidIssueType
	}
	if !severity.IsValid() {
		return nil, errors.ErrInvalidSeverity
	}

	if _, err := s.Get(ctx, meetingID, userID); err != nil {
		return nil, err
	}

	flag := &entities.MeetingFlag{
		MeetingID:   meetingID,
		UserID:      userID,
		IssueType:   issueType,
		Description: description,
		Severity:    severity,
	}
	if err := s.flagRepo.Create(ctx, flag); err != nil {
		return nil, fmt.Errorf("failed to create flag: %w", err)
	}
	return flag, nil
}

// ResolveFlag marks a flag resolved and credits the meeting's cost (duration
// times attendees) to the current week's saved hours.
func (s *Service) ResolveFlag(ctx context.Context, userID, meetingID, flagID uuid.UUID) (*entities.MeetingFlag, error) {
	flag, err := s.flagRepo.FindByID(ctx, flagID, meetingID, userID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrFlagNotFound
		}
		return nil, fmt.Errorf("failed to get flag: %w", err)
	}
	if flag.IsResolved {
		return nil, errors.ErrFlagAlreadyResolved
	}

	if err := s.flagRepo.Resolve(ctx, flagID); err != nil {
		return nil, fmt.Errorf("failed to resolve flag: %w", err)
	}
	flag.Resolve()

	meeting, err := s.meetingRepo.FindByID(ctx, meetingID, userID)
	if err != nil {
		// Flag is resolved either way; the stat credit is best-effort
		s.logger.Warn("failed to load meeting for saved-hours credit",
			zap.String("meeting_id", meetingID.String()), zap.Error(err))
		return flag, nil
	}

	saved := meeting.DurationHours() * float64(len(meeting.Attendees))
	weekStart := entities.StartOfWeek(time.Now())
	if err := s.statRepo.IncrementHoursSaved(ctx, userID, weekStart, saved); err != nil {
		s.logger.Warn("failed to credit saved hours",
			zap.String("user_id", userID.String()), zap.Error(err))
	}

	return flag, nil
}

// AnalysisResult reports the outcome of a quick analysis pass
type AnalysisResult struct {
	FlaggedCount    int                 `json:"flagged_count"`
	FlaggedMeetings []*entities.Meeting `json:"flagged_meetings"`
}

// Analyze runs the quick per-meeting checks over all of the user's meetings
// and replaces their flags with the results: recurring meetings without an
// agenda, low attendance against the invitee count, oversized invitee lists,
// and redundant near-duplicate meetings. The flagged-meeting count is written
// to the current week's stats.
func (s *Service) Analyze(ctx context.Context, userID uuid.UUID) (*AnalysisResult, error) {
	meetings, err := s.meetingRepo.List(ctx, repositories.MeetingFilters{UserID: userID})
	if err != nil {
		return nil, fmt.Errorf("failed to load meetings: %w", err)
	}

	if err := s.flagRepo.DeleteByUser(ctx, userID); err != nil {
		return nil, fmt.Errorf("failed to clear flags: %w", err)
	}

	result := &AnalysisResult{}
	for _, m := range meetings {
		flags := s.analyzeOne(m, meetings)
		for _, flag := range flags {
			flag.UserID = userID
			if err := s.flagRepo.Create(ctx, flag); err != nil {
				return nil, fmt.Errorf("failed to persist flag: %w", err)
			}
		}
		if len(flags) > 0 {
			result.FlaggedCount++
			result.FlaggedMeetings = append(result.FlaggedMeetings, m)
		}
	}

	weekStart := entities.StartOfWeek(time.Now())
	if err := s.statRepo.SetFlaggedCount(ctx, userID, weekStart, result.FlaggedCount); err != nil {
		return nil, fmt.Errorf("failed to update weekly stats: %w", err)
	}

	return result, nil
}

func (s *Service) analyzeOne(m *entities.Meeting, all []*entities.Meeting) []*entities.MeetingFlag {
	var flags []*entities.MeetingFlag

	if !m.HasAgenda && m.IsRecurring {
		flags = append(flags, &entities.MeetingFlag{
			MeetingID:   m.ID,
			IssueType:   entities.IssueNoAgenda,
			Description: "Recurring meeting with no agenda",
			Severity:    entities.SeverityMedium,
		})
	}

	if m.InviteeCount > 0 && m.AttendeeCount != nil &&
		float64(*m.AttendeeCount) < float64(m.InviteeCount)*attendanceRateFloor {
		rate := math.Round(float64(*m.AttendeeCount) / float64(m.InviteeCount) * 100)
		flags = append(flags, &entities.MeetingFlag{
			MeetingID:   m.ID,
			IssueType:   entities.IssueLowAttendance,
			Description: fmt.Sprintf("Low attendance rate (%d%%)", int(rate)),
			Severity:    entities.SeverityHigh,
		})
	}

	if m.InviteeCount > largeMeetingInvitees {
		flags = append(flags, &entities.MeetingFlag{
			MeetingID:   m.ID,
			IssueType:   entities.IssueLargeMeeting,
			Description: fmt.Sprintf("Large meeting with %d invitees", m.InviteeCount),
			Severity:    entities.SeverityLow,
		})
	}

	similar := 0
	for _, other := range all {
		if other.ID == m.ID {
			continue
		}
		if titleSimilarity(other.Title, m.Title) > redundancyThreshold &&
			attendeeOverlap(other.Attendees, m.Attendees) > redundancyThreshold {
			similar++
		}
	}
	if similar > 0 {
		flags = append(flags, &entities.MeetingFlag{
			MeetingID:   m.ID,
			IssueType:   entities.IssueRedundantMeeting,
			Description: fmt.Sprintf("Similar to %d other meeting(s)", similar),
			Severity:    entities.SeverityHigh,
		})
	}

	return flags
}

// AttendeeRecommendations suggests which attendees of a meeting could be
// made optional or dropped, based on their other commitments around the same
// time and their participation in similar meetings. The organizer is never
// recommended against.
func (s *Service) AttendeeRecommendations(ctx context.Context, userID, meetingID uuid.UUID) ([]entities.AttendeeRecommendation, error) {
	meeting, err := s.Get(ctx, meetingID, userID)
	if err != nil {
		return nil, err
	}

	all, err := s.meetingRepo.List(ctx, repositories.MeetingFilters{UserID: userID})
	if err != nil {
		return nil, fmt.Errorf("failed to load meetings: %w", err)
	}
	others := make([]*entities.Meeting, 0, len(all))
	for _, m := range all {
		if m.ID != meetingID {
			others = append(others, m)
		}
	}

	recommendations := make([]entities.AttendeeRecommendation, 0)
	for _, attendee := range meeting.Attendees {
		if attendee.Email == meeting.Organizer {
			continue
		}

		similar := 0
		conflicts := 0
		for _, m := range others {
			if !hasAttendee(m, attendee.Email) {
				continue
			}
			if containsEither(m.Title, meeting.Title) {
				similar++
			}
			if nearWindow(m, meeting, conflictBuffer) {
				conflicts++
			}
		}

		switch {
		case conflicts > 0:
			recommendations = append(recommendations, entities.AttendeeRecommendation{
				Attendee:       attendee,
				Recommendation: entities.RecommendationOptional,
				Reason:         fmt.Sprintf("Has %d other meetings around this time", conflicts),
			})
		case similar == 0:
			recommendations = append(recommendations, entities.AttendeeRecommendation{
				Attendee:       attendee,
				Recommendation: entities.RecommendationRemove,
				Reason:         "Not involved in similar meetings",
			})
		case len(meeting.Attendees) > largeMeetingInvitees && similar < frequentParticipantMeetings:
			recommendations = append(recommendations, entities.AttendeeRecommendation{
				Attendee:       attendee,
				Recommendation: entities.RecommendationOptional,
				Reason:         "Large meeting and not a frequent participant in similar topics",
			})
		}
	}

	return recommendations, nil
}

// containsEither reports whether one lowercased title contains the other
func containsEither(a, b string) bool {
	return titleSimilarity(a, b) >= 0.9
}

// nearWindow reports whether m starts or ends within the buffered window of
// target
func nearWindow(m, target *entities.Meeting, buffer time.Duration) bool {
	lo := target.StartTime.Add(-buffer)
	hi := target.EndTime.Add(buffer)

	startsIn := !m.StartTime.Before(lo) && !m.StartTime.After(hi)
	endsIn := !m.EndTime.Before(lo) && !m.EndTime.After(hi)
	return startsIn || endsIn
}

// BulkCancel cancels the given meetings one by one, reporting a per-meeting
// outcome rather than failing the batch. Successfully cancelled meetings
// with an external id are also deleted from the external calendar,
// best-effort.
func (s *Service) BulkCancel(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]entities.BulkCancelResult, error) {
	var user *entities.User
	if s.deleter != nil {
		u, err := s.userRepo.FindByID(ctx, userID)
		if err != nil {
			s.logger.Warn("failed to load user for calendar delete", zap.Error(err))
		} else {
			user = u
		}
	}

	results := make([]entities.BulkCancelResult, 0, len(ids))
	cancelled := 0
	for _, id := range ids {
		result := entities.BulkCancelResult{MeetingID: id}

		meeting, err := s.meetingRepo.FindByID(ctx, id, userID)
		switch {
		case stderrors.Is(err, gorm.ErrRecordNotFound):
			result.Error = errors.ErrMeetingNotFound.Error()
		case err != nil:
			result.Error = "failed to load meeting"
			s.logger.Error("bulk cancel load failed", zap.String("meeting_id", id.String()), zap.Error(err))
		case meeting.IsCancelled():
			result.Error = errors.ErrMeetingCancelled.Error()
		default:
			if err := s.meetingRepo.UpdateStatus(ctx, id, entities.MeetingStatusCancelled); err != nil {
				result.Error = "failed to cancel meeting"
				s.logger.Error("bulk cancel update failed", zap.String("meeting_id", id.String()), zap.Error(err))
				break
			}
			result.Cancelled = true
			cancelled++

			if s.deleter != nil && user != nil && meeting.ExternalID != nil {
				if err := s.deleter.DeleteEvent(ctx, user, *meeting.ExternalID); err != nil {
					s.logger.Warn("failed to delete external calendar event",
						zap.String("meeting_id", id.String()), zap.Error(err))
				}
			}
		}

		results = append(results, result)
	}

	if cancelled > 0 {
		weekStart := entities.StartOfWeek(time.Now())
		if err := s.statRepo.IncrementCancelled(ctx, userID, weekStart, cancelled); err != nil {
			s.logger.Warn("failed to update cancelled count", zap.Error(err))
		}
	}

	return results, nil
}
