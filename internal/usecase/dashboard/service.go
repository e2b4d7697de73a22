package dashboard

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/meetwiselabs/meetwise/internal/domain/entities"
	"github.com/meetwiselabs/meetwise/internal/domain/repositories"
)

// TimeRange selects how far back the metrics look
type TimeRange string

const (
	RangeWeek    TimeRange = "week"
	RangeMonth   TimeRange = "month"
	RangeQuarter TimeRange = "quarter"
)

// focusMultiplier converts saved meeting hours into estimated deep-work
// hours; uninterrupted blocks are worth more than their length
const focusMultiplier = 1.5

// defaultTrendWeeks is the weekly-stats window when the caller does not ask
// for one
const defaultTrendWeeks = 12

// Service aggregates meeting, flag, and weekly-stat data into dashboard
// metrics. Read-only; it never mutates stored state.
type Service struct {
	meetingRepo repositories.MeetingRepository
	statRepo    repositories.StatRepository
	userRepo    repositories.UserRepository
	logger      *zap.Logger
}

// NewService creates a new dashboard service
func NewService(
	meetingRepo repositories.MeetingRepository,
	statRepo repositories.StatRepository,
	userRepo repositories.UserRepository,
	logger *zap.Logger,
) *Service {
	return &Service{
		meetingRepo: meetingRepo,
		statRepo:    statRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

// rangeStart maps a time range to its start date. Unknown values fall back
// to 30 days.
func rangeStart(now time.Time, timeRange TimeRange) time.Time {
	switch timeRange {
	case RangeWeek:
		return now.AddDate(0, 0, -7)
	case RangeMonth:
		return now.AddDate(0, -1, 0)
	case RangeQuarter:
		return now.AddDate(0, -3, 0)
	default:
		return now.AddDate(0, 0, -30)
	}
}

// Metrics computes the full dashboard for one user over the given range.
// A user with no meetings gets zeroed metrics and a perfect flagged score,
// never an error.
func (s *Service) Metrics(ctx context.Context, userID uuid.UUID, timeRange TimeRange) (*entities.DashboardMetrics, error) {
	now := time.Now()
	start := rangeStart(now, timeRange)

	meetings, err := s.meetingRepo.FindInWindow(ctx, userID, start, now)
	if err != nil {
		return nil, fmt.Errorf("failed to load meetings: %w", err)
	}
	stats, err := s.statRepo.FindRange(ctx, userID, start, now)
	if err != nil {
		return nil, fmt.Errorf("failed to load weekly stats: %w", err)
	}

	hourlyCost := entities.DefaultHourlyCost
	if user, err := s.userRepo.FindByID(ctx, userID); err == nil {
		hourlyCost = user.HourlyCost()
	} else {
		s.logger.Warn("falling back to default hourly cost", zap.String("user_id", userID.String()), zap.Error(err))
	}

	m := &entities.DashboardMetrics{TotalMeetings: len(meetings)}

	totalHours := 0.0
	totalAttendees := 0
	totalCost := 0.0
	withAgenda := 0
	flagged := 0
	issueCounts := make(map[entities.IssueType]*entities.TopIssue)

	for _, meeting := range meetings {
		hours := meeting.DurationHours()
		totalHours += hours
		totalAttendees += len(meeting.Attendees)
		totalCost += hours * float64(len(meeting.Attendees)) * hourlyCost
		m.MeetingsByDay[int(meeting.StartTime.Weekday())] += hours

		if meeting.HasAgenda {
			withAgenda++
		}
		if len(meeting.Flags) > 0 {
			flagged++
			for _, flag := range meeting.Flags {
				if issue, ok := issueCounts[flag.IssueType]; ok {
					issue.Count++
				} else {
					issueCounts[flag.IssueType] = &entities.TopIssue{
						Type:   flag.IssueType,
						Count:  1,
						Impact: flag.Severity,
					}
				}
			}
		}
	}
	for i := range m.MeetingsByDay {
		m.MeetingsByDay[i] = round1(m.MeetingsByDay[i])
	}

	hoursSaved := 0.0
	for _, stat := range stats {
		hoursSaved += stat.HoursSaved
	}

	m.TotalHours = round1(totalHours)
	m.TotalCost = round2(totalCost)
	m.HoursSaved = round1(hoursSaved)
	m.MoneySaved = round2(hoursSaved * hourlyCost)
	m.MeetingsWithAgenda = withAgenda
	m.FocusTimeCreated = round1(hoursSaved * focusMultiplier)

	agendaScore := 0.0
	flaggedScore := 100.0
	if len(meetings) > 0 {
		agendaScore = float64(withAgenda) / float64(len(meetings)) * 100
		flaggedScore = math.Max(0, 100-float64(flagged)/float64(len(meetings))*100)
		m.AverageMeetingDuration = round1(totalHours / float64(len(meetings)))
		m.AverageAttendees = round1(float64(totalAttendees) / float64(len(meetings)))
		m.MeetingUtilization = round1(agendaScore)
	}
	m.EfficiencyScore = int(math.Round((agendaScore + flaggedScore) / 2))

	m.TopIssues = make([]entities.TopIssue, 0, len(issueCounts))
	for _, issue := range issueCounts {
		m.TopIssues = append(m.TopIssues, *issue)
	}
	sort.SliceStable(m.TopIssues, func(i, j int) bool {
		if m.TopIssues[i].Count != m.TopIssues[j].Count {
			return m.TopIssues[i].Count > m.TopIssues[j].Count
		}
		return m.TopIssues[i].Type < m.TopIssues[j].Type
	})

	m.WeeklyTrend = trendFromStats(stats, hourlyCost)

	return m, nil
}

// WeeklyStats returns the per-week trend series for the last n weeks
func (s *Service) WeeklyStats(ctx context.Context, userID uuid.UUID, weeks int) (*entities.WeeklyTrend, error) {
	if weeks <= 0 {
		weeks = defaultTrendWeeks
	}

	now := time.Now()
	stats, err := s.statRepo.FindRange(ctx, userID, now.AddDate(0, 0, -7*weeks), now)
	if err != nil {
		return nil, fmt.Errorf("failed to load weekly stats: %w", err)
	}

	trend := trendFromStats(stats, 0)
	trend.Costs = nil
	trend.Flagged = make([]int, 0, len(stats))
	for _, stat := range stats {
		trend.Flagged = append(trend.Flagged, stat.MeetingsFlagged)
	}
	return &trend, nil
}

func trendFromStats(stats []*entities.WeeklyStat, hourlyCost float64) entities.WeeklyTrend {
	trend := entities.WeeklyTrend{
		Labels:       make([]string, 0, len(stats)),
		MeetingHours: make([]float64, 0, len(stats)),
		HoursSaved:   make([]float64, 0, len(stats)),
	}
	if hourlyCost > 0 {
		trend.Costs = make([]float64, 0, len(stats))
	}

	for _, stat := range stats {
		trend.Labels = append(trend.Labels, fmt.Sprintf("%d/%d", int(stat.WeekStart.Month()), stat.WeekStart.Day()))
		trend.MeetingHours = append(trend.MeetingHours, stat.TotalMeetingHours)
		trend.HoursSaved = append(trend.HoursSaved, stat.HoursSaved)
		if hourlyCost > 0 {
			trend.Costs = append(trend.Costs, round2(stat.TotalMeetingHours*hourlyCost))
		}
	}

	return trend
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
