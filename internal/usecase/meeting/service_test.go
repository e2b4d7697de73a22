package meeting

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/meetwiselabs/meetwise/internal/domain/entities"
	"github.com/meetwiselabs/meetwise/internal/domain/repositories"
	"github.com/meetwiselabs/meetwise/internal/usecase/errors"
)

type fakeMeetingRepo struct {
	meetings []*entities.Meeting
	statuses map[uuid.UUID]entities.MeetingStatus
}

func (f *fakeMeetingRepo) Create(context.Context, *entities.Meeting) error { return nil }
func (f *fakeMeetingRepo) FindByID(_ context.Context, id, _ uuid.UUID) (*entities.Meeting, error) {
	for _, m := range f.meetings {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeMeetingRepo) Upsert(context.Context, *entities.Meeting) error { return nil }
func (f *fakeMeetingRepo) ReplaceAttendees(context.Context, uuid.UUID, []entities.Attendee) error {
	return nil
}
func (f *fakeMeetingRepo) List(context.Context, repositories.MeetingFilters) ([]*entities.Meeting, error) {
	return f.meetings, nil
}
func (f *fakeMeetingRepo) FindInWindow(context.Context, uuid.UUID, time.Time, time.Time) ([]*entities.Meeting, error) {
	return f.meetings, nil
}
func (f *fakeMeetingRepo) FindUpcoming(context.Context, uuid.UUID, time.Time) ([]*entities.Meeting, error) {
	return f.meetings, nil
}
func (f *fakeMeetingRepo) Update(context.Context, *entities.Meeting) error { return nil }
func (f *fakeMeetingRepo) UpdateStatus(_ context.Context, id uuid.UUID, status entities.MeetingStatus) error {
	if f.statuses == nil {
		f.statuses = make(map[uuid.UUID]entities.MeetingStatus)
	}
	f.statuses[id] = status
	return nil
}
func (f *fakeMeetingRepo) SetAgenda(context.Context, uuid.UUID, string) error { return nil }

type fakeFlagRepo struct {
	flags    []*entities.MeetingFlag
	resolved []uuid.UUID
}

func (f *fakeFlagRepo) Create(_ context.Context, flag *entities.MeetingFlag) error {
	f.flags = append(f.flags, flag)
	return nil
}
func (f *fakeFlagRepo) FindByID(_ context.Context, flagID, _, _ uuid.UUID) (*entities.MeetingFlag, error) {
	for _, flag := range f.flags {
		if flag.ID == flagID {
			return flag, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeFlagRepo) Resolve(_ context.Context, flagID uuid.UUID) error {
	f.resolved = append(f.resolved, flagID)
	return nil
}
func (f *fakeFlagRepo) DeleteAutoDetected(context.Context, uuid.UUID) error { return nil }
func (f *fakeFlagRepo) DeleteByUser(context.Context, uuid.UUID) error {
	f.flags = nil
	return nil
}

type fakeStatRepo struct {
	hoursSaved float64
	flagged    int
	cancelled  int
}

func (f *fakeStatRepo) SetMeetingHours(context.Context, uuid.UUID, time.Time, float64) error {
	return nil
}
func (f *fakeStatRepo) SetAuditTotals(context.Context, uuid.UUID, time.Time, float64, int) error {
	return nil
}
func (f *fakeStatRepo) SetFlaggedCount(_ context.Context, _ uuid.UUID, _ time.Time, flagged int) error {
	f.flagged = flagged
	return nil
}
func (f *fakeStatRepo) IncrementHoursSaved(_ context.Context, _ uuid.UUID, _ time.Time, hours float64) error {
	f.hoursSaved += hours
	return nil
}
func (f *fakeStatRepo) IncrementCancelled(_ context.Context, _ uuid.UUID, _ time.Time, n int) error {
	f.cancelled += n
	return nil
}
func (f *fakeStatRepo) FindRange(context.Context, uuid.UUID, time.Time, time.Time) ([]*entities.WeeklyStat, error) {
	return nil, nil
}

type fakeUserRepo struct{}

func (fakeUserRepo) Create(context.Context, *entities.User) error { return nil }
func (fakeUserRepo) FindByID(context.Context, uuid.UUID) (*entities.User, error) {
	return &entities.User{ID: uuid.New()}, nil
}
func (fakeUserRepo) FindByEmail(context.Context, string) (*entities.User, error) {
	return nil, gorm.ErrRecordNotFound
}
func (fakeUserRepo) FindByOAuth(context.Context, string, string) (*entities.User, error) {
	return nil, gorm.ErrRecordNotFound
}
func (fakeUserRepo) Update(context.Context, *entities.User) error                { return nil }
func (fakeUserRepo) UpdateOAuthToken(context.Context, uuid.UUID, string) error   { return nil }
func (fakeUserRepo) UpdateLastLogin(context.Context, uuid.UUID) error            { return nil }

func newTestService(meetings []*entities.Meeting) (*Service, *fakeMeetingRepo, *fakeFlagRepo, *fakeStatRepo) {
	meetingRepo := &fakeMeetingRepo{meetings: meetings}
	flagRepo := &fakeFlagRepo{}
	statRepo := &fakeStatRepo{}
	svc := NewService(meetingRepo, flagRepo, statRepo, fakeUserRepo{}, nil, zap.NewNop())
	return svc, meetingRepo, flagRepo, statRepo
}

func meetingAt(title string, start time.Time, duration time.Duration, emails ...string) *entities.Meeting {
	return &entities.Meeting{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		Title:     title,
		StartTime: start,
		EndTime:   start.Add(duration),
		Status:    entities.MeetingStatusScheduled,
		HasAgenda: true,
		Attendees: attendees(emails...),
	}
}

var testStart = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func TestAnalyze(t *testing.T) {
	userID := uuid.New()

	t.Run("recurring without agenda", func(t *testing.T) {
		m := meetingAt("Standup", testStart, 30*time.Minute, "a@x.com")
		m.HasAgenda = false
		m.IsRecurring = true

		svc, _, flagRepo, statRepo := newTestService([]*entities.Meeting{m})
		result, err := svc.Analyze(context.Background(), userID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if result.FlaggedCount != 1 {
			t.Fatalf("expected 1 flagged meeting, got %d", result.FlaggedCount)
		}
		if len(flagRepo.flags) != 1 || flagRepo.flags[0].IssueType != entities.IssueNoAgenda {
			t.Errorf("expected a NO_AGENDA flag, got %+v", flagRepo.flags)
		}
		if statRepo.flagged != 1 {
			t.Errorf("expected weekly flagged count 1, got %d", statRepo.flagged)
		}
	})

	t.Run("low attendance", func(t *testing.T) {
		m := meetingAt("Review", testStart, time.Hour, "a@x.com")
		m.InviteeCount = 10
		actual := 6 // below 70% of 10
		m.AttendeeCount = &actual

		svc, _, flagRepo, _ := newTestService([]*entities.Meeting{m})
		if _, err := svc.Analyze(context.Background(), userID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(flagRepo.flags) != 1 || flagRepo.flags[0].IssueType != entities.IssueLowAttendance {
			t.Fatalf("expected a LOW_ATTENDANCE flag, got %+v", flagRepo.flags)
		}
		if flagRepo.flags[0].Description != "Low attendance rate (60%)" {
			t.Errorf("unexpected description: %s", flagRepo.flags[0].Description)
		}
	})

	t.Run("redundant pair flags both", func(t *testing.T) {
		emails := []string{"a@x.com", "b@x.com", "c@x.com"}
		m1 := meetingAt("Design Review", testStart, time.Hour, emails...)
		m2 := meetingAt("Design Review 2", testStart.AddDate(0, 0, 1), time.Hour, emails...)

		svc, _, flagRepo, _ := newTestService([]*entities.Meeting{m1, m2})
		result, err := svc.Analyze(context.Background(), userID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if result.FlaggedCount != 2 {
			t.Fatalf("expected both meetings flagged, got %d", result.FlaggedCount)
		}
		for _, flag := range flagRepo.flags {
			if flag.IssueType != entities.IssueRedundantMeeting {
				t.Errorf("expected REDUNDANT_MEETING, got %s", flag.IssueType)
			}
		}
	})

	t.Run("clean meetings produce no flags", func(t *testing.T) {
		m := meetingAt("One on One", testStart, 30*time.Minute, "a@x.com")

		svc, _, flagRepo, _ := newTestService([]*entities.Meeting{m})
		result, err := svc.Analyze(context.Background(), userID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.FlaggedCount != 0 || len(flagRepo.flags) != 0 {
			t.Errorf("expected nothing flagged, got %d flags", len(flagRepo.flags))
		}
	})
}

func TestResolveFlag(t *testing.T) {
	userID := uuid.New()
	m := meetingAt("Review", testStart, 2*time.Hour, "a@x.com", "b@x.com", "c@x.com")

	svc, _, flagRepo, statRepo := newTestService([]*entities.Meeting{m})
	flag := &entities.MeetingFlag{ID: uuid.New(), MeetingID: m.ID, UserID: userID, IssueType: entities.IssueLongMeeting}
	flagRepo.flags = append(flagRepo.flags, flag)

	resolved, err := svc.ResolveFlag(context.Background(), userID, m.ID, flag.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resolved.IsResolved {
		t.Errorf("expected flag marked resolved")
	}
	// 2h * 3 attendees
	if statRepo.hoursSaved != 6.0 {
		t.Errorf("expected 6 hours credited, got %v", statRepo.hoursSaved)
	}
}

func TestResolveFlagTwice(t *testing.T) {
	userID := uuid.New()
	m := meetingAt("Review", testStart, time.Hour, "a@x.com")

	svc, _, flagRepo, statRepo := newTestService([]*entities.Meeting{m})
	flag := &entities.MeetingFlag{ID: uuid.New(), MeetingID: m.ID, UserID: userID, IssueType: entities.IssueLongMeeting}
	flagRepo.flags = append(flagRepo.flags, flag)

	if _, err := svc.ResolveFlag(context.Background(), userID, m.ID, flag.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	credited := statRepo.hoursSaved

	_, err := svc.ResolveFlag(context.Background(), userID, m.ID, flag.ID)
	if !stderrors.Is(err, errors.ErrFlagAlreadyResolved) {
		t.Fatalf("expected ErrFlagAlreadyResolved, got %v", err)
	}
	if statRepo.hoursSaved != credited {
		t.Errorf("saved hours credited twice: %v then %v", credited, statRepo.hoursSaved)
	}
	if got := len(flagRepo.resolved); got != 1 {
		t.Errorf("expected a single resolve write, got %d", got)
	}
}

func TestAttendeeRecommendations(t *testing.T) {
	userID := uuid.New()

	target := meetingAt("Project Alpha Sync", testStart, time.Hour,
		"organizer@x.com", "busy@x.com", "stranger@x.com")
	target.Organizer = "organizer@x.com"

	// busy@ has another meeting 30 minutes after the target ends
	conflict := meetingAt("Other Topic Entirely", testStart.Add(90*time.Minute), time.Hour, "busy@x.com")

	svc, _, _, _ := newTestService([]*entities.Meeting{target, conflict})

	recs, err := svc.AttendeeRecommendations(context.Background(), userID, target.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	byEmail := make(map[string]entities.AttendeeRecommendation)
	for _, r := range recs {
		byEmail[r.Attendee.Email] = r
	}

	if _, ok := byEmail["organizer@x.com"]; ok {
		t.Errorf("organizer should never be recommended against")
	}
	if r, ok := byEmail["busy@x.com"]; !ok || r.Recommendation != entities.RecommendationOptional {
		t.Errorf("expected OPTIONAL for busy attendee, got %+v", r)
	}
	if r, ok := byEmail["stranger@x.com"]; !ok || r.Recommendation != entities.RecommendationRemove {
		t.Errorf("expected REMOVE for uninvolved attendee, got %+v", r)
	}
}

func TestBulkCancel(t *testing.T) {
	userID := uuid.New()
	m1 := meetingAt("Cancel Me", testStart, time.Hour, "a@x.com")
	m2 := meetingAt("Already Gone", testStart.Add(2*time.Hour), time.Hour, "a@x.com")
	m2.Status = entities.MeetingStatusCancelled

	svc, meetingRepo, _, statRepo := newTestService([]*entities.Meeting{m1, m2})

	missing := uuid.New()
	results, err := svc.BulkCancel(context.Background(), userID, []uuid.UUID{m1.ID, m2.ID, missing})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	if !results[0].Cancelled {
		t.Errorf("expected first meeting cancelled: %+v", results[0])
	}
	if meetingRepo.statuses[m1.ID] != entities.MeetingStatusCancelled {
		t.Errorf("expected status update for first meeting")
	}
	if results[1].Cancelled || results[1].Error == "" {
		t.Errorf("expected already-cancelled error: %+v", results[1])
	}
	if results[2].Cancelled || results[2].Error == "" {
		t.Errorf("expected not-found error: %+v", results[2])
	}
	if statRepo.cancelled != 1 {
		t.Errorf("expected 1 cancellation counted, got %d", statRepo.cancelled)
	}
}
