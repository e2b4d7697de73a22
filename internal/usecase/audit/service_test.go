package audit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/meetwiselabs/meetwise/internal/domain/entities"
	"github.com/meetwiselabs/meetwise/internal/domain/repositories"
	"github.com/meetwiselabs/meetwise/internal/infrastructure/cache"
	ucerrors "github.com/meetwiselabs/meetwise/internal/usecase/errors"
)

type fakeMeetingRepo struct {
	meetings []*entities.Meeting
}

func (f *fakeMeetingRepo) Create(context.Context, *entities.Meeting) error { return nil }
func (f *fakeMeetingRepo) FindByID(context.Context, uuid.UUID, uuid.UUID) (*entities.Meeting, error) {
	return nil, errors.New("not implemented")
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
func (f *fakeMeetingRepo) UpdateStatus(context.Context, uuid.UUID, entities.MeetingStatus) error {
	return nil
}
func (f *fakeMeetingRepo) SetAgenda(context.Context, uuid.UUID, string) error { return nil }

type fakeFlagRepo struct {
	flags []*entities.MeetingFlag
}

func (f *fakeFlagRepo) Create(_ context.Context, flag *entities.MeetingFlag) error {
	f.flags = append(f.flags, flag)
	return nil
}
func (f *fakeFlagRepo) FindByID(context.Context, uuid.UUID, uuid.UUID, uuid.UUID) (*entities.MeetingFlag, error) {
	return nil, errors.New("not implemented")
}
func (f *fakeFlagRepo) Resolve(context.Context, uuid.UUID) error { return nil }
func (f *fakeFlagRepo) DeleteAutoDetected(_ context.Context, userID uuid.UUID) error {
	kept := f.flags[:0]
	for _, flag := range f.flags {
		if !(flag.UserID == userID && flag.AutoDetected) {
			kept = append(kept, flag)
		}
	}
	f.flags = kept
	return nil
}
func (f *fakeFlagRepo) DeleteByUser(context.Context, uuid.UUID) error { return nil }

type fakeStatRepo struct {
	weekStart  time.Time
	hoursSaved float64
	flagged    int
	calls      int
}

func (f *fakeStatRepo) SetMeetingHours(context.Context, uuid.UUID, time.Time, float64) error {
	return nil
}
func (f *fakeStatRepo) SetAuditTotals(_ context.Context, _ uuid.UUID, weekStart time.Time, hoursSaved float64, flagged int) error {
	f.weekStart = weekStart
	f.hoursSaved = hoursSaved
	f.flagged = flagged
	f.calls++
	return nil
}
func (f *fakeStatRepo) SetFlaggedCount(context.Context, uuid.UUID, time.Time, int) error {
	return nil
}
func (f *fakeStatRepo) IncrementHoursSaved(context.Context, uuid.UUID, time.Time, float64) error {
	return nil
}
func (f *fakeStatRepo) IncrementCancelled(context.Context, uuid.UUID, time.Time, int) error {
	return nil
}
func (f *fakeStatRepo) FindRange(context.Context, uuid.UUID, time.Time, time.Time) ([]*entities.WeeklyStat, error) {
	return nil, nil
}

func newTestService(meetings []*entities.Meeting) (*Service, *fakeFlagRepo, *fakeStatRepo, cache.Locker) {
	flagRepo := &fakeFlagRepo{}
	statRepo := &fakeStatRepo{}
	locker := cache.NewMemoryLocker(cache.NewMemoryStore())
	svc := NewService(&fakeMeetingRepo{meetings: meetings}, flagRepo, statRepo, locker, zap.NewNop())
	return svc, flagRepo, statRepo, locker
}

func TestRunFullAudit(t *testing.T) {
	userID := uuid.New()
	soon := time.Now().Add(24 * time.Hour)

	problematic := func() []*entities.Meeting {
		// Long meeting without an agenda plus a large meeting: three findings
		// (missing agendas, large, long)
		m1 := newMeeting("Deep Dive", soon, 2*time.Hour)
		m1.UserID = userID
		m1.HasAgenda = false
		m2 := withAttendees(newMeeting("All Hands", soon.Add(3*time.Hour), time.Hour), 9)
		m2.UserID = userID
		return []*entities.Meeting{m1, m2}
	}

	t.Run("persists findings as flags and sets weekly totals", func(t *testing.T) {
		svc, flagRepo, statRepo, _ := newTestService(problematic())

		report, err := svc.RunFullAudit(context.Background(), userID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if report.TotalIssues != 3 {
			t.Errorf("expected 3 issues, got %d", report.TotalIssues)
		}
		if len(flagRepo.flags) != 3 {
			t.Errorf("expected 3 persisted flags, got %d", len(flagRepo.flags))
		}
		for _, flag := range flagRepo.flags {
			if !flag.AutoDetected {
				t.Errorf("persisted flag should be auto-detected")
			}
			if flag.UserID != userID {
				t.Errorf("flag owner mismatch")
			}
		}

		if statRepo.calls != 1 {
			t.Fatalf("expected 1 weekly stat write, got %d", statRepo.calls)
		}
		if statRepo.flagged != report.TotalIssues {
			t.Errorf("weekly flagged count %d != report issues %d", statRepo.flagged, report.TotalIssues)
		}
		if statRepo.hoursSaved != report.EstimatedTotalSavings {
			t.Errorf("weekly hours saved %v != report savings %v", statRepo.hoursSaved, report.EstimatedTotalSavings)
		}
		if statRepo.weekStart != entities.StartOfWeek(time.Now()) {
			t.Errorf("expected current week start, got %v", statRepo.weekStart)
		}
	})

	t.Run("re-running does not accumulate flags", func(t *testing.T) {
		svc, flagRepo, _, _ := newTestService(problematic())

		if _, err := svc.RunFullAudit(context.Background(), userID); err != nil {
			t.Fatalf("first run: %v", err)
		}
		first := len(flagRepo.flags)
		if _, err := svc.RunFullAudit(context.Background(), userID); err != nil {
			t.Fatalf("second run: %v", err)
		}

		if len(flagRepo.flags) != first {
			t.Errorf("expected %d flags after re-run, got %d", first, len(flagRepo.flags))
		}
	})

	t.Run("manual flags survive a re-run", func(t *testing.T) {
		svc, flagRepo, _, _ := newTestService(problematic())
		flagRepo.flags = append(flagRepo.flags, &entities.MeetingFlag{
			UserID:       userID,
			IssueType:    entities.IssueNoAgenda,
			AutoDetected: false,
		})

		if _, err := svc.RunFullAudit(context.Background(), userID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		manual := 0
		for _, flag := range flagRepo.flags {
			if !flag.AutoDetected {
				manual++
			}
		}
		if manual != 1 {
			t.Errorf("expected the manual flag to survive, found %d", manual)
		}
	})

	t.Run("concurrent audit is rejected", func(t *testing.T) {
		svc, _, _, locker := newTestService(nil)

		ok, err := locker.Acquire(context.Background(), "audit:lock:"+userID.String(), time.Minute)
		if err != nil || !ok {
			t.Fatalf("failed to pre-acquire lock: %v", err)
		}

		if _, err := svc.RunFullAudit(context.Background(), userID); !errors.Is(err, ucerrors.ErrAuditInProgress) {
			t.Fatalf("expected ErrAuditInProgress, got %v", err)
		}
	})

	t.Run("lock is released after a run", func(t *testing.T) {
		svc, _, _, _ := newTestService(nil)

		if _, err := svc.RunFullAudit(context.Background(), userID); err != nil {
			t.Fatalf("first run: %v", err)
		}
		if _, err := svc.RunFullAudit(context.Background(), userID); err != nil {
			t.Fatalf("expected lock to be free again: %v", err)
		}
	})
}

func TestSuggestCancellations(t *testing.T) {
	userID := uuid.New()
	m := withAttendees(newMeeting("Mega Sync", time.Now().Add(time.Hour), 3*time.Hour), 11)
	m.UserID = userID
	m.HasAgenda = false

	svc, _, _, _ := newTestService([]*entities.Meeting{m})

	candidates, err := svc.SuggestCancellations(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(candidates))
	}
	if candidates[0].Meeting.ID != m.ID {
		t.Errorf("unexpected candidate meeting")
	}
}
