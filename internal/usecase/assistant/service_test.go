package assistant

import (
	"context"
	"encoding/json"
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
	meeting *entities.Meeting
	agendas map[uuid.UUID]string
}

func (f *fakeMeetingRepo) Create(context.Context, *entities.Meeting) error { return nil }
func (f *fakeMeetingRepo) FindByID(_ context.Context, id, _ uuid.UUID) (*entities.Meeting, error) {
	if f.meeting != nil && f.meeting.ID == id {
		return f.meeting, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeMeetingRepo) Upsert(context.Context, *entities.Meeting) error { return nil }
func (f *fakeMeetingRepo) ReplaceAttendees(context.Context, uuid.UUID, []entities.Attendee) error {
	return nil
}
func (f *fakeMeetingRepo) List(context.Context, repositories.MeetingFilters) ([]*entities.Meeting, error) {
	return nil, nil
}
func (f *fakeMeetingRepo) FindInWindow(context.Context, uuid.UUID, time.Time, time.Time) ([]*entities.Meeting, error) {
	return nil, nil
}
func (f *fakeMeetingRepo) FindUpcoming(context.Context, uuid.UUID, time.Time) ([]*entities.Meeting, error) {
	return nil, nil
}
func (f *fakeMeetingRepo) Update(context.Context, *entities.Meeting) error { return nil }
func (f *fakeMeetingRepo) UpdateStatus(context.Context, uuid.UUID, entities.MeetingStatus) error {
	return nil
}
func (f *fakeMeetingRepo) SetAgenda(_ context.Context, id uuid.UUID, agenda string) error {
	if f.agendas == nil {
		f.agendas = make(map[uuid.UUID]string)
	}
	f.agendas[id] = agenda
	return nil
}

type fakeSummaryRepo struct {
	created []*entities.Summary
}

func (f *fakeSummaryRepo) Create(_ context.Context, s *entities.Summary) error {
	f.created = append(f.created, s)
	return nil
}
func (f *fakeSummaryRepo) FindByID(context.Context, uuid.UUID, uuid.UUID) (*entities.Summary, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeSummaryRepo) List(context.Context, uuid.UUID, *uuid.UUID) ([]*entities.Summary, error) {
	return nil, nil
}

func testMeeting() *entities.Meeting {
	return &entities.Meeting{
		ID:     uuid.New(),
		UserID: uuid.New(),
		Title:  "Sprint Review",
		Attendees: []entities.Attendee{
			{Email: "ana@x.com", Name: "Ana"},
			{Email: "ben@x.com"},
		},
	}
}

func TestGenerateAgenda(t *testing.T) {
	userID := uuid.New()

	t.Run("requires a title", func(t *testing.T) {
		svc := NewService(&fakeMeetingRepo{}, &fakeSummaryRepo{}, NewStaticGenerator(), zap.NewNop())
		if _, err := svc.GenerateAgenda(context.Background(), userID, GenerateAgendaInput{}); !stderrors.Is(err, errors.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("stores agenda on an owned meeting", func(t *testing.T) {
		m := testMeeting()
		repo := &fakeMeetingRepo{meeting: m}
		svc := NewService(repo, &fakeSummaryRepo{}, NewStaticGenerator(), zap.NewNop())

		agenda, err := svc.GenerateAgenda(context.Background(), userID, GenerateAgendaInput{
			MeetingID:       &m.ID,
			Title:           "Sprint Review",
			DurationMinutes: 60,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if agenda == "" {
			t.Fatal("expected an agenda")
		}
		if repo.agendas[m.ID] != agenda {
			t.Errorf("expected agenda stored on the meeting")
		}
	})

	t.Run("unknown meeting id still yields an agenda", func(t *testing.T) {
		repo := &fakeMeetingRepo{}
		svc := NewService(repo, &fakeSummaryRepo{}, NewStaticGenerator(), zap.NewNop())

		missing := uuid.New()
		agenda, err := svc.GenerateAgenda(context.Background(), userID, GenerateAgendaInput{
			MeetingID: &missing,
			Title:     "Ad-hoc Sync",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if agenda == "" {
			t.Fatal("expected an agenda")
		}
		if len(repo.agendas) != 0 {
			t.Errorf("nothing should have been stored")
		}
	})
}

func TestSaveAgenda(t *testing.T) {
	userID := uuid.New()
	m := testMeeting()
	repo := &fakeMeetingRepo{meeting: m}
	svc := NewService(repo, &fakeSummaryRepo{}, NewStaticGenerator(), zap.NewNop())

	if _, err := svc.SaveAgenda(context.Background(), userID, uuid.New(), "1. Kickoff (5 min)"); !stderrors.Is(err, errors.ErrMeetingNotFound) {
		t.Fatalf("expected ErrMeetingNotFound, got %v", err)
	}

	if _, err := svc.SaveAgenda(context.Background(), userID, m.ID, "1. Kickoff (5 min)"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.agendas[m.ID] != "1. Kickoff (5 min)" {
		t.Errorf("expected agenda stored")
	}
}

func TestGenerateSummary(t *testing.T) {
	userID := uuid.New()
	m := testMeeting()
	repo := &fakeMeetingRepo{meeting: m}
	summaryRepo := &fakeSummaryRepo{}
	svc := NewService(repo, summaryRepo, NewStaticGenerator(), zap.NewNop())

	summary, items, err := svc.GenerateSummary(context.Background(), userID, m.ID, "Long discussion about the release plan.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.SummaryText == "" {
		t.Error("expected summary text")
	}
	if summary.MeetingID != m.ID || summary.UserID != userID {
		t.Error("summary not bound to meeting and user")
	}
	if len(items) == 0 {
		t.Fatal("expected parsed action items")
	}
	// attendee names feed the static assignees
	if items[0].Assignee != "Ana" {
		t.Errorf("expected first assignee Ana, got %q", items[0].Assignee)
	}

	if len(summaryRepo.created) != 1 {
		t.Fatalf("expected summary persisted")
	}
	var stored []entities.ActionItem
	if err := json.Unmarshal(summaryRepo.created[0].ActionItems, &stored); err != nil {
		t.Fatalf("stored action items not valid JSON: %v", err)
	}
	if len(stored) != len(items) {
		t.Errorf("stored %d items, returned %d", len(stored), len(items))
	}

	t.Run("missing transcript", func(t *testing.T) {
		if _, _, err := svc.GenerateSummary(context.Background(), userID, m.ID, ""); !stderrors.Is(err, errors.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})
}
