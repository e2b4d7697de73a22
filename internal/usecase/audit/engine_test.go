package audit

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/meetwiselabs/meetwise/internal/domain/entities"
)

var baseTime = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC) // a Monday

func newMeeting(title string, start time.Time, duration time.Duration) *entities.Meeting {
	return &entities.Meeting{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		Title:     title,
		StartTime: start,
		EndTime:   start.Add(duration),
		Status:    entities.MeetingStatusScheduled,
		HasAgenda: true,
	}
}

func withAttendees(m *entities.Meeting, n int) *entities.Meeting {
	m.Attendees = make([]entities.Attendee, n)
	for i := range m.Attendees {
		m.Attendees[i] = entities.Attendee{Email: uuid.NewString() + "@example.com"}
	}
	return m
}

func findingsOfType(findings []entities.AuditFinding, t entities.IssueType) []entities.AuditFinding {
	var out []entities.AuditFinding
	for _, f := range findings {
		if f.Type == t {
			out = append(out, f)
		}
	}
	return out
}

func TestDetectDuplicates(t *testing.T) {
	t.Run("groups by normalized title and slot", func(t *testing.T) {
		// Digits are stripped, so "Standup 1" and "Standup 2" collide when
		// they share a weekday and hour
		m1 := newMeeting("Standup 1", baseTime, time.Hour)
		m2 := newMeeting("Standup 2", baseTime.AddDate(0, 0, 7).Add(30*time.Minute), time.Hour)

		findings := DetectDuplicates([]*entities.Meeting{m1, m2})
		if len(findings) != 1 {
			t.Fatalf("expected 1 finding, got %d", len(findings))
		}

		f := findings[0]
		if f.Type != entities.IssueDuplicateMeetings {
			t.Errorf("expected DUPLICATE_MEETINGS, got %s", f.Type)
		}
		if f.EstimatedSavings != 1.0 {
			t.Errorf("expected savings 1.0, got %v", f.EstimatedSavings)
		}
		if f.Severity != entities.SeverityMedium {
			t.Errorf("expected MEDIUM, got %s", f.Severity)
		}
		if len(f.AffectedMeetings) != 2 {
			t.Errorf("expected 2 affected meetings, got %d", len(f.AffectedMeetings))
		}
	})

	t.Run("different hour is not a duplicate", func(t *testing.T) {
		m1 := newMeeting("Standup", baseTime, time.Hour)
		m2 := newMeeting("Standup", baseTime.Add(2*time.Hour), time.Hour)

		if findings := DetectDuplicates([]*entities.Meeting{m1, m2}); len(findings) != 0 {
			t.Fatalf("expected no findings, got %d", len(findings))
		}
	})

	t.Run("savings over two hours escalates to high", func(t *testing.T) {
		// Three 2-hour meetings in the same slot: (3-1) * 2h = 4h saved
		var group []*entities.Meeting
		for i := 0; i < 3; i++ {
			group = append(group, newMeeting("Planning", baseTime.AddDate(0, 0, 7*i), 2*time.Hour))
		}

		findings := DetectDuplicates(group)
		if len(findings) != 1 {
			t.Fatalf("expected 1 finding, got %d", len(findings))
		}
		if findings[0].EstimatedSavings != 4.0 {
			t.Errorf("expected savings 4.0, got %v", findings[0].EstimatedSavings)
		}
		if findings[0].Severity != entities.SeverityHigh {
			t.Errorf("expected HIGH, got %s", findings[0].Severity)
		}
	})
}

func TestDetectOverbooked(t *testing.T) {
	t.Run("overlapping pair", func(t *testing.T) {
		m1 := newMeeting("First", baseTime, time.Hour)
		m2 := newMeeting("Second", baseTime.Add(30*time.Minute), time.Hour)

		findings := findingsOfType(DetectOverbooked([]*entities.Meeting{m2, m1}), entities.IssueOverbooked)
		if len(findings) != 1 {
			t.Fatalf("expected 1 overlap finding, got %d", len(findings))
		}
		f := findings[0]
		if f.Severity != entities.SeverityHigh {
			t.Errorf("expected HIGH, got %s", f.Severity)
		}
		if f.EstimatedSavings != 1.0 {
			t.Errorf("expected savings equal to first meeting duration, got %v", f.EstimatedSavings)
		}
	})

	t.Run("back to back within fifteen minutes", func(t *testing.T) {
		m1 := newMeeting("First", baseTime, time.Hour)
		m2 := newMeeting("Second", baseTime.Add(time.Hour+10*time.Minute), time.Hour)

		findings := DetectOverbooked([]*entities.Meeting{m1, m2})
		if len(findings) != 1 {
			t.Fatalf("expected 1 finding, got %d", len(findings))
		}
		f := findings[0]
		if f.Type != entities.IssueBackToBack {
			t.Errorf("expected BACK_TO_BACK, got %s", f.Type)
		}
		if f.EstimatedSavings != 0.25 {
			t.Errorf("expected savings 0.25, got %v", f.EstimatedSavings)
		}
	})

	t.Run("gap of exactly fifteen minutes is fine", func(t *testing.T) {
		m1 := newMeeting("First", baseTime, time.Hour)
		m2 := newMeeting("Second", baseTime.Add(time.Hour+15*time.Minute), time.Hour)

		if findings := DetectOverbooked([]*entities.Meeting{m1, m2}); len(findings) != 0 {
			t.Fatalf("expected no findings, got %d", len(findings))
		}
	})

	t.Run("only adjacent pairs are compared", func(t *testing.T) {
		// First overlaps third, but second sits between them in start order
		m1 := newMeeting("First", baseTime, 3*time.Hour)
		m2 := newMeeting("Second", baseTime.Add(time.Hour), 30*time.Minute)
		m3 := newMeeting("Third", baseTime.Add(2*time.Hour), time.Hour)

		findings := findingsOfType(DetectOverbooked([]*entities.Meeting{m1, m2, m3}), entities.IssueOverbooked)
		for _, f := range findings {
			if f.AffectedMeetings[0] == m1.ID && f.AffectedMeetings[1] == m3.ID {
				t.Fatal("non-adjacent pair should not be compared")
			}
		}
	})

	t.Run("cancelled meetings are excluded", func(t *testing.T) {
		m1 := newMeeting("First", baseTime, time.Hour)
		m2 := newMeeting("Second", baseTime.Add(30*time.Minute), time.Hour)
		m2.Status = entities.MeetingStatusCancelled

		if findings := DetectOverbooked([]*entities.Meeting{m1, m2}); len(findings) != 0 {
			t.Fatalf("expected no findings, got %d", len(findings))
		}
	})
}

func TestDetectMissingAgendas(t *testing.T) {
	t.Run("single aggregate finding", func(t *testing.T) {
		m1 := newMeeting("One", baseTime, 2*time.Hour)
		m1.HasAgenda = false
		m2 := newMeeting("Two", baseTime.AddDate(0, 0, 1), 2*time.Hour)
		m2.HasAgenda = false
		m3 := newMeeting("Three", baseTime.AddDate(0, 0, 2), time.Hour)

		findings := DetectMissingAgendas([]*entities.Meeting{m1, m2, m3})
		if len(findings) != 1 {
			t.Fatalf("expected 1 aggregate finding, got %d", len(findings))
		}
		f := findings[0]
		if f.Type != entities.IssueNoAgendaMeetings {
			t.Errorf("expected NO_AGENDA_MEETINGS, got %s", f.Type)
		}
		if f.EstimatedSavings != 1.0 { // 4h * 0.25
			t.Errorf("expected savings 1.0, got %v", f.EstimatedSavings)
		}
		if f.Severity != entities.SeverityMedium {
			t.Errorf("expected MEDIUM at 4 total hours, got %s", f.Severity)
		}
		if len(f.AffectedMeetings) != 2 {
			t.Errorf("expected 2 affected meetings, got %d", len(f.AffectedMeetings))
		}
	})

	t.Run("over five total hours escalates to high", func(t *testing.T) {
		m1 := newMeeting("One", baseTime, 3*time.Hour)
		m1.HasAgenda = false
		m2 := newMeeting("Two", baseTime.AddDate(0, 0, 1), 3*time.Hour)
		m2.HasAgenda = false

		findings := DetectMissingAgendas([]*entities.Meeting{m1, m2})
		if findings[0].Severity != entities.SeverityHigh {
			t.Errorf("expected HIGH at 6 total hours, got %s", findings[0].Severity)
		}
	})

	t.Run("all agendas set yields nothing", func(t *testing.T) {
		m := newMeeting("One", baseTime, time.Hour)
		if findings := DetectMissingAgendas([]*entities.Meeting{m}); len(findings) != 0 {
			t.Fatalf("expected no findings, got %d", len(findings))
		}
	})
}

func TestDetectLargeMeetings(t *testing.T) {
	t.Run("nine attendees", func(t *testing.T) {
		m := withAttendees(newMeeting("All Hands", baseTime, time.Hour), 9)

		findings := DetectLargeMeetings([]*entities.Meeting{m})
		if len(findings) != 1 {
			t.Fatalf("expected 1 finding, got %d", len(findings))
		}
		f := findings[0]
		if f.Type != entities.IssueTooManyAttendees {
			t.Errorf("expected TOO_MANY_ATTENDEES, got %s", f.Type)
		}
		if f.EstimatedSavings != 3.0 { // (9-6) * 1h
			t.Errorf("expected savings 3.0, got %v", f.EstimatedSavings)
		}
		if f.Severity != entities.SeverityMedium {
			t.Errorf("expected MEDIUM, got %s", f.Severity)
		}
	})

	t.Run("eight attendees is fine", func(t *testing.T) {
		m := withAttendees(newMeeting("Sync", baseTime, time.Hour), 8)
		if findings := DetectLargeMeetings([]*entities.Meeting{m}); len(findings) != 0 {
			t.Fatalf("expected no findings, got %d", len(findings))
		}
	})

	t.Run("sixteen attendees escalates to high", func(t *testing.T) {
		m := withAttendees(newMeeting("Town Hall", baseTime, time.Hour), 16)

		findings := DetectLargeMeetings([]*entities.Meeting{m})
		if findings[0].Severity != entities.SeverityHigh {
			t.Errorf("expected HIGH, got %s", findings[0].Severity)
		}
	})
}

func TestDetectDailyOverload(t *testing.T) {
	dayOf := func(hours ...time.Duration) []*entities.Meeting {
		var out []*entities.Meeting
		start := baseTime
		for i, d := range hours {
			out = append(out, newMeeting("Meeting", start.Add(time.Duration(i)*10*time.Hour/time.Duration(len(hours))), d))
		}
		return out
	}

	t.Run("exactly six hours is fine", func(t *testing.T) {
		meetings := dayOf(3*time.Hour, 3*time.Hour)
		if findings := DetectDailyOverload(meetings); len(findings) != 0 {
			t.Fatalf("expected no findings at exactly 6h, got %d", len(findings))
		}
	})

	t.Run("just over six hours is high", func(t *testing.T) {
		meetings := dayOf(3*time.Hour, 3*time.Hour+time.Minute)

		findings := DetectDailyOverload(meetings)
		if len(findings) != 1 {
			t.Fatalf("expected 1 finding, got %d", len(findings))
		}
		f := findings[0]
		if f.Type != entities.IssueOverbooked {
			t.Errorf("expected OVERBOOKED, got %s", f.Type)
		}
		if f.Severity != entities.SeverityHigh {
			t.Errorf("expected HIGH, got %s", f.Severity)
		}
	})

	t.Run("over eight hours is critical", func(t *testing.T) {
		meetings := dayOf(5*time.Hour, 4*time.Hour)

		findings := DetectDailyOverload(meetings)
		if len(findings) != 1 {
			t.Fatalf("expected 1 finding, got %d", len(findings))
		}
		f := findings[0]
		if f.Severity != entities.SeverityCritical {
			t.Errorf("expected CRITICAL at 9h, got %s", f.Severity)
		}
		if f.EstimatedSavings != 5.0 { // 9h - 4h target
			t.Errorf("expected savings 5.0, got %v", f.EstimatedSavings)
		}
	})
}

func TestDetectRecurringFatigue(t *testing.T) {
	recurrence := func(title string, n int, duration time.Duration) []*entities.Meeting {
		rid := uuid.NewString()
		var out []*entities.Meeting
		for i := 0; i < n; i++ {
			m := newMeeting(title, baseTime.AddDate(0, 0, 7*i), duration)
			m.IsRecurring = true
			m.RecurrenceID = &rid
			out = append(out, m)
		}
		return out
	}

	t.Run("four occurrences", func(t *testing.T) {
		findings := DetectRecurringFatigue(recurrence("Weekly Sync", 4, time.Hour))
		if len(findings) != 1 {
			t.Fatalf("expected 1 finding, got %d", len(findings))
		}
		f := findings[0]
		if f.Type != entities.IssueRecurringReview {
			t.Errorf("expected RECURRING_MEETING_REVIEW, got %s", f.Type)
		}
		if f.EstimatedSavings != 0.3 { // 1h * 0.3
			t.Errorf("expected savings 0.3, got %v", f.EstimatedSavings)
		}
		if f.Severity != entities.SeverityLow {
			t.Errorf("expected LOW at 1h weekly, got %s", f.Severity)
		}
	})

	t.Run("three occurrences is not a pattern", func(t *testing.T) {
		if findings := DetectRecurringFatigue(recurrence("Sync", 3, time.Hour)); len(findings) != 0 {
			t.Fatalf("expected no findings, got %d", len(findings))
		}
	})

	t.Run("long weekly slot is medium", func(t *testing.T) {
		findings := DetectRecurringFatigue(recurrence("Deep Dive", 4, 3*time.Hour))
		if findings[0].Severity != entities.SeverityMedium {
			t.Errorf("expected MEDIUM at 3h weekly, got %s", findings[0].Severity)
		}
	})

	t.Run("title fallback when recurrence id missing", func(t *testing.T) {
		var meetings []*entities.Meeting
		for i := 0; i < 4; i++ {
			m := newMeeting("Retro", baseTime.AddDate(0, 0, 7*i), time.Hour)
			m.IsRecurring = true
			meetings = append(meetings, m)
		}

		if findings := DetectRecurringFatigue(meetings); len(findings) != 1 {
			t.Fatalf("expected 1 finding, got %d", len(findings))
		}
	})
}

func TestDetectLongMeetings(t *testing.T) {
	t.Run("ninety minutes is fine", func(t *testing.T) {
		m := newMeeting("Workshop", baseTime, 90*time.Minute)
		if findings := DetectLongMeetings([]*entities.Meeting{m}); len(findings) != 0 {
			t.Fatalf("expected no findings at exactly 90m, got %d", len(findings))
		}
	})

	t.Run("two hours is medium", func(t *testing.T) {
		m := newMeeting("Workshop", baseTime, 2*time.Hour)

		findings := DetectLongMeetings([]*entities.Meeting{m})
		if len(findings) != 1 {
			t.Fatalf("expected 1 finding, got %d", len(findings))
		}
		f := findings[0]
		if f.Type != entities.IssueLongMeeting {
			t.Errorf("expected LONG_MEETING, got %s", f.Type)
		}
		if f.EstimatedSavings != 0.5 { // (2h - 1h) * 0.5
			t.Errorf("expected savings 0.5, got %v", f.EstimatedSavings)
		}
		if f.Severity != entities.SeverityMedium {
			t.Errorf("expected MEDIUM, got %s", f.Severity)
		}
	})

	t.Run("over three hours is high", func(t *testing.T) {
		m := newMeeting("Offsite", baseTime, 4*time.Hour)

		findings := DetectLongMeetings([]*entities.Meeting{m})
		if findings[0].Severity != entities.SeverityHigh {
			t.Errorf("expected HIGH, got %s", findings[0].Severity)
		}
	})
}

func TestEngineRun(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		e := NewEngine()
		findings := e.Run(nil)
		if findings == nil || len(findings) != 0 {
			t.Fatalf("expected empty non-nil findings, got %v", findings)
		}
	})

	t.Run("one meeting can trip several detectors", func(t *testing.T) {
		// 4-hour meeting with no agenda and 9 attendees: long meeting, large
		// meeting, missing agenda
		m := withAttendees(newMeeting("Quarterly Review", baseTime, 4*time.Hour), 9)
		m.HasAgenda = false

		findings := NewEngine().Run([]*entities.Meeting{m})

		for _, wanted := range []entities.IssueType{
			entities.IssueNoAgendaMeetings,
			entities.IssueTooManyAttendees,
			entities.IssueLongMeeting,
		} {
			if len(findingsOfType(findings, wanted)) != 1 {
				t.Errorf("expected a %s finding", wanted)
			}
		}
	})

	t.Run("deterministic output", func(t *testing.T) {
		var meetings []*entities.Meeting
		for i := 0; i < 6; i++ {
			m := withAttendees(newMeeting("Sync", baseTime.AddDate(0, 0, i), 2*time.Hour), 9)
			m.HasAgenda = false
			meetings = append(meetings, m)
		}

		e := NewEngine()
		first := e.Run(meetings)
		second := e.Run(meetings)
		if len(first) != len(second) {
			t.Fatalf("expected identical runs, got %d and %d findings", len(first), len(second))
		}
		for i := range first {
			if first[i].Type != second[i].Type || first[i].Title != second[i].Title {
				t.Errorf("finding %d differs between runs: %s vs %s", i, first[i].Title, second[i].Title)
			}
		}
	})
}

func TestEngineRunMixedWeek(t *testing.T) {
	// Two agenda-less standups in the same Monday slot plus a clean 1:1 the
	// next day. The standup titles normalize to different keys ("standup" vs
	// "standup sync"), so they are not duplicates; catching near-identical
	// titles is the job of the redundancy pass in the meeting service. The
	// pair does overlap, and both feed the aggregate no-agenda finding.
	a := newMeeting("Standup", baseTime, 30*time.Minute)
	a.HasAgenda = false
	withAttendees(a, 6)

	b := newMeeting("Standup Sync", baseTime, 30*time.Minute)
	b.HasAgenda = false
	withAttendees(b, 6)

	c := newMeeting("1:1", baseTime.AddDate(0, 0, 1).Add(time.Hour), 30*time.Minute)
	withAttendees(c, 2)

	findings := NewEngine().Run([]*entities.Meeting{a, b, c})

	if got := findingsOfType(findings, entities.IssueDuplicateMeetings); len(got) != 0 {
		t.Errorf("expected no duplicate findings for distinct titles, got %d", len(got))
	}

	overlaps := findingsOfType(findings, entities.IssueOverbooked)
	if len(overlaps) != 1 {
		t.Fatalf("expected 1 overlap finding, got %d", len(overlaps))
	}
	if overlaps[0].EstimatedSavings != 0.5 {
		t.Errorf("expected overlap savings 0.5, got %v", overlaps[0].EstimatedSavings)
	}

	noAgenda := findingsOfType(findings, entities.IssueNoAgendaMeetings)
	if len(noAgenda) != 1 {
		t.Fatalf("expected 1 no-agenda finding, got %d", len(noAgenda))
	}
	// (0.5h + 0.5h) * 25% efficiency loss
	if noAgenda[0].EstimatedSavings != 0.25 {
		t.Errorf("expected no-agenda savings 0.25, got %v", noAgenda[0].EstimatedSavings)
	}
	if len(noAgenda[0].AffectedMeetings) != 2 {
		t.Errorf("expected 2 affected meetings, got %d", len(noAgenda[0].AffectedMeetings))
	}

	if len(findings) != 2 {
		t.Errorf("expected exactly 2 findings, got %d: %+v", len(findings), findings)
	}
}
