package audit

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/meetwiselabs/meetwise/internal/domain/entities"
)

// Detection thresholds. These are tunable heuristics, not guarantees; the
// derived-title grouping in particular has no stemming or locale awareness.
const (
	// BackToBackGap is the minimum breathing room between meetings
	BackToBackGap = 15 * time.Minute
	// BackToBackSavings is the fixed stress-reduction credit per pair
	BackToBackSavings = 0.25

	// LargeMeetingAttendees triggers the large-meeting detector
	LargeMeetingAttendees = 8
	// HugeMeetingAttendees escalates severity to HIGH
	HugeMeetingAttendees = 15
	// OptimalAttendees is the assumed ideal meeting size
	OptimalAttendees = 6

	// OverloadedDayHours triggers the daily-overload detector (strictly >)
	OverloadedDayHours = 6.0
	// CriticalDayHours escalates severity to CRITICAL
	CriticalDayHours = 8.0
	// TargetDayHours is the assumed healthy daily meeting load
	TargetDayHours = 4.0

	// RecurringMinOccurrences marks an established recurring pattern
	RecurringMinOccurrences = 4
	// RecurringReduction is the assumed trimmable share of a recurring slot
	RecurringReduction = 0.3

	// LongMeetingDuration triggers the long-meeting detector
	LongMeetingDuration = 90 * time.Minute
	// VeryLongMeetingDuration escalates severity to HIGH
	VeryLongMeetingDuration = 180 * time.Minute
	// LongMeetingRecovery is the assumed recoverable share of excess time
	LongMeetingRecovery = 0.5

	// NoAgendaEfficiencyLoss is the assumed efficiency loss of agenda-less
	// meetings
	NoAgendaEfficiencyLoss = 0.25
)

// Engine runs the audit detectors over an in-memory meeting list. All
// detectors are pure, single-pass functions; the engine never touches
// storage.
type Engine struct{}

// NewEngine creates a new audit engine
func NewEngine() *Engine {
	return &Engine{}
}

// Run executes every detector over the same input list and concatenates
// their findings in a fixed order. Findings are not deduplicated across
// detectors; one meeting may appear in several of them. An empty input
// yields an empty result.
func (e *Engine) Run(meetings []*entities.Meeting) []entities.AuditFinding {
	findings := make([]entities.AuditFinding, 0)
	findings = append(findings, DetectDuplicates(meetings)...)
	findings = append(findings, DetectOverbooked(meetings)...)
	findings = append(findings, DetectMissingAgendas(meetings)...)
	findings = append(findings, DetectLargeMeetings(meetings)...)
	findings = append(findings, DetectDailyOverload(meetings)...)
	findings = append(findings, DetectRecurringFatigue(meetings)...)
	findings = append(findings, DetectLongMeetings(meetings)...)
	return findings
}

// duplicateKey derives the grouping key for duplicate detection: the title
// with digits stripped and lowercased, plus the weekday and hour of the
// start time.
func duplicateKey(m *entities.Meeting) string {
	title := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return -1
		}
		return r
	}, strings.ToLower(m.Title))
	title = strings.TrimSpace(title)

	return fmt.Sprintf("%s-%d-%d", title, int(m.StartTime.Weekday()), m.StartTime.Hour())
}

// DetectDuplicates groups meetings by (normalized title, weekday, hour) and
// flags every group with more than one member. The groups partition the
// input; no meeting lands in two groups.
func DetectDuplicates(meetings []*entities.Meeting) []entities.AuditFinding {
	var findings []entities.AuditFinding

	groups := make(map[string][]*entities.Meeting)
	var order []string
	for _, m := range meetings {
		key := duplicateKey(m)
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], m)
	}

	for _, key := range order {
		group := groups[key]
		if len(group) < 2 {
			continue
		}

		savings := float64(len(group)-1) * group[0].DurationHours()
		severity := entities.SeverityMedium
		if savings > 2 {
			severity = entities.SeverityHigh
		}

		findings = append(findings, entities.AuditFinding{
			Type:        entities.IssueDuplicateMeetings,
			Severity:    severity,
			Title:       fmt.Sprintf("Potential Duplicate Meetings: %s", group[0].Title),
			Description: fmt.Sprintf("Found %d similar meetings that might be duplicates. Consider consolidating them.", len(group)),
			AffectedMeetings: meetingIDs(group),
			Suggestions: []string{
				"Review if all instances are necessary",
				"Consolidate duplicate meetings into one",
				"Update recurring meeting settings if needed",
			},
			EstimatedSavings: savings,
		})
	}

	return findings
}

// DetectOverbooked sorts non-cancelled meetings by start time and compares
// adjacent pairs only: overlapping pairs are OVERBOOKED, pairs with less
// than BackToBackGap of breathing room are BACK_TO_BACK.
func DetectOverbooked(meetings []*entities.Meeting) []entities.AuditFinding {
	var findings []entities.AuditFinding

	active := make([]*entities.Meeting, 0, len(meetings))
	for _, m := range meetings {
		if !m.IsCancelled() {
			active = append(active, m)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].StartTime.Before(active[j].StartTime)
	})

	for i := 0; i+1 < len(active); i++ {
		current, next := active[i], active[i+1]

		if current.EndTime.After(next.StartTime) {
			findings = append(findings, entities.AuditFinding{
				Type:        entities.IssueOverbooked,
				Severity:    entities.SeverityHigh,
				Title:       "Overlapping Meetings Detected",
				Description: fmt.Sprintf("Meeting %q overlaps with %q", current.Title, next.Title),
				AffectedMeetings: []uuid.UUID{current.ID, next.ID},
				Suggestions: []string{
					"Reschedule one of the conflicting meetings",
					"Reduce duration of the first meeting",
					"Decline one of the meetings if not essential",
				},
				EstimatedSavings: current.DurationHours(),
			})
		}

		gap := next.StartTime.Sub(current.EndTime)
		if gap >= 0 && gap < BackToBackGap {
			findings = append(findings, entities.AuditFinding{
				Type:     entities.IssueBackToBack,
				Severity: entities.SeverityMedium,
				Title:    "Back-to-Back Meetings",
				Description: fmt.Sprintf("Only %d minutes between %q and %q",
					int(math.Round(gap.Minutes())), current.Title, next.Title),
				AffectedMeetings: []uuid.UUID{current.ID, next.ID},
				Suggestions: []string{
					"Add 15-minute buffer between meetings",
					"End meetings 5 minutes early",
					"Start meetings 5 minutes late to allow transition time",
				},
				EstimatedSavings: BackToBackSavings,
			})
		}
	}

	return findings
}

// DetectMissingAgendas emits one aggregate finding for all non-cancelled
// meetings without an agenda, assuming a 25% efficiency loss on their total
// hours.
func DetectMissingAgendas(meetings []*entities.Meeting) []entities.AuditFinding {
	var affected []*entities.Meeting
	totalHours := 0.0
	for _, m := range meetings {
		if !m.HasAgenda && !m.IsCancelled() {
			affected = append(affected, m)
			totalHours += m.DurationHours()
		}
	}
	if len(affected) == 0 {
		return nil
	}

	severity := entities.SeverityMedium
	if totalHours > 5 {
		severity = entities.SeverityHigh
	}

	return []entities.AuditFinding{{
		Type:        entities.IssueNoAgendaMeetings,
		Severity:    severity,
		Title:       fmt.Sprintf("%d Meetings Without Agendas", len(affected)),
		Description: "Meetings without clear agendas tend to be 25% less efficient and often run over time.",
		AffectedMeetings: meetingIDs(affected),
		Suggestions: []string{
			"Create agendas for all upcoming meetings",
			"Use agenda generation for quick setup",
			"Require agendas before scheduling meetings",
			"Send agendas 24 hours before meetings",
		},
		EstimatedSavings: totalHours * NoAgendaEfficiencyLoss,
	}}
}

// DetectLargeMeetings flags every non-cancelled meeting with more than
// LargeMeetingAttendees attendees, crediting the excess over the assumed
// optimal size.
func DetectLargeMeetings(meetings []*entities.Meeting) []entities.AuditFinding {
	var findings []entities.AuditFinding

	for _, m := range meetings {
		if m.IsCancelled() || len(m.Attendees) <= LargeMeetingAttendees {
			continue
		}

		duration := m.DurationHours()
		severity := entities.SeverityMedium
		if len(m.Attendees) > HugeMeetingAttendees {
			severity = entities.SeverityHigh
		}

		findings = append(findings, entities.AuditFinding{
			Type:     entities.IssueTooManyAttendees,
			Severity: severity,
			Title:    fmt.Sprintf("Large Meeting: %s", m.Title),
			Description: fmt.Sprintf("%d attendees in a %d-minute meeting. Consider if all attendees are necessary.",
				len(m.Attendees), int(math.Round(m.DurationMinutes()))),
			AffectedMeetings: []uuid.UUID{m.ID},
			Suggestions: []string{
				"Review attendee list and remove optional participants",
				"Create smaller working groups for detailed discussions",
				"Send summary to non-essential attendees instead",
				"Use asynchronous communication for updates",
			},
			EstimatedSavings: float64(len(m.Attendees)-OptimalAttendees) * duration,
		})
	}

	return findings
}

// DetectDailyOverload groups meetings by calendar day and flags days with
// more than OverloadedDayHours of total meeting time. The boundary is
// strict: a day with exactly six hours is fine.
func DetectDailyOverload(meetings []*entities.Meeting) []entities.AuditFinding {
	var findings []entities.AuditFinding

	days := make(map[string][]*entities.Meeting)
	var order []string
	for _, m := range meetings {
		day := m.StartTime.Format("2006-01-02")
		if _, ok := days[day]; !ok {
			order = append(order, day)
		}
		days[day] = append(days[day], m)
	}

	for _, day := range order {
		group := days[day]
		total := 0.0
		for _, m := range group {
			total += m.DurationHours()
		}
		if total <= OverloadedDayHours {
			continue
		}

		severity := entities.SeverityHigh
		if total > CriticalDayHours {
			severity = entities.SeverityCritical
		}

		findings = append(findings, entities.AuditFinding{
			Type:     entities.IssueOverbooked,
			Severity: severity,
			Title:    fmt.Sprintf("Overbooked Day: %s", day),
			Description: fmt.Sprintf("%d hours of meetings scheduled. This leaves little time for deep work.",
				int(math.Round(total))),
			AffectedMeetings: meetingIDs(group),
			Suggestions: []string{
				"Move some meetings to other days",
				"Cancel or delegate non-essential meetings",
				"Block time for focused work",
			},
			EstimatedSavings: math.Max(total-TargetDayHours, 0),
		})
	}

	return findings
}

// DetectRecurringFatigue groups recurring meetings by recurrence id (title
// as fallback) and flags groups with an established pattern, using the
// first occurrence's duration as the representative weekly cost.
func DetectRecurringFatigue(meetings []*entities.Meeting) []entities.AuditFinding {
	var findings []entities.AuditFinding

	groups := make(map[string][]*entities.Meeting)
	var order []string
	for _, m := range meetings {
		if !m.IsRecurring {
			continue
		}
		key := m.Title
		if m.RecurrenceID != nil && *m.RecurrenceID != "" {
			key = *m.RecurrenceID
		}
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], m)
	}

	for _, key := range order {
		group := groups[key]
		if len(group) < RecurringMinOccurrences {
			continue
		}

		weeklyHours := group[0].DurationHours()
		severity := entities.SeverityLow
		if weeklyHours > 2 {
			severity = entities.SeverityMedium
		}

		findings = append(findings, entities.AuditFinding{
			Type:        entities.IssueRecurringReview,
			Severity:    severity,
			Title:       fmt.Sprintf("Recurring Meeting Review: %s", group[0].Title),
			Description: fmt.Sprintf("This meeting recurs %d times. Consider if the frequency is still necessary.", len(group)),
			AffectedMeetings: meetingIDs(group),
			Suggestions: []string{
				"Review if all instances are still needed",
				"Reduce frequency (weekly to bi-weekly)",
				"Shorten meeting duration",
				"Make some attendees optional",
				"Switch to asynchronous updates when possible",
			},
			EstimatedSavings: weeklyHours * RecurringReduction,
		})
	}

	return findings
}

// DetectLongMeetings flags every meeting longer than LongMeetingDuration,
// assuming half of the time beyond the first hour can be recovered.
func DetectLongMeetings(meetings []*entities.Meeting) []entities.AuditFinding {
	var findings []entities.AuditFinding

	for _, m := range meetings {
		if m.Duration() <= LongMeetingDuration {
			continue
		}

		duration := m.DurationHours()
		severity := entities.SeverityMedium
		if m.Duration() > VeryLongMeetingDuration {
			severity = entities.SeverityHigh
		}

		findings = append(findings, entities.AuditFinding{
			Type:     entities.IssueLongMeeting,
			Severity: severity,
			Title:    fmt.Sprintf("Long Meeting: %s", m.Title),
			Description: fmt.Sprintf("%d-minute meeting. Consider breaking into smaller sessions.",
				int(math.Round(m.DurationMinutes()))),
			AffectedMeetings: []uuid.UUID{m.ID},
			Suggestions: []string{
				"Break into multiple shorter sessions",
				"Create pre-work to reduce discussion time",
				"Use time boxing for agenda items",
				"Check if all attendees need to be present for the entire duration",
			},
			EstimatedSavings: math.Max(duration-1, 0) * LongMeetingRecovery,
		})
	}

	return findings
}

func meetingIDs(meetings []*entities.Meeting) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(meetings))
	for _, m := range meetings {
		ids = append(ids, m.ID)
	}
	return ids
}
