package entities

import "github.com/google/uuid"

// AuditFinding is a single detected inefficiency produced by the audit
// engine. Findings live in memory; the ones the audit service chooses to
// materialize are persisted as MeetingFlag rows.
type AuditFinding struct {
	Type             IssueType   `json:"type"`
	Severity         Severity    `json:"severity"`
	Title            string      `json:"title"`
	Description      string      `json:"description"`
	AffectedMeetings []uuid.UUID `json:"affected_meetings"`
	Suggestions      []string    `json:"suggestions"`
	EstimatedSavings float64     `json:"estimated_savings"`
}

// AuditReport summarizes a full audit run
type AuditReport struct {
	TotalIssues           int            `json:"total_issues"`
	CriticalIssues        int            `json:"critical_issues"`
	HighIssues            int            `json:"high_issues"`
	EstimatedTotalSavings float64        `json:"estimated_total_savings"`
	Findings              []AuditFinding `json:"findings"`
}

// Cancellation recommendation labels
const (
	RecommendationCancel = "Cancel"
	RecommendationReview = "Review and optimize"
)

// CancellationCandidate is a meeting scored for likely cancellation benefit
type CancellationCandidate struct {
	Meeting          *Meeting `json:"meeting"`
	Score            int      `json:"score"`
	Reasons          []string `json:"reasons"`
	EstimatedSavings float64  `json:"estimated_savings"`
	Recommendation   string   `json:"recommendation"`
}
