package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// IssueType tags the kind of inefficiency a flag describes. The same
// taxonomy is shared by automatic detection and manual flagging.
type IssueType string

const (
	IssueNoAgenda          IssueType = "NO_AGENDA"
	IssueDuplicateMeetings IssueType = "DUPLICATE_MEETINGS"
	IssueOverbooked        IssueType = "OVERBOOKED"
	IssueBackToBack        IssueType = "BACK_TO_BACK"
	IssueTooManyAttendees  IssueType = "TOO_MANY_ATTENDEES"
	IssueRecurringReview   IssueType = "RECURRING_MEETING_REVIEW"
	IssueLongMeeting       IssueType = "LONG_MEETING"
	IssueLowAttendance     IssueType = "LOW_ATTENDANCE"
	IssueLargeMeeting      IssueType = "LARGE_MEETING"
	IssueRedundantMeeting  IssueType = "REDUNDANT_MEETING"
	IssueNoAgendaMeetings  IssueType = "NO_AGENDA_MEETINGS"
)

// IsValid checks if the issue type is part of the fixed taxonomy
func (t IssueType) IsValid() bool {
	switch t {
	case IssueNoAgenda, IssueDuplicateMeetings, IssueOverbooked, IssueBackToBack,
		IssueTooManyAttendees, IssueRecurringReview, IssueLongMeeting,
		IssueLowAttendance, IssueLargeMeeting, IssueRedundantMeeting,
		IssueNoAgendaMeetings:
		return true
	}
	return false
}

// Severity ranks how costly an issue is
type Severity string

const (
	SeverityLow      Severity = "LOW"
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

// IsValid checks if the severity is valid
func (s Severity) IsValid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

// MeetingFlag is the persisted form of a finding (or a manually created
// issue) attached to exactly one meeting and one owning user. Flags are only
// ever mutated by a resolve operation; a full re-audit deletes and recreates
// the auto-detected ones.
type MeetingFlag struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	MeetingID uuid.UUID `gorm:"type:uuid;not null;index" json:"meeting_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`

	IssueType   IssueType `gorm:"type:varchar(50);not null" json:"issue_type"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Severity    Severity  `gorm:"type:varchar(20);not null" json:"severity"`

	Suggestions      datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"suggestions,omitempty"`
	EstimatedSavings float64        `gorm:"default:0" json:"estimated_savings"`

	IsResolved   bool       `gorm:"default:false;index" json:"is_resolved"`
	ResolvedAt   *time.Time `json:"resolved_at,omitempty"`
	AutoDetected bool       `gorm:"default:false;index" json:"auto_detected"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for MeetingFlag
func (MeetingFlag) TableName() string {
	return "meeting_flags"
}

// Resolve marks the flag as resolved
func (f *MeetingFlag) Resolve() {
	now := time.Now()
	f.IsResolved = true
	f.ResolvedAt = &now
	f.UpdatedAt = now
}
