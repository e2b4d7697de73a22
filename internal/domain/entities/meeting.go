package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// MeetingStatus represents the lifecycle status of a meeting
type MeetingStatus string

const (
	MeetingStatusScheduled MeetingStatus = "scheduled"
	MeetingStatusCancelled MeetingStatus = "cancelled"
	MeetingStatusCompleted MeetingStatus = "completed"
)

// IsValid checks if the meeting status is valid
func (s MeetingStatus) IsValid() bool {
	switch s {
	case MeetingStatusScheduled, MeetingStatusCancelled, MeetingStatusCompleted:
		return true
	}
	return false
}

// Meeting represents a calendar meeting owned by a user. Meetings are created
// on calendar sync, mutated on re-sync or manual edit, and soft-deleted by
// setting the status to cancelled.
type Meeting struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ExternalID  *string   `gorm:"type:varchar(255);index:idx_meetings_external,unique,where:external_id IS NOT NULL" json:"external_id,omitempty"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User        *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Description *string   `gorm:"type:text" json:"description,omitempty"`

	StartTime time.Time `gorm:"not null;index" json:"start_time"`
	EndTime   time.Time `gorm:"not null" json:"end_time"`

	IsRecurring  bool    `gorm:"default:false" json:"is_recurring"`
	RecurrenceID *string `gorm:"type:varchar(255);index" json:"recurrence_id,omitempty"`

	Organizer string        `gorm:"type:varchar(255)" json:"organizer"`
	HasAgenda bool          `gorm:"default:false" json:"has_agenda"`
	Status    MeetingStatus `gorm:"type:varchar(20);not null;default:'scheduled';index" json:"status"`

	// InviteeCount is the number of people invited; AttendeeCount is the
	// number who actually joined (only known for past meetings with
	// conferencing data attached).
	InviteeCount  int  `gorm:"default:0" json:"invitee_count"`
	AttendeeCount *int `json:"attendee_count,omitempty"`

	ZoomMeetingID *string        `gorm:"type:varchar(100)" json:"zoom_meeting_id,omitempty"`
	Metadata      datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"metadata,omitempty"`

	Attendees []Attendee    `gorm:"foreignKey:MeetingID;constraint:OnDelete:CASCADE" json:"attendees,omitempty"`
	Flags     []MeetingFlag `gorm:"foreignKey:MeetingID;constraint:OnDelete:CASCADE" json:"flags,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for Meeting
func (Meeting) TableName() string {
	return "meetings"
}

// Duration returns the meeting length. Inputs with end before start are a
// caller error; the result is clamped to zero so downstream math never sees
// a negative duration.
func (m *Meeting) Duration() time.Duration {
	d := m.EndTime.Sub(m.StartTime)
	if d < 0 {
		return 0
	}
	return d
}

// DurationHours returns the meeting length in hours
func (m *Meeting) DurationHours() float64 {
	return m.Duration().Hours()
}

// DurationMinutes returns the meeting length in minutes
func (m *Meeting) DurationMinutes() float64 {
	return m.Duration().Minutes()
}

// IsCancelled checks if the meeting has been cancelled
func (m *Meeting) IsCancelled() bool {
	return m.Status == MeetingStatusCancelled
}

// Cancel soft-deletes the meeting
func (m *Meeting) Cancel() {
	m.Status = MeetingStatusCancelled
	m.UpdatedAt = time.Now()
}

// UnresolvedFlags returns the attached flags that have not been resolved yet
func (m *Meeting) UnresolvedFlags() []MeetingFlag {
	var out []MeetingFlag
	for _, f := range m.Flags {
		if !f.IsResolved {
			out = append(out, f)
		}
	}
	return out
}
