package entities

import (
	"time"

	"github.com/google/uuid"
)

// Attendee represents a single invitee of a meeting. The email is the
// identity key within a meeting; attendee rows are replaced wholesale on
// calendar re-sync.
type Attendee struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	MeetingID uuid.UUID `gorm:"type:uuid;not null;index" json:"meeting_id"`
	Email     string    `gorm:"type:varchar(255);not null" json:"email"`
	Name      string    `gorm:"type:varchar(255)" json:"name,omitempty"`

	// ResponseStatus mirrors the calendar provider values
	// (accepted/declined/tentative/needsAction).
	ResponseStatus string `gorm:"type:varchar(50);default:'needsAction'" json:"response_status"`
	IsOptional     bool   `gorm:"default:false" json:"is_optional"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for Attendee
func (Attendee) TableName() string {
	return "attendees"
}
