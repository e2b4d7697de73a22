package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ActionItem is a single follow-up task extracted from a meeting summary
type ActionItem struct {
	Assignee string  `json:"assignee"`
	Task     string  `json:"task"`
	DueDate  *string `json:"due_date,omitempty"`
}

// Summary is a generated meeting summary with its extracted action items
type Summary struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	MeetingID uuid.UUID `gorm:"type:uuid;not null;index" json:"meeting_id"`
	Meeting   *Meeting  `gorm:"foreignKey:MeetingID" json:"meeting,omitempty"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`

	SummaryText string         `gorm:"type:text;not null" json:"summary"`
	ActionItems datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"action_items"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for Summary
func (Summary) TableName() string {
	return "summaries"
}
