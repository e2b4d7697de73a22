package entities

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// DefaultHourlyCost is assumed when a user has not configured an average
// hourly cost for meeting-cost estimates.
const DefaultHourlyCost = 50.0

// User represents a user in the system
type User struct {
	ID    uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Email string    `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	Name  string    `json:"name" gorm:"type:varchar(255);not null"`

	// OAuth fields
	OAuthProvider     *string `json:"oauth_provider,omitempty" gorm:"column:oauth_provider;type:varchar(50);index:idx_oauth"`
	OAuthID           *string `json:"oauth_id,omitempty" gorm:"column:oauth_id;type:varchar(255);index:idx_oauth"`
	OAuthRefreshToken *string `json:"-" gorm:"column:oauth_refresh_token;type:text"` // Never expose in JSON

	// AverageHourlyCost feeds meeting-cost estimates on the dashboard.
	// Nil means the user has not configured one.
	AverageHourlyCost *float64 `json:"average_hourly_cost,omitempty"`

	Timezone string `json:"timezone" gorm:"type:varchar(50);default:'UTC';not null"`

	// Preferences (stored as JSONB in PostgreSQL)
	Preferences datatypes.JSON `json:"preferences" gorm:"type:jsonb;default:'{}'"`

	LastLoginAt *time.Time `json:"last_login_at,omitempty" gorm:"type:timestamp"`
	CreatedAt   time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}

// NewUser creates a new user with default values
func NewUser(email, name string) *User {
	now := time.Now()

	prefs, _ := json.Marshal(map[string]interface{}{
		"weekly_report": true,
		"audit_emails":  false,
	})

	return &User{
		ID:          uuid.New(),
		Email:       email,
		Name:        name,
		Timezone:    "UTC",
		Preferences: prefs,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// NewOAuthUser creates a new user from an OAuth provider
func NewOAuthUser(email, name, provider, oauthID string) *User {
	user := NewUser(email, name)
	user.OAuthProvider = &provider
	user.OAuthID = &oauthID
	return user
}

// HourlyCost returns the configured hourly cost or the default
func (u *User) HourlyCost() float64 {
	if u.AverageHourlyCost != nil && *u.AverageHourlyCost > 0 {
		return *u.AverageHourlyCost
	}
	return DefaultHourlyCost
}

// HasCalendarConnected reports whether the user can sync an external calendar
func (u *User) HasCalendarConnected() bool {
	return u.OAuthRefreshToken != nil && *u.OAuthRefreshToken != ""
}

// UpdateLastLogin updates the last login timestamp
func (u *User) UpdateLastLogin() {
	now := time.Now()
	u.LastLoginAt = &now
	u.UpdatedAt = now
}

// Validate validates user data
func (u *User) Validate() error {
	if u.Email == "" {
		return ErrInvalidEmail
	}
	if u.Name == "" {
		return ErrInvalidName
	}
	return nil
}
