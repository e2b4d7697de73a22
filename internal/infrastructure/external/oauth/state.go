package oauth

import (
	"crypto/rand"
	"encoding/base64"
	"time"
)

// stateTTL bounds how long a login attempt may take between redirect and
// callback before the state token expires.
const stateTTL = 15 * time.Minute

const statePrefix = "oauth:state:"

// Store is the TTL key-value backend for state tokens.
type Store interface {
	Set(key string, value string, expiration time.Duration)
	Get(key string) (string, bool)
	Delete(key string)
}

// StateManager issues and validates the OAuth state tokens used for CSRF
// protection. Tokens are single-use: validation consumes them.
type StateManager struct {
	store Store
}

// NewStateManager creates a new state manager
func NewStateManager(store Store) *StateManager {
	return &StateManager{store: store}
}

// GenerateState creates a random state token and records it with a TTL
func (sm *StateManager) GenerateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	state := base64.URLEncoding.EncodeToString(b)
	sm.store.Set(statePrefix+state, "valid", stateTTL)
	return state, nil
}

// ValidateState checks a callback's state token and consumes it so a replayed
// callback fails.
func (sm *StateManager) ValidateState(state string) bool {
	key := statePrefix + state

	value, ok := sm.store.Get(key)
	if !ok || value != "valid" {
		return false
	}

	sm.store.Delete(key)
	return true
}
