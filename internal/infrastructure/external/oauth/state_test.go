package oauth

import (
	"testing"
	"time"
)

type fakeStore struct {
	items map[string]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{items: make(map[string]string)}
}

func (f *fakeStore) Set(key, value string, _ time.Duration) { f.items[key] = value }
func (f *fakeStore) Get(key string) (string, bool) {
	v, ok := f.items[key]
	return v, ok
}
func (f *fakeStore) Delete(key string) { delete(f.items, key) }

func TestStateIsSingleUse(t *testing.T) {
	sm := NewStateManager(newFakeStore())

	state, err := sm.GenerateState()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state == "" {
		t.Fatal("expected a non-empty state token")
	}

	if !sm.ValidateState(state) {
		t.Fatal("expected freshly generated state to validate")
	}
	if sm.ValidateState(state) {
		t.Fatal("expected replayed state to be rejected")
	}
}

func TestUnknownStateIsRejected(t *testing.T) {
	sm := NewStateManager(newFakeStore())
	if sm.ValidateState("never-issued") {
		t.Fatal("expected unknown state to be rejected")
	}
}
