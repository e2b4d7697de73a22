package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	m := NewManager("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)

	userID := uuid.New()
	token, err := m.GenerateAccessToken(userID, "user@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := m.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("expected user %s, got %s", userID, claims.UserID)
	}
	if claims.Email != "user@example.com" {
		t.Errorf("unexpected email %q", claims.Email)
	}
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	m := NewManager("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)

	userID := uuid.New()
	token, err := m.GenerateRefreshToken(userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := m.ValidateRefreshToken(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != userID {
		t.Errorf("expected user %s, got %s", userID, got)
	}
}

func TestTokensAreNotInterchangeable(t *testing.T) {
	m := NewManager("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)

	refresh, err := m.GenerateRefreshToken(uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A refresh token is signed with a different secret
	if _, err := m.ValidateAccessToken(refresh); err == nil {
		t.Fatal("expected refresh token to fail access validation")
	}
}

func TestExpiredAccessToken(t *testing.T) {
	m := NewManager("access-secret", "refresh-secret", -time.Minute, 7*24*time.Hour)

	token, err := m.GenerateAccessToken(uuid.New(), "user@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := m.ValidateAccessToken(token); err == nil {
		t.Fatal("expected expired token to fail validation")
	}
}
