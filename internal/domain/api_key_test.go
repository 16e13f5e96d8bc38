package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewAPIKey(t *testing.T) {
	now := time.Now()

	key, err := NewAPIKey(42, "abc123", SignupAPIKeyNote, now)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if key.ID == uuid.Nil {
		t.Error("Expected a generated key ID")
	}
	if key.UserID != 42 {
		t.Errorf("Expected user ID 42, got %d", key.UserID)
	}
	if key.ExpiresAt != nil {
		t.Error("Expected a never-expiring key")
	}
	if key.Note != SignupAPIKeyNote {
		t.Errorf("Unexpected note %q", key.Note)
	}

	other, err := NewAPIKey(42, "abc123", "", now)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if other.ID == key.ID {
		t.Error("Expected distinct key IDs")
	}
}

func TestNewAPIKeyValidation(t *testing.T) {
	tests := []struct {
		name    string
		userID  int64
		hash    string
		wantErr error
	}{
		{"missing user", 0, "abc", ErrEmptyAPIKeyUserID},
		{"negative user", -1, "abc", ErrEmptyAPIKeyUserID},
		{"missing hash", 1, "", ErrEmptyHashedKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewAPIKey(tt.userID, tt.hash, "", time.Now())
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	key := &APIKey{UserID: 1, HashedKey: "abc"}
	if err := key.Validate(); !errors.Is(err, ErrEmptyAPIKeyID) {
		t.Errorf("Expected ErrEmptyAPIKeyID, got %v", err)
	}
}

func TestAPIKeyIsExpired(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Minute)
	future := now.Add(time.Minute)

	if (&APIKey{}).IsExpired(now) {
		t.Error("Key without expiry must never expire")
	}
	if !(&APIKey{ExpiresAt: &past}).IsExpired(now) {
		t.Error("Key with past expiry must be expired")
	}
	if !(&APIKey{ExpiresAt: &now}).IsExpired(now) {
		t.Error("Key expiring exactly now must be expired")
	}
	if (&APIKey{ExpiresAt: &future}).IsExpired(now) {
		t.Error("Key with future expiry must not be expired")
	}
}
