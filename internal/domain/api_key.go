package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// SignupAPIKeyNote is the note attached to keys minted by the signup flow.
const SignupAPIKeyNote = "API key generated during signup"

var (
	ErrEmptyAPIKeyID     = errors.New("api key ID cannot be empty")
	ErrEmptyAPIKeyUserID = errors.New("api key user ID cannot be empty")
	ErrEmptyHashedKey    = errors.New("hashed key cannot be empty")
)

// APIKey is the persisted half of an issued API key. Only the lookup hash of
// the secret is stored; the plaintext is handed to the caller once and dropped.
type APIKey struct {
	ID        uuid.UUID  `json:"id"`
	UserID    int64      `json:"user_id"`
	HashedKey string     `json:"-"`
	Note      string     `json:"note"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// NewAPIKey creates a never-expiring key record for userID with the given hash.
func NewAPIKey(userID int64, hashedKey, note string, now time.Time) (*APIKey, error) {
	key := &APIKey{
		ID:        uuid.New(),
		UserID:    userID,
		HashedKey: hashedKey,
		Note:      note,
		CreatedAt: now.UTC(),
	}

	if err := key.Validate(); err != nil {
		return nil, err
	}

	return key, nil
}

// Validate checks if the APIKey has valid data.
func (k *APIKey) Validate() error {
	if k.ID == uuid.Nil {
		return ErrEmptyAPIKeyID
	}
	if k.UserID <= 0 {
		return ErrEmptyAPIKeyUserID
	}
	if k.HashedKey == "" {
		return ErrEmptyHashedKey
	}
	return nil
}

// IsExpired reports whether the key has an expiry at or before now.
// A nil ExpiresAt never expires.
func (k *APIKey) IsExpired(now time.Time) bool {
	return k.ExpiresAt != nil && !now.Before(*k.ExpiresAt)
}
