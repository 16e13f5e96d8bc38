package domain

import (
	"errors"
	"net/mail"
	"strings"
	"time"
)

// MinPasswordLength is the shortest password accepted at signup.
const MinPasswordLength = 8

// Common validation errors
var (
	ErrEmptyUsername           = errors.New("username cannot be empty")
	ErrEmptyEmail              = errors.New("email cannot be empty")
	ErrPasswordTooShort        = errors.New("password must be at least 8 characters long")
	ErrEmptyHashedPassword     = errors.New("hashed password cannot be empty")
	ErrInvalidIdentityProvider = errors.New("invalid identity provider")
)

// IdentityProvider records where an account's identity is managed.
type IdentityProvider string

const (
	// IdentityProviderCAL marks an account registered directly with a password.
	IdentityProviderCAL IdentityProvider = "CAL"
	// IdentityProviderGoogle marks an account federated through Google.
	IdentityProviderGoogle IdentityProvider = "GOOGLE"
	// IdentityProviderSAML marks an account federated through a SAML IdP.
	IdentityProviderSAML IdentityProvider = "SAML"
)

// IsValid reports whether p is one of the known identity providers.
func (p IdentityProvider) IsValid() bool {
	switch p {
	case IdentityProviderCAL, IdentityProviderGoogle, IdentityProviderSAML:
		return true
	}
	return false
}

// User represents a registered account.
// The password hash lives in Credential and is never part of User.
type User struct {
	ID               int64            `json:"id"`
	Username         string           `json:"username"`
	Email            string           `json:"email"`
	EmailVerified    *time.Time       `json:"email_verified,omitempty"`
	IdentityProvider IdentityProvider `json:"identity_provider"`
	Metadata         map[string]any   `json:"metadata"`
	CreatedAt        time.Time        `json:"created_at"`
}

// Credential holds the password hash for exactly one user.
type Credential struct {
	UserID int64  `json:"-"`
	Hash   string `json:"-"`
}

// NormalizeEmail trims and lowercases an email address for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeUsername trims and lowercases a username for storage and lookup.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// NewUser builds a directly registered user. Email and username are normalized,
// the email is considered verified at creation time and metadata starts empty.
// The ID is left zero; the store assigns it on insert.
func NewUser(username, email string, now time.Time) (*User, error) {
	verified := now.UTC()
	user := &User{
		Username:         NormalizeUsername(username),
		Email:            NormalizeEmail(email),
		EmailVerified:    &verified,
		IdentityProvider: IdentityProviderCAL,
		Metadata:         map[string]any{},
		CreatedAt:        now.UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	if u.Username == "" {
		return ErrEmptyUsername
	}

	if u.Email == "" {
		return ErrEmptyEmail
	}

	// Bare addresses only; ParseAddress also accepts "Name <addr>".
	if addr, err := mail.ParseAddress(u.Email); err != nil || addr.Address != u.Email {
		return ErrInvalidEmail
	}

	if !u.IdentityProvider.IsValid() {
		return ErrInvalidIdentityProvider
	}

	return nil
}

// ValidatePassword checks the plaintext password length rule applied at signup.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}
