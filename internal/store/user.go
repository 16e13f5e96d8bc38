package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/signup-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// GetByEmail retrieves a user by email, compared case-insensitively.
	// Returns ErrUserNotFound if no user has that email.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// GetByUsername retrieves a user by username, compared case-insensitively.
	// Returns ErrUserNotFound if no user has that username.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// CreateWithCredential inserts the user and its password credential.
	// On success user.ID holds the store-assigned identifier.
	// Returns ErrEmailExists or ErrUsernameExists when a unique index rejects the row.
	CreateWithCredential(ctx context.Context, user *domain.User, passwordHash string) error

	// WithTx returns a UserStore bound to the given transaction.
	WithTx(tx *sql.Tx) UserStore
}
