package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/signup-api/internal/domain"
)

// APIKeyStore defines the interface for API key persistence.
// Only hashed secrets ever reach this interface.
type APIKeyStore interface {
	// Create saves a new API key.
	// Returns ErrInvalidEntity if the owning user does not exist.
	// Returns ErrDuplicate if the hashed key is already stored.
	Create(ctx context.Context, key *domain.APIKey) error

	// GetByHashedKey retrieves the key whose lookup hash equals hashedKey.
	// Returns ErrAPIKeyNotFound if there is none.
	GetByHashedKey(ctx context.Context, hashedKey string) (*domain.APIKey, error)

	// WithTx returns an APIKeyStore bound to the given transaction.
	WithTx(tx *sql.Tx) APIKeyStore
}
