package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/phrazzld/signup-api/internal/domain"
	"github.com/phrazzld/signup-api/internal/platform/logger"
	"github.com/phrazzld/signup-api/internal/store"
)

// PostgresAPIKeyStore implements the store.APIKeyStore interface
// using a PostgreSQL database as the storage backend.
type PostgresAPIKeyStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresAPIKeyStore creates a new PostgreSQL implementation of the APIKeyStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresAPIKeyStore(db store.DBTX, logger *slog.Logger) *PostgresAPIKeyStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresAPIKeyStore{
		db:     db,
		logger: logger.With(slog.String("component", "api_key_store")),
	}
}

var _ store.APIKeyStore = (*PostgresAPIKeyStore)(nil)

// WithTx implements store.APIKeyStore.WithTx
func (s *PostgresAPIKeyStore) WithTx(tx *sql.Tx) store.APIKeyStore {
	return &PostgresAPIKeyStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.APIKeyStore.Create
// Returns store.ErrInvalidEntity if the owning user does not exist.
func (s *PostgresAPIKeyStore) Create(ctx context.Context, key *domain.APIKey) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := key.Validate(); err != nil {
		log.Warn("api key validation failed during create", slog.String("error", err.Error()))
		return err
	}

	query := `
		INSERT INTO api_keys (id, user_id, hashed_key, note, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		key.ID,
		key.UserID,
		key.HashedKey,
		key.Note,
		key.ExpiresAt,
		key.CreatedAt,
	)
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("api key references a missing user",
				slog.Int64("user_id", key.UserID),
				slog.String("api_key_id", key.ID.String()))
		} else {
			log.Error("failed to create api key",
				slog.String("error", err.Error()),
				slog.Int64("user_id", key.UserID),
				slog.String("api_key_id", key.ID.String()))
		}
		return wrapStoreError("api_key", "create", err)
	}

	log.Debug("api key stored",
		slog.String("api_key_id", key.ID.String()),
		slog.Int64("user_id", key.UserID))
	return nil
}

// GetByHashedKey implements store.APIKeyStore.GetByHashedKey
func (s *PostgresAPIKeyStore) GetByHashedKey(ctx context.Context, hashedKey string) (*domain.APIKey, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, hashed_key, note, expires_at, created_at
		FROM api_keys
		WHERE hashed_key = $1
	`

	var (
		key       domain.APIKey
		expiresAt sql.NullTime
	)
	err := s.db.QueryRowContext(ctx, query, hashedKey).Scan(
		&key.ID,
		&key.UserID,
		&key.HashedKey,
		&key.Note,
		&expiresAt,
		&key.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrAPIKeyNotFound
		}
		log.Error("failed to get api key", slog.String("error", err.Error()))
		return nil, wrapStoreError("api_key", "get", err)
	}

	if expiresAt.Valid {
		t := expiresAt.Time
		key.ExpiresAt = &t
	}

	return &key, nil
}
