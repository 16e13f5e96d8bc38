package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/signup-api/internal/domain"
	"github.com/phrazzld/signup-api/internal/platform/logger"
	"github.com/phrazzld/signup-api/internal/store"
)

const userColumns = `id, username, email, email_verified, identity_provider, metadata, created_at`

// createUserWithCredentialQuery inserts the user and its password row in a
// single statement, so neither can exist without the other.
const createUserWithCredentialQuery = `
	WITH new_user AS (
		INSERT INTO users (username, email, email_verified, identity_provider, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	)
	INSERT INTO user_passwords (user_id, hash, created_at)
	SELECT id, $7, $6 FROM new_user
	RETURNING user_id
`

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the UserStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresUserStore(db store.DBTX, logger *slog.Logger) *PostgresUserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresUserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

// WithTx implements store.UserStore.WithTx
func (s *PostgresUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return &PostgresUserStore{
		db:     tx,
		logger: s.logger,
	}
}

// GetByEmail implements store.UserStore.GetByEmail
func (s *PostgresUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.getOne(ctx, "email", `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email)
}

// GetByUsername implements store.UserStore.GetByUsername
func (s *PostgresUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.getOne(ctx, "username", `SELECT `+userColumns+` FROM users WHERE lower(username) = lower($1)`, username)
}

func (s *PostgresUserStore) getOne(ctx context.Context, by, query, value string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var (
		user          domain.User
		emailVerified sql.NullTime
		provider      string
		metadata      []byte
	)

	err := s.db.QueryRowContext(ctx, query, value).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&emailVerified,
		&provider,
		&metadata,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found", slog.String("lookup", by))
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user",
			slog.String("lookup", by),
			slog.String("error", err.Error()))
		return nil, wrapStoreError("user", "get", err)
	}

	if emailVerified.Valid {
		t := emailVerified.Time
		user.EmailVerified = &t
	}
	user.IdentityProvider = domain.IdentityProvider(provider)

	user.Metadata = map[string]any{}
	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &user.Metadata); err != nil {
			log.Error("failed to decode user metadata",
				slog.Int64("user_id", user.ID),
				slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to decode metadata for user %d: %w", user.ID, err)
		}
	}

	return &user, nil
}

// CreateWithCredential implements store.UserStore.CreateWithCredential
// Returns store.ErrEmailExists or store.ErrUsernameExists when the matching
// case-insensitive unique index rejects the row.
func (s *PostgresUserStore) CreateWithCredential(
	ctx context.Context,
	user *domain.User,
	passwordHash string,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during create", slog.String("error", err.Error()))
		return err
	}
	if passwordHash == "" {
		return domain.ErrEmptyHashedPassword
	}

	metadata := user.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}
	metadataJSON, err := json.Marshal(metadata)
	if err != nil {
		return fmt.Errorf("failed to encode user metadata: %w", err)
	}

	var id int64
	err = s.db.QueryRowContext(
		ctx,
		createUserWithCredentialQuery,
		user.Username,
		user.Email,
		user.EmailVerified,
		string(user.IdentityProvider),
		string(metadataJSON),
		user.CreatedAt,
		passwordHash,
	).Scan(&id)
	if err != nil {
		mapped := wrapStoreError("user", "create", err)
		if IsUniqueViolation(err) {
			log.Warn("unique constraint rejected user insert",
				slog.String("username", user.Username),
				slog.String("error", err.Error()))
		} else {
			log.Error("failed to create user",
				slog.String("username", user.Username),
				slog.String("error", err.Error()))
		}
		return mapped
	}

	user.ID = id
	log.Debug("user created",
		slog.Int64("user_id", id),
		slog.String("username", user.Username))
	return nil
}
