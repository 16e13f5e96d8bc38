package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/signup-api/internal/domain"
	"github.com/phrazzld/signup-api/internal/platform/logger"
	"github.com/phrazzld/signup-api/internal/service/auth"
	"github.com/phrazzld/signup-api/internal/store"
)

// APIKeyService issues API keys and resolves presented keys to their owner.
type APIKeyService interface {
	// Issue mints a key for userID, stores its lookup hash and returns the
	// prefixed plaintext. The plaintext is returned only if the store write
	// succeeded and cannot be recovered afterwards.
	Issue(ctx context.Context, userID int64) (string, error)

	// Verify resolves a presented key (with or without prefix) to its record.
	// Returns ErrInvalidAPIKey for unknown keys and ErrExpiredAPIKey for expired ones.
	Verify(ctx context.Context, presented string) (*domain.APIKey, error)

	// WithTx returns an APIKeyService whose store writes join tx.
	WithTx(tx *sql.Tx) APIKeyService
}

// APIKeyServiceImpl implements APIKeyService on top of a store.APIKeyStore.
type APIKeyServiceImpl struct {
	keys     store.APIKeyStore
	prefix   string
	generate func() (string, error)
	now      func() time.Time
	logger   *slog.Logger
}

// NewAPIKeyService creates an APIKeyService. prefix is prepended to every
// issued key and may be empty.
func NewAPIKeyService(keys store.APIKeyStore, prefix string, logger *slog.Logger) (*APIKeyServiceImpl, error) {
	if keys == nil {
		return nil, fmt.Errorf("api key store cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &APIKeyServiceImpl{
		keys:     keys,
		prefix:   prefix,
		generate: auth.GenerateAPIKey,
		now:      time.Now,
		logger:   logger.With("component", "api_key_service"),
	}, nil
}

var _ APIKeyService = (*APIKeyServiceImpl)(nil)

// Prefix returns the display prefix prepended to issued keys.
func (s *APIKeyServiceImpl) Prefix() string {
	return s.prefix
}

// WithTx implements APIKeyService.
func (s *APIKeyServiceImpl) WithTx(tx *sql.Tx) APIKeyService {
	clone := *s
	clone.keys = s.keys.WithTx(tx)
	return &clone
}

// Issue implements APIKeyService.
func (s *APIKeyServiceImpl) Issue(ctx context.Context, userID int64) (string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	secret, err := s.generate()
	if err != nil {
		log.Error("failed to generate api key secret", "error", err, "user_id", userID)
		return "", err
	}

	key, err := domain.NewAPIKey(userID, auth.HashAPIKey(secret), domain.SignupAPIKeyNote, s.now())
	if err != nil {
		return "", fmt.Errorf("failed to build api key: %w", err)
	}

	if err := s.keys.Create(ctx, key); err != nil {
		log.Error("failed to store api key",
			"error", err,
			"user_id", userID,
			"api_key_id", key.ID)
		return "", fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	log.Info("api key issued",
		"user_id", userID,
		"api_key_id", key.ID)

	return s.prefix + secret, nil
}

// Verify implements APIKeyService.
func (s *APIKeyServiceImpl) Verify(ctx context.Context, presented string) (*domain.APIKey, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	secret := auth.StripPrefix(presented, s.prefix)
	if secret == "" {
		return nil, ErrInvalidAPIKey
	}

	key, err := s.keys.GetByHashedKey(ctx, auth.HashAPIKey(secret))
	if err != nil {
		if errors.Is(err, store.ErrAPIKeyNotFound) {
			log.Debug("api key not recognised")
			return nil, ErrInvalidAPIKey
		}
		log.Error("failed to look up api key", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	if key.IsExpired(s.now()) {
		log.Debug("expired api key presented",
			"api_key_id", key.ID,
			"user_id", key.UserID)
		return nil, ErrExpiredAPIKey
	}

	return key, nil
}
