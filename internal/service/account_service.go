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

// AccountService registers directly-signed-up users and issues their first API key.
type AccountService interface {
	// Register creates a user after checking that the normalized email and
	// username are free. Returns ErrDuplicateEmail or ErrDuplicateUsername
	// without writing anything when either is taken.
	Register(ctx context.Context, username, email, password string) (*domain.User, error)

	// IssueKeyFor mints an API key for an existing user.
	IssueKeyFor(ctx context.Context, userID int64) (string, error)

	// Signup registers the user and issues the key in one transaction, so a
	// failed key write leaves no account behind.
	Signup(ctx context.Context, username, email, password string) (*domain.User, string, error)
}

// AccountServiceImpl implements AccountService.
type AccountServiceImpl struct {
	users  store.UserStore
	keys   APIKeyService
	hasher auth.PasswordHasher
	db     *sql.DB
	now    func() time.Time
	logger *slog.Logger
}

// NewAccountService creates a new AccountService. db is used only to open
// the transaction that Signup runs in.
func NewAccountService(
	users store.UserStore,
	keys APIKeyService,
	hasher auth.PasswordHasher,
	db *sql.DB,
	logger *slog.Logger,
) (*AccountServiceImpl, error) {
	if users == nil {
		return nil, fmt.Errorf("user store cannot be nil")
	}
	if keys == nil {
		return nil, fmt.Errorf("api key service cannot be nil")
	}
	if hasher == nil {
		return nil, fmt.Errorf("password hasher cannot be nil")
	}
	if db == nil {
		return nil, fmt.Errorf("database cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &AccountServiceImpl{
		users:  users,
		keys:   keys,
		hasher: hasher,
		db:     db,
		now:    time.Now,
		logger: logger.With("component", "account_service"),
	}, nil
}

var _ AccountService = (*AccountServiceImpl)(nil)

// Register implements AccountService.
func (s *AccountServiceImpl) Register(
	ctx context.Context,
	username, email, password string,
) (*domain.User, error) {
	user, hash, err := s.prepareUser(ctx, username, email, password)
	if err != nil {
		return nil, err
	}

	if err := s.createUser(ctx, s.users, user, hash); err != nil {
		return nil, err
	}

	return user, nil
}

// IssueKeyFor implements AccountService.
func (s *AccountServiceImpl) IssueKeyFor(ctx context.Context, userID int64) (string, error) {
	return s.keys.Issue(ctx, userID)
}

// Signup implements AccountService.
func (s *AccountServiceImpl) Signup(
	ctx context.Context,
	username, email, password string,
) (*domain.User, string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// Lookups and bcrypt run before the transaction so it only spans the inserts.
	user, hash, err := s.prepareUser(ctx, username, email, password)
	if err != nil {
		return nil, "", err
	}

	var apiKey string
	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.createUser(ctx, s.users.WithTx(tx), user, hash); err != nil {
			return err
		}

		key, err := s.keys.WithTx(tx).Issue(ctx, user.ID)
		if err != nil {
			return fmt.Errorf("failed to issue api key: %w", err)
		}
		apiKey = key
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrTransactionFailed) {
			err = fmt.Errorf("%w: %w", ErrPersistence, err)
		}
		return nil, "", err
	}

	log.Info("signup completed",
		"user_id", user.ID,
		"username", user.Username)

	return user, apiKey, nil
}

// prepareUser normalizes the input, enforces uniqueness and hashes the password.
func (s *AccountServiceImpl) prepareUser(
	ctx context.Context,
	username, email, password string,
) (*domain.User, string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := domain.NewUser(username, email, s.now())
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}
	if err := domain.ValidatePassword(password); err != nil {
		return nil, "", fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}

	if err := s.ensureAbsent(ctx, s.users.GetByEmail, user.Email, ErrDuplicateEmail); err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			log.Debug("signup rejected: email already registered")
		}
		return nil, "", err
	}

	if err := s.ensureAbsent(ctx, s.users.GetByUsername, user.Username, ErrDuplicateUsername); err != nil {
		if errors.Is(err, ErrDuplicateUsername) {
			log.Debug("signup rejected: username taken", "username", user.Username)
		}
		return nil, "", err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		log.Error("failed to hash password", "error", err)
		return nil, "", err
	}

	return user, hash, nil
}

// ensureAbsent runs lookup and turns a hit into duplicateErr.
func (s *AccountServiceImpl) ensureAbsent(
	ctx context.Context,
	lookup func(context.Context, string) (*domain.User, error),
	value string,
	duplicateErr error,
) error {
	_, err := lookup(ctx, value)
	switch {
	case err == nil:
		return duplicateErr
	case errors.Is(err, store.ErrUserNotFound):
		return nil
	default:
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to check user uniqueness", "error", err)
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
}

// createUser inserts the user and its credential, mapping a unique index
// violation (a signup that raced ours) to the matching duplicate error.
func (s *AccountServiceImpl) createUser(
	ctx context.Context,
	users store.UserStore,
	user *domain.User,
	hash string,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := users.CreateWithCredential(ctx, user, hash)
	switch {
	case err == nil:
		log.Info("user created",
			"user_id", user.ID,
			"username", user.Username,
			"identity_provider", string(user.IdentityProvider))
		return nil
	case errors.Is(err, store.ErrEmailExists):
		log.Warn("concurrent signup won the email uniqueness race")
		return ErrDuplicateEmail
	case errors.Is(err, store.ErrUsernameExists):
		log.Warn("concurrent signup won the username uniqueness race", "username", user.Username)
		return ErrDuplicateUsername
	default:
		log.Error("failed to create user", "error", err, "username", user.Username)
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
}
