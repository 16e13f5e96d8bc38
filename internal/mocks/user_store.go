package mocks

import (
	"context"
	"database/sql"
	"strings"

	"github.com/phrazzld/signup-api/internal/domain"
	"github.com/phrazzld/signup-api/internal/store"
)

// MockUserStore implements store.UserStore for testing
type MockUserStore struct {
	// Function fields for customizable behavior
	GetByEmailFn           func(ctx context.Context, email string) (*domain.User, error)
	GetByUsernameFn        func(ctx context.Context, username string) (*domain.User, error)
	CreateWithCredentialFn func(ctx context.Context, user *domain.User, passwordHash string) error

	// Data for default implementation
	Users       map[string]*domain.User
	Credentials map[int64]string
	NextID      int64
	CreateError error

	// CreateCallCount tracks how many times CreateWithCredential was called
	CreateCallCount int
	// WithTxCallCount tracks how many times WithTx was called
	WithTxCallCount int
}

// NewMockUserStore creates a new mock store with initialized defaults
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{
		Users:       make(map[string]*domain.User),
		Credentials: make(map[int64]string),
		NextID:      1,
	}
}

var _ store.UserStore = (*MockUserStore)(nil)

// AddUser seeds the default implementation with an existing user.
func (m *MockUserStore) AddUser(user *domain.User) {
	if user.ID == 0 {
		user.ID = m.NextID
		m.NextID++
	}
	m.Users[strings.ToLower(user.Email)] = user
}

// GetByEmail implements the UserStore interface
func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}

	user, exists := m.Users[strings.ToLower(email)]
	if !exists {
		return nil, store.ErrUserNotFound
	}
	return user, nil
}

// GetByUsername implements the UserStore interface
func (m *MockUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.GetByUsernameFn != nil {
		return m.GetByUsernameFn(ctx, username)
	}

	for _, user := range m.Users {
		if strings.EqualFold(user.Username, username) {
			return user, nil
		}
	}
	return nil, store.ErrUserNotFound
}

// CreateWithCredential implements the UserStore interface
func (m *MockUserStore) CreateWithCredential(
	ctx context.Context,
	user *domain.User,
	passwordHash string,
) error {
	m.CreateCallCount++

	if m.CreateWithCredentialFn != nil {
		return m.CreateWithCredentialFn(ctx, user, passwordHash)
	}

	if m.CreateError != nil {
		return m.CreateError
	}

	if _, exists := m.Users[strings.ToLower(user.Email)]; exists {
		return store.ErrEmailExists
	}
	for _, existing := range m.Users {
		if strings.EqualFold(existing.Username, user.Username) {
			return store.ErrUsernameExists
		}
	}

	user.ID = m.NextID
	m.NextID++
	m.Users[strings.ToLower(user.Email)] = user
	m.Credentials[user.ID] = passwordHash
	return nil
}

// WithTx implements the UserStore interface for transaction support.
// The mock keeps no transactional state, so it returns itself.
func (m *MockUserStore) WithTx(tx *sql.Tx) store.UserStore {
	m.WithTxCallCount++
	return m
}
