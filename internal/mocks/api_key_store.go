package mocks

import (
	"context"
	"database/sql"

	"github.com/phrazzld/signup-api/internal/domain"
	"github.com/phrazzld/signup-api/internal/store"
)

// MockAPIKeyStore implements store.APIKeyStore for testing
type MockAPIKeyStore struct {
	CreateFn         func(ctx context.Context, key *domain.APIKey) error
	GetByHashedKeyFn func(ctx context.Context, hashedKey string) (*domain.APIKey, error)

	// Keys holds created keys indexed by hashed key
	Keys        map[string]*domain.APIKey
	CreateError error

	CreateCallCount int
	WithTxCallCount int
}

// NewMockAPIKeyStore creates a new mock store with initialized defaults
func NewMockAPIKeyStore() *MockAPIKeyStore {
	return &MockAPIKeyStore{
		Keys: make(map[string]*domain.APIKey),
	}
}

var _ store.APIKeyStore = (*MockAPIKeyStore)(nil)

// Create implements the APIKeyStore interface
func (m *MockAPIKeyStore) Create(ctx context.Context, key *domain.APIKey) error {
	m.CreateCallCount++

	if m.CreateFn != nil {
		return m.CreateFn(ctx, key)
	}

	if m.CreateError != nil {
		return m.CreateError
	}

	if _, exists := m.Keys[key.HashedKey]; exists {
		return store.ErrDuplicate
	}
	m.Keys[key.HashedKey] = key
	return nil
}

// GetByHashedKey implements the APIKeyStore interface
func (m *MockAPIKeyStore) GetByHashedKey(ctx context.Context, hashedKey string) (*domain.APIKey, error) {
	if m.GetByHashedKeyFn != nil {
		return m.GetByHashedKeyFn(ctx, hashedKey)
	}

	key, exists := m.Keys[hashedKey]
	if !exists {
		return nil, store.ErrAPIKeyNotFound
	}
	return key, nil
}

// WithTx implements the APIKeyStore interface for transaction support
func (m *MockAPIKeyStore) WithTx(tx *sql.Tx) store.APIKeyStore {
	m.WithTxCallCount++
	return m
}
