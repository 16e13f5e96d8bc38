package mocks

import (
	"context"

	"github.com/phrazzld/signup-api/internal/domain"
)

// MockAccountService implements service.AccountService for handler tests
type MockAccountService struct {
	RegisterFn    func(ctx context.Context, username, email, password string) (*domain.User, error)
	IssueKeyForFn func(ctx context.Context, userID int64) (string, error)
	SignupFn      func(ctx context.Context, username, email, password string) (*domain.User, string, error)

	SignupCallCount int
}

// Register implements the AccountService interface
func (m *MockAccountService) Register(
	ctx context.Context,
	username, email, password string,
) (*domain.User, error) {
	if m.RegisterFn != nil {
		return m.RegisterFn(ctx, username, email, password)
	}
	return nil, nil
}

// IssueKeyFor implements the AccountService interface
func (m *MockAccountService) IssueKeyFor(ctx context.Context, userID int64) (string, error) {
	if m.IssueKeyForFn != nil {
		return m.IssueKeyForFn(ctx, userID)
	}
	return "", nil
}

// Signup implements the AccountService interface
func (m *MockAccountService) Signup(
	ctx context.Context,
	username, email, password string,
) (*domain.User, string, error) {
	m.SignupCallCount++
	if m.SignupFn != nil {
		return m.SignupFn(ctx, username, email, password)
	}
	return nil, "", nil
}
