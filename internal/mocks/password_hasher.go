package mocks

import (
	"errors"
	"strings"
)

// MockPasswordHasher implements auth.PasswordHasher for testing.
// By default Hash returns "hashed:" + password and Compare checks that form.
type MockPasswordHasher struct {
	HashFn    func(password string) (string, error)
	CompareFn func(hashedPassword, password string) error

	// HashCalledWith stores the last password passed to Hash
	HashCalledWith string
	// HashCallCount tracks how many times Hash was called
	HashCallCount int
}

// Hash implements the auth.PasswordHasher interface
func (m *MockPasswordHasher) Hash(password string) (string, error) {
	m.HashCalledWith = password
	m.HashCallCount++

	if m.HashFn != nil {
		return m.HashFn(password)
	}
	return "hashed:" + password, nil
}

// Compare implements the auth.PasswordVerifier interface
func (m *MockPasswordHasher) Compare(hashedPassword, password string) error {
	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}
	if strings.TrimPrefix(hashedPassword, "hashed:") == password {
		return nil
	}
	return errors.New("password mismatch")
}
