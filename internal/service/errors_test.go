package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinelErrors(t *testing.T) {
	t.Run("messages", func(t *testing.T) {
		assert.Equal(t, "user with this email already exists", ErrDuplicateEmail.Error())
		assert.Equal(t, "username is already taken", ErrDuplicateUsername.Error())
	})

	t.Run("sentinel errors are distinct", func(t *testing.T) {
		all := []error{ErrDuplicateEmail, ErrDuplicateUsername, ErrPersistence, ErrInvalidAPIKey, ErrExpiredAPIKey}
		for i, a := range all {
			for j, b := range all {
				assert.Equal(t, i == j, errors.Is(a, b), "%v vs %v", a, b)
			}
		}
	})

	t.Run("persistence wrapping keeps the cause", func(t *testing.T) {
		cause := errors.New("connection reset")
		err := fmt.Errorf("%w: %w", ErrPersistence, cause)
		assert.True(t, errors.Is(err, ErrPersistence))
		assert.True(t, errors.Is(err, cause))
	})
}
