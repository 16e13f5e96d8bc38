package postgres_test

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/signup-api/internal/platform/postgres"
	"github.com/phrazzld/signup-api/internal/store"
	"github.com/stretchr/testify/assert"
)

// newPgError builds a PgError with the given code and constraint.
func newPgError(code, constraint string) *pgconn.PgError {
	return &pgconn.PgError{
		Code:           code,
		Message:        "error message",
		Detail:         "Key (lower(email))=(alice@example.com) already exists.",
		SchemaName:     "public",
		TableName:      "users",
		ColumnName:     "test_column",
		ConstraintName: constraint,
	}
}

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"non-postgres error", errors.New("generic error"), false},
		{"unique violation", newPgError("23505", "users_email_lower_key"), true},
		{"wrapped unique violation", fmt.Errorf("insert: %w", newPgError("23505", "")), true},
		{"foreign key violation", newPgError("23503", ""), false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, postgres.IsUniqueViolation(tt.err))
		})
	}
}

func TestIsForeignKeyViolation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"non-postgres error", errors.New("generic error"), false},
		{"unique violation", newPgError("23505", ""), false},
		{"foreign key violation", newPgError("23503", "api_keys_user_id_fkey"), true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, postgres.IsForeignKeyViolation(tt.err))
		})
	}
}

func TestMapError(t *testing.T) {
	t.Parallel()

	generic := errors.New("connection refused")

	tests := []struct {
		name    string
		err     error
		wantIs  []error
		wantNot []error
	}{
		{
			name:   "no rows",
			err:    sql.ErrNoRows,
			wantIs: []error{store.ErrNotFound},
		},
		{
			name:    "email index",
			err:     newPgError("23505", "users_email_lower_key"),
			wantIs:  []error{store.ErrEmailExists, store.ErrDuplicate},
			wantNot: []error{store.ErrUsernameExists},
		},
		{
			name:    "username index",
			err:     newPgError("23505", "users_username_lower_key"),
			wantIs:  []error{store.ErrUsernameExists, store.ErrDuplicate},
			wantNot: []error{store.ErrEmailExists},
		},
		{
			name:    "other unique constraint",
			err:     newPgError("23505", "api_keys_hashed_key_key"),
			wantIs:  []error{store.ErrDuplicate},
			wantNot: []error{store.ErrEmailExists, store.ErrUsernameExists},
		},
		{
			name:   "foreign key",
			err:    newPgError("23503", "api_keys_user_id_fkey"),
			wantIs: []error{store.ErrInvalidEntity},
		},
		{
			name:   "check constraint",
			err:    newPgError("23514", "users_identity_provider_check"),
			wantIs: []error{store.ErrInvalidEntity},
		},
		{
			name:   "not null",
			err:    newPgError("23502", ""),
			wantIs: []error{store.ErrInvalidEntity},
		},
		{
			name:    "unmapped error passes through",
			err:     generic,
			wantIs:  []error{generic},
			wantNot: []error{store.ErrNotFound, store.ErrDuplicate, store.ErrInvalidEntity},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			mapped := postgres.MapError(tt.err)
			for _, want := range tt.wantIs {
				assert.ErrorIs(t, mapped, want)
			}
			for _, notWant := range tt.wantNot {
				assert.NotErrorIs(t, mapped, notWant)
			}
		})
	}

	t.Run("nil", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, postgres.MapError(nil))
	})
}
