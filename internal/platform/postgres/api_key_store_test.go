package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/phrazzld/signup-api/internal/domain"
	"github.com/phrazzld/signup-api/internal/platform/postgres"
	"github.com/phrazzld/signup-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAPIKeyStore(t *testing.T) (*postgres.PostgresAPIKeyStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return postgres.NewPostgresAPIKeyStore(db, nil), mock
}

func TestPostgresAPIKeyStore_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("inserts hashed key", func(t *testing.T) {
		s, mock := newAPIKeyStore(t)
		key, err := domain.NewAPIKey(9, "abc123", domain.SignupAPIKeyNote, time.Now())
		require.NoError(t, err)

		mock.ExpectExec(`INSERT INTO api_keys`).
			WithArgs(sqlmock.AnyArg(), int64(9), "abc123", domain.SignupAPIKeyNote, nil, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, s.Create(ctx, key))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing user", func(t *testing.T) {
		s, mock := newAPIKeyStore(t)
		key, err := domain.NewAPIKey(404, "abc123", "", time.Now())
		require.NoError(t, err)

		mock.ExpectExec(`INSERT INTO api_keys`).
			WillReturnError(newPgError("23503", "api_keys_user_id_fkey"))

		err = s.Create(ctx, key)
		assert.ErrorIs(t, err, store.ErrInvalidEntity)
	})

	t.Run("duplicate hash", func(t *testing.T) {
		s, mock := newAPIKeyStore(t)
		key, err := domain.NewAPIKey(1, "abc123", "", time.Now())
		require.NoError(t, err)

		mock.ExpectExec(`INSERT INTO api_keys`).
			WillReturnError(newPgError("23505", "api_keys_hashed_key_key"))

		err = s.Create(ctx, key)
		assert.ErrorIs(t, err, store.ErrDuplicate)
	})

	t.Run("invalid key never reaches the database", func(t *testing.T) {
		s, mock := newAPIKeyStore(t)

		err := s.Create(ctx, &domain.APIKey{ID: uuid.New(), UserID: 1})
		assert.ErrorIs(t, err, domain.ErrEmptyHashedKey)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresAPIKeyStore_GetByHashedKey(t *testing.T) {
	ctx := context.Background()
	columns := []string{"id", "user_id", "hashed_key", "note", "expires_at", "created_at"}
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("found without expiry", func(t *testing.T) {
		s, mock := newAPIKeyStore(t)
		id := uuid.New()

		mock.ExpectQuery(`FROM api_keys\s+WHERE hashed_key = \$1`).
			WithArgs("abc123").
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow(id.String(), int64(9), "abc123", "note", nil, created))

		key, err := s.GetByHashedKey(ctx, "abc123")
		require.NoError(t, err)
		assert.Equal(t, id, key.ID)
		assert.Equal(t, int64(9), key.UserID)
		assert.Nil(t, key.ExpiresAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("found with expiry", func(t *testing.T) {
		s, mock := newAPIKeyStore(t)
		expires := created.Add(24 * time.Hour)

		mock.ExpectQuery(`FROM api_keys`).
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow(uuid.New().String(), int64(9), "abc123", "", expires, created))

		key, err := s.GetByHashedKey(ctx, "abc123")
		require.NoError(t, err)
		require.NotNil(t, key.ExpiresAt)
		assert.True(t, expires.Equal(*key.ExpiresAt))
	})

	t.Run("not found", func(t *testing.T) {
		s, mock := newAPIKeyStore(t)

		mock.ExpectQuery(`FROM api_keys`).WillReturnRows(sqlmock.NewRows(columns))

		key, err := s.GetByHashedKey(ctx, "missing")
		assert.ErrorIs(t, err, store.ErrAPIKeyNotFound)
		assert.Nil(t, key)
	})

	t.Run("driver error carries store context", func(t *testing.T) {
		s, mock := newAPIKeyStore(t)
		dbErr := errors.New("connection reset by peer")

		mock.ExpectQuery(`FROM api_keys`).WillReturnError(dbErr)

		key, err := s.GetByHashedKey(ctx, "abc123")
		assert.Nil(t, key)
		assert.ErrorIs(t, err, dbErr)

		var storeErr *store.StoreError
		require.True(t, errors.As(err, &storeErr))
		assert.Equal(t, "api_key", storeErr.Entity)
		assert.Equal(t, "get", storeErr.Operation)
	})
}
