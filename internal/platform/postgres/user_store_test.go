package postgres_test

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/genops-api/internal/domain"
	"github.com/phrazzld/genops-api/internal/platform/postgres"
	"github.com/phrazzld/genops-api/internal/store"
)

var insertUserSQL = regexp.QuoteMeta("INSERT INTO users (username, email, password_hash)")

func TestPostgresUserStore_Create(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	createdAt := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	t.Run("returns generated id", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		mock.ExpectQuery(insertUserSQL).
			WithArgs("alice", "a@x", "$2a$10$hash").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(1, createdAt))

		s := postgres.NewPostgresUserStore(db, discardLogger())
		user := &domain.User{Username: "alice", Email: "a@x", HashedPassword: "$2a$10$hash"}
		require.NoError(t, s.Create(ctx, user))
		assert.Equal(t, int64(1), user.ID)
		assert.Equal(t, createdAt, user.CreatedAt)
	})

	t.Run("unique violation", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		mock.ExpectQuery(insertUserSQL).
			WithArgs("alice", "a@x", "hash").
			WillReturnError(newPgError("23505"))

		s := postgres.NewPostgresUserStore(db, discardLogger())
		err := s.Create(ctx, &domain.User{Username: "alice", Email: "a@x", HashedPassword: "hash"})
		assert.ErrorIs(t, err, store.ErrUsernameOrEmailExists)
	})

	t.Run("connection failure", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		mock.ExpectQuery(insertUserSQL).WillReturnError(errors.New("connection reset"))

		s := postgres.NewPostgresUserStore(db, discardLogger())
		err := s.Create(ctx, &domain.User{Username: "alice", Email: "a@x", HashedPassword: "hash"})
		require.Error(t, err)
		assert.NotErrorIs(t, err, store.ErrDuplicate)
		var storeErr *store.StoreError
		assert.ErrorAs(t, err, &storeErr)
	})
}

func TestPostgresUserStore_WithTx(t *testing.T) {
	t.Parallel()
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(insertUserSQL).
		WithArgs("bob", "b@x", "hash").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(2, time.Now()))
	mock.ExpectCommit()

	s := postgres.NewPostgresUserStore(db, discardLogger())
	user := &domain.User{Username: "bob", Email: "b@x", HashedPassword: "hash"}
	err := store.RunInTransaction(context.Background(), db, func(ctx context.Context, tx *sql.Tx) error {
		return s.WithTx(tx).Create(ctx, user)
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), user.ID)
}

func TestPostgresUserStore_GetByUsername(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	query := regexp.QuoteMeta("FROM users") + `\s+WHERE username = \$1`

	t.Run("found", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		mock.ExpectQuery(query).
			WithArgs("alice").
			WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "created_at"}).
				AddRow(1, "alice", "a@x", "hash", time.Now()))

		user, err := postgres.NewPostgresUserStore(db, discardLogger()).GetByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, int64(1), user.ID)
		assert.Equal(t, "hash", user.HashedPassword)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		mock.ExpectQuery(query).WithArgs("ghost").WillReturnError(sql.ErrNoRows)

		_, err := postgres.NewPostgresUserStore(db, discardLogger()).GetByUsername(ctx, "ghost")
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})
}
