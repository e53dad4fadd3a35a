package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/genops-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create inserts a new user and sets user.ID and user.CreatedAt from the database.
	// Returns ErrUsernameOrEmailExists if either unique column is already taken;
	// in that case no row is written.
	Create(ctx context.Context, user *domain.User) error

	// GetByUsername retrieves a user by username.
	// Returns ErrUserNotFound if the user does not exist.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// WithTx returns a new UserStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) UserStore
}
