package store

import (
	"context"

	"github.com/phrazzld/genops-api/internal/domain"
)

// TaskStore defines persistence for tasks.
//
// Every method takes the owner's user ID and every statement an implementation
// issues must be restricted to rows with that owner. Callers must only pass
// an ID taken from a verified identity.
type TaskStore interface {
	// ListByOwner returns all tasks owned by userID, newest first.
	// Returns an empty slice when the user owns none.
	ListByOwner(ctx context.Context, userID int64) ([]domain.Task, error)

	// Create inserts a task owned by userID and returns the new task ID.
	Create(ctx context.Context, userID int64, fields domain.TaskFields) (int64, error)

	// Update replaces every field of the task matching both taskID and userID
	// and refreshes updated_at. It reports the number of rows affected;
	// zero is not an error.
	Update(ctx context.Context, userID, taskID int64, fields domain.TaskFields) (int64, error)

	// Delete removes the task matching both taskID and userID.
	// It reports the number of rows affected; zero is not an error.
	Delete(ctx context.Context, userID, taskID int64) (int64, error)
}
