package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/phrazzld/genops-api/internal/domain"
	"github.com/phrazzld/genops-api/internal/platform/logger"
	"github.com/phrazzld/genops-api/internal/store"
)

// TaskService exposes task CRUD for a verified identity.
// The owner of every task touched is always identity.UserID.
type TaskService interface {
	// List returns the caller's tasks, newest first. Never nil.
	List(ctx context.Context, identity domain.Identity) ([]domain.Task, error)

	// Create stores a new task owned by the caller and returns its ID.
	// A nil status defaults to Current.
	Create(ctx context.Context, identity domain.Identity, fields domain.TaskFields) (int64, error)

	// Update replaces every field of the caller's task. Absent fields become null.
	// Targeting a task that does not exist or belongs to someone else is not an error.
	Update(ctx context.Context, identity domain.Identity, taskID int64, fields domain.TaskFields) error

	// Delete removes the caller's task. Targeting a task that does not exist
	// or belongs to someone else is not an error.
	Delete(ctx context.Context, identity domain.Identity, taskID int64) error
}

type taskService struct {
	tasks  store.TaskStore
	logger *slog.Logger
}

var _ TaskService = (*taskService)(nil)

// NewTaskService creates a TaskService.
func NewTaskService(tasks store.TaskStore, logger *slog.Logger) (TaskService, error) {
	if tasks == nil {
		return nil, domain.NewValidationError("tasks", "cannot be nil", nil)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &taskService{
		tasks:  tasks,
		logger: logger.With("component", "task_service"),
	}, nil
}

func (s *taskService) log(ctx context.Context) *slog.Logger {
	return logger.FromContextOrDefault(ctx, s.logger)
}

func (s *taskService) List(ctx context.Context, identity domain.Identity) ([]domain.Task, error) {
	if !identity.Valid() {
		return nil, ErrUnauthenticated
	}
	tasks, err := s.tasks.ListByOwner(ctx, identity.UserID)
	if err != nil {
		s.log(ctx).Error("failed to list tasks", "error", err, "user_id", identity.UserID)
		return nil, storageError("task", "list", err)
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	return tasks, nil
}

func (s *taskService) Create(
	ctx context.Context,
	identity domain.Identity,
	fields domain.TaskFields,
) (int64, error) {
	if !identity.Valid() {
		return 0, ErrUnauthenticated
	}
	fields = fields.WithDefaultStatus()
	if err := fields.Validate(); err != nil {
		return 0, err
	}

	id, err := s.tasks.Create(ctx, identity.UserID, fields)
	if err != nil {
		return 0, s.mapStoreError(ctx, "create", identity, err)
	}
	s.log(ctx).Info("task created", "task_id", id, "user_id", identity.UserID)
	return id, nil
}

func (s *taskService) Update(
	ctx context.Context,
	identity domain.Identity,
	taskID int64,
	fields domain.TaskFields,
) error {
	if !identity.Valid() {
		return ErrUnauthenticated
	}
	if err := fields.Validate(); err != nil {
		return err
	}

	rows, err := s.tasks.Update(ctx, identity.UserID, taskID, fields)
	if err != nil {
		return s.mapStoreError(ctx, "update", identity, err)
	}
	s.log(ctx).Debug("task update applied",
		"task_id", taskID,
		"user_id", identity.UserID,
		"rows_affected", rows)
	return nil
}

func (s *taskService) Delete(ctx context.Context, identity domain.Identity, taskID int64) error {
	if !identity.Valid() {
		return ErrUnauthenticated
	}
	rows, err := s.tasks.Delete(ctx, identity.UserID, taskID)
	if err != nil {
		return s.mapStoreError(ctx, "delete", identity, err)
	}
	s.log(ctx).Debug("task delete applied",
		"task_id", taskID,
		"user_id", identity.UserID,
		"rows_affected", rows)
	return nil
}

func (s *taskService) mapStoreError(ctx context.Context, op string, identity domain.Identity, err error) error {
	if errors.Is(err, store.ErrInvalidEntity) {
		return domain.NewValidationError("task", "rejected by storage constraints", nil)
	}
	s.log(ctx).Error("task store operation failed",
		"operation", op,
		"error", err,
		"user_id", identity.UserID)
	return storageError("task", op, err)
}
