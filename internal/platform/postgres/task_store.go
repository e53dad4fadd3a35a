package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/phrazzld/genops-api/internal/domain"
	"github.com/phrazzld/genops-api/internal/platform/logger"
	"github.com/phrazzld/genops-api/internal/store"
)

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the TaskStore interface.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

const taskColumns = `id, user_id, building_name, generator_id, task_title,
		task_description, due_date, status, created_at, updated_at`

// ListByOwner implements store.TaskStore.ListByOwner
func (s *PostgresTaskStore) ListByOwner(ctx context.Context, userID int64) ([]domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to query tasks",
			slog.String("error", err.Error()),
			slog.Int64("user_id", userID))
		return nil, store.NewStoreError("task", "list", "query failed", MapError(err))
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			log.Warn("failed to close task rows", slog.String("error", cerr.Error()))
		}
	}()

	tasks := []domain.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			log.Error("failed to scan task row",
				slog.String("error", err.Error()),
				slog.Int64("user_id", userID))
			return nil, store.NewStoreError("task", "list", "scan failed", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating task rows",
			slog.String("error", err.Error()),
			slog.Int64("user_id", userID))
		return nil, store.NewStoreError("task", "list", "row iteration failed", MapError(err))
	}

	log.Debug("tasks listed",
		slog.Int64("user_id", userID),
		slog.Int("count", len(tasks)))
	return tasks, nil
}

// Create implements store.TaskStore.Create
func (s *PostgresTaskStore) Create(ctx context.Context, userID int64, fields domain.TaskFields) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO tasks (user_id, building_name, generator_id, task_title,
			task_description, due_date, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	var id int64
	err := s.db.QueryRowContext(ctx, query,
		userID,
		nullableString(fields.BuildingName),
		nullableString(fields.GeneratorID),
		nullableString(fields.Title),
		nullableString(fields.Description),
		nullableDate(fields.DueDate),
		nullableString(fields.Status),
	).Scan(&id)
	if err != nil {
		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.Int64("user_id", userID))
		return 0, store.NewStoreError("task", "create", "insert failed", MapError(err))
	}

	log.Debug("task created",
		slog.Int64("task_id", id),
		slog.Int64("user_id", userID))
	return id, nil
}

// Update implements store.TaskStore.Update
// Every column is overwritten; absent fields are stored as NULL.
func (s *PostgresTaskStore) Update(
	ctx context.Context,
	userID, taskID int64,
	fields domain.TaskFields,
) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE tasks
		SET building_name = $1, generator_id = $2, task_title = $3,
			task_description = $4, due_date = $5, status = $6,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $7 AND user_id = $8
	`
	result, err := s.db.ExecContext(ctx, query,
		nullableString(fields.BuildingName),
		nullableString(fields.GeneratorID),
		nullableString(fields.Title),
		nullableString(fields.Description),
		nullableDate(fields.DueDate),
		nullableString(fields.Status),
		taskID,
		userID,
	)
	if err != nil {
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", taskID),
			slog.Int64("user_id", userID))
		return 0, store.NewStoreError("task", "update", "update failed", MapError(err))
	}

	n, err := rowsAffected(result)
	if err != nil {
		return 0, store.NewStoreError("task", "update", "rows affected unavailable", err)
	}
	log.Debug("task update executed",
		slog.Int64("task_id", taskID),
		slog.Int64("user_id", userID),
		slog.Int64("rows_affected", n))
	return n, nil
}

// Delete implements store.TaskStore.Delete
func (s *PostgresTaskStore) Delete(ctx context.Context, userID, taskID int64) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx,
		`DELETE FROM tasks WHERE id = $1 AND user_id = $2`,
		taskID, userID)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", taskID),
			slog.Int64("user_id", userID))
		return 0, store.NewStoreError("task", "delete", "delete failed", MapError(err))
	}

	n, err := rowsAffected(result)
	if err != nil {
		return 0, store.NewStoreError("task", "delete", "rows affected unavailable", err)
	}
	log.Debug("task delete executed",
		slog.Int64("task_id", taskID),
		slog.Int64("user_id", userID),
		slog.Int64("rows_affected", n))
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (domain.Task, error) {
	var (
		task                                   domain.Task
		building, generator, title, desc, stat sql.NullString
		due                                    sql.NullTime
	)
	err := row.Scan(
		&task.ID,
		&task.UserID,
		&building,
		&generator,
		&title,
		&desc,
		&due,
		&stat,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return domain.Task{}, err
	}

	task.BuildingName = stringPtr(building)
	task.GeneratorID = stringPtr(generator)
	task.Title = stringPtr(title)
	task.Description = stringPtr(desc)
	if due.Valid {
		d := domain.NewDate(due.Time)
		task.DueDate = &d
	}
	if stat.Valid {
		s := domain.TaskStatus(stat.String)
		task.Status = &s
	}
	return task, nil
}

func nullableString[T ~string](p *T) any {
	if p == nil {
		return nil
	}
	return string(*p)
}

func nullableDate(d *domain.Date) any {
	if d == nil {
		return nil
	}
	return d.String()
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
