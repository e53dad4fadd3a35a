package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/genops-api/internal/platform/postgres"
)

// runMigrations executes a goose command against the embedded migrations.
func runMigrations(ctx context.Context, db *sql.DB, logger *slog.Logger, command string, args ...string) error {
	logger.Info("running database migrations", "command", command)
	if err := postgres.Migrate(ctx, db, logger, command, args...); err != nil {
		return fmt.Errorf("migration %q failed: %w", command, err)
	}
	logger.Info("database migrations finished", "command", command)
	return nil
}
