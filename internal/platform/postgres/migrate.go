package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pressly/goose/v3"
)

// Migrations holds the SQL schema migrations in goose format.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the directory of Migrations that goose reads.
const MigrationsDir = "migrations"

// MigrationCommands lists the goose commands accepted by Migrate.
var MigrationCommands = []string{"up", "down", "status", "version", "reset"}

// slogGooseLogger adapts slog to goose.Logger.
type slogGooseLogger struct {
	logger *slog.Logger
}

func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	// Logged without exiting; goose also returns the error.
	l.logger.Error(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

// Migrate runs a goose command against db using the embedded migrations.
func Migrate(ctx context.Context, db *sql.DB, logger *slog.Logger, command string, args ...string) error {
	if !validMigrationCommand(command) {
		return fmt.Errorf("unknown migration command %q (expected one of %s)",
			command, strings.Join(MigrationCommands, ", "))
	}
	if logger == nil {
		logger = slog.Default()
	}

	goose.SetBaseFS(Migrations)
	goose.SetLogger(&slogGooseLogger{logger: logger.With("component", "migrations")})
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.RunContext(ctx, command, db, MigrationsDir, args...); err != nil {
		return fmt.Errorf("migration %s failed: %w", command, err)
	}
	return nil
}

func validMigrationCommand(command string) bool {
	for _, c := range MigrationCommands {
		if c == command {
			return true
		}
	}
	return false
}
