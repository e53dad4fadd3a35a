//go:build integration

package testdb

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/genops-api/internal/platform/postgres"
	"github.com/phrazzld/genops-api/internal/redact"
)

// TestTimeout bounds connection checks and migrations.
const TestTimeout = 30 * time.Second

// databaseURLEnvVars are consulted in order.
var databaseURLEnvVars = []string{"GENOPS_TEST_DATABASE_URL", "DATABASE_URL"}

// GetTestDatabaseURL returns the first configured test database URL, or "".
func GetTestDatabaseURL() string {
	for _, name := range databaseURLEnvVars {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

// ShouldSkipDatabaseTest reports whether no test database is configured.
func ShouldSkipDatabaseTest() bool {
	return GetTestDatabaseURL() == ""
}

// GetTestDBWithT opens the test database, applies all migrations and
// closes the pool when the test finishes. The test is skipped when no
// database is configured.
func GetTestDBWithT(t *testing.T) *sql.DB {
	t.Helper()

	dbURL := GetTestDatabaseURL()
	if dbURL == "" {
		t.Skip("no test database configured; set GENOPS_TEST_DATABASE_URL")
	}

	db, err := sql.Open("pgx", dbURL)
	require.NoError(t, err, "failed to open test database %s", redact.String(dbURL))
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("failed to close test database: %v", err)
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	require.NoError(t, db.PingContext(ctx), "failed to ping test database %s", redact.String(dbURL))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	require.NoError(t, postgres.Migrate(ctx, db, logger, "up"), "failed to migrate test database")
	return db
}
