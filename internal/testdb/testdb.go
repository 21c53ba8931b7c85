//go:build integration

package testdb

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/todaku-reader/todaku-api/internal/platform/postgres"
	"github.com/todaku-reader/todaku-api/internal/redact"
)

// URLEnvVars are checked in order for the test database URL.
var URLEnvVars = []string{"TODAKU_TEST_DATABASE_URL", "DATABASE_URL"}

// Timeout bounds connection and migration during setup.
const Timeout = 30 * time.Second

var ciEnvVars = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}

// URL returns the configured test database URL, skipping the test when none
// is set outside CI.
func URL(t *testing.T) string {
	t.Helper()
	for _, name := range URLEnvVars {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	if isCI() {
		t.Fatalf("no test database configured: set one of %v", URLEnvVars)
	}
	t.Skipf("no test database configured: set one of %v", URLEnvVars)
	return ""
}

// Open connects to the test database, applies migrations and registers a
// cleanup that empties every table.
func Open(t *testing.T) *sqlx.DB {
	t.Helper()
	url := URL(t)

	ctx, cancel := context.WithTimeout(context.Background(), Timeout)
	defer cancel()

	db, err := postgres.Open(ctx, url, 5)
	if err != nil {
		t.Fatalf("test database connection failed: %s", redact.Error(err))
	}

	migrator, err := postgres.NewMigrator(db, nil)
	require.NoError(t, err)
	_, err = migrator.Up(ctx)
	require.NoError(t, err, "migrations failed")

	Truncate(t, db)
	t.Cleanup(func() {
		Truncate(t, db)
		_ = db.Close()
	})
	return db
}

// Truncate removes all rows from the application tables.
func Truncate(t *testing.T, db *sqlx.DB) {
	t.Helper()
	_, err := db.Exec("TRUNCATE lesson_upvotes, lessons")
	require.NoError(t, err, "failed to truncate tables")
}

func isCI() bool {
	for _, name := range ciEnvVars {
		if os.Getenv(name) != "" {
			return true
		}
	}
	return false
}
