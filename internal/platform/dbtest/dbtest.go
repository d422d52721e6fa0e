// Package dbtest provides the shared Postgres fixture for storage-backed
// tests. Tests are skipped when no database is reachable, so the pure
// units of the suite still run everywhere.
package dbtest

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/spoorthi225f2/Library/internal/platform/db"
)

// Setup connects using the PG* environment variables (with local
// defaults), applies the schema, and truncates all tables so every test
// starts from a clean state. The connection is closed on test cleanup.
func Setup(t testing.TB) *sqlx.DB {
	t.Helper()

	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		envOr("PGHOST", "localhost"),
		envOr("PGPORT", "5432"),
		envOr("PGUSER", "library"),
		envOr("PGPASSWORD", "library"),
		envOr("PGDATABASE", "library_test"),
	)

	database, err := sqlx.Open("postgres", connStr)
	if err != nil {
		t.Fatalf("open database connection: %v", err)
	}
	if err := database.Ping(); err != nil {
		t.Skipf("skipping: could not connect to postgres: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	ctx := context.Background()
	if err := db.Migrate(ctx, database); err != nil {
		t.Fatalf("apply schema: %v", err)
	}
	Truncate(t, database)

	return database
}

// Truncate wipes all rows. Also used by property tests that need a clean
// database per generated case.
func Truncate(t testing.TB, database *sqlx.DB) {
	t.Helper()
	if _, err := database.Exec(`TRUNCATE TABLE borrowed_books, books, users CASCADE`); err != nil {
		t.Fatalf("truncate tables: %v", err)
	}
}

func envOr(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
