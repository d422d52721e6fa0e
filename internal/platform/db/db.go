package db

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

const driverName = "postgres"

// Connect opens a pooled connection to Postgres and verifies it with a
// ping. Pool limits are sized so several stateless request handlers can
// share one database without exhausting max_connections.
func Connect(databaseURL string) (*sqlx.DB, error) {
	database, err := sqlx.Open(driverName, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := database.Ping(); err != nil {
		database.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	database.SetMaxOpenConns(40)
	database.SetMaxIdleConns(10)
	database.SetConnMaxLifetime(30 * time.Minute)
	database.SetConnMaxIdleTime(5 * time.Minute)

	return database, nil
}
