// cmd/library/seed.go
package main

import (
	"context"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/spoorthi225f2/Library/internal/accounts"
	"github.com/spoorthi225f2/Library/internal/catalog"
	"github.com/spoorthi225f2/Library/internal/platform/db"
)

var sampleBooks = []struct {
	title  string
	author string
}{
	{"The Midnight Kite of Varanasi", "Arunika Senapati"},
	{"Whispers of the Monsoon", "Rohan Mehra"},
	{"The Last Stepwell", "Anaya Iyer"},
	{"Tales of the Banyan Court", "Devansh Rathore"},
	{"The River's Secret of Kaveri", "Priyanka Deshpande"},
	{"Marigold and Ashes", "Kavya Nair"},
	{"The Glass Lantern of Jodhpur", "Samarjeet Bhatia"},
	{"Echoes from the Spice Market", "Mehul Joshi"},
}

// seed creates the default admin account and the sample catalog on first
// run. A non-empty users table means the instance is already initialized.
func seed(ctx context.Context, database *sqlx.DB, accountsSvc accounts.Service, catalogSvc catalog.Service, adminPassword string, logger *slog.Logger) error {
	var userCount int
	if err := database.GetContext(ctx, &userCount, `SELECT COUNT(*) FROM users`); err != nil {
		return &db.StorageError{Op: "count users", Err: err}
	}
	if userCount > 0 {
		return nil
	}

	if _, err := accountsSvc.Register(ctx, "admin", adminPassword, accounts.RoleAdmin); err != nil {
		return err
	}
	for _, book := range sampleBooks {
		if _, err := catalogSvc.Create(ctx, book.title, book.author); err != nil {
			return err
		}
	}

	logger.Info("seeded initial data", "books", len(sampleBooks))
	return nil
}
