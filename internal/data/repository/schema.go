package repository

import (
	"context"
	"fmt"

	"github.com/atherlangga/dddtix/pkg/database"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS screenings (
		movie_code     TEXT PRIMARY KEY,
		movie_name     TEXT NOT NULL,
		screening_date TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS screening_tickets (
		movie_code TEXT NOT NULL REFERENCES screenings (movie_code) ON DELETE CASCADE,
		position   INT NOT NULL,
		seat       TEXT NOT NULL,
		price      DOUBLE PRECISION NOT NULL,
		available  BOOLEAN NOT NULL,
		PRIMARY KEY (movie_code, seat)
	)`,
	`CREATE TABLE IF NOT EXISTS customers (
		id      TEXT PRIMARY KEY,
		deposit DOUBLE PRECISION NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id           TEXT PRIMARY KEY,
		customer_id  TEXT NOT NULL REFERENCES customers (id) ON DELETE CASCADE,
		movie_code   TEXT NOT NULL,
		seat_number  TEXT NOT NULL,
		price_amount DOUBLE PRECISION NOT NULL,
		paid_amount  DOUBLE PRECISION NOT NULL,
		status       TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_bookings_customer_id ON bookings (customer_id)`,
	`CREATE INDEX IF NOT EXISTS idx_screenings_date ON screenings (screening_date)`,
}

// EnsureSchema creates the postgres tables when they do not exist yet.
func EnsureSchema(ctx context.Context, db database.PgxIface) error {
	for _, statement := range schemaStatements {
		if _, err := db.Exec(ctx, statement); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
