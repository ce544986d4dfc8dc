// Package postgres is a PostgreSQL-backed history.Store.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// DB wraps the database connection
type DB struct {
	*sql.DB
}

// NewDB opens and pings a connection.
// dsn should look like "host=localhost port=5432 user=postgres password=postgres dbname=advisor sslmode=disable"
func NewDB(ctx context.Context, dsn string) (*DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{DB: db}, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS price_history (
	asset  TEXT          NOT NULL,
	date   DATE          NOT NULL,
	price  NUMERIC(18,4) NOT NULL,
	unit   TEXT          NOT NULL DEFAULT 'g',
	source TEXT          NOT NULL DEFAULT 'seed',
	PRIMARY KEY (asset, date)
)`

// EnsureSchema creates the price_history table if it does not exist.
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create price_history: %w", err)
	}
	return nil
}
