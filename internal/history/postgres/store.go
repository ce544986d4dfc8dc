package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"portfolioadvisor/internal/history"
)

// Store implements history.Store over the price_history table.
type Store struct {
	db *DB
}

func NewStore(db *DB) *Store {
	return &Store{db: db}
}

var _ history.Store = (*Store)(nil)

// Add upserts records keyed by (asset, date).
func (s *Store) Add(ctx context.Context, records ...history.Record) error {
	const query = `
		INSERT INTO price_history (asset, date, price, unit, source)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (asset, date) DO UPDATE
		SET price = EXCLUDED.price, unit = EXCLUDED.unit, source = EXCLUDED.source
	`

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		_, err := stmt.ExecContext(ctx,
			r.Asset,
			history.Day(r.Date),
			decimal.NewFromFloat(r.Price).String(),
			r.Unit,
			r.Source,
		)
		if err != nil {
			return fmt.Errorf("failed to insert %s on %s: %w", r.Asset, r.Date.Format(time.DateOnly), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit price history: %w", err)
	}
	return nil
}

func (s *Store) FindExact(ctx context.Context, asset string, date time.Time) (*history.Record, error) {
	const query = `
		SELECT asset, date, price, unit, source
		FROM price_history
		WHERE asset = $1 AND date = $2::date
	`

	return s.scanOne(s.db.QueryRowContext(ctx, query, asset, history.Day(date)))
}

// FindNearest orders candidates by absolute day distance, then by date so
// the earlier record wins a tie.
func (s *Store) FindNearest(ctx context.Context, asset string, date time.Time, window time.Duration) (*history.Record, error) {
	const query = `
		SELECT asset, date, price, unit, source
		FROM price_history
		WHERE asset = $1 AND ABS(date - $2::date) <= $3
		ORDER BY ABS(date - $2::date), date
		LIMIT 1
	`

	return s.scanOne(s.db.QueryRowContext(ctx, query, asset, history.Day(date), windowDays(window)))
}

func (s *Store) scanOne(row *sql.Row) (*history.Record, error) {
	var rec history.Record
	var priceStr string

	err := row.Scan(&rec.Asset, &rec.Date, &priceStr, &rec.Unit, &rec.Source)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query price history: %w", err)
	}

	price, err := decimal.NewFromString(priceStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse price: %w", err)
	}
	rec.Price = price.InexactFloat64()
	rec.Date = history.Day(rec.Date)

	return &rec, nil
}

// windowDays converts a window to whole days, rounding down.
func windowDays(window time.Duration) int {
	if window < 0 {
		return 0
	}
	return int(window / (24 * time.Hour))
}
