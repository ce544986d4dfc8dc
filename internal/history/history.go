// Package history stores dated asset prices and answers exact and
// nearest-date lookups over them.
package history

import (
	"context"
	"time"
)

// Record is one dated price for an asset. Records are unique per
// (Asset, Date); Date is held at day granularity in UTC.
type Record struct {
	Asset  string    `json:"asset"`
	Date   time.Time `json:"date"`
	Price  float64   `json:"price"`
	Unit   string    `json:"unit"`
	Source string    `json:"source"`
}

// Store is the read side of a historical price store. Both lookups return
// (nil, nil) when nothing matches.
type Store interface {
	// FindExact returns the record dated exactly on date.
	FindExact(ctx context.Context, asset string, date time.Time) (*Record, error)

	// FindNearest returns the record closest to date within ±window.
	FindNearest(ctx context.Context, asset string, date time.Time, window time.Duration) (*Record, error)
}

// Day truncates t to midnight UTC of its calendar day.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
