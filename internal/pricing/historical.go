package pricing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"portfolioadvisor/internal/aggregate"
	"portfolioadvisor/internal/history"
)

// HistoricalProvenance records how a historical price was found.
type HistoricalProvenance string

const (
	ProvenanceExactMatch     HistoricalProvenance = "exact-match"
	ProvenanceNearestMatch   HistoricalProvenance = "nearest-match"
	ProvenanceStaticFallback HistoricalProvenance = "static-fallback"
	ProvenanceErrorFallback  HistoricalProvenance = "error-fallback"
)

const (
	DefaultTolerance    = 7 * 24 * time.Hour
	DefaultQueryTimeout = 5 * time.Second
)

var errNoStore = errors.New("no history store configured")

//go:generate mockgen -package=pricing_test -destination=mock_store_test.go -source=../history/history.go Store

// HistoricalQuote is a price for an asset on (or near) a date. Date is the
// requested day; RecordDate is the day of the record actually used.
type HistoricalQuote struct {
	Asset        string               `json:"asset"`
	Date         time.Time            `json:"date"`
	RecordDate   *time.Time           `json:"record_date,omitempty"`
	Price        float64              `json:"price"`
	Unit         string               `json:"unit"`
	Source       HistoricalProvenance `json:"source"`
	RecordSource string               `json:"record_source,omitempty"`
	Error        string               `json:"error,omitempty"`
}

type HistoricalResolver struct {
	store        history.Store
	tolerance    time.Duration
	fallback     FallbackTable
	queryTimeout time.Duration
	log          *zap.SugaredLogger
}

type HistoricalOption func(*HistoricalResolver)

// WithTolerance sets how far from the requested day a record may be.
func WithTolerance(d time.Duration) HistoricalOption {
	return func(h *HistoricalResolver) {
		if d >= 0 {
			h.tolerance = d
		}
	}
}

func WithHistoricalFallback(t FallbackTable) HistoricalOption {
	return func(h *HistoricalResolver) { h.fallback = t }
}

func WithHistoricalLogger(l *zap.SugaredLogger) HistoricalOption {
	return func(h *HistoricalResolver) {
		if l != nil {
			h.log = l
		}
	}
}

// WithQueryTimeout bounds both store lookups of a single resolution.
func WithQueryTimeout(d time.Duration) HistoricalOption {
	return func(h *HistoricalResolver) {
		if d > 0 {
			h.queryTimeout = d
		}
	}
}

func NewHistoricalResolver(store history.Store, opts ...HistoricalOption) *HistoricalResolver {
	h := &HistoricalResolver{
		store:        store,
		tolerance:    DefaultTolerance,
		fallback:     DefaultFallback(),
		queryTimeout: DefaultQueryTimeout,
		log:          zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// ResolveHistoricalPrice never fails: store errors and misses degrade to the
// fallback table.
func (h *HistoricalResolver) ResolveHistoricalPrice(ctx context.Context, asset string, date time.Time) HistoricalQuote {
	asset = aggregate.NormalizeAsset(asset)
	day := history.Day(date)

	rec, src, err := h.lookup(ctx, asset, day)
	if err != nil {
		q := h.fallbackQuote(asset, day, ProvenanceErrorFallback)
		q.Error = err.Error()
		h.log.Warnw("history lookup failed", "asset", asset, "date", day.Format(time.DateOnly), "provenance", q.Source, "error", err)
		return q
	}
	if rec == nil {
		h.log.Debugw("no history near date", "asset", asset, "date", day.Format(time.DateOnly))
		return h.fallbackQuote(asset, day, ProvenanceStaticFallback)
	}

	recDay := history.Day(rec.Date)
	unit := rec.Unit
	if unit == "" {
		unit = DefaultUnit
	}
	return HistoricalQuote{
		Asset:        asset,
		Date:         day,
		RecordDate:   &recDay,
		Price:        rec.Price,
		Unit:         unit,
		Source:       src,
		RecordSource: rec.Source,
	}
}

func (h *HistoricalResolver) lookup(ctx context.Context, asset string, day time.Time) (*history.Record, HistoricalProvenance, error) {
	if h.store == nil {
		return nil, "", errNoStore
	}

	ctx, cancel := context.WithTimeout(ctx, h.queryTimeout)
	defer cancel()

	rec, err := h.store.FindExact(ctx, asset, day)
	if err != nil {
		return nil, "", fmt.Errorf("exact lookup: %w", err)
	}
	if rec != nil {
		return rec, ProvenanceExactMatch, nil
	}

	rec, err = h.store.FindNearest(ctx, asset, day, h.tolerance)
	if err != nil {
		return nil, "", fmt.Errorf("nearest lookup: %w", err)
	}
	if rec != nil {
		return rec, ProvenanceNearestMatch, nil
	}
	return nil, "", nil
}

func (h *HistoricalResolver) fallbackQuote(asset string, day time.Time, src HistoricalProvenance) HistoricalQuote {
	return HistoricalQuote{
		Asset:  asset,
		Date:   day,
		Price:  h.fallback.Lookup(asset),
		Unit:   DefaultUnit,
		Source: src,
	}
}
