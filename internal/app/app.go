// Package app wires configuration into the services shared by the binaries.
package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"portfolioadvisor/internal/advisor"
	"portfolioadvisor/internal/allocation"
	"portfolioadvisor/internal/config"
	"portfolioadvisor/internal/history"
	"portfolioadvisor/internal/history/postgres"
	"portfolioadvisor/internal/httpx"
	"portfolioadvisor/internal/pricing"
	"portfolioadvisor/internal/provider"
	"portfolioadvisor/internal/provider/cache"
	"portfolioadvisor/internal/provider/duckduckgo"
	"portfolioadvisor/internal/provider/ratelimit"
)

type App struct {
	Advisor    *advisor.Service
	Resolver   *pricing.Resolver
	Historical *pricing.HistoricalResolver
	Engine     *allocation.Engine

	closers []func() error
}

// New builds the full service graph from cfg. Close releases the history
// store connection, if any.
func New(ctx context.Context, cfg config.Config, log *zap.SugaredLogger) (*App, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	a := &App{}

	store, err := a.openStore(ctx, cfg.History, log)
	if err != nil {
		return nil, err
	}

	rates, err := Rates(cfg.Allocation.DefaultRates)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	fallback := cfg.Market.Fallback()

	a.Resolver = pricing.NewResolver(LiveSource(cfg.Market, log),
		pricing.WithCache(cache.New(cfg.Market.CacheTTL())),
		pricing.WithFallback(fallback),
		pricing.WithDefaultLocation(cfg.Market.DefaultLocation),
		pricing.WithTimeout(cfg.Market.LiveTimeout()),
		pricing.WithLogger(log.Named("pricing")),
	)
	a.Historical = pricing.NewHistoricalResolver(store,
		pricing.WithTolerance(cfg.History.Tolerance()),
		pricing.WithHistoricalFallback(fallback),
		pricing.WithQueryTimeout(cfg.History.QueryTimeout()),
		pricing.WithHistoricalLogger(log.Named("history")),
	)
	a.Engine = allocation.NewEngine(a.Historical,
		allocation.WithDefaultRates(rates),
		allocation.WithFallback(fallback),
		allocation.WithLookback(cfg.Allocation.BaselineLookback()),
		allocation.WithLogger(log.Named("allocation")),
	)
	a.Advisor = advisor.NewService(a.Resolver, a.Historical, a.Engine, advisor.NewMemoryLog(),
		advisor.WithLogger(log.Named("advisor")),
	)
	return a, nil
}

func (a *App) Close() error {
	var first error
	for _, c := range a.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}

func (a *App) openStore(ctx context.Context, cfg config.History, log *zap.SugaredLogger) (history.Store, error) {
	switch cfg.Driver {
	case "postgres":
		db, err := postgres.NewDB(ctx, cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("history store: %w", err)
		}
		a.closers = append(a.closers, db.Close)
		if err := db.EnsureSchema(ctx); err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("history store: %w", err)
		}
		return postgres.NewStore(db), nil
	default:
		records := history.Seed(history.DefaultSeeds, cfg.SeedDays, time.Now())
		log.Infow("using in-memory history", "records", len(records))
		return history.NewMemoryStore(records...), nil
	}
}

// LiveSource returns the rate-gated live search client, or nil when live
// lookups are disabled.
func LiveSource(cfg config.Market, log *zap.SugaredLogger) provider.LiveSource {
	if !cfg.LiveEnabled {
		log.Warn("live price lookups disabled; quotes will come from the fallback table")
		return nil
	}
	httpClient := httpx.New(cfg.LiveTimeout())
	if cfg.UserAgent != "" {
		httpClient.UserAgent = cfg.UserAgent
	}
	client := duckduckgo.NewClient(
		duckduckgo.WithBaseURL(cfg.Endpoint),
		duckduckgo.WithHTTPClient(httpClient),
	)
	return ratelimit.Wrap(client, cfg.MaxRequestsPerMinute, cfg.Burst, cfg.MinInterval())
}

// Rates converts configured rates keyed by instrument name.
func Rates(in map[string]float64) (allocation.Rates, error) {
	out := make(allocation.Rates, len(in))
	for k, v := range in {
		inst, err := allocation.ParseInstrument(k)
		if err != nil {
			return nil, fmt.Errorf("allocation.default_rates: %w", err)
		}
		out[inst] = v
	}
	return out, nil
}
