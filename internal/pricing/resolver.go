// Package pricing resolves current and historical market prices for assets,
// degrading to a fallback table whenever the live source or history store
// cannot answer.
package pricing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"portfolioadvisor/internal/aggregate"
	"portfolioadvisor/internal/provider"
	"portfolioadvisor/internal/provider/cache"
)

const (
	DefaultLocation    = "india"
	DefaultLiveTimeout = 10 * time.Second
)

var errNoSource = errors.New("no live source configured")

//go:generate mockgen -package=pricing_test -destination=mock_live_source_test.go -source=../provider/provider.go LiveSource

// Resolver answers current-price lookups. It is safe for concurrent use.
type Resolver struct {
	source   provider.LiveSource
	cache    *cache.PriceCache
	fallback FallbackTable
	location string
	timeout  time.Duration
	log      *zap.SugaredLogger
	now      func() time.Time
}

type ResolverOption func(*Resolver)

// WithCache replaces the resolver's private cache.
func WithCache(c *cache.PriceCache) ResolverOption {
	return func(r *Resolver) {
		if c != nil {
			r.cache = c
		}
	}
}

func WithFallback(t FallbackTable) ResolverOption {
	return func(r *Resolver) { r.fallback = t }
}

// WithDefaultLocation sets the location used when a caller passes none.
func WithDefaultLocation(loc string) ResolverOption {
	return func(r *Resolver) {
		if loc = strings.TrimSpace(loc); loc != "" {
			r.location = loc
		}
	}
}

// WithTimeout bounds each live query.
func WithTimeout(d time.Duration) ResolverOption {
	return func(r *Resolver) {
		if d > 0 {
			r.timeout = d
		}
	}
}

func WithLogger(l *zap.SugaredLogger) ResolverOption {
	return func(r *Resolver) {
		if l != nil {
			r.log = l
		}
	}
}

// WithClock sets the clock used for quote timestamps.
func WithClock(now func() time.Time) ResolverOption {
	return func(r *Resolver) {
		if now != nil {
			r.now = now
		}
	}
}

func NewResolver(source provider.LiveSource, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		source:   source,
		fallback: DefaultFallback(),
		location: DefaultLocation,
		timeout:  DefaultLiveTimeout,
		log:      zap.NewNop().Sugar(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.cache == nil {
		r.cache = cache.New(cache.DefaultTTL)
	}
	return r
}

// Fallback returns the table the resolver degrades to.
func (r *Resolver) Fallback() FallbackTable { return r.fallback }

// ResolveCurrentPrice returns a quote for asset at location. It always
// returns a usable quote; failures show up in Source and Error.
func (r *Resolver) ResolveCurrentPrice(ctx context.Context, asset, location string) provider.Quote {
	asset = aggregate.NormalizeAsset(asset)
	location = strings.ToLower(strings.TrimSpace(location))
	if location == "" {
		location = r.location
	}

	if q, ok := r.cache.Get(asset, location); ok {
		r.log.Debugw("price cache hit", "asset", asset, "location", location, "source", q.Source)
		return q
	}

	price, found, err := r.queryLive(ctx, asset, location)
	if err != nil {
		q := r.fallbackQuote(asset, location, provider.ProvenanceErrorFallback)
		q.Error = err.Error()
		r.log.Warnw("live price lookup failed", "asset", asset, "location", location, "provenance", q.Source, "error", err)
		return q
	}

	var q provider.Quote
	if found {
		q = provider.Quote{
			Asset:     asset,
			Price:     price,
			Unit:      DefaultUnit,
			Source:    provider.ProvenanceLive,
			Timestamp: r.now().UTC(),
			Location:  location,
		}
	} else {
		q = r.fallbackQuote(asset, location, provider.ProvenanceStaticFallback)
		r.log.Warnw("no price in live answer", "asset", asset, "location", location, "provenance", q.Source)
	}

	r.cache.Put(asset, location, q)
	return q
}

func (r *Resolver) queryLive(ctx context.Context, asset, location string) (price float64, found bool, err error) {
	if r.source == nil {
		return 0, false, errNoSource
	}

	defer func() {
		if rec := recover(); rec != nil {
			price, found, err = 0, false, fmt.Errorf("live source panicked: %v", rec)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	ans, err := r.source.Query(ctx, asset+" price "+location)
	if err != nil {
		return 0, false, fmt.Errorf("%s: %w", r.source.Name(), err)
	}

	price, found = priceFromAnswer(ans.Text, ans.Related)
	return price, found, nil
}

func (r *Resolver) fallbackQuote(asset, location string, src provider.Provenance) provider.Quote {
	return provider.Quote{
		Asset:     asset,
		Price:     r.fallback.Lookup(asset),
		Unit:      DefaultUnit,
		Source:    src,
		Timestamp: r.now().UTC(),
		Location:  location,
	}
}
