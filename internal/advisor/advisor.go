// Package advisor serves portfolio recommendations: it gathers current metal
// prices, runs the allocation engine and keeps a per-user history of what it
// recommended.
package advisor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"portfolioadvisor/internal/aggregate"
	"portfolioadvisor/internal/allocation"
	"portfolioadvisor/internal/pricing"
	"portfolioadvisor/internal/provider"
)

// ErrNotFound is returned by Latest when a user has no recommendations.
var ErrNotFound = errors.New("not found")

// metals are priced before every recommendation.
var metals = []allocation.Instrument{allocation.Gold, allocation.Silver}

//go:generate mockgen -package=advisor_test -destination=mock_advisor_test.go -source=advisor.go
type PriceResolver interface {
	ResolveCurrentPrice(ctx context.Context, asset, location string) provider.Quote
}

type HistoricalResolver interface {
	ResolveHistoricalPrice(ctx context.Context, asset string, date time.Time) pricing.HistoricalQuote
}

type Recommender interface {
	Validate(p allocation.Profile) error
	Recommend(ctx context.Context, p allocation.Profile, currentPrices map[string]provider.Quote, rates allocation.Rates) (*allocation.Recommendation, error)
}

// Request is one recommendation ask.
type Request struct {
	UserID   string
	Profile  allocation.Profile
	Rates    allocation.Rates
	Location string
}

// Record is a stored recommendation together with the inputs that produced
// it.
type Record struct {
	ID              uuid.UUID                  `json:"id"`
	UserID          string                     `json:"user_id"`
	Profile         allocation.Profile         `json:"profile"`
	Rates           allocation.Rates           `json:"rates,omitempty"`
	Location        string                     `json:"location,omitempty"`
	Portfolio       allocation.Allocation      `json:"portfolio"`
	ExpectedReturns allocation.ExpectedReturns `json:"expected_returns"`
	SourcePrices    map[string]provider.Quote  `json:"source_prices"`
	Operation       *Operation                 `json:"operation,omitempty"`
	CreatedAt       time.Time                  `json:"created_at"`
}

type Service struct {
	prices     PriceResolver
	historical HistoricalResolver
	engine     Recommender
	log        Log
	profiles   ProfileStore
	logger     *zap.SugaredLogger
	now        func() time.Time
	newID      func() uuid.UUID
}

type Option func(*Service)

func WithLogger(l *zap.SugaredLogger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithProfiles replaces the in-memory profile store.
func WithProfiles(p ProfileStore) Option {
	return func(s *Service) {
		if p != nil {
			s.profiles = p
		}
	}
}

// WithIDs replaces uuid.New for record IDs.
func WithIDs(newID func() uuid.UUID) Option {
	return func(s *Service) {
		if newID != nil {
			s.newID = newID
		}
	}
}

func NewService(prices PriceResolver, historical HistoricalResolver, engine Recommender, log Log, opts ...Option) *Service {
	s := &Service{
		prices:     prices,
		historical: historical,
		engine:     engine,
		log:        log,
		profiles:   NewMemoryProfileStore(),
		logger:     zap.NewNop().Sugar(),
		now:        time.Now,
		newID:      uuid.New,
	}
	if s.log == nil {
		s.log = NewMemoryLog()
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Recommend prices the metals at the request location, runs the engine and
// records the result.
func (s *Service) Recommend(ctx context.Context, req Request) (*Record, error) {
	userID := strings.TrimSpace(req.UserID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", allocation.ErrInvalidProfile)
	}

	if err := s.engine.Validate(req.Profile); err != nil {
		return nil, err
	}

	quotes := make([]provider.Quote, 0, len(metals))
	for _, m := range metals {
		quotes = append(quotes, s.prices.ResolveCurrentPrice(ctx, m.Asset(), req.Location))
	}
	current := aggregate.LatestByAsset(quotes)

	rec, err := s.engine.Recommend(ctx, req.Profile, current, req.Rates)
	if err != nil {
		return nil, err
	}

	location := req.Location
	if q, ok := current[allocation.Gold.Asset()]; ok && q.Location != "" {
		location = q.Location
	}
	out := Record{
		ID:              s.newID(),
		UserID:          userID,
		Profile:         req.Profile,
		Rates:           req.Rates,
		Location:        location,
		Portfolio:       rec.Portfolio,
		ExpectedReturns: rec.ExpectedReturns,
		SourcePrices:    current,
		CreatedAt:       s.now().UTC(),
	}
	if err := s.log.Append(ctx, out); err != nil {
		return nil, fmt.Errorf("saving recommendation: %w", err)
	}

	s.logger.Infow("recommendation created",
		"id", out.ID,
		"user_id", userID,
		"risk", req.Profile.Risk,
		"total_roi", rec.ExpectedReturns.TotalExpectedROIPercent,
	)
	return &out, nil
}

// History returns a user's recommendations, newest first.
func (s *Service) History(ctx context.Context, userID string, limit int) ([]Record, error) {
	recs, err := s.log.ListByUser(ctx, strings.TrimSpace(userID), limit)
	if err != nil {
		return nil, fmt.Errorf("listing recommendations: %w", err)
	}
	return recs, nil
}

// Latest returns the user's most recent recommendation.
func (s *Service) Latest(ctx context.Context, userID string) (*Record, error) {
	recs, err := s.History(ctx, userID, 1)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("recommendation for user %q: %w", userID, ErrNotFound)
	}
	return &recs[0], nil
}

func (s *Service) Price(ctx context.Context, asset, location string) provider.Quote {
	return s.prices.ResolveCurrentPrice(ctx, asset, location)
}

func (s *Service) HistoricalPrice(ctx context.Context, asset string, date time.Time) pricing.HistoricalQuote {
	return s.historical.ResolveHistoricalPrice(ctx, asset, date)
}
