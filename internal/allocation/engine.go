// Package allocation turns a risk profile into a portfolio split across
// fixed deposits, bank savings, SIPs and precious metals, with one-year
// projected returns for each part.
package allocation

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"portfolioadvisor/internal/pricing"
	"portfolioadvisor/internal/provider"
	"portfolioadvisor/internal/returns"
)

// DefaultLookback is how far back the metal baseline price is taken.
const DefaultLookback = 30 * 24 * time.Hour

// BaselineResolver supplies the historical price a metal's return is
// measured against.
//
//go:generate mockgen -package=allocation_test -destination=mock_baseline_resolver_test.go -source=engine.go BaselineResolver
type BaselineResolver interface {
	ResolveHistoricalPrice(ctx context.Context, asset string, date time.Time) pricing.HistoricalQuote
}

type Engine struct {
	baseline  BaselineResolver
	templates map[RiskPreference]Template
	rates     Rates
	fallback  pricing.FallbackTable
	lookback  time.Duration
	now       func() time.Time
	log       *zap.SugaredLogger
}

type Option func(*Engine)

// WithDefaultRates sets the rates used for keys a request leaves out.
func WithDefaultRates(r Rates) Option {
	return func(e *Engine) {
		for k, v := range r {
			e.rates[k] = v
		}
	}
}

// WithFallback sets the prices used for metals missing from the current
// quotes.
func WithFallback(t pricing.FallbackTable) Option {
	return func(e *Engine) { e.fallback = t }
}

func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

func WithLookback(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.lookback = d
		}
	}
}

// WithTemplates replaces the built-in risk templates.
func WithTemplates(t map[RiskPreference]Template) Option {
	return func(e *Engine) {
		if t != nil {
			e.templates = t
		}
	}
}

func WithLogger(l *zap.SugaredLogger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

func NewEngine(baseline BaselineResolver, opts ...Option) *Engine {
	e := &Engine{
		baseline:  baseline,
		templates: DefaultTemplates(),
		rates:     DefaultRates(),
		fallback:  pricing.DefaultFallback(),
		lookback:  DefaultLookback,
		now:       time.Now,
		log:       zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Recommend splits the profile's investable amount and projects each part
// over one year. currentPrices is keyed by asset name ("gold", "silver").
func (e *Engine) Recommend(ctx context.Context, p Profile, currentPrices map[string]provider.Quote, rates Rates) (*Recommendation, error) {
	tmpl, selected, err := e.check(p)
	if err != nil {
		return nil, err
	}
	amount := p.InvestableAmount

	portfolio := weigh(tmpl, selected)

	er := ExpectedReturns{ByInstrument: make(map[Instrument]Projection)}
	var total float64
	for _, inst := range Instruments {
		w := portfolio[inst]
		if w == 0 {
			continue
		}
		invested := amount * w / 100

		var proj Projection
		if inst.Selectable() {
			proj, err = e.projectDeposit(inst, invested, e.rate(inst, rates))
		} else {
			proj = e.projectMetal(ctx, inst, invested, currentPrices)
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", inst, err)
		}
		er.ByInstrument[inst] = proj
		total += proj.ProjectedValue
	}
	er.TotalExpectedROIPercent = (total - amount) / amount * 100

	return &Recommendation{Portfolio: portfolio, ExpectedReturns: er}, nil
}

// Validate reports whether Recommend would accept p, without pricing
// anything.
func (e *Engine) Validate(p Profile) error {
	_, _, err := e.check(p)
	return err
}

func (e *Engine) check(p Profile) (Template, map[Instrument]bool, error) {
	tmpl, ok := e.templates[p.Risk]
	if !ok {
		return nil, nil, fmt.Errorf("%w: unknown risk preference %q", ErrInvalidProfile, p.Risk)
	}
	amount := p.InvestableAmount
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return nil, nil, fmt.Errorf("%w: investable amount must be positive, got %v", ErrInvalidInput, amount)
	}

	selected := make(map[Instrument]bool, len(p.Instruments))
	for _, raw := range p.Instruments {
		inst, err := ParseInstrument(string(raw))
		if err != nil {
			return nil, nil, err
		}
		selected[inst] = true
	}
	return tmpl, selected, nil
}

// weigh applies the selection to a template and rescales to 100, rounding
// each weight to one decimal. The rounded weights may sum to 99.9 or 100.1.
func weigh(tmpl Template, selected map[Instrument]bool) Allocation {
	out := make(Allocation, len(Instruments))
	var total float64
	for _, inst := range Instruments {
		w := tmpl[inst]
		if inst.Selectable() && !selected[inst] {
			w = 0
		}
		out[inst] = w
		total += w
	}
	if total <= 0 {
		for inst := range out {
			out[inst] = 0
		}
		return out
	}

	scale := decimal.NewFromInt(100).Div(decimal.NewFromFloat(total))
	for inst, w := range out {
		out[inst] = decimal.NewFromFloat(w).Mul(scale).Round(1).InexactFloat64()
	}
	return out
}

func (e *Engine) rate(inst Instrument, rates Rates) float64 {
	if r, ok := rates[inst]; ok {
		return r
	}
	return e.rates[inst]
}

func (e *Engine) projectDeposit(inst Instrument, invested, rate float64) (Projection, error) {
	var fv, roi float64
	switch inst {
	case FD:
		r, err := returns.FixedDeposit(invested, rate, returns.DefaultYears)
		if err != nil {
			return Projection{}, err
		}
		fv, roi = r.FutureValue, r.ROIPercent
	case Bank:
		r, err := returns.BankSavings(invested, rate, returns.DefaultYears, true)
		if err != nil {
			return Projection{}, err
		}
		fv, roi = r.FutureValue, r.ROIPercent
	case SIP:
		r, err := returns.SIP(invested/float64(returns.DefaultMonths), rate, returns.DefaultMonths)
		if err != nil {
			return Projection{}, err
		}
		fv, roi = r.FutureValue, r.ROIPercent
	}
	return Projection{
		Rate:           &rate,
		Amount:         invested,
		ProjectedValue: fv,
		ROIPercent:     roi,
	}, nil
}

func (e *Engine) projectMetal(ctx context.Context, inst Instrument, invested float64, currentPrices map[string]provider.Quote) Projection {
	asset := inst.Asset()

	current, src := e.fallback.Lookup(asset), provider.ProvenanceStaticFallback
	if q, ok := currentPrices[asset]; ok {
		current, src = q.Price, q.Source
	} else {
		e.log.Debugw("no current quote, using fallback", "asset", asset, "price", current)
	}

	baseline, baselineSrc := e.fallback.Lookup(asset), string(pricing.ProvenanceStaticFallback)
	if e.baseline != nil {
		hq := e.baseline.ResolveHistoricalPrice(ctx, asset, e.now().Add(-e.lookback))
		baseline, baselineSrc = hq.Price, string(hq.Source)
	}

	roi := returns.MetalROI(current, baseline)
	return Projection{
		Price:          &current,
		PriceSource:    src,
		BaselinePrice:  &baseline,
		BaselineSource: baselineSrc,
		Amount:         invested,
		ProjectedValue: invested * (1 + roi/100),
		ROIPercent:     roi,
	}
}
