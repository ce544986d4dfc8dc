package allocation

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"portfolioadvisor/internal/provider"
	"portfolioadvisor/internal/returns"
)

var (
	// ErrInvalidProfile reports an unknown risk preference or instrument.
	ErrInvalidProfile = errors.New("invalid profile")
	// ErrInvalidInput reports a non-positive amount or an unusable rate.
	ErrInvalidInput = returns.ErrInvalidInput
)

type RiskPreference string

const (
	RiskLow    RiskPreference = "low"
	RiskMedium RiskPreference = "medium"
	RiskHigh   RiskPreference = "high"
)

type Instrument string

const (
	FD     Instrument = "FD"
	Bank   Instrument = "Bank"
	SIP    Instrument = "SIP"
	Gold   Instrument = "Gold"
	Silver Instrument = "Silver"
)

// Instruments lists every instrument in report order.
var Instruments = []Instrument{FD, Bank, SIP, Gold, Silver}

// Selectable reports whether the user chooses the instrument. Metals are
// always part of a portfolio.
func (i Instrument) Selectable() bool {
	return i == FD || i == Bank || i == SIP
}

// Asset is the market asset name of a metal instrument.
func (i Instrument) Asset() string {
	return strings.ToLower(string(i))
}

// ParseInstrument accepts instrument names in any case.
func ParseInstrument(s string) (Instrument, error) {
	for _, i := range Instruments {
		if strings.EqualFold(strings.TrimSpace(s), string(i)) {
			return i, nil
		}
	}
	return "", fmt.Errorf("%w: unknown instrument %q", ErrInvalidProfile, s)
}

// UnmarshalText lets instruments arrive as "fd", "sip" and so on.
func (i *Instrument) UnmarshalText(b []byte) error {
	v, err := ParseInstrument(string(b))
	if err != nil {
		return err
	}
	*i = v
	return nil
}

// Profile is what a user tells us about themselves.
type Profile struct {
	Risk             RiskPreference `json:"risk_preference"`
	Instruments      []Instrument   `json:"selected_instruments"`
	InvestableAmount float64        `json:"investable_amount"`
}

// Rates are annual percentage rates for FD, Bank and SIP. Missing keys take
// the engine defaults.
type Rates map[Instrument]float64

func DefaultRates() Rates {
	return Rates{FD: 6.5, Bank: 3.5, SIP: 12.0}
}

// Template is a weight per instrument before selection is applied.
type Template map[Instrument]float64

func DefaultTemplates() map[RiskPreference]Template {
	return map[RiskPreference]Template{
		RiskLow:    {FD: 45, Bank: 25, SIP: 10, Gold: 15, Silver: 5},
		RiskMedium: {FD: 25, Bank: 15, SIP: 40, Gold: 15, Silver: 5},
		RiskHigh:   {FD: 10, Bank: 10, SIP: 60, Gold: 15, Silver: 5},
	}
}

// Allocation holds a percentage per instrument. All five instruments are
// present; unselected ones carry 0.
type Allocation map[Instrument]float64

// Projection is the one-year outlook of a single instrument. Rate is set for
// FD, Bank and SIP; the price fields are set for metals.
type Projection struct {
	Rate           *float64            `json:"rate,omitempty"`
	Price          *float64            `json:"price,omitempty"`
	PriceSource    provider.Provenance `json:"source,omitempty"`
	BaselinePrice  *float64            `json:"baseline_price,omitempty"`
	BaselineSource string              `json:"baseline_source,omitempty"`
	Amount         float64             `json:"amount"`
	ProjectedValue float64             `json:"projected_value"`
	ROIPercent     float64             `json:"roi_percent"`
}

// ExpectedReturns has a Projection for every instrument with a nonzero
// weight, plus the portfolio-level ROI.
type ExpectedReturns struct {
	ByInstrument            map[Instrument]Projection
	TotalExpectedROIPercent float64
}

// MarshalJSON writes instruments and total_expected_roi_percent as sibling
// keys of one object.
func (e ExpectedReturns) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(e.ByInstrument)+1)
	for i, p := range e.ByInstrument {
		out[string(i)] = p
	}
	out["total_expected_roi_percent"] = e.TotalExpectedROIPercent
	return json.Marshal(out)
}

func (e *ExpectedReturns) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	e.ByInstrument = make(map[Instrument]Projection, len(raw))
	for k, v := range raw {
		if k == "total_expected_roi_percent" {
			if err := json.Unmarshal(v, &e.TotalExpectedROIPercent); err != nil {
				return err
			}
			continue
		}
		var p Projection
		if err := json.Unmarshal(v, &p); err != nil {
			return fmt.Errorf("%s: %w", k, err)
		}
		e.ByInstrument[Instrument(k)] = p
	}
	return nil
}

type Recommendation struct {
	Portfolio       Allocation      `json:"portfolio"`
	ExpectedReturns ExpectedReturns `json:"expected_returns"`
}
