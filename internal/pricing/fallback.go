package pricing

import "portfolioadvisor/internal/aggregate"

// DefaultUnit is the unit every price in this package is quoted in.
const DefaultUnit = "g"

// FallbackTable supplies a price when neither the live source nor the
// historical store can. Keys are normalized asset names.
type FallbackTable struct {
	Prices  map[string]float64 `json:"prices" toml:"prices"`
	Default float64            `json:"default" toml:"default"`
}

// DefaultFallback holds per-gram INR prices for the two metals.
func DefaultFallback() FallbackTable {
	return FallbackTable{
		Prices: map[string]float64{
			"gold":   6230.50,
			"silver": 74.25,
		},
		Default: 5000,
	}
}

// Lookup returns the fallback price for asset, or Default when the asset is
// not listed.
func (t FallbackTable) Lookup(asset string) float64 {
	if p, ok := t.Prices[aggregate.NormalizeAsset(asset)]; ok && p >= 0 {
		return p
	}
	if t.Default < 0 {
		return 0
	}
	return t.Default
}
