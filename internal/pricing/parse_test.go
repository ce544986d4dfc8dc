package pricing_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"portfolioadvisor/internal/pricing"
)

func TestParsePriceFromText(t *testing.T) {
	t.Parallel()

	cases := []struct {
		text  string
		want  float64
		found bool
	}{
		{"Gold price in India is ₹6,230.50 per gram", 6230.50, true},
		{"1,23,456 INR per kg", 123456, true},
		{"silver 74 INR", 74, true},
		{"74.25", 74.25, true},
		{"first 12.5 then 99", 12.5, true},
		{"no digits here", 0, false},
		{"", 0, false},
		{"0.00 per gram", 0, false},
	}
	for _, tc := range cases {
		got, ok := pricing.ParsePriceFromText(tc.text)
		require.Equal(t, tc.found, ok, tc.text)
		require.InDelta(t, tc.want, got, 1e-9, tc.text)
	}
}

func TestFallbackTable_Lookup(t *testing.T) {
	t.Parallel()

	table := pricing.DefaultFallback()
	require.Equal(t, 6230.50, table.Lookup("gold"))
	require.Equal(t, 6230.50, table.Lookup("XAU"))
	require.Equal(t, 74.25, table.Lookup("Silver"))
	require.Equal(t, 5000.0, table.Lookup("platinum"))

	custom := pricing.FallbackTable{Prices: map[string]float64{"gold": 1}, Default: 2}
	require.Equal(t, 1.0, custom.Lookup("gold"))
	require.Equal(t, 2.0, custom.Lookup("silver"))
}
