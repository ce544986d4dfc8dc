package aggregate

import (
	"strings"
	"time"

	"portfolioadvisor/internal/provider"
)

// aliasMap normalizes ticker symbols and common spellings to asset names.
//
//	XAU, GOLD, sona -> gold
//	XAG, SILVER, chandi -> silver
var aliasMap = map[string]string{
	"xau":    "gold",
	"gold":   "gold",
	"sona":   "gold",
	"xag":    "silver",
	"silver": "silver",
	"chandi": "silver",
}

// NormalizeAsset lower-cases and trims an asset name and resolves aliases.
// Unknown names pass through lower-cased.
func NormalizeAsset(asset string) string {
	a := strings.ToLower(strings.TrimSpace(asset))
	if norm, ok := aliasMap[a]; ok {
		return norm
	}
	return a
}

// LatestByAsset collapses quotes by normalized asset keeping the newest.
// For equal timestamps, later input wins. Zero timestamps are replaced with time.Now().UTC().
func LatestByAsset(quotes []provider.Quote) map[string]provider.Quote {
	now := time.Now().UTC()
	latest := make(map[string]provider.Quote, len(quotes))

	for _, q := range quotes {
		asset := NormalizeAsset(q.Asset)
		if asset == "" {
			continue
		}
		if q.Timestamp.IsZero() {
			q.Timestamp = now
		}
		q.Asset = asset

		if cur, ok := latest[asset]; ok && q.Timestamp.Before(cur.Timestamp) {
			continue
		}
		latest[asset] = q
	}
	return latest
}
