package provider

import (
	"context"
	"time"
)

// Provenance records which resolution stage produced a price.
type Provenance string

const (
	ProvenanceLive           Provenance = "live-source"
	ProvenanceStaticFallback Provenance = "static-fallback"
	ProvenanceErrorFallback  Provenance = "error-fallback"
)

// Quote is the normalized shape returned for a current market price.
// Price is per Unit in the default currency; it is never negative.
type Quote struct {
	Asset     string     `json:"asset"`
	Price     float64    `json:"price"`
	Unit      string     `json:"unit"`
	Source    Provenance `json:"source"`
	Timestamp time.Time  `json:"timestamp"`
	Location  string     `json:"location,omitempty"`
	Error     string     `json:"error,omitempty"`
}

// Answer is the unstructured reply of a live search source: a primary answer
// text plus related text fragments, in the order the source returned them.
type Answer struct {
	Text    string
	Related []string
}

// LiveSource answers free-text searches such as "gold price india".
type LiveSource interface {
	Name() string
	Query(ctx context.Context, terms string) (Answer, error)
}
