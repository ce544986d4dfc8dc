package ratelimit

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"portfolioadvisor/internal/provider"
)

// NewPerMinute builds a token bucket allowing requestsPerMinute with the given
// burst. burst <= 0 is treated as 1.
func NewPerMinute(requestsPerMinute, burst int) *rate.Limiter {
	if burst <= 0 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(float64(requestsPerMinute)/60.0), burst)
}

// Limited wraps a live source and gates calls using a token bucket.
type Limited struct {
	S provider.LiveSource
	L *rate.Limiter
}

func (l *Limited) Name() string { return l.S.Name() }

func (l *Limited) Query(ctx context.Context, terms string) (provider.Answer, error) {
	if l.L != nil {
		if err := l.L.Wait(ctx); err != nil {
			return provider.Answer{}, err
		}
	}
	return l.S.Query(ctx, terms)
}

// Wrap applies the configured gate to s: a token bucket when
// requestsPerMinute is set, otherwise a minimum interval when one is set.
func Wrap(s provider.LiveSource, requestsPerMinute, burst int, minInterval time.Duration) provider.LiveSource {
	switch {
	case requestsPerMinute > 0:
		return &Limited{S: s, L: NewPerMinute(requestsPerMinute, burst)}
	case minInterval > 0:
		return &MinInterval{S: s, Interval: minInterval}
	}
	return s
}
