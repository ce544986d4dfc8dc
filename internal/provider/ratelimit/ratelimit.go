package ratelimit

import (
	"context"
	"sync"
	"time"

	"portfolioadvisor/internal/provider"
)

// MinInterval wraps a live source and spaces calls at least Interval apart.
// Each caller reserves the next free slot under the lock and sleeps until it,
// so concurrent callers are released one interval apart rather than all at
// once. A caller whose context ends while waiting gives up its slot only if
// no later caller has reserved one.
type MinInterval struct {
	S        provider.LiveSource
	Interval time.Duration

	mu   sync.Mutex
	next time.Time
}

func (m *MinInterval) Name() string { return m.S.Name() }

func (m *MinInterval) Query(ctx context.Context, terms string) (provider.Answer, error) {
	if m.Interval <= 0 {
		return m.S.Query(ctx, terms)
	}

	slot := m.reserve(time.Now())
	if wait := time.Until(slot); wait > 0 {
		t := time.NewTimer(wait)
		defer t.Stop()
		select {
		case <-ctx.Done():
			m.release(slot)
			return provider.Answer{}, ctx.Err()
		case <-t.C:
		}
	}
	return m.S.Query(ctx, terms)
}

func (m *MinInterval) reserve(now time.Time) time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	slot := now
	if m.next.After(slot) {
		slot = m.next
	}
	m.next = slot.Add(m.Interval)
	return slot
}

func (m *MinInterval) release(slot time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.next.Equal(slot.Add(m.Interval)) {
		m.next = slot
	}
}
