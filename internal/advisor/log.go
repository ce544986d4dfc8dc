package advisor

import (
	"context"
	"slices"
	"sync"
)

// Log stores recommendation records.
type Log interface {
	Append(ctx context.Context, rec Record) error
	// ListByUser returns the user's records newest first; limit <= 0 means
	// all of them.
	ListByUser(ctx context.Context, userID string, limit int) ([]Record, error)
}

// MemoryLog is a process-local Log.
type MemoryLog struct {
	mu     sync.RWMutex
	byUser map[string][]Record
}

func NewMemoryLog() *MemoryLog {
	return &MemoryLog{byUser: make(map[string][]Record)}
}

func (l *MemoryLog) Append(_ context.Context, rec Record) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.byUser == nil {
		l.byUser = make(map[string][]Record)
	}
	l.byUser[rec.UserID] = append(l.byUser[rec.UserID], rec)
	return nil
}

func (l *MemoryLog) ListByUser(_ context.Context, userID string, limit int) ([]Record, error) {
	l.mu.RLock()
	recs := slices.Clone(l.byUser[userID])
	l.mu.RUnlock()

	// records are appended in creation order
	slices.Reverse(recs)
	if limit > 0 && len(recs) > limit {
		recs = recs[:limit]
	}
	return recs, nil
}

var _ Log = (*MemoryLog)(nil)
