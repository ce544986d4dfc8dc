package history

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore keeps records per asset in a date-sorted slice and answers
// lookups with binary search.
type MemoryStore struct {
	mu      sync.RWMutex
	byAsset map[string][]Record
}

func NewMemoryStore(records ...Record) *MemoryStore {
	s := &MemoryStore{byAsset: make(map[string][]Record)}
	s.Add(records...)
	return s
}

// Add inserts records, replacing any existing record for the same
// (asset, day).
func (s *MemoryStore) Add(records ...Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.byAsset == nil {
		s.byAsset = make(map[string][]Record)
	}
	for _, r := range records {
		r.Date = Day(r.Date)
		rs := s.byAsset[r.Asset]
		i := search(rs, r.Date)
		if i < len(rs) && rs[i].Date.Equal(r.Date) {
			rs[i] = r
			continue
		}
		rs = append(rs, Record{})
		copy(rs[i+1:], rs[i:])
		rs[i] = r
		s.byAsset[r.Asset] = rs
	}
}

// Len reports the number of records held for asset.
func (s *MemoryStore) Len(asset string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byAsset[asset])
}

func (s *MemoryStore) FindExact(_ context.Context, asset string, date time.Time) (*Record, error) {
	date = Day(date)

	s.mu.RLock()
	defer s.mu.RUnlock()
	rs := s.byAsset[asset]
	i := search(rs, date)
	if i < len(rs) && rs[i].Date.Equal(date) {
		r := rs[i]
		return &r, nil
	}
	return nil, nil
}

// FindNearest checks the neighbours around date's insertion point. When two
// records are equally distant the earlier one wins.
func (s *MemoryStore) FindNearest(_ context.Context, asset string, date time.Time, window time.Duration) (*Record, error) {
	date = Day(date)

	s.mu.RLock()
	defer s.mu.RUnlock()
	rs := s.byAsset[asset]
	i := search(rs, date)

	var best *Record
	var bestDist time.Duration
	for _, j := range []int{i - 1, i} {
		if j < 0 || j >= len(rs) {
			continue
		}
		d := absDuration(rs[j].Date.Sub(date))
		if d > window {
			continue
		}
		if best == nil || d < bestDist {
			r := rs[j]
			best, bestDist = &r, d
		}
	}
	return best, nil
}

// search returns the index of the first record dated on or after date.
func search(rs []Record, date time.Time) int {
	return sort.Search(len(rs), func(i int) bool { return !rs[i].Date.Before(date) })
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}

var _ Store = (*MemoryStore)(nil)
