package cache

import (
	"sync"
	"time"

	"portfolioadvisor/internal/provider"
)

// DefaultTTL is how long a resolved quote is served before the live source
// is consulted again.
const DefaultTTL = 10 * time.Minute

type key struct {
	asset    string
	location string
}

// entry stores a quote with the time it was inserted.
type entry struct {
	insertedAt time.Time
	quote      provider.Quote
}

// PriceCache holds the last resolved quote per (asset, location).
// Expired entries are reported absent on read and replaced by the next Put;
// nothing is evicted.
type PriceCache struct {
	TTL time.Duration
	Now func() time.Time

	mu    sync.RWMutex
	items map[key]entry
}

// New returns a cache with the given TTL; ttl <= 0 selects DefaultTTL.
func New(ttl time.Duration) *PriceCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &PriceCache{TTL: ttl, Now: time.Now, items: make(map[key]entry)}
}

// Get returns the cached quote when it is younger than the TTL.
func (c *PriceCache) Get(asset, location string) (provider.Quote, bool) {
	now := c.now()

	c.mu.RLock()
	e, ok := c.items[key{asset, location}]
	c.mu.RUnlock()

	if !ok || now.Sub(e.insertedAt) >= c.ttl() {
		return provider.Quote{}, false
	}
	return e.quote, true
}

// Put stores quote under (asset, location), superseding any previous entry.
func (c *PriceCache) Put(asset, location string, quote provider.Quote) {
	e := entry{insertedAt: c.now(), quote: quote}

	c.mu.Lock()
	if c.items == nil {
		c.items = make(map[key]entry)
	}
	c.items[key{asset, location}] = e
	c.mu.Unlock()
}

// Len reports the number of stored entries, expired ones included.
func (c *PriceCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *PriceCache) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

func (c *PriceCache) ttl() time.Duration {
	if c.TTL <= 0 {
		return DefaultTTL
	}
	return c.TTL
}
