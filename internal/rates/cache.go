package rates

import (
	"sync/atomic"
	"time"
)

// DefaultFreshness bounds how long a fetched record set is served from memory.
const DefaultFreshness = time.Hour

type cacheEntry struct {
	records   []RateRecord
	fetchedAt time.Time
}

// Cache holds the last successfully fetched record set. The whole entry is
// swapped atomically so concurrent readers never observe a partial write.
type Cache struct {
	ttl   time.Duration
	now   func() time.Time
	entry atomic.Pointer[cacheEntry]
}

// NewCache constructs a cache with the given freshness window. Non-positive
// values fall back to DefaultFreshness.
func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultFreshness
	}
	return &Cache{ttl: ttl, now: time.Now}
}

// Read returns the held records when they are still within the freshness
// window.
func (c *Cache) Read() ([]RateRecord, bool) {
	entry := c.entry.Load()
	if entry == nil || entry.records == nil {
		return nil, false
	}
	if c.now().Sub(entry.fetchedAt) >= c.ttl {
		return nil, false
	}
	return entry.records, true
}

// Write replaces the held records and stamps the current time.
func (c *Cache) Write(records []RateRecord) {
	c.entry.Store(&cacheEntry{records: records, fetchedAt: c.now()})
}

// Clear resets the cache so the next Read misses.
func (c *Cache) Clear() {
	c.entry.Store(nil)
}
