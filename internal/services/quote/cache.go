// Package quote resolves ticker symbols to quotes through a shared,
// time-bounded cache with rate-limited batch fetching.
package quote

import (
	"sync"
	"time"

	"github.com/silvamenu/momoney/internal/models"
)

// DefaultCacheTTL is the freshness window for cached quotes.
const DefaultCacheTTL = 5 * time.Minute

// Entry is a cached quote snapshot with its fetch timestamp.
type Entry struct {
	Quote     *models.Quote
	FetchedAt time.Time
}

// Cache is a process-local mapping from ticker symbol to Entry. Entries are
// never evicted; staleness only determines whether a read satisfies a
// request without a refetch. Unbounded growth is accepted for the expected
// symbol cardinality.
type Cache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]Entry
	now     func() time.Time // injectable clock for testing
}

// NewCache creates a cache with the given freshness window.
func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cache{
		ttl:     ttl,
		entries: make(map[string]Entry),
		now:     time.Now,
	}
}

// Get returns the cached entry for symbol, fresh or stale.
func (c *Cache) Get(symbol string) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[symbol]
	return e, ok
}

// Put stores a quote, stamping it with the current time. Any prior entry
// is overwritten.
func (c *Cache) Put(symbol string, quote *models.Quote) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[symbol] = Entry{Quote: quote, FetchedAt: c.now()}
}

// IsFresh reports whether the entry is within the freshness window.
func (c *Cache) IsFresh(e Entry) bool {
	if e.FetchedAt.IsZero() {
		return false
	}
	return c.now().Sub(e.FetchedAt) < c.ttl
}

// Len returns the number of distinct symbols ever cached.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
