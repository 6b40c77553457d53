package quote

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/silvamenu/momoney/internal/models"
)

func TestCache_PutOverwrites(t *testing.T) {
	c := NewCache(5 * time.Minute)

	c.Put("AAPL", &models.Quote{Symbol: "AAPL", Price: 100})
	c.Put("AAPL", &models.Quote{Symbol: "AAPL", Price: 110})

	entry, ok := c.Get("AAPL")
	assert.True(t, ok)
	assert.Equal(t, 110.0, entry.Quote.Price)
	assert.Equal(t, 1, c.Len())
}

func TestCache_FreshnessWindow(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	c := NewCache(5 * time.Minute)
	c.now = func() time.Time { return now }

	c.Put("PETR4", &models.Quote{Symbol: "PETR4", Price: 38.2})

	entry, ok := c.Get("PETR4")
	assert.True(t, ok)
	assert.True(t, c.IsFresh(entry))

	// 4m59s old: still fresh
	now = now.Add(5*time.Minute - time.Second)
	assert.True(t, c.IsFresh(entry))

	// Exactly at TTL: stale, but the entry survives as fallback
	now = now.Add(time.Second)
	assert.False(t, c.IsFresh(entry))

	stale, ok := c.Get("PETR4")
	assert.True(t, ok)
	assert.Equal(t, 38.2, stale.Quote.Price)
}

func TestCache_MissingSymbol(t *testing.T) {
	c := NewCache(5 * time.Minute)

	_, ok := c.Get("NOPE")
	assert.False(t, ok)
}

func TestCache_ZeroTTLDefaults(t *testing.T) {
	c := NewCache(0)
	assert.Equal(t, DefaultCacheTTL, c.ttl)
}
