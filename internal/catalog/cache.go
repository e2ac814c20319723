package catalog

import (
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/mirae-dev/ShoreBot_Go/internal/domain"
)

// CacheSchemaVersion is the current version of the cache schema
// Increment this when the cached data structure changes to auto-invalidate old entries
const CacheSchemaVersion = "1.0"

// CacheConfig controls the card cache behavior
type CacheConfig struct {
	Size int
	TTL  time.Duration
}

// CacheStats reports cache effectiveness counters
type CacheStats struct {
	Hits   int64
	Misses int64
	Size   int
}

type cachedCardEntry struct {
	Version  string
	Card     *domain.Card
	CachedAt time.Time
}

// cardCache provides an in-memory LRU cache for card lookups
// with time-based expiration and version-based invalidation to prevent stale data.
type cardCache struct {
	lru    *expirable.LRU[string, *cachedCardEntry]
	hits   atomic.Int64
	misses atomic.Int64
}

func newCardCache(config CacheConfig) *cardCache {
	if config.Size <= 0 {
		config.Size = DefaultCacheSize
	}
	if config.TTL <= 0 {
		config.TTL = DefaultCacheTTL
	}
	return &cardCache{
		lru: expirable.NewLRU[string, *cachedCardEntry](config.Size, nil, config.TTL),
	}
}

// Get retrieves a card from the cache.
// Returns (card, true) if found and version matches.
// Automatically invalidates entries with mismatched versions.
func (c *cardCache) Get(key string) (*domain.Card, bool) {
	entry, found := c.lru.Get(key)
	if !found {
		c.misses.Add(1)
		return nil, false
	}

	// Check version - auto-invalidate if mismatch
	if entry.Version != CacheSchemaVersion {
		c.lru.Remove(key)
		c.misses.Add(1)
		return nil, false
	}

	c.hits.Add(1)
	return entry.Card, true
}

// Set stores a card in the cache with current schema version.
func (c *cardCache) Set(key string, card *domain.Card) {
	entry := &cachedCardEntry{
		Version:  CacheSchemaVersion,
		Card:     card,
		CachedAt: time.Now(),
	}
	c.lru.Add(key, entry)
}

// Invalidate removes a card from the cache.
func (c *cardCache) Invalidate(key string) {
	c.lru.Remove(key)
}

// Clear removes all entries from the cache.
func (c *cardCache) Clear() {
	c.lru.Purge()
}

// GetStats returns cache hit/miss counters and current size.
func (c *cardCache) GetStats() CacheStats {
	return CacheStats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
		Size:   c.lru.Len(),
	}
}
