package catalog

import "time"

// =============================================================================
// Cache Defaults
// =============================================================================

const (
	// DefaultCacheSize is the maximum number of cached card lookups
	DefaultCacheSize = 512

	// DefaultCacheTTL is how long cached cards stay fresh; the card catalog
	// changes rarely so a generous TTL is fine
	DefaultCacheTTL = 5 * time.Minute
)

// =============================================================================
// Error Message Constants
// =============================================================================

const (
	ErrMsgGetCardFailed   = "failed to get card: %w"
	ErrMsgListCardsFailed = "failed to list cards: %w"
)

// =============================================================================
// Log Message Constants
// =============================================================================

const (
	LogMsgCacheHit  = "Card catalog cache hit"
	LogMsgCacheMiss = "Card catalog cache miss"
)
