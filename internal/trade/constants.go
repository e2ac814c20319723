package trade

import "time"

// =============================================================================
// Offer Lifetime Constants
// =============================================================================

const (
	// DefaultOfferTTL is how long an offer stays acceptable
	DefaultOfferTTL = 60 * time.Second

	// CleanupInterval is how often expired offers are swept from memory
	CleanupInterval = 30 * time.Second
)

// =============================================================================
// Error Message Constants
// =============================================================================

const (
	ErrMsgGetCardFailed     = "failed to resolve card metadata: %w"
	ErrMsgGetQuantityFailed = "failed to check inventory: %w"
	ErrMsgBeginTxFailed     = "failed to begin trade transaction: %w"
	ErrMsgCommitTxFailed    = "failed to commit trade transaction: %w"
	ErrMsgSettlementFailed  = "failed to settle trade: %w"
	ErrMsgProposerMissing   = "proposer no longer holds the offered card"
	ErrMsgCounterpartyShort = "counterparty does not hold the requested card"
)

// =============================================================================
// Log Message Constants
// =============================================================================

const (
	LogMsgOfferProposed = "Trade offer proposed"
	LogMsgOfferSettled  = "Trade offer settled"
	LogMsgOfferDeclined = "Trade offer declined"
	LogMsgOffersSwept   = "Expired trade offers swept"
	LogMsgSettleAborted = "Trade settlement aborted - copies moved during offer window"
)
