package reward

// =============================================================================
// Error Message Constants
// =============================================================================

const (
	ErrMsgEnsureAccountFailed = "failed to ensure account: %w"
	ErrMsgCreditFailed        = "failed to credit reward: %w"
	ErrMsgDebitFailed         = "failed to debit pack cost: %w"
	ErrMsgAddCardFailed       = "failed to add dropped card: %w"
	ErrMsgListPoolFailed      = "failed to list reward pool: %w"
	ErrMsgClaimFailed         = "failed to claim %s: %w"
)

// =============================================================================
// Log Message Constants
// =============================================================================

const (
	LogMsgClaimGranted   = "Claim granted"
	LogMsgCardDropped    = "Card dropped"
	LogMsgBoosterOpened  = "Booster opened"
	LogMsgBonanzaClaimed = "Bonanza claimed"
	LogMsgPackOpened     = "Pack opened"
	LogMsgPackRefunded   = "Pack purchase refunded - card roll failed"
	LogMsgPoolWidened    = "Reward pool widened - no droppable cards in rolled tier"
	LogMsgBoosterDenied  = "Booster claim denied"
	LogMsgBonanzaDenied  = "Bonanza claim denied"
)
