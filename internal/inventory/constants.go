package inventory

// =============================================================================
// Error Message Constants
// =============================================================================

const (
	ErrMsgAddCopiesFailed     = "failed to add copies: %w"
	ErrMsgRemoveCopiesFailed  = "failed to remove copies: %w"
	ErrMsgGetQuantityFailed   = "failed to get quantity: %w"
	ErrMsgListEntriesFailed   = "failed to list inventory entries: %w"
	ErrMsgGetCardFailed       = "failed to resolve card metadata: %w"
	ErrMsgGetAccountFailed    = "failed to get recipient account: %w"
	ErrMsgBeginTxFailed       = "failed to begin inventory transaction: %w"
	ErrMsgCommitTxFailed      = "failed to commit inventory transaction: %w"
	ErrMsgTopCollectorsFailed = "failed to list top collectors: %w"
)

// =============================================================================
// Log Message Constants
// =============================================================================

const (
	LogMsgCopiesAdded   = "Copies added to inventory"
	LogMsgCopiesRemoved = "Copies removed from inventory"
	LogMsgCopiesMoved   = "Copies moved between inventories"
	LogMsgGiftCompleted = "Gift completed"
)
