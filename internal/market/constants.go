package market

// DefaultBrowseLimit caps how many listings a browse returns
const DefaultBrowseLimit = 25

// =============================================================================
// Error Message Constants
// =============================================================================

const (
	ErrMsgGetCardFailed       = "failed to resolve card metadata: %w"
	ErrMsgGetListingFailed    = "failed to get listing: %w"
	ErrMsgListListingsFailed  = "failed to list listings: %w"
	ErrMsgEscrowFailed        = "failed to escrow copies: %w"
	ErrMsgReleaseEscrowFailed = "failed to release escrowed copies: %w"
	ErrMsgInsertListingFailed = "failed to insert listing: %w"
	ErrMsgDeleteListingFailed = "failed to delete listing: %w"
	ErrMsgDebitBuyerFailed    = "failed to debit buyer: %w"
	ErrMsgCreditSellerFailed  = "failed to credit seller: %w"
	ErrMsgDeliverCopiesFailed = "failed to deliver copies: %w"
	ErrMsgRemoveCopiesFailed  = "failed to remove copies: %w"
	ErrMsgCreditSaleFailed    = "failed to credit house sale: %w"
	ErrMsgBeginTxFailed       = "failed to begin market transaction: %w"
	ErrMsgCommitTxFailed      = "failed to commit market transaction: %w"
	ErrMsgNoHousePrice        = "no house price for rarity %d"
)

// =============================================================================
// Log Message Constants
// =============================================================================

const (
	LogMsgListingCreated   = "Listing created"
	LogMsgListingSold      = "Listing sold"
	LogMsgListingCancelled = "Listing cancelled"
	LogMsgHouseSale        = "Cards sold to house"
)
