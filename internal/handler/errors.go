package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgInvalidCardID     = "Invalid card_id parameter"

	// Account operation error messages
	ErrMsgGetBalanceFailed = "Failed to get balance"
	ErrMsgPayFailed        = "Failed to pay"
	ErrMsgCreditFailed     = "Failed to credit account"
	ErrMsgDebitFailed      = "Failed to debit account"

	// Inventory operation error messages
	ErrMsgGetInventoryFailed = "Failed to get inventory"
	ErrMsgGiftFailed         = "Failed to gift card"
	ErrMsgAddCardFailed      = "Failed to add card"
	ErrMsgRemoveCardFailed   = "Failed to remove card"

	// Reward operation error messages
	ErrMsgClaimFailed = "Failed to claim reward"

	// Catalog error messages
	ErrMsgGetCardFailed   = "Failed to get card"
	ErrMsgListCardsFailed = "Failed to list cards"

	// Marketplace error messages
	ErrMsgCreateListingFailed = "Failed to create listing"
	ErrMsgPurchaseFailed      = "Failed to purchase listing"
	ErrMsgCancelListingFailed = "Failed to cancel listing"
	ErrMsgBrowseFailed        = "Failed to browse listings"
	ErrMsgHouseSaleFailed     = "Failed to sell to house"

	// Trade error messages
	ErrMsgProposeTradeFailed = "Failed to propose trade"
	ErrMsgAcceptTradeFailed  = "Failed to accept trade"
	ErrMsgDeclineTradeFailed = "Failed to decline trade"
	ErrMsgGetOfferFailed     = "Failed to get trade offer"
	ErrMsgListOffersFailed   = "Failed to list trade offers"
)

// Success messages for API responses
const (
	MsgListingCancelledSuccess = "Listing cancelled"
	MsgTradeDeclinedSuccess    = "Trade offer declined"
	MsgLockdownEnabledSuccess  = "Lockdown enabled"
	MsgLockdownDisabledSuccess = "Lockdown disabled"
	MsgCooldownResetSuccess    = "Cooldown reset"
)
