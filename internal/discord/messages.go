package discord

// Friendly message constants for Discord responses
const (
	// Coins
	MsgInsufficientFunds = "⚠️ **Not Enough Coins!**\nYou don't have enough coins for this."

	// Cards & collection
	MsgCardNotFound      = "❓ **Card Not Found**\nMaybe check the code?"
	MsgNotEnoughCopies   = "🎴 **Not Enough Copies**\nYou don't hold enough copies of that card."
	MsgListingNotFound   = "🏷️ **Listing Gone**\nThat listing was already sold or cancelled."
	MsgOfferNotFound     = "🤝 **Offer Gone**\nThat trade offer is no longer around."
	MsgOfferNotPending   = "🤝 **Too Late**\nThat trade offer is no longer open."
	MsgTradeUnavailable  = "🎴 **Card Moved**\nA card in the trade is no longer available."
	MsgSelfTarget        = "🙃 **Nice Try**\nYou can't target yourself."
	MsgBoosterNotAllowed = "🔒 **Subscribers Only**\nBooster packs are a subscriber perk."

	// User
	MsgAccountNotFound = "👤 **Account Not Found**\nHave they said hello yet?"

	// Cooldowns and lockdown
	MsgCooldownActive = "⏳ **Whoa there!**\nYou need to wait a bit before doing that again."
	MsgLockdownActive = "🔒 **Locked Down**\nCommands are paused right now. Check back soon."

	MsgGenericError = "❌ Something went wrong."
)
