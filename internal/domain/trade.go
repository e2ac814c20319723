package domain

import "time"

// TradeState is the lifecycle state of a trade offer.
type TradeState string

const (
	TradeProposed TradeState = "proposed"
	// TradeSettling marks an offer claimed for settlement whose inventory
	// transaction has not committed yet. It is never a terminal state.
	TradeSettling TradeState = "settling"
	TradeSettled  TradeState = "settled"
	TradeDeclined TradeState = "declined"
	TradeExpired  TradeState = "expired"
)

// TradeOffer is a two-party barter proposal: one copy of OfferedCardID from
// the proposer against one copy of RequestedCardID from the counterparty.
// Offers are ephemeral; they live in memory until settled, declined or expired.
type TradeOffer struct {
	ID              string     `json:"offer_id"`
	ProposerID      string     `json:"proposer_id"`
	CounterpartyID  string     `json:"counterparty_id"`
	OfferedCardID   int        `json:"offered_card_id"`
	RequestedCardID int        `json:"requested_card_id"`
	State           TradeState `json:"state"`
	CreatedAt       time.Time  `json:"created_at"`
	ExpiresAt       time.Time  `json:"expires_at"`
}

// Expired reports whether the offer's TTL has elapsed at the given instant.
func (o TradeOffer) Expired(now time.Time) bool {
	return now.After(o.ExpiresAt)
}
