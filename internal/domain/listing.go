package domain

import "time"

// Listing is an active marketplace listing. The escrowed copies were removed
// from the seller's inventory when the listing was created; the row's
// existence is the escrow claim. A purchase consumes the whole listing.
type Listing struct {
	Code      string    `json:"listing_code"`
	SellerID  string    `json:"seller_id"`
	CardID    int       `json:"card_id"`
	UnitPrice int64     `json:"unit_price"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}

// TotalPrice is what a buyer pays for the whole listing.
func (l Listing) TotalPrice() int64 {
	return l.UnitPrice * int64(l.Quantity)
}

// ListingFilter narrows marketplace browsing.
type ListingFilter struct {
	CardID   int
	SellerID string
	MaxPrice int64
}

// ListingView is a listing joined with card metadata for display.
type ListingView struct {
	Listing Listing `json:"listing"`
	Card    Card    `json:"card"`
}
