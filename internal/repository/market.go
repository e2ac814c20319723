package repository

import (
	"context"

	"github.com/mirae-dev/ShoreBot_Go/internal/domain"
)

// Market defines the interface for marketplace persistence. A listing's
// existence is the escrow claim on the copies removed from the seller at
// listing time, so listing mutations share a transaction surface with
// account and inventory operations.
type Market interface {
	// GetListing returns the listing or domain.ErrListingNotFound (unlocked read).
	GetListing(ctx context.Context, code string) (*domain.Listing, error)

	// ListListings returns active listings joined with card metadata,
	// newest first, capped at limit.
	ListListings(ctx context.Context, limit int, filter domain.ListingFilter) ([]domain.ListingView, error)

	BeginTx(ctx context.Context) (MarketTx, error)
}

// MarketTx exposes every operation a marketplace settlement touches inside
// one transaction: the listing row, the two account balances and the buyer's
// inventory.
type MarketTx interface {
	Tx

	// GetListingForUpdate row-locks the listing, failing with
	// domain.ErrListingNotFound when it was already consumed.
	GetListingForUpdate(ctx context.Context, code string) (*domain.Listing, error)
	InsertListing(ctx context.Context, listing domain.Listing) error
	DeleteListing(ctx context.Context, code string) error

	Credit(ctx context.Context, userID string, amount int64) (int64, error)
	Debit(ctx context.Context, userID string, amount int64) (int64, error)

	AddCopies(ctx context.Context, userID string, cardID int, n int) (int, error)
	RemoveCopies(ctx context.Context, userID string, cardID int, n int) (int, error)
}
