package market

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mirae-dev/ShoreBot_Go/internal/catalog"
	"github.com/mirae-dev/ShoreBot_Go/internal/domain"
	"github.com/mirae-dev/ShoreBot_Go/internal/logger"
	"github.com/mirae-dev/ShoreBot_Go/internal/repository"
)

// DefaultHousePrices is the fixed buyback price per rarity tier
var DefaultHousePrices = map[int]int64{
	domain.RarityCommon:    1000,
	domain.RarityUncommon:  2500,
	domain.RarityRare:      5000,
	domain.RarityEpic:      7500,
	domain.RarityLegendary: 10000,
}

// PurchaseResult reports a settled marketplace purchase
type PurchaseResult struct {
	Listing      domain.Listing `json:"listing"`
	TotalPrice   int64          `json:"total_price"`
	BuyerBalance int64          `json:"buyer_balance"`
}

// HouseSaleResult reports a sale to the house
type HouseSaleResult struct {
	UnitPrice  int64 `json:"unit_price"`
	Total      int64 `json:"total"`
	NewBalance int64 `json:"new_balance"`
	Remaining  int   `json:"remaining"`
}

// Config holds marketplace configuration
type Config struct {
	// BrowseLimit caps listings per browse; 0 means DefaultBrowseLimit
	BrowseLimit int

	// HousePrices overrides the buyback price per rarity; nil means defaults
	HousePrices map[int]int64
}

// Service defines the interface for marketplace operations
type Service interface {
	// CreateListing escrows the copies and publishes the listing in one
	// transaction. The escrowed copies leave the seller's inventory until
	// the listing sells or is cancelled.
	CreateListing(ctx context.Context, sellerID string, cardID int, unitPrice int64, quantity int) (*domain.Listing, error)

	// Purchase settles a whole listing: buyer pays, seller is paid, copies
	// deliver, listing disappears. At most one purchase of a listing can
	// ever settle.
	Purchase(ctx context.Context, buyerID, listingCode string) (*PurchaseResult, error)

	// CancelListing returns the escrowed copies to the seller
	CancelListing(ctx context.Context, sellerID, listingCode string) error

	// GetListing returns a single listing by code
	GetListing(ctx context.Context, listingCode string) (*domain.Listing, error)

	// Browse returns active listings joined with card metadata, newest first
	Browse(ctx context.Context, filter domain.ListingFilter) ([]domain.ListingView, error)

	// SellToHouse sells n copies back to the house at the fixed rarity price
	SellToHouse(ctx context.Context, userID string, cardID int, n int) (*HouseSaleResult, error)
}

type service struct {
	repo       repository.Market
	catalogSvc catalog.Service
	config     Config
}

// NewService creates a new marketplace service
func NewService(repo repository.Market, catalogSvc catalog.Service, config Config) Service {
	if config.BrowseLimit <= 0 {
		config.BrowseLimit = DefaultBrowseLimit
	}
	if config.HousePrices == nil {
		config.HousePrices = DefaultHousePrices
	}
	return &service{repo: repo, catalogSvc: catalogSvc, config: config}
}

func (s *service) CreateListing(ctx context.Context, sellerID string, cardID int, unitPrice int64, quantity int) (*domain.Listing, error) {
	if quantity < 1 {
		return nil, domain.ErrInvalidQuantity
	}
	if unitPrice <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	if _, err := s.catalogSvc.GetCardByID(ctx, cardID); err != nil {
		return nil, fmt.Errorf(ErrMsgGetCardFailed, err)
	}

	listing := domain.Listing{
		Code:      uuid.NewString(),
		SellerID:  sellerID,
		CardID:    cardID,
		UnitPrice: unitPrice,
		Quantity:  quantity,
		CreatedAt: time.Now(),
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBeginTxFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	// Escrow: the copies leave the seller the moment the listing exists
	if _, err := tx.RemoveCopies(ctx, sellerID, cardID, quantity); err != nil {
		return nil, fmt.Errorf(ErrMsgEscrowFailed, err)
	}
	if err := tx.InsertListing(ctx, listing); err != nil {
		return nil, fmt.Errorf(ErrMsgInsertListingFailed, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf(ErrMsgCommitTxFailed, err)
	}

	logger.FromContext(ctx).Info(LogMsgListingCreated,
		"code", listing.Code, "sellerID", sellerID, "cardID", cardID,
		"unitPrice", unitPrice, "quantity", quantity)
	return &listing, nil
}

func (s *service) Purchase(ctx context.Context, buyerID, listingCode string) (*PurchaseResult, error) {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBeginTxFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	// Row lock: concurrent buyers line up here, and all but the first find
	// the listing gone
	listing, err := tx.GetListingForUpdate(ctx, listingCode)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetListingFailed, err)
	}
	if listing.SellerID == buyerID {
		return nil, domain.ErrSelfOperation
	}

	total := listing.TotalPrice()

	buyerBalance, err := tx.Debit(ctx, buyerID, total)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgDebitBuyerFailed, err)
	}
	if _, err := tx.Credit(ctx, listing.SellerID, total); err != nil {
		return nil, fmt.Errorf(ErrMsgCreditSellerFailed, err)
	}
	if _, err := tx.AddCopies(ctx, buyerID, listing.CardID, listing.Quantity); err != nil {
		return nil, fmt.Errorf(ErrMsgDeliverCopiesFailed, err)
	}
	if err := tx.DeleteListing(ctx, listingCode); err != nil {
		return nil, fmt.Errorf(ErrMsgDeleteListingFailed, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf(ErrMsgCommitTxFailed, err)
	}

	logger.FromContext(ctx).Info(LogMsgListingSold,
		"code", listingCode, "buyerID", buyerID, "sellerID", listing.SellerID, "total", total)
	return &PurchaseResult{Listing: *listing, TotalPrice: total, BuyerBalance: buyerBalance}, nil
}

func (s *service) CancelListing(ctx context.Context, sellerID, listingCode string) error {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf(ErrMsgBeginTxFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	listing, err := tx.GetListingForUpdate(ctx, listingCode)
	if err != nil {
		return fmt.Errorf(ErrMsgGetListingFailed, err)
	}
	if listing.SellerID != sellerID {
		return domain.ErrNotListingOwner
	}

	// Return the escrowed copies
	if _, err := tx.AddCopies(ctx, sellerID, listing.CardID, listing.Quantity); err != nil {
		return fmt.Errorf(ErrMsgReleaseEscrowFailed, err)
	}
	if err := tx.DeleteListing(ctx, listingCode); err != nil {
		return fmt.Errorf(ErrMsgDeleteListingFailed, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf(ErrMsgCommitTxFailed, err)
	}

	logger.FromContext(ctx).Info(LogMsgListingCancelled, "code", listingCode, "sellerID", sellerID)
	return nil
}

func (s *service) GetListing(ctx context.Context, listingCode string) (*domain.Listing, error) {
	listing, err := s.repo.GetListing(ctx, listingCode)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetListingFailed, err)
	}
	return listing, nil
}

func (s *service) Browse(ctx context.Context, filter domain.ListingFilter) ([]domain.ListingView, error) {
	views, err := s.repo.ListListings(ctx, s.config.BrowseLimit, filter)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListListingsFailed, err)
	}
	return views, nil
}

func (s *service) SellToHouse(ctx context.Context, userID string, cardID int, n int) (*HouseSaleResult, error) {
	if n < 1 {
		return nil, domain.ErrInvalidQuantity
	}

	card, err := s.catalogSvc.GetCardByID(ctx, cardID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetCardFailed, err)
	}
	unitPrice, ok := s.config.HousePrices[card.Rarity]
	if !ok {
		return nil, fmt.Errorf(ErrMsgNoHousePrice, card.Rarity)
	}
	total := unitPrice * int64(n)

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBeginTxFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	remaining, err := tx.RemoveCopies(ctx, userID, cardID, n)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgRemoveCopiesFailed, err)
	}
	balance, err := tx.Credit(ctx, userID, total)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgCreditSaleFailed, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf(ErrMsgCommitTxFailed, err)
	}

	logger.FromContext(ctx).Info(LogMsgHouseSale,
		"userID", userID, "cardID", cardID, "n", n, "total", total)
	return &HouseSaleResult{UnitPrice: unitPrice, Total: total, NewBalance: balance, Remaining: remaining}, nil
}
