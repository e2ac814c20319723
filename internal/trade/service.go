package trade

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mirae-dev/ShoreBot_Go/internal/catalog"
	"github.com/mirae-dev/ShoreBot_Go/internal/domain"
	"github.com/mirae-dev/ShoreBot_Go/internal/logger"
	"github.com/mirae-dev/ShoreBot_Go/internal/repository"
)

// Config holds trade engine configuration
type Config struct {
	// OfferTTL is how long an offer stays acceptable; 0 means DefaultOfferTTL
	OfferTTL time.Duration
}

// Service defines the interface for two-party card trades
type Service interface {
	// Propose creates an offer: one copy of the offered card against one
	// copy of the requested card. Offers expire after the configured TTL.
	Propose(ctx context.Context, proposerID, counterpartyID string, offeredCardID, requestedCardID int) (*domain.TradeOffer, error)

	// Accept settles the offer, swapping the copies in one transaction.
	// Only the counterparty can accept, and an offer settles at most once.
	Accept(ctx context.Context, userID, offerID string) (*domain.TradeOffer, error)

	// Decline retires the offer. Either party may decline; for the proposer
	// this is a cancel.
	Decline(ctx context.Context, userID, offerID string) error

	// GetOffer returns the offer with expiry folded into its state
	GetOffer(ctx context.Context, offerID string) (*domain.TradeOffer, error)

	// ListOffers returns the user's offers, proposed or received
	ListOffers(ctx context.Context, userID string) ([]domain.TradeOffer, error)

	// Shutdown stops the expiry sweeper
	Shutdown(ctx context.Context) error
}

type service struct {
	inventoryRepo repository.Inventory
	catalogSvc    catalog.Service
	store         *offerStore
	ttl           time.Duration
}

// NewService creates a new trade service
func NewService(inventoryRepo repository.Inventory, catalogSvc catalog.Service, config Config) Service {
	ttl := config.OfferTTL
	if ttl <= 0 {
		ttl = DefaultOfferTTL
	}
	return &service{
		inventoryRepo: inventoryRepo,
		catalogSvc:    catalogSvc,
		store:         newOfferStore(),
		ttl:           ttl,
	}
}

func (s *service) Propose(ctx context.Context, proposerID, counterpartyID string, offeredCardID, requestedCardID int) (*domain.TradeOffer, error) {
	if proposerID == counterpartyID {
		return nil, domain.ErrSelfOperation
	}

	for _, cardID := range []int{offeredCardID, requestedCardID} {
		if _, err := s.catalogSvc.GetCardByID(ctx, cardID); err != nil {
			return nil, fmt.Errorf(ErrMsgGetCardFailed, err)
		}
	}

	// Pre-checks only; settlement re-verifies under the transaction
	held, err := s.inventoryRepo.GetQuantity(ctx, proposerID, offeredCardID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetQuantityFailed, err)
	}
	if held < 1 {
		return nil, domain.InsufficientCopiesError{Available: held, Required: 1}
	}

	held, err = s.inventoryRepo.GetQuantity(ctx, counterpartyID, requestedCardID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetQuantityFailed, err)
	}
	if held < 1 {
		return nil, domain.InsufficientCopiesError{Available: held, Required: 1}
	}

	now := time.Now()
	offer := &domain.TradeOffer{
		ID:              uuid.NewString(),
		ProposerID:      proposerID,
		CounterpartyID:  counterpartyID,
		OfferedCardID:   offeredCardID,
		RequestedCardID: requestedCardID,
		State:           domain.TradeProposed,
		CreatedAt:       now,
		ExpiresAt:       now.Add(s.ttl),
	}
	s.store.Put(offer)

	logger.FromContext(ctx).Info(LogMsgOfferProposed,
		"offerID", offer.ID, "proposer", proposerID, "counterparty", counterpartyID,
		"offered", offeredCardID, "requested", requestedCardID)

	copied := *offer
	return &copied, nil
}

func (s *service) Accept(ctx context.Context, userID, offerID string) (*domain.TradeOffer, error) {
	log := logger.FromContext(ctx)

	offer, ok := s.store.Get(offerID, time.Now())
	if !ok {
		return nil, domain.ErrOfferNotFound
	}
	if offer.CounterpartyID != userID {
		return nil, domain.ErrNotOfferCounterparty
	}

	claimed, err := s.store.Claim(offerID, time.Now())
	if err != nil {
		return nil, err
	}

	if err := s.settle(ctx, claimed); err != nil {
		if errors.Is(err, domain.ErrInsufficientCopies) {
			// A party moved the copies during the offer window; the offer
			// is dead, not retryable
			s.store.Release(offerID, domain.TradeDeclined)
			log.Info(LogMsgSettleAborted, "offerID", offerID)
			return nil, fmt.Errorf("%w: %s", domain.ErrItemNoLongerAvailable, err.Error())
		}
		// Infrastructure failure: the offer goes back to proposed so the
		// counterparty can retry within the TTL
		s.store.Release(offerID, domain.TradeProposed)
		return nil, err
	}

	s.store.Release(offerID, domain.TradeSettled)
	claimed.State = domain.TradeSettled

	log.Info(LogMsgOfferSettled, "offerID", offerID,
		"proposer", claimed.ProposerID, "counterparty", claimed.CounterpartyID)
	return claimed, nil
}

// settle swaps one copy each way inside a single inventory transaction
func (s *service) settle(ctx context.Context, offer *domain.TradeOffer) error {
	tx, err := s.inventoryRepo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf(ErrMsgBeginTxFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	if _, err := tx.RemoveCopies(ctx, offer.ProposerID, offer.OfferedCardID, 1); err != nil {
		return fmt.Errorf(ErrMsgSettlementFailed, err)
	}
	if _, err := tx.RemoveCopies(ctx, offer.CounterpartyID, offer.RequestedCardID, 1); err != nil {
		return fmt.Errorf(ErrMsgSettlementFailed, err)
	}
	if _, err := tx.AddCopies(ctx, offer.CounterpartyID, offer.OfferedCardID, 1); err != nil {
		return fmt.Errorf(ErrMsgSettlementFailed, err)
	}
	if _, err := tx.AddCopies(ctx, offer.ProposerID, offer.RequestedCardID, 1); err != nil {
		return fmt.Errorf(ErrMsgSettlementFailed, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf(ErrMsgCommitTxFailed, err)
	}
	return nil
}

func (s *service) Decline(ctx context.Context, userID, offerID string) error {
	offer, ok := s.store.Get(offerID, time.Now())
	if !ok {
		return domain.ErrOfferNotFound
	}
	if offer.ProposerID != userID && offer.CounterpartyID != userID {
		return domain.ErrNotOfferCounterparty
	}

	if _, err := s.store.Decline(offerID, time.Now()); err != nil {
		return err
	}

	logger.FromContext(ctx).Info(LogMsgOfferDeclined, "offerID", offerID, "by", userID)
	return nil
}

func (s *service) GetOffer(_ context.Context, offerID string) (*domain.TradeOffer, error) {
	offer, ok := s.store.Get(offerID, time.Now())
	if !ok {
		return nil, domain.ErrOfferNotFound
	}
	return offer, nil
}

func (s *service) ListOffers(_ context.Context, userID string) ([]domain.TradeOffer, error) {
	return s.store.ListFor(userID, time.Now()), nil
}

func (s *service) Shutdown(_ context.Context) error {
	s.store.Stop()
	return nil
}
