package inventory

import (
	"context"
	"fmt"
	"sort"

	"github.com/mirae-dev/ShoreBot_Go/internal/catalog"
	"github.com/mirae-dev/ShoreBot_Go/internal/domain"
	"github.com/mirae-dev/ShoreBot_Go/internal/logger"
	"github.com/mirae-dev/ShoreBot_Go/internal/repository"
)

// AccountService is the slice of the account ledger the inventory needs
type AccountService interface {
	GetBalance(ctx context.Context, userID string) (int64, error)
}

// Service defines the interface for inventory ledger operations
type Service interface {
	// AddCopies grants n copies of a card, creating the entry if absent.
	// Returns the new quantity.
	AddCopies(ctx context.Context, userID string, cardID int, n int) (int, error)

	// RemoveCopies takes n copies away if the user holds at least n,
	// atomically. The entry disappears when the count reaches zero.
	RemoveCopies(ctx context.Context, userID string, cardID int, n int) (int, error)

	// MoveCopies transfers n copies between users in one transaction
	MoveCopies(ctx context.Context, fromUserID, toUserID string, cardID int, n int) error

	// GetQuantity returns the copy count, 0 when the user holds none
	GetQuantity(ctx context.Context, userID string, cardID int) (int, error)

	// ListInventory returns the user's cards joined with catalog metadata,
	// filtered and sorted rarest first
	ListInventory(ctx context.Context, userID string, filter domain.InventoryFilter) ([]domain.InventoryItem, error)

	// Gift is a user-initiated copy transfer with self-gift and recipient checks
	Gift(ctx context.Context, fromUserID, toUserID string, cardID int, n int) error

	// TopCollectors returns up to limit users, largest distinct-card
	// collection first
	TopCollectors(ctx context.Context, limit int) ([]domain.CollectorCount, error)
}

type service struct {
	repo       repository.Inventory
	catalogSvc catalog.Service
	accountSvc AccountService
}

// NewService creates a new inventory service
func NewService(repo repository.Inventory, catalogSvc catalog.Service, accountSvc AccountService) Service {
	return &service{
		repo:       repo,
		catalogSvc: catalogSvc,
		accountSvc: accountSvc,
	}
}

func (s *service) AddCopies(ctx context.Context, userID string, cardID int, n int) (int, error) {
	if n < 1 {
		return 0, domain.ErrInvalidQuantity
	}

	// Reject unknown cards before touching the ledger
	if _, err := s.catalogSvc.GetCardByID(ctx, cardID); err != nil {
		return 0, fmt.Errorf(ErrMsgGetCardFailed, err)
	}

	quantity, err := s.repo.AddCopies(ctx, userID, cardID, n)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgAddCopiesFailed, err)
	}

	logger.FromContext(ctx).Debug(LogMsgCopiesAdded,
		"userID", userID, "cardID", cardID, "n", n, "quantity", quantity)
	return quantity, nil
}

func (s *service) RemoveCopies(ctx context.Context, userID string, cardID int, n int) (int, error) {
	if n < 1 {
		return 0, domain.ErrInvalidQuantity
	}

	quantity, err := s.repo.RemoveCopies(ctx, userID, cardID, n)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgRemoveCopiesFailed, err)
	}

	logger.FromContext(ctx).Debug(LogMsgCopiesRemoved,
		"userID", userID, "cardID", cardID, "n", n, "quantity", quantity)
	return quantity, nil
}

// MoveCopies removes from the sender and adds to the recipient inside one
// transaction; a failed leg rolls back the other.
func (s *service) MoveCopies(ctx context.Context, fromUserID, toUserID string, cardID int, n int) error {
	if n < 1 {
		return domain.ErrInvalidQuantity
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf(ErrMsgBeginTxFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	if _, err := tx.RemoveCopies(ctx, fromUserID, cardID, n); err != nil {
		return fmt.Errorf(ErrMsgRemoveCopiesFailed, err)
	}
	if _, err := tx.AddCopies(ctx, toUserID, cardID, n); err != nil {
		return fmt.Errorf(ErrMsgAddCopiesFailed, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf(ErrMsgCommitTxFailed, err)
	}

	logger.FromContext(ctx).Info(LogMsgCopiesMoved,
		"from", fromUserID, "to", toUserID, "cardID", cardID, "n", n)
	return nil
}

func (s *service) GetQuantity(ctx context.Context, userID string, cardID int) (int, error) {
	quantity, err := s.repo.GetQuantity(ctx, userID, cardID)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgGetQuantityFailed, err)
	}
	return quantity, nil
}

func (s *service) ListInventory(ctx context.Context, userID string, filter domain.InventoryFilter) ([]domain.InventoryItem, error) {
	entries, err := s.repo.ListEntries(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListEntriesFailed, err)
	}

	items := make([]domain.InventoryItem, 0, len(entries))
	for _, entry := range entries {
		card, err := s.catalogSvc.GetCardByID(ctx, entry.CardID)
		if err != nil {
			return nil, fmt.Errorf(ErrMsgGetCardFailed, err)
		}
		if filter.Rarity != 0 && card.Rarity != filter.Rarity {
			continue
		}
		if filter.GroupName != "" && card.GroupName != filter.GroupName {
			continue
		}
		items = append(items, domain.InventoryItem{Card: *card, Quantity: entry.Quantity})
	}

	// Rarest first, then by code for stable output
	sort.Slice(items, func(i, j int) bool {
		if items[i].Card.Rarity != items[j].Card.Rarity {
			return items[i].Card.Rarity > items[j].Card.Rarity
		}
		return items[i].Card.Code < items[j].Card.Code
	})

	return items, nil
}

func (s *service) Gift(ctx context.Context, fromUserID, toUserID string, cardID int, n int) error {
	log := logger.FromContext(ctx)

	if fromUserID == toUserID {
		return domain.ErrSelfOperation
	}
	if n < 1 {
		return domain.ErrInvalidQuantity
	}

	// Recipient must be onboarded so the copies stay reachable
	if _, err := s.accountSvc.GetBalance(ctx, toUserID); err != nil {
		return fmt.Errorf(ErrMsgGetAccountFailed, err)
	}

	if err := s.MoveCopies(ctx, fromUserID, toUserID, cardID, n); err != nil {
		return err
	}

	log.Info(LogMsgGiftCompleted, "from", fromUserID, "to", toUserID, "cardID", cardID, "n", n)
	return nil
}

func (s *service) TopCollectors(ctx context.Context, limit int) ([]domain.CollectorCount, error) {
	if limit <= 0 || limit > domain.MaxLeaderboardLimit {
		limit = domain.DefaultLeaderboardLimit
	}

	collectors, err := s.repo.TopCollectors(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgTopCollectorsFailed, err)
	}
	return collectors, nil
}
