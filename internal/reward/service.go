package reward

import (
	"context"
	"fmt"

	"github.com/mirae-dev/ShoreBot_Go/internal/catalog"
	"github.com/mirae-dev/ShoreBot_Go/internal/cooldown"
	"github.com/mirae-dev/ShoreBot_Go/internal/domain"
	"github.com/mirae-dev/ShoreBot_Go/internal/logger"
	"github.com/mirae-dev/ShoreBot_Go/internal/utils"
)

// AccountService is the slice of the account ledger reward claims need
type AccountService interface {
	EnsureAccount(ctx context.Context, userID string) (*domain.Account, bool, error)
	Credit(ctx context.Context, userID string, amount int64) (int64, error)
	Debit(ctx context.Context, userID string, amount int64) (int64, error)
}

// InventoryService is the slice of the inventory ledger card drops need
type InventoryService interface {
	AddCopies(ctx context.Context, userID string, cardID int, n int) (int, error)
}

// CoinClaimResult reports a granted coin claim
type CoinClaimResult struct {
	Action     string `json:"action"`
	Amount     int64  `json:"amount"`
	NewBalance int64  `json:"new_balance"`
}

// DropResult reports a granted card drop
type DropResult struct {
	Card     domain.Card `json:"card"`
	Quantity int         `json:"quantity"`
}

// BoosterResult reports a granted booster: a coin payout plus a card bundle
type BoosterResult struct {
	Coins      int64         `json:"coins"`
	NewBalance int64         `json:"new_balance"`
	Cards      []domain.Card `json:"cards"`
}

// BonanzaResult reports a granted bonanza: the mega coin payout plus a
// bundle of legendary cards
type BonanzaResult struct {
	Coins      int64         `json:"coins"`
	NewBalance int64         `json:"new_balance"`
	Cards      []domain.Card `json:"cards"`
}

// Config holds reward amounts and gating
type Config struct {
	DailyReward   int64
	WeeklyReward  int64
	SurfMin       int64
	SurfMax       int64
	ExploreMin    int64
	ExploreMax    int64
	BoosterReward int64
	BoosterCards  int
	BonanzaReward int64
	BonanzaCards  int

	// RarityWeights drives the drop roller, weight per rarity tier
	RarityWeights map[int]int

	// BoosterUsers are the only users allowed to claim boosters
	BoosterUsers map[string]struct{}
}

// Service defines the interface for timed reward claims and pack purchases
type Service interface {
	ClaimDaily(ctx context.Context, userID string) (*CoinClaimResult, error)
	ClaimWeekly(ctx context.Context, userID string) (*CoinClaimResult, error)
	ClaimSurf(ctx context.Context, userID string) (*CoinClaimResult, error)
	ClaimExplore(ctx context.Context, userID string) (*CoinClaimResult, error)
	ClaimDrop(ctx context.Context, userID string) (*DropResult, error)
	ClaimBooster(ctx context.Context, userID string) (*BoosterResult, error)
	ClaimBonanza(ctx context.Context, userID string) (*BonanzaResult, error)

	// Packs lists the purchasable card packs
	Packs() []Pack

	// OpenPack debits the pack cost and rolls its cards into the inventory
	OpenPack(ctx context.Context, userID, packID string) (*PackResult, error)
}

type service struct {
	accountSvc   AccountService
	inventorySvc InventoryService
	catalogSvc   catalog.Service
	cooldownSvc  cooldown.Service
	config       Config
	roller       *Roller
	randInt64    func(min, max int64) int64
	randInt      func(min, max int) int
}

// NewService creates a new reward service
func NewService(accountSvc AccountService, inventorySvc InventoryService, catalogSvc catalog.Service, cooldownSvc cooldown.Service, config Config) Service {
	return &service{
		accountSvc:   accountSvc,
		inventorySvc: inventorySvc,
		catalogSvc:   catalogSvc,
		cooldownSvc:  cooldownSvc,
		config:       config,
		roller:       NewRoller(config.RarityWeights, utils.RandomFloat, utils.RandomInt),
		randInt64:    utils.RandomInt64,
		randInt:      utils.RandomInt,
	}
}

func (s *service) ClaimDaily(ctx context.Context, userID string) (*CoinClaimResult, error) {
	return s.claimCoins(ctx, userID, domain.ActionDaily, func() int64 { return s.config.DailyReward })
}

func (s *service) ClaimWeekly(ctx context.Context, userID string) (*CoinClaimResult, error) {
	return s.claimCoins(ctx, userID, domain.ActionWeekly, func() int64 { return s.config.WeeklyReward })
}

func (s *service) ClaimSurf(ctx context.Context, userID string) (*CoinClaimResult, error) {
	return s.claimCoins(ctx, userID, domain.ActionSurf, func() int64 {
		return s.randInt64(s.config.SurfMin, s.config.SurfMax)
	})
}

func (s *service) ClaimExplore(ctx context.Context, userID string) (*CoinClaimResult, error) {
	return s.claimCoins(ctx, userID, domain.ActionExplore, func() int64 {
		return s.randInt64(s.config.ExploreMin, s.config.ExploreMax)
	})
}

// claimCoins runs a coin payout inside the cooldown gate. The amount is rolled
// only after the gate grants the claim so rejected attempts consume no rolls.
func (s *service) claimCoins(ctx context.Context, userID, action string, amountFn func() int64) (*CoinClaimResult, error) {
	if _, _, err := s.accountSvc.EnsureAccount(ctx, userID); err != nil {
		return nil, fmt.Errorf(ErrMsgEnsureAccountFailed, err)
	}

	var result *CoinClaimResult
	err := s.cooldownSvc.EnforceClaim(ctx, userID, action, func() error {
		amount := amountFn()
		balance, err := s.accountSvc.Credit(ctx, userID, amount)
		if err != nil {
			return fmt.Errorf(ErrMsgCreditFailed, err)
		}
		result = &CoinClaimResult{Action: action, Amount: amount, NewBalance: balance}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgClaimGranted,
		"userID", userID, "action", action, "amount", result.Amount)
	return result, nil
}

func (s *service) ClaimDrop(ctx context.Context, userID string) (*DropResult, error) {
	if _, _, err := s.accountSvc.EnsureAccount(ctx, userID); err != nil {
		return nil, fmt.Errorf(ErrMsgEnsureAccountFailed, err)
	}

	var result *DropResult
	err := s.cooldownSvc.EnforceClaim(ctx, userID, domain.ActionDrop, func() error {
		card, err := s.roller.PickCard(ctx, s.catalogSvc)
		if err != nil {
			return err
		}
		if _, err := s.inventorySvc.AddCopies(ctx, userID, card.ID, 1); err != nil {
			return fmt.Errorf(ErrMsgAddCardFailed, err)
		}
		result = &DropResult{Card: *card, Quantity: 1}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgCardDropped,
		"userID", userID, "cardID", result.Card.ID, "rarity", result.Card.Rarity)
	return result, nil
}

func (s *service) ClaimBooster(ctx context.Context, userID string) (*BoosterResult, error) {
	log := logger.FromContext(ctx)

	if _, allowed := s.config.BoosterUsers[userID]; !allowed {
		log.Debug(LogMsgBoosterDenied, "userID", userID)
		return nil, domain.ErrBoosterNotAllowed
	}

	if _, _, err := s.accountSvc.EnsureAccount(ctx, userID); err != nil {
		return nil, fmt.Errorf(ErrMsgEnsureAccountFailed, err)
	}

	var result *BoosterResult
	err := s.cooldownSvc.EnforceClaim(ctx, userID, domain.ActionBooster, func() error {
		cards := make([]domain.Card, 0, s.config.BoosterCards)
		for i := 0; i < s.config.BoosterCards; i++ {
			card, err := s.roller.PickCard(ctx, s.catalogSvc)
			if err != nil {
				return err
			}
			if _, err := s.inventorySvc.AddCopies(ctx, userID, card.ID, 1); err != nil {
				return fmt.Errorf(ErrMsgAddCardFailed, err)
			}
			cards = append(cards, *card)
		}

		// Credit last: if a card add fails above, the failed claim has not
		// touched the balance, so a retry cannot credit the coins twice.
		balance, err := s.accountSvc.Credit(ctx, userID, s.config.BoosterReward)
		if err != nil {
			return fmt.Errorf(ErrMsgCreditFailed, err)
		}

		result = &BoosterResult{Coins: s.config.BoosterReward, NewBalance: balance, Cards: cards}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info(LogMsgBoosterOpened,
		"userID", userID, "coins", result.Coins, "cards", len(result.Cards))
	return result, nil
}

// ClaimBonanza grants the booster-exclusive mega reward: a large coin payout
// plus a bundle of legendary cards picked uniformly from the droppable pool.
// An empty legendary pool pays the coins alone rather than failing.
func (s *service) ClaimBonanza(ctx context.Context, userID string) (*BonanzaResult, error) {
	log := logger.FromContext(ctx)

	if _, allowed := s.config.BoosterUsers[userID]; !allowed {
		log.Debug(LogMsgBonanzaDenied, "userID", userID)
		return nil, domain.ErrBoosterNotAllowed
	}

	if _, _, err := s.accountSvc.EnsureAccount(ctx, userID); err != nil {
		return nil, fmt.Errorf(ErrMsgEnsureAccountFailed, err)
	}

	var result *BonanzaResult
	err := s.cooldownSvc.EnforceClaim(ctx, userID, domain.ActionBonanza, func() error {
		pool, err := s.catalogSvc.ListCards(ctx, domain.CardFilter{Rarity: domain.RarityLegendary, DroppableOnly: true})
		if err != nil {
			return fmt.Errorf(ErrMsgListPoolFailed, err)
		}

		var cards []domain.Card
		if len(pool) > 0 {
			cards = make([]domain.Card, 0, s.config.BonanzaCards)
			for i := 0; i < s.config.BonanzaCards; i++ {
				card := pool[s.randInt(0, len(pool)-1)]
				if _, err := s.inventorySvc.AddCopies(ctx, userID, card.ID, 1); err != nil {
					return fmt.Errorf(ErrMsgAddCardFailed, err)
				}
				cards = append(cards, card)
			}
		}

		// Credit last, same as the booster: a failed card add must leave the
		// balance untouched so a retry cannot double-pay.
		balance, err := s.accountSvc.Credit(ctx, userID, s.config.BonanzaReward)
		if err != nil {
			return fmt.Errorf(ErrMsgCreditFailed, err)
		}

		result = &BonanzaResult{Coins: s.config.BonanzaReward, NewBalance: balance, Cards: cards}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info(LogMsgBonanzaClaimed,
		"userID", userID, "coins", result.Coins, "cards", len(result.Cards))
	return result, nil
}
