package reward

import (
	"context"
	"fmt"

	"github.com/mirae-dev/ShoreBot_Go/internal/domain"
	"github.com/mirae-dev/ShoreBot_Go/internal/logger"
)

// Pack is a purchasable card pack: a fixed coin cost for a fixed card count
type Pack struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Cost  int64  `json:"cost"`
	Cards int    `json:"cards"`
}

// PackResult reports a purchased pack and the cards it rolled
type PackResult struct {
	Pack       Pack          `json:"pack"`
	NewBalance int64         `json:"new_balance"`
	Cards      []domain.Card `json:"cards"`
}

// packs is the shop catalog, cheapest first
var packs = []Pack{
	{ID: "1", Name: "Starter Pack", Cost: 100, Cards: 1},
	{ID: "2", Name: "Double Pack", Cost: 200, Cards: 2},
	{ID: "3", Name: "Premium Pack", Cost: 500, Cards: 5},
	{ID: "4", Name: "Ultimate Pack", Cost: 1000, Cards: 10},
}

func (s *service) Packs() []Pack {
	out := make([]Pack, len(packs))
	copy(out, packs)
	return out
}

func (s *service) OpenPack(ctx context.Context, userID, packID string) (*PackResult, error) {
	log := logger.FromContext(ctx)

	var pack *Pack
	for i := range packs {
		if packs[i].ID == packID {
			pack = &packs[i]
			break
		}
	}
	if pack == nil {
		return nil, domain.ErrPackNotFound
	}

	if _, _, err := s.accountSvc.EnsureAccount(ctx, userID); err != nil {
		return nil, fmt.Errorf(ErrMsgEnsureAccountFailed, err)
	}

	balance, err := s.accountSvc.Debit(ctx, userID, pack.Cost)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgDebitFailed, err)
	}

	cards := make([]domain.Card, 0, pack.Cards)
	for i := 0; i < pack.Cards; i++ {
		card, err := s.roller.PickCard(ctx, s.catalogSvc)
		if err == nil {
			_, err = s.inventorySvc.AddCopies(ctx, userID, card.ID, 1)
		}
		if err != nil {
			// The cost was already taken, so give it back before failing.
			// A refund failure is logged but the roll error is what surfaces.
			if _, refundErr := s.accountSvc.Credit(ctx, userID, pack.Cost); refundErr != nil {
				log.Error(LogMsgPackRefunded, "userID", userID, "packID", pack.ID, "error", refundErr)
			} else {
				log.Warn(LogMsgPackRefunded, "userID", userID, "packID", pack.ID)
			}
			return nil, err
		}
		cards = append(cards, *card)
	}

	log.Info(LogMsgPackOpened,
		"userID", userID, "packID", pack.ID, "cost", pack.Cost, "cards", len(cards))
	return &PackResult{Pack: *pack, NewBalance: balance, Cards: cards}, nil
}
