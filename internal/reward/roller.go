package reward

import (
	"context"
	"fmt"
	"sort"

	"github.com/mirae-dev/ShoreBot_Go/internal/catalog"
	"github.com/mirae-dev/ShoreBot_Go/internal/domain"
	"github.com/mirae-dev/ShoreBot_Go/internal/logger"
)

// tierRef is a rarity tier with a cumulative weight for weighted selection
type tierRef struct {
	Rarity      int
	CumulWeight int
}

// Roller picks rarity tiers and cards for drops. Tier weights come from
// configuration; the cumulative table is built once, rarest tier first, so
// a given roll value maps to the same tier regardless of map iteration order.
type Roller struct {
	tiers       []tierRef
	totalWeight int
	rnd         func() float64
	randInt     func(min, max int) int
}

// NewRoller builds a roller from rarity weights. Tiers with non-positive
// weights are dropped; an empty map falls back to uniform weights.
func NewRoller(weights map[int]int, rnd func() float64, randInt func(min, max int) int) *Roller {
	var rarities []int
	for rarity, weight := range weights {
		if rarity >= domain.RarityMin && rarity <= domain.RarityMax && weight > 0 {
			rarities = append(rarities, rarity)
		}
	}
	if len(rarities) == 0 {
		for rarity := domain.RarityMin; rarity <= domain.RarityMax; rarity++ {
			rarities = append(rarities, rarity)
		}
	}

	// Rarest first
	sort.Sort(sort.Reverse(sort.IntSlice(rarities)))

	r := &Roller{rnd: rnd, randInt: randInt}
	for _, rarity := range rarities {
		weight := weights[rarity]
		if weight <= 0 {
			weight = 1
		}
		r.totalWeight += weight
		r.tiers = append(r.tiers, tierRef{Rarity: rarity, CumulWeight: r.totalWeight})
	}
	return r
}

// RollRarity returns a rarity tier chosen by a weighted roll in [0, totalWeight)
func (r *Roller) RollRarity() int {
	roll := int(r.rnd() * float64(r.totalWeight))
	lo, hi := 0, len(r.tiers)-1
	for lo < hi {
		mid := (lo + hi) / 2
		if r.tiers[mid].CumulWeight <= roll {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return r.tiers[lo].Rarity
}

// PickCard rolls a rarity tier and picks a droppable card of that tier
// uniformly. When the rolled tier has no droppable cards the pool widens to
// every droppable card; only a fully empty pool fails.
func (r *Roller) PickCard(ctx context.Context, catalogSvc catalog.Service) (*domain.Card, error) {
	rarity := r.RollRarity()

	pool, err := catalogSvc.ListCards(ctx, domain.CardFilter{Rarity: rarity, DroppableOnly: true})
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListPoolFailed, err)
	}

	if len(pool) == 0 {
		logger.FromContext(ctx).Debug(LogMsgPoolWidened, "rarity", rarity)
		pool, err = catalogSvc.ListCards(ctx, domain.CardFilter{DroppableOnly: true})
		if err != nil {
			return nil, fmt.Errorf(ErrMsgListPoolFailed, err)
		}
	}
	if len(pool) == 0 {
		return nil, domain.ErrNoEligibleCards
	}

	card := pool[r.randInt(0, len(pool)-1)]
	return &card, nil
}
