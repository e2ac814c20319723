package trade

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirae-dev/ShoreBot_Go/internal/catalog"
	"github.com/mirae-dev/ShoreBot_Go/internal/domain"
	"github.com/mirae-dev/ShoreBot_Go/internal/inventory"
)

// fakeCatalogRepo serves a fixed card set
type fakeCatalogRepo struct {
	cards []domain.Card
}

func (f *fakeCatalogRepo) GetCardByID(_ context.Context, cardID int) (*domain.Card, error) {
	for i := range f.cards {
		if f.cards[i].ID == cardID {
			c := f.cards[i]
			return &c, nil
		}
	}
	return nil, domain.ErrCardNotFound
}

func (f *fakeCatalogRepo) GetCardByCode(_ context.Context, code string) (*domain.Card, error) {
	for i := range f.cards {
		if strings.EqualFold(f.cards[i].Code, code) {
			c := f.cards[i]
			return &c, nil
		}
	}
	return nil, domain.ErrCardNotFound
}

func (f *fakeCatalogRepo) ListCards(_ context.Context, filter domain.CardFilter) ([]domain.Card, error) {
	var out []domain.Card
	for _, c := range f.cards {
		if filter.Matches(c) {
			out = append(out, c)
		}
	}
	return out, nil
}

type fixture struct {
	inv *inventory.FakeRepository
	svc *service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	inv := inventory.NewFakeRepository()
	catalogSvc := catalog.NewService(&fakeCatalogRepo{cards: []domain.Card{
		{ID: 1, Code: "NJ-001", Rarity: domain.RarityCommon, Droppable: true},
		{ID: 2, Code: "NJ-002", Rarity: domain.RarityRare, Droppable: true},
	}}, catalog.CacheConfig{})

	svc := NewService(inv, catalogSvc, Config{}).(*service)
	t.Cleanup(func() { _ = svc.Shutdown(context.Background()) })

	return &fixture{inv: inv, svc: svc}
}

func (f *fixture) proposeStandard(t *testing.T) *domain.TradeOffer {
	t.Helper()

	f.inv.SeedCopies("alice", 1, 1)
	f.inv.SeedCopies("bob", 2, 1)

	offer, err := f.svc.Propose(context.Background(), "alice", "bob", 1, 2)
	require.NoError(t, err)
	return offer
}

func TestPropose_RejectsSelfTrade(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Propose(context.Background(), "alice", "alice", 1, 2)
	assert.ErrorIs(t, err, domain.ErrSelfOperation)
}

func TestPropose_RejectsUnknownCard(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Propose(context.Background(), "alice", "bob", 999, 2)
	assert.ErrorIs(t, err, domain.ErrCardNotFound)
}

func TestPropose_RequiresBothHoldings(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Proposer holds nothing
	_, err := f.svc.Propose(ctx, "alice", "bob", 1, 2)
	assert.ErrorIs(t, err, domain.ErrInsufficientCopies)

	// Counterparty holds nothing
	f.inv.SeedCopies("alice", 1, 1)
	_, err = f.svc.Propose(ctx, "alice", "bob", 1, 2)
	assert.ErrorIs(t, err, domain.ErrInsufficientCopies)
}

func TestAccept_SwapsOneCopyEachWay(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	offer := f.proposeStandard(t)

	settled, err := f.svc.Accept(ctx, "bob", offer.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TradeSettled, settled.State)

	aliceCard1, _ := f.inv.GetQuantity(ctx, "alice", 1)
	aliceCard2, _ := f.inv.GetQuantity(ctx, "alice", 2)
	bobCard1, _ := f.inv.GetQuantity(ctx, "bob", 1)
	bobCard2, _ := f.inv.GetQuantity(ctx, "bob", 2)

	assert.Equal(t, 0, aliceCard1)
	assert.Equal(t, 1, aliceCard2)
	assert.Equal(t, 1, bobCard1)
	assert.Equal(t, 0, bobCard2)
}

func TestAccept_OnlyCounterparty(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	offer := f.proposeStandard(t)

	_, err := f.svc.Accept(ctx, "alice", offer.ID)
	assert.ErrorIs(t, err, domain.ErrNotOfferCounterparty)

	_, err = f.svc.Accept(ctx, "stranger", offer.ID)
	assert.ErrorIs(t, err, domain.ErrNotOfferCounterparty)
}

func TestAccept_SettlesAtMostOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	offer := f.proposeStandard(t)

	const attempts = 8
	var wg sync.WaitGroup
	results := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = f.svc.Accept(ctx, "bob", offer.ID)
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range results {
		if err == nil {
			successes++
		} else {
			assert.ErrorIs(t, err, domain.ErrOfferNotPending)
		}
	}
	assert.Equal(t, 1, successes)

	// The swap happened exactly once
	bobCard1, _ := f.inv.GetQuantity(ctx, "bob", 1)
	assert.Equal(t, 1, bobCard1)
}

func TestAccept_ExpiredOffer(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	offer := f.proposeStandard(t)

	// Age the offer past its TTL
	f.svc.store.mu.Lock()
	f.svc.store.offers[offer.ID].ExpiresAt = time.Now().Add(-time.Second)
	f.svc.store.mu.Unlock()

	_, err := f.svc.Accept(ctx, "bob", offer.ID)
	assert.ErrorIs(t, err, domain.ErrOfferNotPending)

	// No copies moved
	aliceCard1, _ := f.inv.GetQuantity(ctx, "alice", 1)
	assert.Equal(t, 1, aliceCard1)
}

func TestAccept_CopiesMovedDuringWindow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	offer := f.proposeStandard(t)

	// Proposer loses the offered copy between propose and accept
	_, err := f.inv.RemoveCopies(ctx, "alice", 1, 1)
	require.NoError(t, err)

	_, err = f.svc.Accept(ctx, "bob", offer.ID)
	assert.ErrorIs(t, err, domain.ErrItemNoLongerAvailable)

	// Nothing moved and the offer is dead
	bobCard2, _ := f.inv.GetQuantity(ctx, "bob", 2)
	assert.Equal(t, 1, bobCard2)

	_, err = f.svc.Accept(ctx, "bob", offer.ID)
	assert.ErrorIs(t, err, domain.ErrOfferNotPending)
}

func TestDecline_EitherParty(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	offer := f.proposeStandard(t)

	err := f.svc.Decline(ctx, "stranger", offer.ID)
	assert.ErrorIs(t, err, domain.ErrNotOfferCounterparty)

	// Proposer cancels
	err = f.svc.Decline(ctx, "alice", offer.ID)
	require.NoError(t, err)

	_, err = f.svc.Accept(ctx, "bob", offer.ID)
	assert.ErrorIs(t, err, domain.ErrOfferNotPending)
}

func TestGetOffer_FoldsExpiryIntoState(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	offer := f.proposeStandard(t)

	got, err := f.svc.GetOffer(ctx, offer.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TradeProposed, got.State)

	f.svc.store.mu.Lock()
	f.svc.store.offers[offer.ID].ExpiresAt = time.Now().Add(-time.Second)
	f.svc.store.mu.Unlock()

	got, err = f.svc.GetOffer(ctx, offer.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TradeExpired, got.State)
}

func TestListOffers_ScopedToUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	offer := f.proposeStandard(t)

	for _, userID := range []string{"alice", "bob"} {
		offers, err := f.svc.ListOffers(ctx, userID)
		require.NoError(t, err)
		require.Len(t, offers, 1)
		assert.Equal(t, offer.ID, offers[0].ID)
	}

	offers, err := f.svc.ListOffers(ctx, "stranger")
	require.NoError(t, err)
	assert.Empty(t, offers)
}

func TestStore_SweepDropsExpiredOffers(t *testing.T) {
	f := newFixture(t)

	offer := f.proposeStandard(t)

	f.svc.store.mu.Lock()
	f.svc.store.offers[offer.ID].ExpiresAt = time.Now().Add(-time.Second)
	f.svc.store.mu.Unlock()

	swept := f.svc.store.sweep(time.Now())
	assert.Equal(t, 1, swept)

	_, err := f.svc.GetOffer(context.Background(), offer.ID)
	assert.ErrorIs(t, err, domain.ErrOfferNotFound)
}

func TestStore_SweepSkipsSettlingOffers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	offer := f.proposeStandard(t)

	claimed, err := f.svc.store.Claim(offer.ID, time.Now())
	require.NoError(t, err)
	require.Equal(t, domain.TradeSettling, claimed.State)

	// A sweep while the settlement is in flight must leave the offer alone
	assert.Equal(t, 0, f.svc.store.sweep(time.Now()))

	// An infrastructure failure releases the offer back to proposed; it is
	// still in the store and the counterparty can retry
	f.svc.store.Release(offer.ID, domain.TradeProposed)

	settled, err := f.svc.Accept(ctx, "bob", offer.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TradeSettled, settled.State)

	// Once settled, the next sweep drops it
	assert.Equal(t, 1, f.svc.store.sweep(time.Now()))
}
