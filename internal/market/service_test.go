package market_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirae-dev/ShoreBot_Go/internal/catalog"
	"github.com/mirae-dev/ShoreBot_Go/internal/domain"
	"github.com/mirae-dev/ShoreBot_Go/internal/market"
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
	repo *market.FakeRepository
	svc  market.Service
}

func newFixture() *fixture {
	cards := []domain.Card{
		{ID: 1, Code: "NJ-001", Name: "Haru", Rarity: domain.RarityCommon, Droppable: true},
		{ID: 2, Code: "NJ-002", Name: "Mina", Rarity: domain.RarityLegendary, Droppable: true},
	}

	repo := market.NewFakeRepository()
	for _, c := range cards {
		repo.SeedCard(c)
	}
	catalogSvc := catalog.NewService(&fakeCatalogRepo{cards: cards}, catalog.CacheConfig{})

	return &fixture{
		repo: repo,
		svc:  market.NewService(repo, catalogSvc, market.Config{}),
	}
}

func TestCreateListing_EscrowsCopies(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.repo.SeedCopies("seller", 1, 3)

	listing, err := f.svc.CreateListing(ctx, "seller", 1, 500, 2)
	require.NoError(t, err)
	assert.NotEmpty(t, listing.Code)
	assert.Equal(t, int64(1000), listing.TotalPrice())

	// Escrowed copies are out of the seller's inventory immediately
	assert.Equal(t, 1, f.repo.Quantity("seller", 1))
}

func TestCreateListing_Validation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.repo.SeedCopies("seller", 1, 3)

	_, err := f.svc.CreateListing(ctx, "seller", 1, 500, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = f.svc.CreateListing(ctx, "seller", 1, 0, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = f.svc.CreateListing(ctx, "seller", 999, 500, 1)
	assert.ErrorIs(t, err, domain.ErrCardNotFound)
}

func TestCreateListing_InsufficientCopies(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.repo.SeedCopies("seller", 1, 1)

	_, err := f.svc.CreateListing(ctx, "seller", 1, 500, 5)
	assert.ErrorIs(t, err, domain.ErrInsufficientCopies)

	// Nothing escrowed, nothing listed
	assert.Equal(t, 1, f.repo.Quantity("seller", 1))
	views, err := f.svc.Browse(ctx, domain.ListingFilter{})
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestPurchase_SettlesWholeListing(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.repo.SeedBalance("seller", 0)
	f.repo.SeedBalance("buyer", 2000)
	f.repo.SeedCopies("seller", 1, 2)

	listing, err := f.svc.CreateListing(ctx, "seller", 1, 500, 2)
	require.NoError(t, err)

	result, err := f.svc.Purchase(ctx, "buyer", listing.Code)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), result.TotalPrice)
	assert.Equal(t, int64(1000), result.BuyerBalance)

	assert.Equal(t, int64(1000), f.repo.Balance("seller"))
	assert.Equal(t, 2, f.repo.Quantity("buyer", 1))
	assert.Equal(t, 0, f.repo.Quantity("seller", 1))

	// Listing is consumed
	_, err = f.svc.GetListing(ctx, listing.Code)
	assert.ErrorIs(t, err, domain.ErrListingNotFound)
}

func TestPurchase_RejectsSelfPurchase(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.repo.SeedBalance("seller", 5000)
	f.repo.SeedCopies("seller", 1, 1)

	listing, err := f.svc.CreateListing(ctx, "seller", 1, 500, 1)
	require.NoError(t, err)

	_, err = f.svc.Purchase(ctx, "seller", listing.Code)
	assert.ErrorIs(t, err, domain.ErrSelfOperation)

	// Listing survives
	_, err = f.svc.GetListing(ctx, listing.Code)
	assert.NoError(t, err)
}

func TestPurchase_InsufficientFundsLeavesListingIntact(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.repo.SeedBalance("seller", 0)
	f.repo.SeedBalance("buyer", 100)
	f.repo.SeedCopies("seller", 1, 1)

	listing, err := f.svc.CreateListing(ctx, "seller", 1, 500, 1)
	require.NoError(t, err)

	_, err = f.svc.Purchase(ctx, "buyer", listing.Code)
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

	assert.Equal(t, int64(100), f.repo.Balance("buyer"))
	assert.Equal(t, int64(0), f.repo.Balance("seller"))
	assert.Equal(t, 0, f.repo.Quantity("buyer", 1))

	_, err = f.svc.GetListing(ctx, listing.Code)
	assert.NoError(t, err)
}

func TestPurchase_UnknownListing(t *testing.T) {
	f := newFixture()

	f.repo.SeedBalance("buyer", 1000)

	_, err := f.svc.Purchase(context.Background(), "buyer", "no-such-code")
	assert.ErrorIs(t, err, domain.ErrListingNotFound)
}

func TestPurchase_ConcurrentBuyersSettleAtMostOnce(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	const buyers = 8

	f.repo.SeedBalance("seller", 0)
	f.repo.SeedCopies("seller", 1, 1)
	for i := 0; i < buyers; i++ {
		f.repo.SeedBalance(buyerID(i), 1000)
	}

	listing, err := f.svc.CreateListing(ctx, "seller", 1, 500, 1)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]error, buyers)
	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = f.svc.Purchase(ctx, buyerID(i), listing.Code)
		}(i)
	}
	wg.Wait()

	successes := 0
	for i, err := range results {
		if err == nil {
			successes++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrListingNotFound, "loser %d must see the listing gone", i)
	}
	assert.Equal(t, 1, successes, "exactly one purchase settles")

	// Seller was paid exactly once and exactly one buyer paid
	assert.Equal(t, int64(500), f.repo.Balance("seller"))
	paid := 0
	for i := 0; i < buyers; i++ {
		switch f.repo.Balance(buyerID(i)) {
		case 500:
			paid++
			assert.Equal(t, 1, f.repo.Quantity(buyerID(i), 1))
		case 1000:
		default:
			t.Fatalf("unexpected balance for %s", buyerID(i))
		}
	}
	assert.Equal(t, 1, paid)
}

func buyerID(i int) string {
	return "buyer-" + string(rune('a'+i))
}

func TestCancelListing_ReturnsEscrow(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.repo.SeedCopies("seller", 1, 2)

	listing, err := f.svc.CreateListing(ctx, "seller", 1, 500, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, f.repo.Quantity("seller", 1))

	// Only the owner can cancel
	err = f.svc.CancelListing(ctx, "stranger", listing.Code)
	assert.ErrorIs(t, err, domain.ErrNotListingOwner)

	err = f.svc.CancelListing(ctx, "seller", listing.Code)
	require.NoError(t, err)
	assert.Equal(t, 2, f.repo.Quantity("seller", 1))

	_, err = f.svc.GetListing(ctx, listing.Code)
	assert.ErrorIs(t, err, domain.ErrListingNotFound)
}

func TestBrowse_Filters(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.repo.SeedCopies("alice", 1, 5)
	f.repo.SeedCopies("bob", 2, 1)

	_, err := f.svc.CreateListing(ctx, "alice", 1, 300, 2)
	require.NoError(t, err)
	_, err = f.svc.CreateListing(ctx, "bob", 2, 8000, 1)
	require.NoError(t, err)

	views, err := f.svc.Browse(ctx, domain.ListingFilter{})
	require.NoError(t, err)
	assert.Len(t, views, 2)

	views, err = f.svc.Browse(ctx, domain.ListingFilter{CardID: 2})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Mina", views[0].Card.Name)

	views, err = f.svc.Browse(ctx, domain.ListingFilter{MaxPrice: 500})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "alice", views[0].Listing.SellerID)

	views, err = f.svc.Browse(ctx, domain.ListingFilter{SellerID: "bob"})
	require.NoError(t, err)
	assert.Len(t, views, 1)
}

func TestSellToHouse_PaysRarityPrice(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.repo.SeedBalance("alice", 0)
	f.repo.SeedCopies("alice", 2, 3) // legendary

	result, err := f.svc.SellToHouse(ctx, "alice", 2, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(10000), result.UnitPrice)
	assert.Equal(t, int64(20000), result.Total)
	assert.Equal(t, int64(20000), result.NewBalance)
	assert.Equal(t, 1, result.Remaining)

	assert.Equal(t, 1, f.repo.Quantity("alice", 2))
}

func TestSellToHouse_InsufficientCopies(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.repo.SeedBalance("alice", 0)
	f.repo.SeedCopies("alice", 1, 1)

	_, err := f.svc.SellToHouse(ctx, "alice", 1, 5)
	assert.ErrorIs(t, err, domain.ErrInsufficientCopies)
	assert.Equal(t, int64(0), f.repo.Balance("alice"))
	assert.Equal(t, 1, f.repo.Quantity("alice", 1))
}

func TestSellToHouse_InvalidQuantity(t *testing.T) {
	f := newFixture()

	_, err := f.svc.SellToHouse(context.Background(), "alice", 1, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}
