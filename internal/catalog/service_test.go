package catalog_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirae-dev/ShoreBot_Go/internal/catalog"
	"github.com/mirae-dev/ShoreBot_Go/internal/domain"
)

// fakeCatalogRepo is a stateful in-memory catalog for service tests
type fakeCatalogRepo struct {
	cards []domain.Card

	getByIDCalls   int
	getByCodeCalls int
}

func (f *fakeCatalogRepo) GetCardByID(_ context.Context, cardID int) (*domain.Card, error) {
	f.getByIDCalls++
	for i := range f.cards {
		if f.cards[i].ID == cardID {
			c := f.cards[i]
			return &c, nil
		}
	}
	return nil, domain.ErrCardNotFound
}

func (f *fakeCatalogRepo) GetCardByCode(_ context.Context, code string) (*domain.Card, error) {
	f.getByCodeCalls++
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

func testCards() []domain.Card {
	return []domain.Card{
		{ID: 1, Code: "NJ-001", Name: "Haru", GroupName: "NewJade", Rarity: domain.RarityCommon, Droppable: true},
		{ID: 2, Code: "NJ-002", Name: "Mina", GroupName: "NewJade", Rarity: domain.RarityRare, Droppable: true},
		{ID: 3, Code: "SV-001", Name: "Dawn", GroupName: "Seven", Rarity: domain.RarityLegendary, Droppable: false},
	}
}

func TestService_GetCardByID_CachesLookups(t *testing.T) {
	repo := &fakeCatalogRepo{cards: testCards()}
	svc := catalog.NewService(repo, catalog.CacheConfig{})
	ctx := context.Background()

	card, err := svc.GetCardByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "NJ-001", card.Code)
	assert.Equal(t, 1, repo.getByIDCalls)

	// Second lookup is served from cache
	card, err = svc.GetCardByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Haru", card.Name)
	assert.Equal(t, 1, repo.getByIDCalls)

	// ID lookup also primed the code key
	card, err = svc.GetCardByCode(ctx, "nj-001")
	require.NoError(t, err)
	assert.Equal(t, 1, card.ID)
	assert.Equal(t, 0, repo.getByCodeCalls)
}

func TestService_GetCardByCode_CaseInsensitive(t *testing.T) {
	repo := &fakeCatalogRepo{cards: testCards()}
	svc := catalog.NewService(repo, catalog.CacheConfig{})
	ctx := context.Background()

	card, err := svc.GetCardByCode(ctx, "sv-001")
	require.NoError(t, err)
	assert.Equal(t, "Dawn", card.Name)
	assert.Equal(t, 1, repo.getByCodeCalls)

	// Different casing hits the same cache key
	_, err = svc.GetCardByCode(ctx, "SV-001")
	require.NoError(t, err)
	assert.Equal(t, 1, repo.getByCodeCalls)
}

func TestService_GetCard_NotFound(t *testing.T) {
	repo := &fakeCatalogRepo{cards: testCards()}
	svc := catalog.NewService(repo, catalog.CacheConfig{})
	ctx := context.Background()

	_, err := svc.GetCardByID(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrCardNotFound)

	_, err = svc.GetCardByCode(ctx, "XX-999")
	assert.ErrorIs(t, err, domain.ErrCardNotFound)
}

func TestService_InvalidateCard(t *testing.T) {
	repo := &fakeCatalogRepo{cards: testCards()}
	svc := catalog.NewService(repo, catalog.CacheConfig{})
	ctx := context.Background()

	_, err := svc.GetCardByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.getByIDCalls)

	svc.InvalidateCard(2, "NJ-002")

	_, err = svc.GetCardByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.getByIDCalls)
}

func TestService_ListCards_Filtered(t *testing.T) {
	repo := &fakeCatalogRepo{cards: testCards()}
	svc := catalog.NewService(repo, catalog.CacheConfig{})
	ctx := context.Background()

	cards, err := svc.ListCards(ctx, domain.CardFilter{GroupName: "NewJade"})
	require.NoError(t, err)
	assert.Len(t, cards, 2)

	cards, err = svc.ListCards(ctx, domain.CardFilter{DroppableOnly: true})
	require.NoError(t, err)
	assert.Len(t, cards, 2)
}
