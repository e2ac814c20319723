package market

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/mirae-dev/ShoreBot_Go/internal/domain"
	"github.com/mirae-dev/ShoreBot_Go/internal/repository"
)

// FakeRepository is a stateful in-memory implementation of repository.Market
// for integration-style unit tests. Transactions hold the repository lock
// from begin to commit, which serializes them the way row locks do in the
// store, and roll back through an undo log.
type FakeRepository struct {
	mu       sync.Mutex
	listings map[string]*domain.Listing
	balances map[string]int64
	copies   map[string]map[int]int
	cards    map[int]domain.Card
}

func NewFakeRepository() *FakeRepository {
	return &FakeRepository{
		listings: make(map[string]*domain.Listing),
		balances: make(map[string]int64),
		copies:   make(map[string]map[int]int),
		cards:    make(map[int]domain.Card),
	}
}

func (f *FakeRepository) SeedBalance(userID string, coins int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.balances[userID] = coins
}

func (f *FakeRepository) SeedCopies(userID string, cardID, quantity int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.copies[userID] == nil {
		f.copies[userID] = make(map[int]int)
	}
	f.copies[userID][cardID] += quantity
}

func (f *FakeRepository) SeedCard(card domain.Card) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cards[card.ID] = card
}

// Balance reads a balance outside any transaction
func (f *FakeRepository) Balance(userID string) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.balances[userID]
}

// Quantity reads a copy count outside any transaction
func (f *FakeRepository) Quantity(userID string, cardID int) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.copies[userID][cardID]
}

func (f *FakeRepository) GetListing(_ context.Context, code string) (*domain.Listing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	listing, ok := f.listings[code]
	if !ok {
		return nil, domain.ErrListingNotFound
	}
	copied := *listing
	return &copied, nil
}

func (f *FakeRepository) ListListings(_ context.Context, limit int, filter domain.ListingFilter) ([]domain.ListingView, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []domain.ListingView
	for _, listing := range f.listings {
		if filter.CardID != 0 && listing.CardID != filter.CardID {
			continue
		}
		if filter.SellerID != "" && listing.SellerID != filter.SellerID {
			continue
		}
		if filter.MaxPrice != 0 && listing.UnitPrice > filter.MaxPrice {
			continue
		}
		out = append(out, domain.ListingView{Listing: *listing, Card: f.cards[listing.CardID]})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Listing.CreatedAt.After(out[j].Listing.CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *FakeRepository) BeginTx(_ context.Context) (repository.MarketTx, error) {
	f.mu.Lock()
	return &fakeMarketTx{repo: f}, nil
}

// fakeMarketTx mutates the repository directly while holding its lock,
// undoing the mutations on rollback.
type fakeMarketTx struct {
	repo   *FakeRepository
	undo   []func()
	closed bool
}

func (t *fakeMarketTx) GetListingForUpdate(_ context.Context, code string) (*domain.Listing, error) {
	listing, ok := t.repo.listings[code]
	if !ok {
		return nil, domain.ErrListingNotFound
	}
	copied := *listing
	return &copied, nil
}

func (t *fakeMarketTx) InsertListing(_ context.Context, listing domain.Listing) error {
	copied := listing
	t.repo.listings[listing.Code] = &copied
	t.undo = append(t.undo, func() { delete(t.repo.listings, listing.Code) })
	return nil
}

func (t *fakeMarketTx) DeleteListing(_ context.Context, code string) error {
	listing, ok := t.repo.listings[code]
	if !ok {
		return domain.ErrListingNotFound
	}
	delete(t.repo.listings, code)
	t.undo = append(t.undo, func() { t.repo.listings[code] = listing })
	return nil
}

func (t *fakeMarketTx) Credit(_ context.Context, userID string, amount int64) (int64, error) {
	if _, ok := t.repo.balances[userID]; !ok {
		return 0, domain.ErrAccountNotFound
	}
	t.repo.balances[userID] += amount
	t.undo = append(t.undo, func() { t.repo.balances[userID] -= amount })
	return t.repo.balances[userID], nil
}

func (t *fakeMarketTx) Debit(_ context.Context, userID string, amount int64) (int64, error) {
	available, ok := t.repo.balances[userID]
	if !ok {
		return 0, domain.ErrAccountNotFound
	}
	if available < amount {
		return 0, domain.InsufficientFundsError{Available: available, Required: amount}
	}
	t.repo.balances[userID] -= amount
	t.undo = append(t.undo, func() { t.repo.balances[userID] += amount })
	return t.repo.balances[userID], nil
}

func (t *fakeMarketTx) AddCopies(_ context.Context, userID string, cardID int, n int) (int, error) {
	if t.repo.copies[userID] == nil {
		t.repo.copies[userID] = make(map[int]int)
	}
	t.repo.copies[userID][cardID] += n
	t.undo = append(t.undo, func() { t.repo.copies[userID][cardID] -= n })
	return t.repo.copies[userID][cardID], nil
}

func (t *fakeMarketTx) RemoveCopies(_ context.Context, userID string, cardID int, n int) (int, error) {
	available := t.repo.copies[userID][cardID]
	if available < n {
		return 0, domain.InsufficientCopiesError{Available: available, Required: n}
	}
	t.repo.copies[userID][cardID] -= n
	t.undo = append(t.undo, func() { t.repo.copies[userID][cardID] += n })
	return t.repo.copies[userID][cardID], nil
}

func (t *fakeMarketTx) Commit(_ context.Context) error {
	if t.closed {
		return errors.New(domain.ErrMsgTxClosed)
	}
	t.closed = true
	t.undo = nil
	t.repo.mu.Unlock()
	return nil
}

func (t *fakeMarketTx) Rollback(_ context.Context) error {
	if t.closed {
		return errors.New(domain.ErrMsgTxClosed)
	}
	t.closed = true
	for i := len(t.undo) - 1; i >= 0; i-- {
		t.undo[i]()
	}
	t.undo = nil
	t.repo.mu.Unlock()
	return nil
}
