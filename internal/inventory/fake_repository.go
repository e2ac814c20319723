package inventory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/mirae-dev/ShoreBot_Go/internal/domain"
	"github.com/mirae-dev/ShoreBot_Go/internal/repository"
)

// FakeRepository is a stateful in-memory implementation of
// repository.Inventory for integration-style unit tests. It enforces the
// same rules as the store: guarded removals and delete-on-zero, with
// transactions applying all-or-nothing on commit.
type FakeRepository struct {
	mu      sync.Mutex
	entries map[string]map[int]*domain.InventoryEntry

	// Injectable failures for rollback tests
	AddErr    error
	RemoveErr error
}

func NewFakeRepository() *FakeRepository {
	return &FakeRepository{entries: make(map[string]map[int]*domain.InventoryEntry)}
}

// SeedCopies stocks an inventory entry directly
func (f *FakeRepository) SeedCopies(userID string, cardID, quantity int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.addLocked(userID, cardID, quantity)
}

func (f *FakeRepository) AddCopies(_ context.Context, userID string, cardID int, n int) (int, error) {
	if f.AddErr != nil {
		return 0, f.AddErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	return f.addLocked(userID, cardID, n), nil
}

func (f *FakeRepository) RemoveCopies(_ context.Context, userID string, cardID int, n int) (int, error) {
	if f.RemoveErr != nil {
		return 0, f.RemoveErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	return f.removeLocked(userID, cardID, n)
}

func (f *FakeRepository) GetQuantity(_ context.Context, userID string, cardID int) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.quantityLocked(userID, cardID), nil
}

func (f *FakeRepository) ListEntries(_ context.Context, userID string) ([]domain.InventoryEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []domain.InventoryEntry
	for _, entry := range f.entries[userID] {
		out = append(out, *entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CardID < out[j].CardID })
	return out, nil
}

func (f *FakeRepository) TopCollectors(_ context.Context, limit int) ([]domain.CollectorCount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]domain.CollectorCount, 0, len(f.entries))
	for userID, cards := range f.entries {
		if len(cards) > 0 {
			out = append(out, domain.CollectorCount{UserID: userID, UniqueCards: len(cards)})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UniqueCards != out[j].UniqueCards {
			return out[i].UniqueCards > out[j].UniqueCards
		}
		return out[i].UserID < out[j].UserID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *FakeRepository) BeginTx(_ context.Context) (repository.InventoryTx, error) {
	return &fakeInventoryTx{repo: f, deltas: make(map[invKey]int)}, nil
}

func (f *FakeRepository) addLocked(userID string, cardID, n int) int {
	if f.entries[userID] == nil {
		f.entries[userID] = make(map[int]*domain.InventoryEntry)
	}
	entry, ok := f.entries[userID][cardID]
	if !ok {
		entry = &domain.InventoryEntry{UserID: userID, CardID: cardID, AcquiredAt: time.Now()}
		f.entries[userID][cardID] = entry
	}
	entry.Quantity += n
	return entry.Quantity
}

func (f *FakeRepository) removeLocked(userID string, cardID, n int) (int, error) {
	entry, ok := f.entries[userID][cardID]
	if !ok {
		return 0, domain.InsufficientCopiesError{Available: 0, Required: n}
	}
	if entry.Quantity < n {
		return 0, domain.InsufficientCopiesError{Available: entry.Quantity, Required: n}
	}
	entry.Quantity -= n
	if entry.Quantity == 0 {
		delete(f.entries[userID], cardID)
	}
	return entry.Quantity, nil
}

func (f *FakeRepository) quantityLocked(userID string, cardID int) int {
	if entry, ok := f.entries[userID][cardID]; ok {
		return entry.Quantity
	}
	return 0
}

type invKey struct {
	userID string
	cardID int
}

// fakeInventoryTx buffers deltas and applies them on commit under the
// repository lock so the remove/add pair lands atomically.
type fakeInventoryTx struct {
	repo   *FakeRepository
	deltas map[invKey]int
	order  []invKey
	closed bool
}

func (t *fakeInventoryTx) AddCopies(_ context.Context, userID string, cardID int, n int) (int, error) {
	if t.closed {
		return 0, errors.New(domain.ErrMsgTxClosed)
	}
	if t.repo.AddErr != nil {
		return 0, t.repo.AddErr
	}

	t.repo.mu.Lock()
	defer t.repo.mu.Unlock()

	key := invKey{userID, cardID}
	t.stage(key, n)
	return t.repo.quantityLocked(userID, cardID) + t.deltas[key], nil
}

func (t *fakeInventoryTx) RemoveCopies(_ context.Context, userID string, cardID int, n int) (int, error) {
	if t.closed {
		return 0, errors.New(domain.ErrMsgTxClosed)
	}
	if t.repo.RemoveErr != nil {
		return 0, t.repo.RemoveErr
	}

	t.repo.mu.Lock()
	defer t.repo.mu.Unlock()

	key := invKey{userID, cardID}
	visible := t.repo.quantityLocked(userID, cardID) + t.deltas[key]
	if visible < n {
		return 0, domain.InsufficientCopiesError{Available: visible, Required: n}
	}
	t.stage(key, -n)
	return visible - n, nil
}

func (t *fakeInventoryTx) stage(key invKey, delta int) {
	if _, ok := t.deltas[key]; !ok {
		t.order = append(t.order, key)
	}
	t.deltas[key] += delta
}

func (t *fakeInventoryTx) Commit(_ context.Context) error {
	if t.closed {
		return errors.New(domain.ErrMsgTxClosed)
	}
	t.closed = true

	t.repo.mu.Lock()
	defer t.repo.mu.Unlock()

	for _, key := range t.order {
		delta := t.deltas[key]
		switch {
		case delta > 0:
			t.repo.addLocked(key.userID, key.cardID, delta)
		case delta < 0:
			// Staged removals were validated against visible quantities
			if _, err := t.repo.removeLocked(key.userID, key.cardID, -delta); err != nil {
				return err
			}
		}
	}
	return nil
}

func (t *fakeInventoryTx) Rollback(_ context.Context) error {
	if t.closed {
		return errors.New(domain.ErrMsgTxClosed)
	}
	t.closed = true
	t.deltas = nil
	return nil
}
