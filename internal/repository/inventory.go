package repository

import (
	"context"

	"github.com/mirae-dev/ShoreBot_Go/internal/domain"
)

// Inventory defines the interface for inventory persistence. Entries are
// created on the first copy and deleted when the quantity reaches zero; no
// entry ever persists at quantity 0. The quantity check and decrement are one
// atomic step in the store.
type Inventory interface {
	// AddCopies atomically increments the quantity, creating the entry at n
	// if absent. Returns the new quantity.
	AddCopies(ctx context.Context, userID string, cardID int, n int) (int, error)

	// RemoveCopies atomically decrements the quantity only if it covers n,
	// deleting the entry when the result is 0. Fails with
	// domain.InsufficientCopiesError otherwise. Returns the remaining quantity.
	RemoveCopies(ctx context.Context, userID string, cardID int, n int) (int, error)

	// GetQuantity returns the copy count, 0 when no entry exists.
	GetQuantity(ctx context.Context, userID string, cardID int) (int, error)

	// ListEntries returns the user's inventory entries.
	ListEntries(ctx context.Context, userID string) ([]domain.InventoryEntry, error)

	// TopCollectors returns up to limit users ordered by distinct cards held,
	// largest collection first.
	TopCollectors(ctx context.Context, limit int) ([]domain.CollectorCount, error)

	BeginTx(ctx context.Context) (InventoryTx, error)
}

// InventoryTx runs inventory operations inside one transaction, used to make
// a remove/add pair (move, gift, trade settlement) atomic as a unit.
type InventoryTx interface {
	Tx
	AddCopies(ctx context.Context, userID string, cardID int, n int) (int, error)
	RemoveCopies(ctx context.Context, userID string, cardID int, n int) (int, error)
}
