package repository

import (
	"context"

	"github.com/mirae-dev/ShoreBot_Go/internal/domain"
)

// Account defines the interface for account persistence. Credit and Debit are
// single guarded statements: the balance check and the decrement happen as one
// atomic step in the store, never as a separate read followed by a write.
type Account interface {
	// EnsureAccount creates the account with the starting grant if absent.
	// Returns the account and whether it was created by this call.
	EnsureAccount(ctx context.Context, userID string, startingGrant int64) (*domain.Account, bool, error)

	// GetAccount returns the account or domain.ErrAccountNotFound.
	GetAccount(ctx context.Context, userID string) (*domain.Account, error)

	// Credit atomically increases the balance and returns the new balance.
	Credit(ctx context.Context, userID string, amount int64) (int64, error)

	// Debit atomically decreases the balance only if it covers the amount.
	// Fails with domain.InsufficientFundsError otherwise.
	Debit(ctx context.Context, userID string, amount int64) (int64, error)

	// TopBalances returns up to limit accounts ordered by balance, richest
	// first.
	TopBalances(ctx context.Context, limit int) ([]domain.Account, error)

	BeginTx(ctx context.Context) (AccountTx, error)
}

// AccountTx runs account operations inside one transaction, used to make a
// debit/credit pair atomic as a unit.
type AccountTx interface {
	Tx
	Credit(ctx context.Context, userID string, amount int64) (int64, error)
	Debit(ctx context.Context, userID string, amount int64) (int64, error)
}
