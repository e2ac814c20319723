package account

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
// repository.Account for integration-style unit tests. It mirrors the
// store's atomicity rules: guarded debits, and transactions that apply
// all-or-nothing on commit.
type FakeRepository struct {
	mu       sync.Mutex
	accounts map[string]*domain.Account

	// Injectable failures for rollback tests
	CreditErr error
	DebitErr  error
}

func NewFakeRepository() *FakeRepository {
	return &FakeRepository{accounts: make(map[string]*domain.Account)}
}

// SeedAccount creates an account with a fixed balance, bypassing the grant
func (f *FakeRepository) SeedAccount(userID string, coins int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accounts[userID] = &domain.Account{UserID: userID, Coins: coins, CreatedAt: time.Now()}
}

func (f *FakeRepository) EnsureAccount(_ context.Context, userID string, startingGrant int64) (*domain.Account, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if acct, ok := f.accounts[userID]; ok {
		copied := *acct
		return &copied, false, nil
	}

	acct := &domain.Account{UserID: userID, Coins: startingGrant, CreatedAt: time.Now()}
	f.accounts[userID] = acct
	copied := *acct
	return &copied, true, nil
}

func (f *FakeRepository) GetAccount(_ context.Context, userID string) (*domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	acct, ok := f.accounts[userID]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	copied := *acct
	return &copied, nil
}

func (f *FakeRepository) Credit(_ context.Context, userID string, amount int64) (int64, error) {
	if f.CreditErr != nil {
		return 0, f.CreditErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	return f.creditLocked(userID, amount)
}

func (f *FakeRepository) Debit(_ context.Context, userID string, amount int64) (int64, error) {
	if f.DebitErr != nil {
		return 0, f.DebitErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	return f.debitLocked(userID, amount)
}

func (f *FakeRepository) TopBalances(_ context.Context, limit int) ([]domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]domain.Account, 0, len(f.accounts))
	for _, acct := range f.accounts {
		out = append(out, *acct)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Coins != out[j].Coins {
			return out[i].Coins > out[j].Coins
		}
		return out[i].UserID < out[j].UserID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *FakeRepository) BeginTx(_ context.Context) (repository.AccountTx, error) {
	return &fakeAccountTx{repo: f, deltas: make(map[string]int64)}, nil
}

func (f *FakeRepository) creditLocked(userID string, amount int64) (int64, error) {
	acct, ok := f.accounts[userID]
	if !ok {
		return 0, domain.ErrAccountNotFound
	}
	acct.Coins += amount
	return acct.Coins, nil
}

func (f *FakeRepository) debitLocked(userID string, amount int64) (int64, error) {
	acct, ok := f.accounts[userID]
	if !ok {
		return 0, domain.ErrAccountNotFound
	}
	if acct.Coins < amount {
		return 0, domain.InsufficientFundsError{Available: acct.Coins, Required: amount}
	}
	acct.Coins -= amount
	return acct.Coins, nil
}

// fakeAccountTx buffers deltas and applies them on commit, holding the
// repository lock for the whole apply so the pair lands atomically.
type fakeAccountTx struct {
	repo   *FakeRepository
	deltas map[string]int64
	order  []string
	closed bool
}

func (t *fakeAccountTx) Credit(_ context.Context, userID string, amount int64) (int64, error) {
	if t.closed {
		return 0, errors.New(domain.ErrMsgTxClosed)
	}
	if t.repo.CreditErr != nil {
		return 0, t.repo.CreditErr
	}

	t.repo.mu.Lock()
	defer t.repo.mu.Unlock()

	acct, ok := t.repo.accounts[userID]
	if !ok {
		return 0, domain.ErrAccountNotFound
	}
	t.stage(userID, amount)
	return acct.Coins + t.deltas[userID], nil
}

func (t *fakeAccountTx) Debit(_ context.Context, userID string, amount int64) (int64, error) {
	if t.closed {
		return 0, errors.New(domain.ErrMsgTxClosed)
	}
	if t.repo.DebitErr != nil {
		return 0, t.repo.DebitErr
	}

	t.repo.mu.Lock()
	defer t.repo.mu.Unlock()

	acct, ok := t.repo.accounts[userID]
	if !ok {
		return 0, domain.ErrAccountNotFound
	}
	visible := acct.Coins + t.deltas[userID]
	if visible < amount {
		return 0, domain.InsufficientFundsError{Available: visible, Required: amount}
	}
	t.stage(userID, -amount)
	return acct.Coins + t.deltas[userID], nil
}

func (t *fakeAccountTx) stage(userID string, delta int64) {
	if _, ok := t.deltas[userID]; !ok {
		t.order = append(t.order, userID)
	}
	t.deltas[userID] += delta
}

func (t *fakeAccountTx) Commit(_ context.Context) error {
	if t.closed {
		return errors.New(domain.ErrMsgTxClosed)
	}
	t.closed = true

	t.repo.mu.Lock()
	defer t.repo.mu.Unlock()

	for _, userID := range t.order {
		if acct, ok := t.repo.accounts[userID]; ok {
			acct.Coins += t.deltas[userID]
		}
	}
	return nil
}

func (t *fakeAccountTx) Rollback(_ context.Context) error {
	if t.closed {
		return errors.New(domain.ErrMsgTxClosed)
	}
	t.closed = true
	t.deltas = nil
	return nil
}
