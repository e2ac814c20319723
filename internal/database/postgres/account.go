package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mirae-dev/ShoreBot_Go/internal/domain"
	"github.com/mirae-dev/ShoreBot_Go/internal/repository"
)

// AccountRepository implements the account repository for PostgreSQL
type AccountRepository struct {
	db *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository
func NewAccountRepository(db *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{db: db}
}

// EnsureAccount creates the account with the starting grant if absent.
// The insert-or-nothing statement makes concurrent onboarding idempotent:
// exactly one caller creates the row, everyone observes the same balance.
func (r *AccountRepository) EnsureAccount(ctx context.Context, userID string, startingGrant int64) (*domain.Account, bool, error) {
	account := &domain.Account{UserID: userID}

	err := r.db.QueryRow(ctx, SQLInsertAccount, userID, startingGrant).Scan(&account.Coins, &account.CreatedAt)
	if err == nil {
		return account, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, fmt.Errorf("failed to create account: %w", err)
	}

	// Conflict: the account already existed.
	err = r.db.QueryRow(ctx, SQLSelectAccount, userID).Scan(&account.Coins, &account.CreatedAt)
	if err != nil {
		return nil, false, fmt.Errorf("failed to get account after ensure: %w", err)
	}
	return account, false, nil
}

// GetAccount returns the account or domain.ErrAccountNotFound.
func (r *AccountRepository) GetAccount(ctx context.Context, userID string) (*domain.Account, error) {
	account := &domain.Account{UserID: userID}
	err := r.db.QueryRow(ctx, SQLSelectAccount, userID).Scan(&account.Coins, &account.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return account, nil
}

// Credit atomically increases the balance.
func (r *AccountRepository) Credit(ctx context.Context, userID string, amount int64) (int64, error) {
	return creditAccount(ctx, r.db, userID, amount)
}

// Debit atomically decreases the balance only if it covers the amount.
func (r *AccountRepository) Debit(ctx context.Context, userID string, amount int64) (int64, error) {
	return debitAccount(ctx, r.db, userID, amount)
}

// TopBalances returns up to limit accounts, richest first.
func (r *AccountRepository) TopBalances(ctx context.Context, limit int) ([]domain.Account, error) {
	rows, err := r.db.Query(ctx, SQLTopBalances, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list top balances: %w", err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		var a domain.Account
		if err := rows.Scan(&a.UserID, &a.Coins, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// AccountTx implements repository.AccountTx
type AccountTx struct {
	tx pgx.Tx
}

// BeginTx starts a new transaction
func (r *AccountRepository) BeginTx(ctx context.Context) (repository.AccountTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBeginTxFailed, err)
	}
	return &AccountTx{tx: tx}, nil
}

// Commit commits the transaction
func (t *AccountTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

// Rollback rolls back the transaction
func (t *AccountTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// Credit for Tx
func (t *AccountTx) Credit(ctx context.Context, userID string, amount int64) (int64, error) {
	return creditAccount(ctx, t.tx, userID, amount)
}

// Debit for Tx
func (t *AccountTx) Debit(ctx context.Context, userID string, amount int64) (int64, error) {
	return debitAccount(ctx, t.tx, userID, amount)
}
