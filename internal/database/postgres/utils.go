package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mirae-dev/ShoreBot_Go/internal/domain"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx, letting the atomic
// helpers below run against the pool or inside a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// creditAccount runs the single-statement credit. No matched row means the
// account does not exist.
func creditAccount(ctx context.Context, q querier, userID string, amount int64) (int64, error) {
	var balance int64
	err := q.QueryRow(ctx, SQLCreditAccount, userID, amount).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrAccountNotFound
		}
		return 0, err
	}
	return balance, nil
}

// debitAccount runs the guarded decrement. When the guard rejects, a second
// read distinguishes a missing account from insufficient funds; the read is
// only for error reporting, the decision was made by the guarded statement.
func debitAccount(ctx context.Context, q querier, userID string, amount int64) (int64, error) {
	var balance int64
	err := q.QueryRow(ctx, SQLDebitAccount, userID, amount).Scan(&balance)
	if err == nil {
		return balance, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, err
	}

	var available int64
	err = q.QueryRow(ctx, SQLSelectBalance, userID).Scan(&available)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrAccountNotFound
		}
		return 0, err
	}
	return 0, domain.InsufficientFundsError{Available: available, Required: amount}
}

// addCopies upserts the copy count and returns the new quantity.
func addCopies(ctx context.Context, q querier, userID string, cardID, n int) (int, error) {
	var quantity int
	if err := q.QueryRow(ctx, SQLUpsertCopies, userID, cardID, n).Scan(&quantity); err != nil {
		return 0, err
	}
	return quantity, nil
}

// removeCopies runs the guarded decrement. Decrement and delete-on-zero are
// one statement, so concurrent removals cannot both pass and the entry is
// gone the moment the last copy is. A zero return means the entry was
// deleted.
func removeCopies(ctx context.Context, q querier, userID string, cardID, n int) (int, error) {
	var quantity int
	err := q.QueryRow(ctx, SQLRemoveCopies, userID, cardID, n).Scan(&quantity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			var available int
			err = q.QueryRow(ctx, SQLSelectQuantity, userID, cardID).Scan(&available)
			if err != nil && !errors.Is(err, pgx.ErrNoRows) {
				return 0, err
			}
			return 0, domain.InsufficientCopiesError{Available: available, Required: n}
		}
		return 0, err
	}
	return quantity, nil
}

// scanCard reads the shared card column list.
func scanCard(row pgx.Row) (*domain.Card, error) {
	var c domain.Card
	err := row.Scan(&c.ID, &c.Code, &c.Name, &c.GroupName, &c.Era, &c.Rarity,
		&c.Droppable, &c.IsLimited, &c.EventTag, &c.ImageURL, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCardNotFound
		}
		return nil, err
	}
	return &c, nil
}
