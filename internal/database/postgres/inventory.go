package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mirae-dev/ShoreBot_Go/internal/domain"
	"github.com/mirae-dev/ShoreBot_Go/internal/repository"
)

// InventoryRepository implements the inventory repository for PostgreSQL
type InventoryRepository struct {
	db *pgxpool.Pool
}

// NewInventoryRepository creates a new InventoryRepository
func NewInventoryRepository(db *pgxpool.Pool) *InventoryRepository {
	return &InventoryRepository{db: db}
}

// AddCopies atomically increments the copy count, creating the entry if absent.
func (r *InventoryRepository) AddCopies(ctx context.Context, userID string, cardID, n int) (int, error) {
	return addCopies(ctx, r.db, userID, cardID, n)
}

// RemoveCopies atomically decrements the copy count, deleting the entry at 0.
// Decrement and delete are one statement, so no transaction is needed.
func (r *InventoryRepository) RemoveCopies(ctx context.Context, userID string, cardID, n int) (int, error) {
	return removeCopies(ctx, r.db, userID, cardID, n)
}

// GetQuantity returns the copy count, 0 when no entry exists.
func (r *InventoryRepository) GetQuantity(ctx context.Context, userID string, cardID int) (int, error) {
	var quantity int
	err := r.db.QueryRow(ctx, SQLSelectQuantity, userID, cardID).Scan(&quantity)
	if err != nil {
		if err == pgx.ErrNoRows {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get quantity: %w", err)
	}
	return quantity, nil
}

// ListEntries returns the user's inventory entries.
func (r *InventoryRepository) ListEntries(ctx context.Context, userID string) ([]domain.InventoryEntry, error) {
	rows, err := r.db.Query(ctx, SQLSelectEntries, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}
	defer rows.Close()

	var entries []domain.InventoryEntry
	for rows.Next() {
		entry := domain.InventoryEntry{UserID: userID}
		if err := rows.Scan(&entry.CardID, &entry.Quantity, &entry.AcquiredAt); err != nil {
			return nil, fmt.Errorf("failed to scan inventory entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// TopCollectors returns up to limit users ordered by distinct cards held.
func (r *InventoryRepository) TopCollectors(ctx context.Context, limit int) ([]domain.CollectorCount, error) {
	rows, err := r.db.Query(ctx, SQLTopCollectors, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list top collectors: %w", err)
	}
	defer rows.Close()

	var collectors []domain.CollectorCount
	for rows.Next() {
		var c domain.CollectorCount
		if err := rows.Scan(&c.UserID, &c.UniqueCards); err != nil {
			return nil, fmt.Errorf("failed to scan collector count: %w", err)
		}
		collectors = append(collectors, c)
	}
	return collectors, rows.Err()
}

// InventoryTx implements repository.InventoryTx
type InventoryTx struct {
	tx pgx.Tx
}

// BeginTx starts a new transaction
func (r *InventoryRepository) BeginTx(ctx context.Context) (repository.InventoryTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBeginTxFailed, err)
	}
	return &InventoryTx{tx: tx}, nil
}

// Commit commits the transaction
func (t *InventoryTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

// Rollback rolls back the transaction
func (t *InventoryTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// AddCopies for Tx
func (t *InventoryTx) AddCopies(ctx context.Context, userID string, cardID, n int) (int, error) {
	return addCopies(ctx, t.tx, userID, cardID, n)
}

// RemoveCopies for Tx
func (t *InventoryTx) RemoveCopies(ctx context.Context, userID string, cardID, n int) (int, error) {
	return removeCopies(ctx, t.tx, userID, cardID, n)
}
