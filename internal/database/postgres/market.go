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

// MarketRepository implements the marketplace repository for PostgreSQL
type MarketRepository struct {
	db *pgxpool.Pool
}

// NewMarketRepository creates a new MarketRepository
func NewMarketRepository(db *pgxpool.Pool) *MarketRepository {
	return &MarketRepository{db: db}
}

// GetListing returns the listing or domain.ErrListingNotFound (unlocked read).
func (r *MarketRepository) GetListing(ctx context.Context, code string) (*domain.Listing, error) {
	return scanListing(r.db.QueryRow(ctx, SQLSelectListing, code), code)
}

// ListListings returns active listings joined with card metadata.
func (r *MarketRepository) ListListings(ctx context.Context, limit int, filter domain.ListingFilter) ([]domain.ListingView, error) {
	rows, err := r.db.Query(ctx, SQLSelectListings, limit, filter.CardID, filter.SellerID, filter.MaxPrice)
	if err != nil {
		return nil, fmt.Errorf("failed to list listings: %w", err)
	}
	defer rows.Close()

	var views []domain.ListingView
	for rows.Next() {
		var v domain.ListingView
		err := rows.Scan(
			&v.Listing.Code, &v.Listing.SellerID, &v.Listing.CardID,
			&v.Listing.UnitPrice, &v.Listing.Quantity, &v.Listing.CreatedAt,
			&v.Card.Code, &v.Card.Name, &v.Card.GroupName, &v.Card.Era, &v.Card.Rarity,
			&v.Card.Droppable, &v.Card.IsLimited, &v.Card.EventTag, &v.Card.ImageURL, &v.Card.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan listing: %w", err)
		}
		v.Card.ID = v.Listing.CardID
		views = append(views, v)
	}
	return views, rows.Err()
}

// MarketTx implements repository.MarketTx
type MarketTx struct {
	tx pgx.Tx
}

// BeginTx starts a new transaction
func (r *MarketRepository) BeginTx(ctx context.Context) (repository.MarketTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBeginTxFailed, err)
	}
	return &MarketTx{tx: tx}, nil
}

// Commit commits the transaction
func (t *MarketTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

// Rollback rolls back the transaction
func (t *MarketTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// GetListingForUpdate row-locks the listing. A concurrent purchase that
// deleted the row first leaves nothing to lock, so the loser gets
// domain.ErrListingNotFound.
func (t *MarketTx) GetListingForUpdate(ctx context.Context, code string) (*domain.Listing, error) {
	return scanListing(t.tx.QueryRow(ctx, SQLSelectListingForUpdate, code), code)
}

// InsertListing persists a new listing.
func (t *MarketTx) InsertListing(ctx context.Context, listing domain.Listing) error {
	_, err := t.tx.Exec(ctx, SQLInsertListing,
		listing.Code, listing.SellerID, listing.CardID,
		listing.UnitPrice, listing.Quantity, listing.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert listing: %w", err)
	}
	return nil
}

// DeleteListing removes the listing row.
func (t *MarketTx) DeleteListing(ctx context.Context, code string) error {
	tag, err := t.tx.Exec(ctx, SQLDeleteListing, code)
	if err != nil {
		return fmt.Errorf("failed to delete listing: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}

// Credit for Tx
func (t *MarketTx) Credit(ctx context.Context, userID string, amount int64) (int64, error) {
	return creditAccount(ctx, t.tx, userID, amount)
}

// Debit for Tx
func (t *MarketTx) Debit(ctx context.Context, userID string, amount int64) (int64, error) {
	return debitAccount(ctx, t.tx, userID, amount)
}

// AddCopies for Tx
func (t *MarketTx) AddCopies(ctx context.Context, userID string, cardID, n int) (int, error) {
	return addCopies(ctx, t.tx, userID, cardID, n)
}

// RemoveCopies for Tx
func (t *MarketTx) RemoveCopies(ctx context.Context, userID string, cardID, n int) (int, error) {
	return removeCopies(ctx, t.tx, userID, cardID, n)
}

func scanListing(row pgx.Row, code string) (*domain.Listing, error) {
	listing := &domain.Listing{Code: code}
	err := row.Scan(&listing.SellerID, &listing.CardID, &listing.UnitPrice,
		&listing.Quantity, &listing.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrListingNotFound
		}
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}
	return listing, nil
}
