package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mirae-dev/ShoreBot_Go/internal/domain"
)

// CatalogRepository implements read-only card catalog access for PostgreSQL.
// Card writes belong to the catalog admin tooling, not the ledger.
type CatalogRepository struct {
	db *pgxpool.Pool
}

// NewCatalogRepository creates a new CatalogRepository
func NewCatalogRepository(db *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// GetCardByID returns the card or domain.ErrCardNotFound.
func (r *CatalogRepository) GetCardByID(ctx context.Context, cardID int) (*domain.Card, error) {
	return scanCard(r.db.QueryRow(ctx, SQLSelectCardByID, cardID))
}

// GetCardByCode returns the card or domain.ErrCardNotFound.
func (r *CatalogRepository) GetCardByCode(ctx context.Context, code string) (*domain.Card, error) {
	return scanCard(r.db.QueryRow(ctx, SQLSelectCardByCode, code))
}

// ListCards returns catalog entries matching the filter. Rarity, group and
// droppable constraints are pushed to SQL; the remaining predicates
// (limited/event) run through domain.CardFilter.Matches.
func (r *CatalogRepository) ListCards(ctx context.Context, filter domain.CardFilter) ([]domain.Card, error) {
	rows, err := r.db.Query(ctx, SQLSelectCards, filter.Rarity, filter.GroupName, filter.DroppableOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	defer rows.Close()

	var cards []domain.Card
	for rows.Next() {
		var c domain.Card
		err := rows.Scan(&c.ID, &c.Code, &c.Name, &c.GroupName, &c.Era, &c.Rarity,
			&c.Droppable, &c.IsLimited, &c.EventTag, &c.ImageURL, &c.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan card: %w", err)
		}
		if filter.Matches(c) {
			cards = append(cards, c)
		}
	}
	return cards, rows.Err()
}
