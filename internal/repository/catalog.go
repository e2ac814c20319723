package repository

import (
	"context"

	"github.com/mirae-dev/ShoreBot_Go/internal/domain"
)

// Catalog defines read-only access to card metadata. The ledger never writes
// cards; the catalog admin tooling owns them.
type Catalog interface {
	// GetCardByID returns the card or domain.ErrCardNotFound.
	GetCardByID(ctx context.Context, cardID int) (*domain.Card, error)

	// GetCardByCode returns the card or domain.ErrCardNotFound. Codes are
	// matched case-insensitively.
	GetCardByCode(ctx context.Context, code string) (*domain.Card, error)

	// ListCards returns catalog entries matching the filter.
	ListCards(ctx context.Context, filter domain.CardFilter) ([]domain.Card, error)
}
