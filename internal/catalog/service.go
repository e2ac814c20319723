package catalog

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/mirae-dev/ShoreBot_Go/internal/domain"
	"github.com/mirae-dev/ShoreBot_Go/internal/logger"
	"github.com/mirae-dev/ShoreBot_Go/internal/repository"
)

// Service provides read access to the card catalog
type Service interface {
	// GetCardByID returns a card by its internal ID
	GetCardByID(ctx context.Context, cardID int) (*domain.Card, error)

	// GetCardByCode returns a card by its printable code (case-insensitive)
	GetCardByCode(ctx context.Context, code string) (*domain.Card, error)

	// ListCards returns all cards matching the filter
	ListCards(ctx context.Context, filter domain.CardFilter) ([]domain.Card, error)

	// InvalidateCard drops a card from the cache after catalog edits
	InvalidateCard(cardID int, code string)

	// CacheStats reports cache effectiveness for diagnostics
	CacheStats() CacheStats
}

type service struct {
	repo  repository.Catalog
	cache *cardCache
}

// NewService creates a catalog service with an LRU cache in front of the repository
func NewService(repo repository.Catalog, cacheConfig CacheConfig) Service {
	return &service{
		repo:  repo,
		cache: newCardCache(cacheConfig),
	}
}

func (s *service) GetCardByID(ctx context.Context, cardID int) (*domain.Card, error) {
	key := idKey(cardID)
	if card, found := s.cache.Get(key); found {
		logger.FromContext(ctx).Debug(LogMsgCacheHit, "cardID", cardID)
		return card, nil
	}

	card, err := s.repo.GetCardByID(ctx, cardID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetCardFailed, err)
	}

	logger.FromContext(ctx).Debug(LogMsgCacheMiss, "cardID", cardID)
	s.cache.Set(key, card)
	s.cache.Set(codeKey(card.Code), card)
	return card, nil
}

func (s *service) GetCardByCode(ctx context.Context, code string) (*domain.Card, error) {
	key := codeKey(code)
	if card, found := s.cache.Get(key); found {
		logger.FromContext(ctx).Debug(LogMsgCacheHit, "code", code)
		return card, nil
	}

	card, err := s.repo.GetCardByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetCardFailed, err)
	}

	logger.FromContext(ctx).Debug(LogMsgCacheMiss, "code", code)
	s.cache.Set(key, card)
	s.cache.Set(idKey(card.ID), card)
	return card, nil
}

func (s *service) ListCards(ctx context.Context, filter domain.CardFilter) ([]domain.Card, error) {
	// Listings are filter-dependent and cheap to query; only single-card
	// lookups go through the cache
	cards, err := s.repo.ListCards(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListCardsFailed, err)
	}
	return cards, nil
}

func (s *service) InvalidateCard(cardID int, code string) {
	s.cache.Invalidate(idKey(cardID))
	s.cache.Invalidate(codeKey(code))
}

func (s *service) CacheStats() CacheStats {
	return s.cache.GetStats()
}

func idKey(cardID int) string { return "id:" + strconv.Itoa(cardID) }

func codeKey(code string) string { return "code:" + strings.ToUpper(code) }
