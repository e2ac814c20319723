package handler

import (
	"net/http"
	"strconv"

	"github.com/mirae-dev/ShoreBot_Go/internal/catalog"
	"github.com/mirae-dev/ShoreBot_Go/internal/domain"
)

// HandleGetCard returns one card by code or numeric id.
// Query params: code OR card_id.
func HandleGetCard(svc catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if code := GetOptionalQueryParam(r, "code", ""); code != "" {
			card, err := svc.GetCardByCode(r.Context(), code)
			if err != nil {
				respondServiceError(w, r, "Get card", err)
				return
			}
			respondJSON(w, http.StatusOK, card)
			return
		}

		idStr, ok := GetQueryParam(r, w, "card_id")
		if !ok {
			return
		}
		cardID, err := strconv.Atoi(idStr)
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidCardID)
			return
		}

		card, err := svc.GetCardByID(r.Context(), cardID)
		if err != nil {
			respondServiceError(w, r, "Get card", err)
			return
		}
		respondJSON(w, http.StatusOK, card)
	}
}

// CardListResponse is a filtered slice of the catalog
type CardListResponse struct {
	Cards []domain.Card `json:"cards"`
}

// HandleListCards lists catalog cards.
// Optional query params: rarity, group, droppable, event.
func HandleListCards(svc catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var filter domain.CardFilter
		if v := GetOptionalQueryParam(r, "rarity", ""); v != "" {
			rarity, err := strconv.Atoi(v)
			if err != nil {
				respondError(w, http.StatusBadRequest, ErrMsgInvalidRequestSummary)
				return
			}
			filter.Rarity = rarity
		}
		filter.GroupName = GetOptionalQueryParam(r, "group", "")
		filter.DroppableOnly = GetOptionalQueryParam(r, "droppable", "") == "true"
		filter.EventTag = GetOptionalQueryParam(r, "event", "")
		if filter.EventTag != "" {
			filter.IncludeLimited = true
		}

		cards, err := svc.ListCards(r.Context(), filter)
		if err != nil {
			respondServiceError(w, r, "List cards", err)
			return
		}

		respondJSON(w, http.StatusOK, CardListResponse{Cards: cards})
	}
}

// HandleCacheStats reports catalog cache hit rates (admin/debug)
func HandleCacheStats(svc catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, svc.CacheStats())
	}
}
