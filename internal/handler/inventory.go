package handler

import (
	"net/http"
	"strconv"

	"github.com/mirae-dev/ShoreBot_Go/internal/domain"
	"github.com/mirae-dev/ShoreBot_Go/internal/inventory"
	"github.com/mirae-dev/ShoreBot_Go/internal/logger"
)

// InventoryResponse is a user's collection joined with card metadata
type InventoryResponse struct {
	UserID string                 `json:"user_id"`
	Items  []domain.InventoryItem `json:"items"`
}

// HandleGetInventory returns a user's card collection, rarest first.
// Optional query params: rarity, group.
func HandleGetInventory(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetQueryParam(r, w, "user_id")
		if !ok {
			return
		}

		filter := domain.InventoryFilter{
			GroupName: GetOptionalQueryParam(r, "group", ""),
		}
		if rarityStr := GetOptionalQueryParam(r, "rarity", ""); rarityStr != "" {
			rarity, err := strconv.Atoi(rarityStr)
			if err != nil {
				respondError(w, http.StatusBadRequest, ErrMsgInvalidRequestSummary)
				return
			}
			filter.Rarity = rarity
		}

		items, err := svc.ListInventory(r.Context(), userID, filter)
		if err != nil {
			respondServiceError(w, r, "Get inventory", err)
			return
		}

		respondJSON(w, http.StatusOK, InventoryResponse{UserID: userID, Items: items})
	}
}

type GiftRequest struct {
	FromUserID string `json:"from_user_id" validate:"required,max=100"`
	ToUserID   string `json:"to_user_id" validate:"required,max=100"`
	CardID     int    `json:"card_id" validate:"min=1"`
	Quantity   int    `json:"quantity" validate:"min=1,max=10000"`
}

// HandleGift transfers card copies between users
func HandleGift(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req GiftRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Gift"); err != nil {
			return
		}

		if err := svc.Gift(r.Context(), req.FromUserID, req.ToUserID, req.CardID, req.Quantity); err != nil {
			respondServiceError(w, r, "Gift", err)
			return
		}

		log.Info("Gift completed",
			"from", req.FromUserID,
			"to", req.ToUserID,
			"card_id", req.CardID,
			"quantity", req.Quantity)

		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Card gifted successfully"})
	}
}

type AdjustCopiesRequest struct {
	UserID   string `json:"user_id" validate:"required,max=100"`
	CardID   int    `json:"card_id" validate:"min=1"`
	Quantity int    `json:"quantity" validate:"min=1,max=10000"`
}

// AdjustCopiesResponse reports the copy count after the adjustment
type AdjustCopiesResponse struct {
	CardID   int `json:"card_id"`
	Quantity int `json:"quantity"`
}

// HandleAddCard grants card copies to a user (admin/system action)
func HandleAddCard(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AdjustCopiesRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Add card"); err != nil {
			return
		}

		quantity, err := svc.AddCopies(r.Context(), req.UserID, req.CardID, req.Quantity)
		if err != nil {
			respondServiceError(w, r, "Add card", err)
			return
		}

		respondJSON(w, http.StatusOK, AdjustCopiesResponse{CardID: req.CardID, Quantity: quantity})
	}
}

// HandleRemoveCard takes card copies away from a user (admin/system action)
func HandleRemoveCard(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AdjustCopiesRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Remove card"); err != nil {
			return
		}

		quantity, err := svc.RemoveCopies(r.Context(), req.UserID, req.CardID, req.Quantity)
		if err != nil {
			respondServiceError(w, r, "Remove card", err)
			return
		}

		respondJSON(w, http.StatusOK, AdjustCopiesResponse{CardID: req.CardID, Quantity: quantity})
	}
}
