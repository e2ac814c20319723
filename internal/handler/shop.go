package handler

import (
	"net/http"
	"strconv"

	"github.com/mirae-dev/ShoreBot_Go/internal/logger"
	"github.com/mirae-dev/ShoreBot_Go/internal/metrics"
	"github.com/mirae-dev/ShoreBot_Go/internal/reward"
)

// PackListResponse is the shop catalog
type PackListResponse struct {
	Packs []reward.Pack `json:"packs"`
}

// HandleListPacks returns the purchasable card packs
func HandleListPacks(svc reward.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, PackListResponse{Packs: svc.Packs()})
	}
}

type BuyPackRequest struct {
	UserID string `json:"user_id" validate:"required,max=100"`
	PackID string `json:"pack_id" validate:"required,max=10"`
}

// HandleBuyPack debits the pack cost and rolls its cards into the inventory
func HandleBuyPack(svc reward.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req BuyPackRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Buy pack"); err != nil {
			return
		}

		result, err := svc.OpenPack(r.Context(), req.UserID, req.PackID)
		if err != nil {
			respondServiceError(w, r, "Buy pack", err)
			return
		}

		log.Info("Pack purchased",
			"user_id", req.UserID,
			"pack_id", result.Pack.ID,
			"cost", result.Pack.Cost,
			"cards", len(result.Cards))
		metrics.PacksSold.WithLabelValues(result.Pack.ID).Inc()
		metrics.CoinsDebited.Add(float64(result.Pack.Cost))
		for _, card := range result.Cards {
			metrics.CardsDropped.WithLabelValues(strconv.Itoa(card.Rarity)).Inc()
		}

		respondJSON(w, http.StatusOK, result)
	}
}
