package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/mirae-dev/ShoreBot_Go/internal/cooldown"
	"github.com/mirae-dev/ShoreBot_Go/internal/domain"
	"github.com/mirae-dev/ShoreBot_Go/internal/logger"
	"github.com/mirae-dev/ShoreBot_Go/internal/metrics"
	"github.com/mirae-dev/ShoreBot_Go/internal/reward"
)

type ClaimRequest struct {
	UserID string `json:"user_id" validate:"required,max=100"`
}

// handleCoinClaim wires one coin-claim action to its service method.
// Rejections by the cooldown gate come back as 429 with the remaining time.
func handleCoinClaim(action string, claim func(context.Context, string) (*reward.CoinClaimResult, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req ClaimRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Claim "+action); err != nil {
			return
		}

		result, err := claim(r.Context(), req.UserID)
		if err != nil {
			var onCooldown cooldown.ErrOnCooldown
			if errors.As(err, &onCooldown) {
				metrics.ClaimsRejected.WithLabelValues(action).Inc()
			}
			respondServiceError(w, r, "Claim "+action, err)
			return
		}

		log.Info("Claim granted", "action", action, "user_id", req.UserID, "amount", result.Amount)
		metrics.ClaimsGranted.WithLabelValues(action).Inc()
		metrics.CoinsCredited.Add(float64(result.Amount))

		respondJSON(w, http.StatusOK, result)
	}
}

// HandleClaimDaily grants the daily coin reward
func HandleClaimDaily(svc reward.Service) http.HandlerFunc {
	return handleCoinClaim(domain.ActionDaily, svc.ClaimDaily)
}

// HandleClaimWeekly grants the weekly coin reward
func HandleClaimWeekly(svc reward.Service) http.HandlerFunc {
	return handleCoinClaim(domain.ActionWeekly, svc.ClaimWeekly)
}

// HandleClaimSurf grants a rolled surf payout
func HandleClaimSurf(svc reward.Service) http.HandlerFunc {
	return handleCoinClaim(domain.ActionSurf, svc.ClaimSurf)
}

// HandleClaimExplore grants a rolled explore payout
func HandleClaimExplore(svc reward.Service) http.HandlerFunc {
	return handleCoinClaim(domain.ActionExplore, svc.ClaimExplore)
}

// HandleClaimDrop rolls a card drop into the user's inventory
func HandleClaimDrop(svc reward.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req ClaimRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Claim drop"); err != nil {
			return
		}

		result, err := svc.ClaimDrop(r.Context(), req.UserID)
		if err != nil {
			var onCooldown cooldown.ErrOnCooldown
			if errors.As(err, &onCooldown) {
				metrics.ClaimsRejected.WithLabelValues(domain.ActionDrop).Inc()
			}
			respondServiceError(w, r, "Claim drop", err)
			return
		}

		log.Info("Drop granted", "user_id", req.UserID, "card_id", result.Card.ID, "rarity", result.Card.Rarity)
		metrics.ClaimsGranted.WithLabelValues(domain.ActionDrop).Inc()
		metrics.CardsDropped.WithLabelValues(strconv.Itoa(result.Card.Rarity)).Inc()

		respondJSON(w, http.StatusOK, result)
	}
}

// HandleClaimBooster grants the subscriber booster bundle
func HandleClaimBooster(svc reward.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req ClaimRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Claim booster"); err != nil {
			return
		}

		result, err := svc.ClaimBooster(r.Context(), req.UserID)
		if err != nil {
			var onCooldown cooldown.ErrOnCooldown
			if errors.As(err, &onCooldown) {
				metrics.ClaimsRejected.WithLabelValues(domain.ActionBooster).Inc()
			}
			respondServiceError(w, r, "Claim booster", err)
			return
		}

		log.Info("Booster granted", "user_id", req.UserID, "coins", result.Coins, "cards", len(result.Cards))
		metrics.ClaimsGranted.WithLabelValues(domain.ActionBooster).Inc()
		metrics.CoinsCredited.Add(float64(result.Coins))
		for _, card := range result.Cards {
			metrics.CardsDropped.WithLabelValues(strconv.Itoa(card.Rarity)).Inc()
		}

		respondJSON(w, http.StatusOK, result)
	}
}

// HandleClaimBonanza grants the subscriber mega bundle
func HandleClaimBonanza(svc reward.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req ClaimRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Claim bonanza"); err != nil {
			return
		}

		result, err := svc.ClaimBonanza(r.Context(), req.UserID)
		if err != nil {
			var onCooldown cooldown.ErrOnCooldown
			if errors.As(err, &onCooldown) {
				metrics.ClaimsRejected.WithLabelValues(domain.ActionBonanza).Inc()
			}
			respondServiceError(w, r, "Claim bonanza", err)
			return
		}

		log.Info("Bonanza granted", "user_id", req.UserID, "coins", result.Coins, "cards", len(result.Cards))
		metrics.ClaimsGranted.WithLabelValues(domain.ActionBonanza).Inc()
		metrics.CoinsCredited.Add(float64(result.Coins))
		for _, card := range result.Cards {
			metrics.CardsDropped.WithLabelValues(strconv.Itoa(card.Rarity)).Inc()
		}

		respondJSON(w, http.StatusOK, result)
	}
}
