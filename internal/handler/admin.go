package handler

import (
	"net/http"

	"github.com/mirae-dev/ShoreBot_Go/internal/admin"
	"github.com/mirae-dev/ShoreBot_Go/internal/catalog"
	"github.com/mirae-dev/ShoreBot_Go/internal/cooldown"
	"github.com/mirae-dev/ShoreBot_Go/internal/logger"
)

// LockdownStatusResponse reports the lockdown toggle state
type LockdownStatusResponse struct {
	Locked bool `json:"locked"`
}

// HandleLockdownStatus reports whether lockdown is active
func HandleLockdownStatus(svc admin.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, LockdownStatusResponse{Locked: svc.IsLocked()})
	}
}

// HandleLockdownEnable turns lockdown on
func HandleLockdownEnable(svc admin.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc.EnableLockdown(r.Context())
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgLockdownEnabledSuccess})
	}
}

// HandleLockdownDisable turns lockdown off
func HandleLockdownDisable(svc admin.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc.DisableLockdown(r.Context())
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgLockdownDisabledSuccess})
	}
}

type ResetCooldownRequest struct {
	UserID string `json:"user_id" validate:"required,max=100"`
	Action string `json:"action" validate:"required,max=50"`
}

// HandleResetCooldown clears one user's cooldown stamp (admin action)
func HandleResetCooldown(svc cooldown.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req ResetCooldownRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Reset cooldown"); err != nil {
			return
		}

		if err := svc.ResetCooldown(r.Context(), req.UserID, req.Action); err != nil {
			respondServiceError(w, r, "Reset cooldown", err)
			return
		}

		log.Info("Cooldown reset", "user_id", req.UserID, "action", req.Action)
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgCooldownResetSuccess})
	}
}

type InvalidateCardRequest struct {
	CardID int    `json:"card_id" validate:"min=1"`
	Code   string `json:"code" validate:"required,max=100"`
}

// HandleInvalidateCard drops a card from the catalog cache after edits
func HandleInvalidateCard(svc catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req InvalidateCardRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Invalidate card"); err != nil {
			return
		}

		svc.InvalidateCard(req.CardID, req.Code)
		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Card cache invalidated"})
	}
}
