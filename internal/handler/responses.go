package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/mirae-dev/ShoreBot_Go/internal/cooldown"
	"github.com/mirae-dev/ShoreBot_Go/internal/domain"
	"github.com/mirae-dev/ShoreBot_Go/internal/logger"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	// Encode to a pooled buffer first so a failed encode never produces a
	// half-written body
	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"

	ErrMsgAccountNotFoundError = "Account not found"
	ErrMsgCardNotFoundError    = "Card not found"
	ErrMsgPackNotFoundError    = "That pack is not in the shop"
	ErrMsgNotEnoughCoinsError  = "Not enough coins"
	ErrMsgNotEnoughCopiesError = "Not enough copies of that card"
	ErrMsgListingNotFoundError = "Listing not found or already sold"
	ErrMsgNotListingOwnerError = "That listing is not yours"
	ErrMsgOfferNotFoundError   = "Trade offer not found"
	ErrMsgOfferNotPendingError = "Trade offer is no longer open"
	ErrMsgNotCounterpartyError = "That trade offer is not addressed to you"
	ErrMsgItemUnavailableError = "A card in the trade is no longer available"
	ErrMsgSelfOperationError   = "You cannot target yourself"
	ErrMsgNoEligibleCardsError = "No cards are available to drop right now"
	ErrMsgInvalidQuantityError = "Quantity must be at least 1"
	ErrMsgInvalidAmountError   = "Amount must be positive"
	ErrMsgBoosterNotAllowedErr = "Booster claims are not enabled for you"
	ErrMsgOnCooldownError      = "Action is on cooldown. Try again later"
	ErrMsgLockdownActiveError  = "Commands are locked down right now"
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP
// responses. Internal details never reach the client.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	var onCooldown cooldown.ErrOnCooldown
	if errors.As(err, &onCooldown) {
		return http.StatusTooManyRequests, onCooldown.Error()
	}

	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		return http.StatusNotFound, ErrMsgAccountNotFoundError
	case errors.Is(err, domain.ErrCardNotFound):
		return http.StatusNotFound, ErrMsgCardNotFoundError
	case errors.Is(err, domain.ErrPackNotFound):
		return http.StatusNotFound, ErrMsgPackNotFoundError
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusBadRequest, ErrMsgNotEnoughCoinsError
	case errors.Is(err, domain.ErrInsufficientCopies):
		return http.StatusBadRequest, ErrMsgNotEnoughCopiesError
	case errors.Is(err, domain.ErrListingNotFound):
		return http.StatusNotFound, ErrMsgListingNotFoundError
	case errors.Is(err, domain.ErrNotListingOwner):
		return http.StatusForbidden, ErrMsgNotListingOwnerError
	case errors.Is(err, domain.ErrOfferNotFound):
		return http.StatusNotFound, ErrMsgOfferNotFoundError
	case errors.Is(err, domain.ErrOfferNotPending):
		return http.StatusConflict, ErrMsgOfferNotPendingError
	case errors.Is(err, domain.ErrNotOfferCounterparty):
		return http.StatusForbidden, ErrMsgNotCounterpartyError
	case errors.Is(err, domain.ErrItemNoLongerAvailable):
		return http.StatusConflict, ErrMsgItemUnavailableError
	case errors.Is(err, domain.ErrSelfOperation):
		return http.StatusBadRequest, ErrMsgSelfOperationError
	case errors.Is(err, domain.ErrNoEligibleCards):
		return http.StatusConflict, ErrMsgNoEligibleCardsError
	case errors.Is(err, domain.ErrInvalidQuantity):
		return http.StatusBadRequest, ErrMsgInvalidQuantityError
	case errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusBadRequest, ErrMsgInvalidAmountError
	case errors.Is(err, domain.ErrBoosterNotAllowed):
		return http.StatusForbidden, ErrMsgBoosterNotAllowedErr
	case errors.Is(err, domain.ErrLockdownActive):
		return http.StatusLocked, ErrMsgLockdownActiveError
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}

// respondServiceError logs the real error and sends the mapped user message
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	log := logger.FromContext(r.Context())
	status, message := mapServiceErrorToUserMessage(err)
	if status >= http.StatusInternalServerError {
		log.Error(opName+" failed", "error", err)
	} else {
		log.Warn(opName+" rejected", "error", err)
	}
	respondError(w, status, message)
}
