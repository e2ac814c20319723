package handler

import (
	"net/http"

	"github.com/mirae-dev/ShoreBot_Go/internal/account"
	"github.com/mirae-dev/ShoreBot_Go/internal/logger"
	"github.com/mirae-dev/ShoreBot_Go/internal/metrics"
)

// BalanceResponse reports an account balance
type BalanceResponse struct {
	UserID  string `json:"user_id"`
	Balance int64  `json:"balance"`
}

// HandleGetBalance returns a user's coin balance, creating the account with
// the starting grant on first contact.
func HandleGetBalance(svc account.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetQueryParam(r, w, "user_id")
		if !ok {
			return
		}

		acct, created, err := svc.EnsureAccount(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, "Get balance", err)
			return
		}
		if created {
			log := logger.FromContext(r.Context())
			log.Info("Account created on first contact", "user_id", userID)
		}

		respondJSON(w, http.StatusOK, BalanceResponse{UserID: acct.UserID, Balance: acct.Coins})
	}
}

type PayRequest struct {
	FromUserID string `json:"from_user_id" validate:"required,max=100"`
	ToUserID   string `json:"to_user_id" validate:"required,max=100"`
	Amount     int64  `json:"amount" validate:"min=1"`
}

// PayResponse reports both balances after a user-to-user payment
type PayResponse struct {
	FromBalance int64 `json:"from_balance"`
	ToBalance   int64 `json:"to_balance"`
}

// HandlePay transfers coins between two users
func HandlePay(svc account.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req PayRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Pay"); err != nil {
			return
		}

		result, err := svc.Pay(r.Context(), req.FromUserID, req.ToUserID, req.Amount)
		if err != nil {
			respondServiceError(w, r, "Pay", err)
			return
		}

		log.Info("Payment completed",
			"from", req.FromUserID,
			"to", req.ToUserID,
			"amount", req.Amount)
		metrics.CoinsDebited.Add(float64(req.Amount))
		metrics.CoinsCredited.Add(float64(req.Amount))

		respondJSON(w, http.StatusOK, PayResponse{
			FromBalance: result.FromBalance,
			ToBalance:   result.ToBalance,
		})
	}
}

type AdjustBalanceRequest struct {
	UserID string `json:"user_id" validate:"required,max=100"`
	Amount int64  `json:"amount" validate:"min=1"`
}

// HandleCredit adds coins to an account (admin/system action)
func HandleCredit(svc account.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AdjustBalanceRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Credit"); err != nil {
			return
		}

		balance, err := svc.Credit(r.Context(), req.UserID, req.Amount)
		if err != nil {
			respondServiceError(w, r, "Credit", err)
			return
		}

		metrics.CoinsCredited.Add(float64(req.Amount))
		respondJSON(w, http.StatusOK, BalanceResponse{UserID: req.UserID, Balance: balance})
	}
}

// HandleDebit removes coins from an account (admin/system action)
func HandleDebit(svc account.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AdjustBalanceRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Debit"); err != nil {
			return
		}

		balance, err := svc.Debit(r.Context(), req.UserID, req.Amount)
		if err != nil {
			respondServiceError(w, r, "Debit", err)
			return
		}

		metrics.CoinsDebited.Add(float64(req.Amount))
		respondJSON(w, http.StatusOK, BalanceResponse{UserID: req.UserID, Balance: balance})
	}
}
