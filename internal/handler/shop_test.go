package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mirae-dev/ShoreBot_Go/internal/domain"
	"github.com/mirae-dev/ShoreBot_Go/internal/reward"
)

func TestHandleListPacks(t *testing.T) {
	InitValidator()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/shop/packs", nil)
	w := httptest.NewRecorder()
	HandleListPacks(&stubRewardService{}).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"Starter Pack"`)
	assert.Contains(t, w.Body.String(), `"cost":100`)
}

func TestHandleBuyPack(t *testing.T) {
	InitValidator()

	tests := []struct {
		name           string
		requestBody    interface{}
		packFn         func(ctx context.Context, userID, packID string) (*reward.PackResult, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "Success",
			requestBody: BuyPackRequest{UserID: "user-1", PackID: "3"},
			packFn: func(ctx context.Context, userID, packID string) (*reward.PackResult, error) {
				return &reward.PackResult{
					Pack:       reward.Pack{ID: "3", Name: "Premium Pack", Cost: 500, Cards: 5},
					NewBalance: 9500,
					Cards:      []domain.Card{{ID: 1, Code: "WAVE-1", Rarity: domain.RarityCommon}},
				}, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"new_balance":9500`,
		},
		{
			name:        "Unknown pack",
			requestBody: BuyPackRequest{UserID: "user-1", PackID: "99"},
			packFn: func(ctx context.Context, userID, packID string) (*reward.PackResult, error) {
				return nil, domain.ErrPackNotFound
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   ErrMsgPackNotFoundError,
		},
		{
			name:        "Not enough coins",
			requestBody: BuyPackRequest{UserID: "user-1", PackID: "4"},
			packFn: func(ctx context.Context, userID, packID string) (*reward.PackResult, error) {
				return nil, domain.InsufficientFundsError{Available: 50, Required: 1000}
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgNotEnoughCoinsError,
		},
		{
			name:           "Missing pack id",
			requestBody:    BuyPackRequest{UserID: "user-1"},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidRequestSummary,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := HandleBuyPack(&stubRewardService{packFn: tt.packFn})

			w := postJSON(t, handler, "/api/v1/shop/buy", tt.requestBody)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				assert.Contains(t, w.Body.String(), tt.expectedBody)
			}
		})
	}
}
