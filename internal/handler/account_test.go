package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirae-dev/ShoreBot_Go/internal/account"
	"github.com/mirae-dev/ShoreBot_Go/internal/domain"
)

// stubAccountService lets each test inject just the methods it exercises
type stubAccountService struct {
	ensureFn func(ctx context.Context, userID string) (*domain.Account, bool, error)
	payFn    func(ctx context.Context, fromUserID, toUserID string, amount int64) (*account.TransferResult, error)
	creditFn func(ctx context.Context, userID string, amount int64) (int64, error)
	debitFn  func(ctx context.Context, userID string, amount int64) (int64, error)
	topFn    func(ctx context.Context, limit int) ([]domain.Account, error)
}

func (s *stubAccountService) EnsureAccount(ctx context.Context, userID string) (*domain.Account, bool, error) {
	return s.ensureFn(ctx, userID)
}

func (s *stubAccountService) GetBalance(ctx context.Context, userID string) (int64, error) {
	acct, _, err := s.ensureFn(ctx, userID)
	if err != nil {
		return 0, err
	}
	return acct.Coins, nil
}

func (s *stubAccountService) Credit(ctx context.Context, userID string, amount int64) (int64, error) {
	return s.creditFn(ctx, userID, amount)
}

func (s *stubAccountService) Debit(ctx context.Context, userID string, amount int64) (int64, error) {
	return s.debitFn(ctx, userID, amount)
}

func (s *stubAccountService) Transfer(ctx context.Context, fromUserID, toUserID string, amount int64) (*account.TransferResult, error) {
	return s.payFn(ctx, fromUserID, toUserID, amount)
}

func (s *stubAccountService) Pay(ctx context.Context, fromUserID, toUserID string, amount int64) (*account.TransferResult, error) {
	return s.payFn(ctx, fromUserID, toUserID, amount)
}

func (s *stubAccountService) TopBalances(ctx context.Context, limit int) ([]domain.Account, error) {
	return s.topFn(ctx, limit)
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBuffer(raw))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestHandleGetBalance(t *testing.T) {
	InitValidator()

	svc := &stubAccountService{
		ensureFn: func(ctx context.Context, userID string) (*domain.Account, bool, error) {
			return &domain.Account{UserID: userID, Coins: 250, CreatedAt: time.Now()}, false, nil
		},
	}
	handler := HandleGetBalance(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/account/balance?user_id=user-1", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"balance":250`)
}

func TestHandleGetBalance_MissingParam(t *testing.T) {
	InitValidator()

	handler := HandleGetBalance(&stubAccountService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/account/balance", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandlePay(t *testing.T) {
	InitValidator()

	tests := []struct {
		name           string
		requestBody    interface{}
		payFn          func(ctx context.Context, fromUserID, toUserID string, amount int64) (*account.TransferResult, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "Success",
			requestBody: PayRequest{FromUserID: "user-1", ToUserID: "user-2", Amount: 50},
			payFn: func(ctx context.Context, fromUserID, toUserID string, amount int64) (*account.TransferResult, error) {
				return &account.TransferResult{FromBalance: 50, ToBalance: 150}, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"from_balance":50`,
		},
		{
			name:           "Missing recipient",
			requestBody:    PayRequest{FromUserID: "user-1", Amount: 50},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidRequestSummary,
		},
		{
			name:           "Non-positive amount",
			requestBody:    PayRequest{FromUserID: "user-1", ToUserID: "user-2", Amount: 0},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "Self payment",
			requestBody: PayRequest{FromUserID: "user-1", ToUserID: "user-1", Amount: 50},
			payFn: func(ctx context.Context, fromUserID, toUserID string, amount int64) (*account.TransferResult, error) {
				return nil, domain.ErrSelfOperation
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgSelfOperationError,
		},
		{
			name:        "Insufficient funds",
			requestBody: PayRequest{FromUserID: "user-1", ToUserID: "user-2", Amount: 500},
			payFn: func(ctx context.Context, fromUserID, toUserID string, amount int64) (*account.TransferResult, error) {
				return nil, domain.InsufficientFundsError{Available: 100, Required: 500}
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgNotEnoughCoinsError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := HandlePay(&stubAccountService{payFn: tt.payFn})

			w := postJSON(t, handler, "/api/v1/account/pay", tt.requestBody)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				assert.Contains(t, w.Body.String(), tt.expectedBody)
			}
		})
	}
}
