package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mirae-dev/ShoreBot_Go/internal/domain"
	"github.com/mirae-dev/ShoreBot_Go/internal/market"
)

const testListingCode = "3f1d2c4b-5a6e-4f70-8b91-0c2d3e4f5a6b"

// stubMarketService injects per-test marketplace behavior
type stubMarketService struct {
	createFn   func(ctx context.Context, sellerID string, cardID int, unitPrice int64, quantity int) (*domain.Listing, error)
	purchaseFn func(ctx context.Context, buyerID, listingCode string) (*market.PurchaseResult, error)
	cancelFn   func(ctx context.Context, sellerID, listingCode string) error
	getFn      func(ctx context.Context, listingCode string) (*domain.Listing, error)
	browseFn   func(ctx context.Context, filter domain.ListingFilter) ([]domain.ListingView, error)
	houseFn    func(ctx context.Context, userID string, cardID int, n int) (*market.HouseSaleResult, error)
}

func (s *stubMarketService) CreateListing(ctx context.Context, sellerID string, cardID int, unitPrice int64, quantity int) (*domain.Listing, error) {
	return s.createFn(ctx, sellerID, cardID, unitPrice, quantity)
}

func (s *stubMarketService) Purchase(ctx context.Context, buyerID, listingCode string) (*market.PurchaseResult, error) {
	return s.purchaseFn(ctx, buyerID, listingCode)
}

func (s *stubMarketService) CancelListing(ctx context.Context, sellerID, listingCode string) error {
	return s.cancelFn(ctx, sellerID, listingCode)
}

func (s *stubMarketService) GetListing(ctx context.Context, listingCode string) (*domain.Listing, error) {
	return s.getFn(ctx, listingCode)
}

func (s *stubMarketService) Browse(ctx context.Context, filter domain.ListingFilter) ([]domain.ListingView, error) {
	return s.browseFn(ctx, filter)
}

func (s *stubMarketService) SellToHouse(ctx context.Context, userID string, cardID int, n int) (*market.HouseSaleResult, error) {
	return s.houseFn(ctx, userID, cardID, n)
}

func TestHandlePurchase(t *testing.T) {
	InitValidator()

	tests := []struct {
		name           string
		requestBody    interface{}
		purchaseFn     func(ctx context.Context, buyerID, listingCode string) (*market.PurchaseResult, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "Success",
			requestBody: PurchaseRequest{BuyerID: "buyer-1", ListingCode: testListingCode},
			purchaseFn: func(ctx context.Context, buyerID, listingCode string) (*market.PurchaseResult, error) {
				return &market.PurchaseResult{
					Listing:      domain.Listing{Code: listingCode, SellerID: "seller-1", CardID: 3, UnitPrice: 100, Quantity: 2, CreatedAt: time.Now()},
					TotalPrice:   200,
					BuyerBalance: 800,
				}, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"total_price":200`,
		},
		{
			name:        "Already sold",
			requestBody: PurchaseRequest{BuyerID: "buyer-1", ListingCode: testListingCode},
			purchaseFn: func(ctx context.Context, buyerID, listingCode string) (*market.PurchaseResult, error) {
				return nil, domain.ErrListingNotFound
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   ErrMsgListingNotFoundError,
		},
		{
			name:        "Insufficient funds",
			requestBody: PurchaseRequest{BuyerID: "buyer-1", ListingCode: testListingCode},
			purchaseFn: func(ctx context.Context, buyerID, listingCode string) (*market.PurchaseResult, error) {
				return nil, domain.InsufficientFundsError{Available: 50, Required: 200}
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgNotEnoughCoinsError,
		},
		{
			name:           "Malformed listing code",
			requestBody:    PurchaseRequest{BuyerID: "buyer-1", ListingCode: "not-a-code"},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Invalid listing code",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := HandlePurchase(&stubMarketService{purchaseFn: tt.purchaseFn})

			w := postJSON(t, handler, "/api/v1/market/purchase", tt.requestBody)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				assert.Contains(t, w.Body.String(), tt.expectedBody)
			}
		})
	}
}

func TestHandleBrowse_Filters(t *testing.T) {
	InitValidator()

	var got domain.ListingFilter
	svc := &stubMarketService{
		browseFn: func(ctx context.Context, filter domain.ListingFilter) ([]domain.ListingView, error) {
			got = filter
			return []domain.ListingView{}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/market/browse?card_id=3&max_price=500&seller_id=seller-1", nil)
	w := httptest.NewRecorder()
	HandleBrowse(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 3, got.CardID)
	assert.Equal(t, int64(500), got.MaxPrice)
	assert.Equal(t, "seller-1", got.SellerID)
}

func TestHandleBrowse_BadCardID(t *testing.T) {
	InitValidator()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/market/browse?card_id=abc", nil)
	w := httptest.NewRecorder()
	HandleBrowse(&stubMarketService{}).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), ErrMsgInvalidCardID)
}
