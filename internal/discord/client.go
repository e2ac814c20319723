package discord

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/mirae-dev/ShoreBot_Go/internal/domain"
	"github.com/mirae-dev/ShoreBot_Go/internal/handler"
	"github.com/mirae-dev/ShoreBot_Go/internal/market"
	"github.com/mirae-dev/ShoreBot_Go/internal/reward"
)

// APIClient handles communication with the ShoreBot Core API
type APIClient struct {
	BaseURL string
	Client  *http.Client
	APIKey  string
}

// NewAPIClient creates a new API client
func NewAPIClient(baseURL, apiKey string) *APIClient {
	return &APIClient{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
		APIKey: apiKey,
	}
}

// doRequest performs an HTTP request with retry logic
func (c *APIClient) doRequest(method, path string, body interface{}) (*http.Response, error) {
	var reqBody []byte
	var err error

	if body != nil {
		reqBody, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal body: %w", err)
		}
	}

	fullURL := fmt.Sprintf("%s%s", c.BaseURL, path)

	maxRetries := 3
	retryDelay := 500 * time.Millisecond

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			// Exponential backoff with jitter
			jitter := time.Duration(time.Now().UnixNano()%100) * time.Millisecond
			delay := retryDelay*time.Duration(1<<uint(attempt-1)) + jitter
			time.Sleep(delay)
			slog.Info("Retrying API request", "attempt", attempt, "path", path, "delay", delay)
		}

		req, err := http.NewRequest(method, fullURL, bytes.NewBuffer(reqBody))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		req.Header.Set("Content-Type", "application/json")
		if c.APIKey != "" {
			req.Header.Set("X-API-Key", c.APIKey)
		}

		resp, err := c.Client.Do(req)
		if err != nil {
			lastErr = err
			slog.Warn("API request failed", "error", err, "attempt", attempt)
			continue
		}

		// Success or non-retryable error
		if resp.StatusCode < 500 {
			return resp, nil
		}

		resp.Body.Close()
		lastErr = fmt.Errorf("server error: %d", resp.StatusCode)
		slog.Warn("Server error, will retry", "status", resp.StatusCode, "attempt", attempt)
	}

	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}

// call performs a request and decodes the JSON response into out.
// Error responses surface as "API error: <message>".
func (c *APIClient) call(method, path string, body, out interface{}) error {
	resp, err := c.doRequest(method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var errResp struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error != "" {
			return fmt.Errorf("API error: %s", errResp.Error)
		}
		return fmt.Errorf("API returned status: %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// GetBalance fetches (and creates on first contact) a user's account balance
func (c *APIClient) GetBalance(userID string) (*handler.BalanceResponse, error) {
	var out handler.BalanceResponse
	path := "/api/v1/account/balance?user_id=" + url.QueryEscape(userID)
	if err := c.call(http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Pay transfers coins to another user
func (c *APIClient) Pay(fromUserID, toUserID string, amount int64) (*handler.PayResponse, error) {
	req := handler.PayRequest{FromUserID: fromUserID, ToUserID: toUserID, Amount: amount}
	var out handler.PayResponse
	if err := c.call(http.MethodPost, "/api/v1/account/pay", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetInventory fetches a user's card collection
func (c *APIClient) GetInventory(userID string) ([]domain.InventoryItem, error) {
	var out handler.InventoryResponse
	path := "/api/v1/inventory/?user_id=" + url.QueryEscape(userID)
	if err := c.call(http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

// Gift transfers card copies to another user
func (c *APIClient) Gift(fromUserID, toUserID string, cardID, quantity int) error {
	req := handler.GiftRequest{FromUserID: fromUserID, ToUserID: toUserID, CardID: cardID, Quantity: quantity}
	return c.call(http.MethodPost, "/api/v1/inventory/gift", req, nil)
}

// ClaimCoins claims a timed coin reward (daily, weekly, surf, explore)
func (c *APIClient) ClaimCoins(action, userID string) (*reward.CoinClaimResult, error) {
	req := handler.ClaimRequest{UserID: userID}
	var out reward.CoinClaimResult
	if err := c.call(http.MethodPost, "/api/v1/reward/"+action, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ClaimDrop claims a card drop
func (c *APIClient) ClaimDrop(userID string) (*reward.DropResult, error) {
	req := handler.ClaimRequest{UserID: userID}
	var out reward.DropResult
	if err := c.call(http.MethodPost, "/api/v1/reward/drop", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ClaimBooster claims the subscriber booster bundle
func (c *APIClient) ClaimBooster(userID string) (*reward.BoosterResult, error) {
	req := handler.ClaimRequest{UserID: userID}
	var out reward.BoosterResult
	if err := c.call(http.MethodPost, "/api/v1/reward/booster", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ClaimBonanza claims the subscriber mega bundle
func (c *APIClient) ClaimBonanza(userID string) (*reward.BonanzaResult, error) {
	req := handler.ClaimRequest{UserID: userID}
	var out reward.BonanzaResult
	if err := c.call(http.MethodPost, "/api/v1/reward/bonanza", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetPacks fetches the shop catalog
func (c *APIClient) GetPacks() ([]reward.Pack, error) {
	var out handler.PackListResponse
	if err := c.call(http.MethodGet, "/api/v1/shop/packs", nil, &out); err != nil {
		return nil, err
	}
	return out.Packs, nil
}

// BuyPack purchases a shop pack and rolls its cards
func (c *APIClient) BuyPack(userID, packID string) (*reward.PackResult, error) {
	req := handler.BuyPackRequest{UserID: userID, PackID: packID}
	var out reward.PackResult
	if err := c.call(http.MethodPost, "/api/v1/shop/buy", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TopBalances fetches the richest-users board
func (c *APIClient) TopBalances(limit int) ([]handler.CoinLeaderboardEntry, error) {
	var out handler.CoinLeaderboardResponse
	path := "/api/v1/leaderboard/coins"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	if err := c.call(http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Entries, nil
}

// TopCollectors fetches the top-collectors board
func (c *APIClient) TopCollectors(limit int) ([]handler.CollectorLeaderboardEntry, error) {
	var out handler.CollectorLeaderboardResponse
	path := "/api/v1/leaderboard/collection"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	if err := c.call(http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Entries, nil
}

// CreateListing puts card copies up for sale
func (c *APIClient) CreateListing(sellerID string, cardID int, unitPrice int64, quantity int) (*domain.Listing, error) {
	req := handler.CreateListingRequest{SellerID: sellerID, CardID: cardID, UnitPrice: unitPrice, Quantity: quantity}
	var out domain.Listing
	if err := c.call(http.MethodPost, "/api/v1/market/list", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Purchase buys a whole listing
func (c *APIClient) Purchase(buyerID, listingCode string) (*market.PurchaseResult, error) {
	req := handler.PurchaseRequest{BuyerID: buyerID, ListingCode: listingCode}
	var out market.PurchaseResult
	if err := c.call(http.MethodPost, "/api/v1/market/purchase", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CancelListing takes a listing down and returns the escrow
func (c *APIClient) CancelListing(sellerID, listingCode string) error {
	req := handler.CancelListingRequest{SellerID: sellerID, ListingCode: listingCode}
	return c.call(http.MethodPost, "/api/v1/market/cancel", req, nil)
}

// Browse lists active marketplace listings
func (c *APIClient) Browse(cardID int) ([]domain.ListingView, error) {
	path := "/api/v1/market/browse"
	if cardID > 0 {
		path += "?card_id=" + strconv.Itoa(cardID)
	}
	var out handler.BrowseResponse
	if err := c.call(http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Listings, nil
}

// SellToHouse sells copies back to the house
func (c *APIClient) SellToHouse(userID string, cardID, quantity int) (*market.HouseSaleResult, error) {
	req := handler.HouseSaleRequest{UserID: userID, CardID: cardID, Quantity: quantity}
	var out market.HouseSaleResult
	if err := c.call(http.MethodPost, "/api/v1/market/sell", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ProposeTrade opens a one-for-one trade offer
func (c *APIClient) ProposeTrade(proposerID, counterpartyID string, offeredCardID, requestedCardID int) (*domain.TradeOffer, error) {
	req := handler.ProposeTradeRequest{
		ProposerID:      proposerID,
		CounterpartyID:  counterpartyID,
		OfferedCardID:   offeredCardID,
		RequestedCardID: requestedCardID,
	}
	var out domain.TradeOffer
	if err := c.call(http.MethodPost, "/api/v1/trade/propose", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AcceptTrade settles an open trade offer
func (c *APIClient) AcceptTrade(userID, offerID string) (*domain.TradeOffer, error) {
	req := handler.TradeActionRequest{UserID: userID, OfferID: offerID}
	var out domain.TradeOffer
	if err := c.call(http.MethodPost, "/api/v1/trade/accept", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeclineTrade retires an open trade offer
func (c *APIClient) DeclineTrade(userID, offerID string) error {
	req := handler.TradeActionRequest{UserID: userID, OfferID: offerID}
	return c.call(http.MethodPost, "/api/v1/trade/decline", req, nil)
}

// ListOffers lists a user's trade offers
func (c *APIClient) ListOffers(userID string) ([]domain.TradeOffer, error) {
	var out handler.OffersResponse
	path := "/api/v1/trade/offers?user_id=" + url.QueryEscape(userID)
	if err := c.call(http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Offers, nil
}

// GetCard fetches one card by its printable code
func (c *APIClient) GetCard(code string) (*domain.Card, error) {
	var out domain.Card
	path := "/api/v1/catalog/card?code=" + url.QueryEscape(code)
	if err := c.call(http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
