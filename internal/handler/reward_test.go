package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mirae-dev/ShoreBot_Go/internal/cooldown"
	"github.com/mirae-dev/ShoreBot_Go/internal/domain"
	"github.com/mirae-dev/ShoreBot_Go/internal/reward"
)

// stubRewardService injects per-test claim behavior
type stubRewardService struct {
	coinFn    func(ctx context.Context, userID string) (*reward.CoinClaimResult, error)
	dropFn    func(ctx context.Context, userID string) (*reward.DropResult, error)
	boosterFn func(ctx context.Context, userID string) (*reward.BoosterResult, error)
	bonanzaFn func(ctx context.Context, userID string) (*reward.BonanzaResult, error)
	packFn    func(ctx context.Context, userID, packID string) (*reward.PackResult, error)
}

func (s *stubRewardService) ClaimDaily(ctx context.Context, userID string) (*reward.CoinClaimResult, error) {
	return s.coinFn(ctx, userID)
}

func (s *stubRewardService) ClaimWeekly(ctx context.Context, userID string) (*reward.CoinClaimResult, error) {
	return s.coinFn(ctx, userID)
}

func (s *stubRewardService) ClaimSurf(ctx context.Context, userID string) (*reward.CoinClaimResult, error) {
	return s.coinFn(ctx, userID)
}

func (s *stubRewardService) ClaimExplore(ctx context.Context, userID string) (*reward.CoinClaimResult, error) {
	return s.coinFn(ctx, userID)
}

func (s *stubRewardService) ClaimDrop(ctx context.Context, userID string) (*reward.DropResult, error) {
	return s.dropFn(ctx, userID)
}

func (s *stubRewardService) ClaimBooster(ctx context.Context, userID string) (*reward.BoosterResult, error) {
	return s.boosterFn(ctx, userID)
}

func (s *stubRewardService) ClaimBonanza(ctx context.Context, userID string) (*reward.BonanzaResult, error) {
	return s.bonanzaFn(ctx, userID)
}

func (s *stubRewardService) Packs() []reward.Pack {
	return []reward.Pack{{ID: "1", Name: "Starter Pack", Cost: 100, Cards: 1}}
}

func (s *stubRewardService) OpenPack(ctx context.Context, userID, packID string) (*reward.PackResult, error) {
	return s.packFn(ctx, userID, packID)
}

func TestHandleClaimDaily(t *testing.T) {
	InitValidator()

	tests := []struct {
		name           string
		requestBody    interface{}
		coinFn         func(ctx context.Context, userID string) (*reward.CoinClaimResult, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "Success",
			requestBody: ClaimRequest{UserID: "user-1"},
			coinFn: func(ctx context.Context, userID string) (*reward.CoinClaimResult, error) {
				return &reward.CoinClaimResult{Action: domain.ActionDaily, Amount: 100, NewBalance: 350}, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"new_balance":350`,
		},
		{
			name:        "On cooldown",
			requestBody: ClaimRequest{UserID: "user-1"},
			coinFn: func(ctx context.Context, userID string) (*reward.CoinClaimResult, error) {
				return nil, cooldown.ErrOnCooldown{Action: domain.ActionDaily, Remaining: 3 * time.Hour}
			},
			expectedStatus: http.StatusTooManyRequests,
		},
		{
			name:           "Missing user",
			requestBody:    ClaimRequest{},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidRequestSummary,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := HandleClaimDaily(&stubRewardService{coinFn: tt.coinFn})

			w := postJSON(t, handler, "/api/v1/reward/daily", tt.requestBody)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				assert.Contains(t, w.Body.String(), tt.expectedBody)
			}
		})
	}
}

func TestHandleClaimDrop(t *testing.T) {
	InitValidator()

	svc := &stubRewardService{
		dropFn: func(ctx context.Context, userID string) (*reward.DropResult, error) {
			return &reward.DropResult{
				Card:     domain.Card{ID: 7, Code: "WAVE-7", Rarity: domain.RarityRare},
				Quantity: 1,
			}, nil
		},
	}

	w := postJSON(t, HandleClaimDrop(svc), "/api/v1/reward/drop", ClaimRequest{UserID: "user-1"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"WAVE-7"`)
}

func TestHandleClaimBooster_NotAllowed(t *testing.T) {
	InitValidator()

	svc := &stubRewardService{
		boosterFn: func(ctx context.Context, userID string) (*reward.BoosterResult, error) {
			return nil, domain.ErrBoosterNotAllowed
		},
	}

	w := postJSON(t, HandleClaimBooster(svc), "/api/v1/reward/booster", ClaimRequest{UserID: "user-1"})

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), ErrMsgBoosterNotAllowedErr)
}

func TestHandleClaimBonanza(t *testing.T) {
	InitValidator()

	svc := &stubRewardService{
		bonanzaFn: func(ctx context.Context, userID string) (*reward.BonanzaResult, error) {
			return &reward.BonanzaResult{
				Coins:      25000,
				NewBalance: 25100,
				Cards:      []domain.Card{{ID: 9, Code: "WAVE-9", Rarity: domain.RarityLegendary}},
			}, nil
		},
	}

	w := postJSON(t, HandleClaimBonanza(svc), "/api/v1/reward/bonanza", ClaimRequest{UserID: "vip-1"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"coins":25000`)
	assert.Contains(t, w.Body.String(), `"WAVE-9"`)
}

func TestHandleClaimBonanza_NotAllowed(t *testing.T) {
	InitValidator()

	svc := &stubRewardService{
		bonanzaFn: func(ctx context.Context, userID string) (*reward.BonanzaResult, error) {
			return nil, domain.ErrBoosterNotAllowed
		},
	}

	w := postJSON(t, HandleClaimBonanza(svc), "/api/v1/reward/bonanza", ClaimRequest{UserID: "user-1"})

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), ErrMsgBoosterNotAllowedErr)
}
