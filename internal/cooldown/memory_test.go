package cooldown_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirae-dev/ShoreBot_Go/internal/cooldown"
)

func newMemoryService() cooldown.Service {
	return cooldown.NewMemoryService(cooldown.Config{
		Cooldowns: map[string]time.Duration{"daily": time.Hour},
	})
}

func TestMemoryTryClaim_ConcurrentClaimsGrantOnce(t *testing.T) {
	svc := newMemoryService()
	ctx := context.Background()

	const claimers = 16

	var wg sync.WaitGroup
	results := make([]cooldown.Result, claimers)
	claimErrs := make([]error, claimers)
	for i := 0; i < claimers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], claimErrs[i] = svc.TryClaim(ctx, "alice", "daily")
		}(i)
	}
	wg.Wait()

	granted := 0
	for i, result := range results {
		require.NoError(t, claimErrs[i])
		if result.Granted {
			granted++
			continue
		}
		assert.Positive(t, result.Remaining, "loser %d must see the remaining cooldown", i)
	}
	assert.Equal(t, 1, granted, "exactly one claim is granted per window")
}

func TestMemoryEnforceClaim_ConcurrentPayoutRunsOnce(t *testing.T) {
	svc := newMemoryService()
	ctx := context.Background()

	const claimers = 16

	var mu sync.Mutex
	payouts := 0

	var wg sync.WaitGroup
	results := make([]error, claimers)
	for i := 0; i < claimers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = svc.EnforceClaim(ctx, "alice", "daily", func() error {
				mu.Lock()
				payouts++
				mu.Unlock()
				return nil
			})
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range results {
		if err == nil {
			successes++
			continue
		}
		assert.ErrorIs(t, err, cooldown.ErrOnCooldown{})
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, payouts, "the payout must run exactly once")
}

func TestMemoryEnforceClaim_FailedPayoutLeavesNoStamp(t *testing.T) {
	svc := newMemoryService()
	ctx := context.Background()

	payoutErr := errors.New("payout failed")
	err := svc.EnforceClaim(ctx, "alice", "daily", func() error { return payoutErr })
	require.ErrorIs(t, err, payoutErr)

	// The failed claim did not start the cooldown
	result, err := svc.TryClaim(ctx, "alice", "daily")
	require.NoError(t, err)
	assert.True(t, result.Granted)
}

func TestMemoryService_ResetAllowsReclaim(t *testing.T) {
	svc := newMemoryService()
	ctx := context.Background()

	result, err := svc.TryClaim(ctx, "alice", "daily")
	require.NoError(t, err)
	require.True(t, result.Granted)

	result, err = svc.TryClaim(ctx, "alice", "daily")
	require.NoError(t, err)
	require.False(t, result.Granted)

	require.NoError(t, svc.ResetCooldown(ctx, "alice", "daily"))

	result, err = svc.TryClaim(ctx, "alice", "daily")
	require.NoError(t, err)
	assert.True(t, result.Granted)
}

func TestMemoryService_BypassUserNeverStamped(t *testing.T) {
	svc := cooldown.NewMemoryService(cooldown.Config{
		BypassUsers: map[string]struct{}{"admin": {}},
		Cooldowns:   map[string]time.Duration{"daily": time.Hour},
	})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		result, err := svc.TryClaim(ctx, "admin", "daily")
		require.NoError(t, err)
		assert.True(t, result.Granted)
	}

	lastClaimed, err := svc.GetLastClaimed(ctx, "admin", "daily")
	require.NoError(t, err)
	assert.Nil(t, lastClaimed)
}
