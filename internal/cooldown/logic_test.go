package cooldown

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHashUserAction(t *testing.T) {
	tests := []struct {
		name   string
		userID string
		action string
	}{
		{"normal", "user123", "daily"},
		{"empty", "", ""},
		{"long", "user-uuid-long-string", "action-name-very-long"},
		{"symbols", "user!@#", "action$%^"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h1 := hashUserAction(tt.userID, tt.action)
			h2 := hashUserAction(tt.userID, tt.action)

			// Determinism
			assert.Equal(t, h1, h2, "hash should be deterministic")

			// Positive value (MSB masked)
			assert.GreaterOrEqual(t, h1, int64(0), "hash should be positive")
		})
	}

	t.Run("collisions", func(t *testing.T) {
		h1 := hashUserAction("user1", "daily")
		h2 := hashUserAction("user1", "weekly")
		assert.NotEqual(t, h1, h2, "different actions should have different hashes")

		h3 := hashUserAction("user2", "daily")
		assert.NotEqual(t, h1, h3, "different users should have different hashes")
	})

	t.Run("separator matters", func(t *testing.T) {
		// "ab"+":"+"c" must not collide with "a"+":"+"bc"
		h1 := hashUserAction("ab", "c")
		h2 := hashUserAction("a", "bc")
		assert.NotEqual(t, h1, h2)
	})
}

func TestCheckCooldownInternal(t *testing.T) {
	b := &postgresBackend{}
	duration := 5 * time.Minute

	tests := []struct {
		name           string
		lastClaimed    *time.Time
		wantOnCooldown bool
		wantRemaining  time.Duration
	}{
		{
			name:           "nil lastClaimed",
			lastClaimed:    nil,
			wantOnCooldown: false,
			wantRemaining:  0,
		},
		{
			name:           "active cooldown",
			lastClaimed:    ptr(time.Now().Add(-2 * time.Minute)),
			wantOnCooldown: true,
			wantRemaining:  3 * time.Minute,
		},
		{
			name:           "expired cooldown",
			lastClaimed:    ptr(time.Now().Add(-6 * time.Minute)),
			wantOnCooldown: false,
			wantRemaining:  0,
		},
		{
			name:           "exact boundary",
			lastClaimed:    ptr(time.Now().Add(-5 * time.Minute)),
			wantOnCooldown: false,
			wantRemaining:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			onCooldown, remaining := b.checkCooldownInternal(tt.lastClaimed, duration)

			assert.Equal(t, tt.wantOnCooldown, onCooldown)
			assert.InDelta(t, tt.wantRemaining.Seconds(), remaining.Seconds(), 1.0)
		})
	}
}

func ptr[T any](v T) *T { return &v }
