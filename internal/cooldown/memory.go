package cooldown

import (
	"context"
	"errors"
	"sync"
	"time"
)

// memoryBackend implements Service with an in-process store. It enforces the
// same at-most-once claim semantics as the Postgres backend, with the mutex
// standing in for the advisory lock. State does not survive a restart, so it
// is suited to tests and single-process tooling, not deployments.
type memoryBackend struct {
	config Config
	now    func() time.Time

	mu      sync.Mutex
	claimed map[string]time.Time
}

// NewMemoryService creates a cooldown service backed by process memory
func NewMemoryService(config Config) Service {
	return &memoryBackend{
		config:  config,
		now:     time.Now,
		claimed: make(map[string]time.Time),
	}
}

func (b *memoryBackend) key(userID, action string) string {
	return userID + HashSeparator + action
}

// remainingLocked computes the cooldown state. Callers hold b.mu.
func (b *memoryBackend) remainingLocked(userID, action string) (bool, time.Duration) {
	lastClaimed, ok := b.claimed[b.key(userID, action)]
	if !ok {
		return false, 0
	}

	duration := b.config.GetCooldownDuration(action)
	elapsed := b.now().Sub(lastClaimed)
	if elapsed < duration {
		return true, duration - elapsed
	}
	return false, 0
}

// CheckCooldown checks if a user's action is on cooldown
func (b *memoryBackend) CheckCooldown(_ context.Context, userID, action string) (bool, time.Duration, error) {
	if b.config.IsBypassed(userID) {
		return false, 0, nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	onCooldown, remaining := b.remainingLocked(userID, action)
	return onCooldown, remaining, nil
}

// TryClaim atomically checks the cooldown and stamps the claim time if allowed
func (b *memoryBackend) TryClaim(ctx context.Context, userID, action string) (Result, error) {
	err := b.EnforceClaim(ctx, userID, action, func() error { return nil })
	if err != nil {
		var onCooldown ErrOnCooldown
		if errors.As(err, &onCooldown) {
			return Result{Granted: false, Remaining: onCooldown.Remaining}, nil
		}
		return Result{}, err
	}
	return Result{Granted: true}, nil
}

// EnforceClaim holds the lock across the check, fn, and the stamp, so
// concurrent claims for the same user and action serialize and at most one
// passes per cooldown window. A failed fn leaves the record unstamped.
func (b *memoryBackend) EnforceClaim(_ context.Context, userID, action string, fn func() error) error {
	if b.config.IsBypassed(userID) {
		return fn()
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	onCooldown, remaining := b.remainingLocked(userID, action)
	if onCooldown {
		return ErrOnCooldown{Action: action, Remaining: remaining}
	}

	if err := fn(); err != nil {
		return err
	}

	b.claimed[b.key(userID, action)] = b.now()
	return nil
}

// ResetCooldown manually resets a cooldown
func (b *memoryBackend) ResetCooldown(_ context.Context, userID, action string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.claimed, b.key(userID, action))
	return nil
}

// GetLastClaimed returns when action was last claimed
func (b *memoryBackend) GetLastClaimed(_ context.Context, userID, action string) (*time.Time, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	lastClaimed, ok := b.claimed[b.key(userID, action)]
	if !ok {
		return nil, nil
	}
	return &lastClaimed, nil
}
