package cooldown

import (
	"context"
	"fmt"
	"time"
)

// Result reports the outcome of a claim attempt.
type Result struct {
	Granted   bool
	Remaining time.Duration
}

// Service manages per-action claim cooldowns for users
type Service interface {
	// CheckCooldown checks if a user's action is on cooldown
	// Returns: (onCooldown bool, remaining time.Duration, error)
	CheckCooldown(ctx context.Context, userID, action string) (bool, time.Duration, error)

	// TryClaim atomically checks the cooldown and stamps the claim time if allowed
	TryClaim(ctx context.Context, userID, action string) (Result, error)

	// EnforceClaim atomically checks cooldown, executes fn, and stamps the
	// claim time, all inside one transaction. If fn fails the stamp is
	// rolled back and the user may retry immediately.
	// This is the primary method - prevents race conditions
	EnforceClaim(ctx context.Context, userID, action string, fn func() error) error

	// ResetCooldown manually resets a cooldown (admin/testing)
	ResetCooldown(ctx context.Context, userID, action string) error

	// GetLastClaimed returns when action was last claimed (for UI display)
	GetLastClaimed(ctx context.Context, userID, action string) (*time.Time, error)
}

// ErrOnCooldown is returned when action is still on cooldown
type ErrOnCooldown struct {
	Action    string
	Remaining time.Duration
}

func (e ErrOnCooldown) Error() string {
	minutes := int(e.Remaining.Minutes())
	seconds := int(e.Remaining.Seconds()) % SecondsPerMinute

	if minutes > 0 {
		return fmt.Sprintf(ErrFmtCooldownWithMinutes, e.Action, minutes, seconds)
	}
	return fmt.Sprintf(ErrFmtCooldownSecondsOnly, e.Action, seconds)
}

// Is allows errors.Is() to work with ErrOnCooldown
func (e ErrOnCooldown) Is(target error) bool {
	_, ok := target.(ErrOnCooldown)
	return ok
}
