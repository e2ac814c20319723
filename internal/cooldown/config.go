package cooldown

import (
	"time"

	"github.com/mirae-dev/ShoreBot_Go/internal/domain"
)

// Config holds cooldown service configuration
type Config struct {
	// BypassUsers claim freely without touching cooldown records
	BypassUsers map[string]struct{}

	// Cooldowns maps action names to their durations
	// If not specified, defaults from domain package are used
	Cooldowns map[string]time.Duration
}

// IsBypassed reports whether the user skips cooldown enforcement entirely
func (c *Config) IsBypassed(userID string) bool {
	_, ok := c.BypassUsers[userID]
	return ok
}

// GetCooldownDuration returns the cooldown duration for an action
func (c *Config) GetCooldownDuration(action string) time.Duration {
	// Check custom overrides first
	if c.Cooldowns != nil {
		if duration, ok := c.Cooldowns[action]; ok {
			return duration
		}
	}

	// Fall back to defaults
	switch action {
	case domain.ActionDaily:
		return domain.DailyCooldownDuration
	case domain.ActionWeekly:
		return domain.WeeklyCooldownDuration
	case domain.ActionSurf:
		return domain.SurfCooldownDuration
	case domain.ActionExplore:
		return domain.ExploreCooldownDuration
	case domain.ActionDrop:
		return domain.DropCooldownDuration
	case domain.ActionBooster:
		return domain.BoosterCooldownDuration
	case domain.ActionBonanza:
		return domain.BonanzaCooldownDuration
	default:
		// Unknown action - use default
		return DefaultCooldownDuration
	}
}
