package domain

import "time"

// Claimable action keys. One cooldown record exists per (user, action).
const (
	ActionDaily   = "daily"
	ActionWeekly  = "weekly"
	ActionSurf    = "surf"
	ActionExplore = "explore"
	ActionDrop    = "drop"
	ActionBooster = "booster"
	ActionBonanza = "bonanza"
)

// Default cooldown durations per action. Overridable through configuration.
const (
	DailyCooldownDuration   = 24 * time.Hour
	WeeklyCooldownDuration  = 168 * time.Hour
	SurfCooldownDuration    = time.Hour
	ExploreCooldownDuration = time.Hour
	DropCooldownDuration    = 2 * time.Minute
	BoosterCooldownDuration = 6 * time.Hour
	BonanzaCooldownDuration = 6 * time.Hour
)

// DefaultStartingGrant is the coin balance granted on account creation.
const DefaultStartingGrant int64 = 100

// Leaderboard page sizing.
const (
	DefaultLeaderboardLimit = 10
	MaxLeaderboardLimit     = 50
)

// ClaimActions lists every claimable action key.
var ClaimActions = []string{
	ActionDaily,
	ActionWeekly,
	ActionSurf,
	ActionExplore,
	ActionDrop,
	ActionBooster,
	ActionBonanza,
}
