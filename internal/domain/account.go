package domain

import "time"

// Account holds a user's coin balance. One row per user, created on first
// interaction and never deleted. The balance is only mutated through the
// account ledger operations.
type Account struct {
	UserID    string    `json:"user_id"`
	Coins     int64     `json:"coins"`
	CreatedAt time.Time `json:"created_at"`
}

// CollectorCount is a leaderboard row: how many distinct cards a user holds.
type CollectorCount struct {
	UserID      string `json:"user_id"`
	UniqueCards int    `json:"unique_cards"`
}
