package domain

import "time"

// InventoryEntry is one (user, card) copy count. An entry exists only while
// quantity >= 1; removing the last copy deletes the row.
type InventoryEntry struct {
	UserID     string    `json:"user_id"`
	CardID     int       `json:"card_id"`
	Quantity   int       `json:"quantity"`
	AcquiredAt time.Time `json:"acquired_at"`
}

// InventoryFilter narrows inventory listings.
type InventoryFilter struct {
	Rarity    int
	GroupName string
}

// InventoryItem is an inventory entry joined with its card metadata, the shape
// the command layer renders.
type InventoryItem struct {
	Card     Card `json:"card"`
	Quantity int  `json:"quantity"`
}
