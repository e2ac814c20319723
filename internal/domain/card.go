package domain

import "time"

// Rarity tiers, from most common to rarest.
const (
	RarityCommon    = 1
	RarityUncommon  = 2
	RarityRare      = 3
	RarityEpic      = 4
	RarityLegendary = 5
)

// RarityMin and RarityMax bound the valid tier range.
const (
	RarityMin = RarityCommon
	RarityMax = RarityLegendary
)

// Card is a catalog entry. Read-only from the ledger's perspective; the
// catalog collaborator owns card metadata.
type Card struct {
	ID        int       `json:"card_id"`
	Code      string    `json:"card_code"`
	Name      string    `json:"name"`
	GroupName string    `json:"group_name"`
	Era       string    `json:"era,omitempty"`
	Rarity    int       `json:"rarity"`
	Droppable bool      `json:"droppable"`
	IsLimited bool      `json:"is_limited"`
	EventTag  string    `json:"event_tag,omitempty"`
	ImageURL  string    `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CardFilter narrows catalog queries and reward pools.
// Zero values mean "no constraint" for that field.
type CardFilter struct {
	Rarity         int
	GroupName      string
	DroppableOnly  bool
	IncludeLimited bool
	EventTag       string
}

// Matches reports whether the card passes every set constraint.
func (f CardFilter) Matches(c Card) bool {
	if f.Rarity != 0 && c.Rarity != f.Rarity {
		return false
	}
	if f.GroupName != "" && c.GroupName != f.GroupName {
		return false
	}
	if f.DroppableOnly && !c.Droppable {
		return false
	}
	if !f.IncludeLimited && c.IsLimited {
		return false
	}
	if f.EventTag != "" && c.EventTag != f.EventTag {
		return false
	}
	// Event cards only drop when explicitly requested.
	if f.EventTag == "" && c.EventTag != "" {
		return false
	}
	return true
}
