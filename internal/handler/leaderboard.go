package handler

import (
	"net/http"
	"strconv"

	"github.com/mirae-dev/ShoreBot_Go/internal/account"
	"github.com/mirae-dev/ShoreBot_Go/internal/domain"
	"github.com/mirae-dev/ShoreBot_Go/internal/inventory"
)

// CoinLeaderboardEntry is one row of the richest-users board
type CoinLeaderboardEntry struct {
	Rank    int    `json:"rank"`
	UserID  string `json:"user_id"`
	Balance int64  `json:"balance"`
}

// CoinLeaderboardResponse is the richest-users board, richest first
type CoinLeaderboardResponse struct {
	Entries []CoinLeaderboardEntry `json:"entries"`
}

// parseLeaderboardLimit reads the optional limit query parameter. The service
// clamps out-of-range values, so only unparsable input is rejected here.
func parseLeaderboardLimit(r *http.Request, w http.ResponseWriter) (int, bool) {
	v := GetOptionalQueryParam(r, "limit", "")
	if v == "" {
		return domain.DefaultLeaderboardLimit, true
	}
	limit, err := strconv.Atoi(v)
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequestSummary)
		return 0, false
	}
	return limit, true
}

// HandleTopBalances returns the users with the highest coin balances
func HandleTopBalances(svc account.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, ok := parseLeaderboardLimit(r, w)
		if !ok {
			return
		}

		accounts, err := svc.TopBalances(r.Context(), limit)
		if err != nil {
			respondServiceError(w, r, "Top balances", err)
			return
		}

		entries := make([]CoinLeaderboardEntry, len(accounts))
		for i, acct := range accounts {
			entries[i] = CoinLeaderboardEntry{Rank: i + 1, UserID: acct.UserID, Balance: acct.Coins}
		}
		respondJSON(w, http.StatusOK, CoinLeaderboardResponse{Entries: entries})
	}
}

// CollectorLeaderboardEntry is one row of the top-collectors board
type CollectorLeaderboardEntry struct {
	Rank        int    `json:"rank"`
	UserID      string `json:"user_id"`
	UniqueCards int    `json:"unique_cards"`
}

// CollectorLeaderboardResponse is the top-collectors board, largest
// collection first
type CollectorLeaderboardResponse struct {
	Entries []CollectorLeaderboardEntry `json:"entries"`
}

// HandleTopCollectors returns the users holding the most distinct cards
func HandleTopCollectors(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, ok := parseLeaderboardLimit(r, w)
		if !ok {
			return
		}

		collectors, err := svc.TopCollectors(r.Context(), limit)
		if err != nil {
			respondServiceError(w, r, "Top collectors", err)
			return
		}

		entries := make([]CollectorLeaderboardEntry, len(collectors))
		for i, c := range collectors {
			entries[i] = CollectorLeaderboardEntry{Rank: i + 1, UserID: c.UserID, UniqueCards: c.UniqueCards}
		}
		respondJSON(w, http.StatusOK, CollectorLeaderboardResponse{Entries: entries})
	}
}
