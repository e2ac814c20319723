package admin

import (
	"encoding/json"
	"net/http"

	"github.com/mirae-dev/ShoreBot_Go/internal/domain"
	"github.com/mirae-dev/ShoreBot_Go/internal/logger"
)

// LockdownMiddleware rejects mutating requests while lockdown is active unless
// the caller is whitelisted. GET and HEAD requests always pass through so
// balances and listings stay readable during an incident.
func LockdownMiddleware(svc Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !svc.IsLocked() || r.Method == http.MethodGet || r.Method == http.MethodHead {
				next.ServeHTTP(w, r)
				return
			}

			userID := callerID(r)
			if userID != "" && svc.IsWhitelisted(userID) {
				log := logger.FromContext(r.Context())
				log.Debug(LogMsgWhitelistPassthrough, "user_id", userID)
				next.ServeHTTP(w, r)
				return
			}

			log := logger.FromContext(r.Context())
			log.Warn(LogMsgLockdownRejected, "path", r.URL.Path, "user_id", userID)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusLocked)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": domain.ErrMsgLockdownActive})
		})
	}
}

// callerID identifies the requesting user without consuming the body.
// Handlers carry user IDs in JSON bodies, so the bot also mirrors the ID
// into a header for middleware that needs it before body parsing.
func callerID(r *http.Request) string {
	if id := r.Header.Get(HeaderUserID); id != "" {
		return id
	}
	return r.URL.Query().Get(QueryParamUserID)
}
