package admin

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockdownToggle(t *testing.T) {
	ctx := context.Background()
	svc := NewService(nil)

	assert.False(t, svc.IsLocked())

	svc.EnableLockdown(ctx)
	assert.True(t, svc.IsLocked())

	// Enabling twice is a no-op
	svc.EnableLockdown(ctx)
	assert.True(t, svc.IsLocked())

	svc.DisableLockdown(ctx)
	assert.False(t, svc.IsLocked())
}

func TestWhitelist(t *testing.T) {
	svc := NewService([]string{"alice", "", "bob"})

	assert.True(t, svc.IsWhitelisted("alice"))
	assert.True(t, svc.IsWhitelisted("bob"))
	assert.False(t, svc.IsWhitelisted("mallory"))
	assert.False(t, svc.IsWhitelisted(""))
}

func TestLockdownMiddleware(t *testing.T) {
	ctx := context.Background()
	svc := NewService([]string{"mod-1"})

	var reached bool
	handler := LockdownMiddleware(svc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	}))

	do := func(method, userID string) *httptest.ResponseRecorder {
		reached = false
		req := httptest.NewRequest(method, "/api/v1/reward/daily", strings.NewReader("{}"))
		if userID != "" {
			req.Header.Set(HeaderUserID, userID)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	// Unlocked: everything passes
	rec := do(http.MethodPost, "user-1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, reached)

	svc.EnableLockdown(ctx)

	// Locked: mutating call from a regular user is rejected
	rec = do(http.MethodPost, "user-1")
	assert.Equal(t, http.StatusLocked, rec.Code)
	assert.False(t, reached)
	assert.Contains(t, rec.Body.String(), "locked down")

	// Locked: reads still pass
	rec = do(http.MethodGet, "user-1")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, reached)

	// Locked: whitelisted user passes
	rec = do(http.MethodPost, "mod-1")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, reached)

	// Locked: anonymous mutating call is rejected
	rec = do(http.MethodPost, "")
	assert.Equal(t, http.StatusLocked, rec.Code)
	assert.False(t, reached)
}
