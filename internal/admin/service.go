package admin

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/mirae-dev/ShoreBot_Go/internal/logger"
)

// Service controls the process-wide lockdown toggle. While locked, mutating
// API calls from non-whitelisted users are rejected; read-only endpoints and
// whitelisted users are unaffected.
type Service interface {
	EnableLockdown(ctx context.Context)
	DisableLockdown(ctx context.Context)
	IsLocked() bool
	IsWhitelisted(userID string) bool
}

type service struct {
	locked    atomic.Bool
	mu        sync.RWMutex
	whitelist map[string]struct{}
}

// NewService creates the lockdown controller. Whitelisted users keep full
// access while lockdown is active.
func NewService(whitelist []string) Service {
	wl := make(map[string]struct{}, len(whitelist))
	for _, id := range whitelist {
		if id != "" {
			wl[id] = struct{}{}
		}
	}
	return &service{whitelist: wl}
}

func (s *service) EnableLockdown(ctx context.Context) {
	log := logger.FromContext(ctx)
	if s.locked.CompareAndSwap(false, true) {
		log.Warn(LogMsgLockdownEnabled)
	}
}

func (s *service) DisableLockdown(ctx context.Context) {
	log := logger.FromContext(ctx)
	if s.locked.CompareAndSwap(true, false) {
		log.Info(LogMsgLockdownDisabled)
	}
}

func (s *service) IsLocked() bool {
	return s.locked.Load()
}

func (s *service) IsWhitelisted(userID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.whitelist[userID]
	return ok
}
