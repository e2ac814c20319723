package cooldown

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mirae-dev/ShoreBot_Go/internal/logger"
)

// postgresBackend implements Service using PostgreSQL
type postgresBackend struct {
	db     *pgxpool.Pool
	config Config
}

// NewPostgresService creates a new cooldown service with Postgres backend
func NewPostgresService(db *pgxpool.Pool, config Config) Service {
	return &postgresBackend{
		db:     db,
		config: config,
	}
}

// CheckCooldown checks if a user's action is on cooldown (unlocked read)
func (b *postgresBackend) CheckCooldown(ctx context.Context, userID, action string) (bool, time.Duration, error) {
	// Bypass users are never on cooldown
	if b.config.IsBypassed(userID) {
		return false, 0, nil
	}

	lastClaimed, err := b.getLastClaimed(ctx, userID, action)
	if err != nil {
		return false, 0, fmt.Errorf(ErrMsgCheckCooldownFailed, err)
	}

	if lastClaimed == nil {
		// Never claimed - not on cooldown
		return false, 0, nil
	}

	duration := b.config.GetCooldownDuration(action)

	onCooldown, remaining := b.checkCooldownInternal(lastClaimed, duration)
	return onCooldown, remaining, nil
}

// TryClaim atomically checks the cooldown and stamps the claim time if allowed
func (b *postgresBackend) TryClaim(ctx context.Context, userID, action string) (Result, error) {
	err := b.EnforceClaim(ctx, userID, action, func() error { return nil })
	if err != nil {
		var onCooldown ErrOnCooldown
		if errors.As(err, &onCooldown) {
			return Result{Granted: false, Remaining: onCooldown.Remaining}, nil
		}
		return Result{}, err
	}
	return Result{Granted: true}, nil
}

// EnforceClaim atomically checks cooldown, executes fn, and stamps the claim time
// Uses check-then-lock pattern for performance
func (b *postgresBackend) EnforceClaim(ctx context.Context, userID, action string, fn func() error) error {
	log := logger.FromContext(ctx)

	// PHASE 1: Cheap unlocked check - fast rejection for ~90% of requests
	onCooldown, remaining, err := b.CheckCooldown(ctx, userID, action)
	if err != nil {
		return err
	}
	if onCooldown {
		return ErrOnCooldown{Action: action, Remaining: remaining}
	}

	// Bypass users - execute without stamping so the record stays untouched
	if b.config.IsBypassed(userID) {
		log.Debug(LogMsgBypassUser, "action", action, "userID", userID)
		return fn()
	}

	// PHASE 2: Transaction with advisory lock
	// Advisory locks work even when no row exists (unlike SELECT FOR UPDATE)
	tx, err := b.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf(ErrMsgBeginTransactionFailed, err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	// Acquire advisory lock based on userID + action
	// This ensures mutual exclusion even when no cooldown row exists yet
	lockKey := hashUserAction(userID, action)
	_, err = tx.Exec(ctx, SQLAdvisoryLock, lockKey)
	if err != nil {
		return fmt.Errorf(ErrMsgAcquireLockFailed, err)
	}

	// Recheck cooldown with exclusive lock acquired
	lastClaimed, err := b.getLastClaimedTx(ctx, tx, userID, action)
	if err != nil {
		return fmt.Errorf(ErrMsgGetCooldownTxFailed, err)
	}

	if lastClaimed != nil {
		duration := b.config.GetCooldownDuration(action)
		onCooldown, remaining := b.checkCooldownInternal(lastClaimed, duration)
		if onCooldown {
			log.Debug(LogMsgRaceConditionDetected,
				"action", action, "userID", userID, "remaining", remaining)
			return ErrOnCooldown{Action: action, Remaining: remaining}
		}
	}

	// Execute claim payout
	if err := fn(); err != nil {
		// Payout failed - rollback, don't stamp the cooldown
		return err
	}

	// Stamp cooldown within transaction
	now := time.Now()
	if err := b.updateCooldownTx(ctx, tx, userID, action, now); err != nil {
		return fmt.Errorf(ErrMsgUpdateCooldownFailed, err)
	}

	// Commit transaction (releases advisory lock automatically)
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf(ErrMsgCommitTransactionFailed, err)
	}

	log.Debug(LogMsgClaimEnforced, "action", action, "userID", userID)
	return nil
}

// ResetCooldown manually resets a cooldown
func (b *postgresBackend) ResetCooldown(ctx context.Context, userID, action string) error {
	_, err := b.db.Exec(ctx, SQLDeleteCooldown, userID, action)
	if err != nil {
		return fmt.Errorf(ErrMsgResetCooldownFailed, err)
	}
	return nil
}

// GetLastClaimed returns when action was last claimed
func (b *postgresBackend) GetLastClaimed(ctx context.Context, userID, action string) (*time.Time, error) {
	return b.getLastClaimed(ctx, userID, action)
}

// getLastClaimed retrieves last claimed time (unlocked read)
func (b *postgresBackend) getLastClaimed(ctx context.Context, userID, action string) (*time.Time, error) {
	var lastClaimed time.Time

	err := b.db.QueryRow(ctx, SQLSelectLastClaimed, userID, action).Scan(&lastClaimed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // No cooldown record
		}
		return nil, fmt.Errorf(ErrMsgGetLastClaimedFailed, err)
	}
	return &lastClaimed, nil
}

// getLastClaimedTx retrieves last claimed time within a transaction
func (b *postgresBackend) getLastClaimedTx(ctx context.Context, tx pgx.Tx, userID, action string) (*time.Time, error) {
	var lastClaimed time.Time

	err := tx.QueryRow(ctx, SQLSelectLastClaimed, userID, action).Scan(&lastClaimed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // No cooldown record
		}
		return nil, fmt.Errorf(ErrMsgGetLastClaimedFailed, err)
	}
	return &lastClaimed, nil
}

// updateCooldownTx stamps the cooldown within a transaction
func (b *postgresBackend) updateCooldownTx(ctx context.Context, tx pgx.Tx, userID, action string, timestamp time.Time) error {
	_, err := tx.Exec(ctx, SQLUpsertCooldown, userID, action, timestamp)
	return err
}

// hashUserAction creates a consistent int64 hash from userID + action for advisory locking
func hashUserAction(userID, action string) int64 {
	h := sha256.Sum256([]byte(userID + HashSeparator + action))
	// Use first 8 bytes as int64, masking MSB to ensure positive value and avoid overflow warning
	return int64(binary.BigEndian.Uint64(h[:8]) & HashMaskPositiveInt64)
}

func (b *postgresBackend) checkCooldownInternal(lastClaimed *time.Time, duration time.Duration) (bool, time.Duration) {
	if lastClaimed == nil {
		return false, 0
	}

	elapsed := time.Since(*lastClaimed)
	if elapsed < duration {
		return true, duration - elapsed
	}

	return false, 0
}
