package account

import (
	"context"
	"fmt"

	"github.com/mirae-dev/ShoreBot_Go/internal/domain"
	"github.com/mirae-dev/ShoreBot_Go/internal/logger"
	"github.com/mirae-dev/ShoreBot_Go/internal/repository"
)

// TransferResult reports both post-transfer balances
type TransferResult struct {
	FromBalance int64 `json:"from_balance"`
	ToBalance   int64 `json:"to_balance"`
}

// Service defines the interface for account ledger operations
type Service interface {
	// EnsureAccount creates the account with the starting grant if absent.
	// Safe to call on every command; only the first call grants coins.
	EnsureAccount(ctx context.Context, userID string) (*domain.Account, bool, error)

	// GetBalance returns the current coin balance
	GetBalance(ctx context.Context, userID string) (int64, error)

	// Credit adds coins and returns the new balance
	Credit(ctx context.Context, userID string, amount int64) (int64, error)

	// Debit removes coins if the balance covers the amount, atomically.
	// Returns domain.InsufficientFundsError with the shortfall otherwise.
	Debit(ctx context.Context, userID string, amount int64) (int64, error)

	// Transfer moves coins between two accounts in one transaction
	Transfer(ctx context.Context, fromUserID, toUserID string, amount int64) (*TransferResult, error)

	// Pay is a user-initiated transfer with self-pay and recipient checks
	Pay(ctx context.Context, fromUserID, toUserID string, amount int64) (*TransferResult, error)

	// TopBalances returns up to limit accounts, richest first
	TopBalances(ctx context.Context, limit int) ([]domain.Account, error)
}

// Config holds account service configuration
type Config struct {
	// StartingGrant is the coin balance granted on first contact
	StartingGrant int64
}

type service struct {
	repo   repository.Account
	config Config
}

// NewService creates a new account service
func NewService(repo repository.Account, config Config) Service {
	if config.StartingGrant < 0 {
		config.StartingGrant = domain.DefaultStartingGrant
	}
	return &service{repo: repo, config: config}
}

func (s *service) EnsureAccount(ctx context.Context, userID string) (*domain.Account, bool, error) {
	acct, created, err := s.repo.EnsureAccount(ctx, userID, s.config.StartingGrant)
	if err != nil {
		return nil, false, fmt.Errorf(ErrMsgEnsureAccountFailed, err)
	}
	if created {
		logger.FromContext(ctx).Info(LogMsgAccountCreated,
			"userID", userID, "grant", s.config.StartingGrant)
	}
	return acct, created, nil
}

func (s *service) GetBalance(ctx context.Context, userID string) (int64, error) {
	acct, err := s.repo.GetAccount(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgGetAccountFailed, err)
	}
	return acct.Coins, nil
}

func (s *service) Credit(ctx context.Context, userID string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, domain.ErrInvalidAmount
	}

	balance, err := s.repo.Credit(ctx, userID, amount)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgCreditFailed, err)
	}

	logger.FromContext(ctx).Debug(LogMsgBalanceAdjusted,
		"userID", userID, "delta", amount, "balance", balance)
	return balance, nil
}

func (s *service) Debit(ctx context.Context, userID string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, domain.ErrInvalidAmount
	}

	balance, err := s.repo.Debit(ctx, userID, amount)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgDebitFailed, err)
	}

	logger.FromContext(ctx).Debug(LogMsgBalanceAdjusted,
		"userID", userID, "delta", -amount, "balance", balance)
	return balance, nil
}

// Transfer debits the sender and credits the recipient inside one transaction;
// either both legs land or neither does.
func (s *service) Transfer(ctx context.Context, fromUserID, toUserID string, amount int64) (*TransferResult, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBeginTxFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	fromBalance, err := tx.Debit(ctx, fromUserID, amount)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgDebitFailed, err)
	}

	toBalance, err := tx.Credit(ctx, toUserID, amount)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgCreditFailed, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf(ErrMsgCommitTxFailed, err)
	}

	logger.FromContext(ctx).Info(LogMsgTransferCompleted,
		"from", fromUserID, "to", toUserID, "amount", amount)
	return &TransferResult{FromBalance: fromBalance, ToBalance: toBalance}, nil
}

func (s *service) Pay(ctx context.Context, fromUserID, toUserID string, amount int64) (*TransferResult, error) {
	log := logger.FromContext(ctx)

	if fromUserID == toUserID {
		log.Debug(LogMsgPayRejected, "reason", "self pay", "userID", fromUserID)
		return nil, domain.ErrSelfOperation
	}
	if amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}

	// Recipient must already be onboarded; paying into a void creates coins
	// nobody can see
	if _, err := s.repo.GetAccount(ctx, toUserID); err != nil {
		return nil, fmt.Errorf(ErrMsgGetAccountFailed, err)
	}

	return s.Transfer(ctx, fromUserID, toUserID, amount)
}

func (s *service) TopBalances(ctx context.Context, limit int) ([]domain.Account, error) {
	if limit <= 0 || limit > domain.MaxLeaderboardLimit {
		limit = domain.DefaultLeaderboardLimit
	}

	accounts, err := s.repo.TopBalances(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgTopBalancesFailed, err)
	}
	return accounts, nil
}
