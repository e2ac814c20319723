package account

// =============================================================================
// Error Message Constants
// =============================================================================

const (
	ErrMsgEnsureAccountFailed = "failed to ensure account: %w"
	ErrMsgGetAccountFailed    = "failed to get account: %w"
	ErrMsgCreditFailed        = "failed to credit account: %w"
	ErrMsgDebitFailed         = "failed to debit account: %w"
	ErrMsgBeginTxFailed       = "failed to begin transfer transaction: %w"
	ErrMsgCommitTxFailed      = "failed to commit transfer transaction: %w"
	ErrMsgTopBalancesFailed   = "failed to list top balances: %w"
)

// =============================================================================
// Log Message Constants
// =============================================================================

const (
	LogMsgAccountCreated    = "Account created with starting grant"
	LogMsgTransferCompleted = "Transfer completed"
	LogMsgPayRejected       = "Pay rejected"
	LogMsgBalanceAdjusted   = "Balance adjusted"
)
