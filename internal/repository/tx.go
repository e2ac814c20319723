package repository

import "context"

// Tx is the base interface for transactional operations. Feature transaction
// interfaces embed it and add the operations that may run inside the
// transaction. Commit and Rollback close the transaction; any use afterwards
// fails.
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
