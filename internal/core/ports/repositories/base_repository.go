package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager defines methods for transaction management.
// Methods suffixed InTx or ForUpdate must be given a tx obtained from Begin
// of the same provider.
type TransactionManager interface {
	// Begin starts a new database transaction
	Begin(ctx context.Context) (pgx.Tx, error)

	// Commit commits a transaction
	Commit(ctx context.Context, tx pgx.Tx) error

	// Rollback rolls back a transaction. Rolling back a committed tx is a no-op.
	Rollback(ctx context.Context, tx pgx.Tx) error
}
