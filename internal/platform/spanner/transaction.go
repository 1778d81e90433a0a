package spanner

import (
	"context"
	"errors"

	"cloud.google.com/go/spanner"
)

// ErrNestedTransaction is returned when a transaction scope is entered
// while another one is already active on the context. Cloud Spanner has no
// nested transactions; opening a second one would silently run independently
// of the first and break atomicity.
var ErrNestedTransaction = errors.New("nested transaction detected: Cloud Spanner does not support nested transactions")

// ReadWriteTransactionScope runs units of work inside a Spanner read-write
// transaction. Repositories invoked from fn find the transaction via
// ReadWriteTxFromContext and buffer their mutations into it, so everything
// commits or aborts as one.
//
// Spanner retries fn on Aborted, which means fn must be idempotent and free
// of external side effects. Anything stateful that fn needs (buffers,
// publishers) has to be created inside fn so a retry starts clean.
type ReadWriteTransactionScope struct {
	client *spanner.Client
}

func NewReadWriteTransactionScope(client *spanner.Client) *ReadWriteTransactionScope {
	return &ReadWriteTransactionScope{client: client}
}

// Execute implements transaction.Scope. fn returning nil commits the
// transaction; any error rolls it back and is returned unchanged.
func (s *ReadWriteTransactionScope) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	_, err := s.client.ReadWriteTransaction(ctx, func(ctx context.Context, tx *spanner.ReadWriteTransaction) error {
		txCtx, err := withReadWriteTx(ctx, tx)
		if err != nil {
			return err
		}
		return fn(txCtx)
	})
	return err
}

// ReadOnlyTransactionScope runs units of work against a single read-only
// snapshot, giving consistent reads across the multiple rows a query
// handler touches (an order page and every page member's lines, for
// example). Repositories pick the snapshot up via
// ReadTransactionFromContext.
type ReadOnlyTransactionScope struct {
	client *spanner.Client
}

func NewReadOnlyTransactionScope(client *spanner.Client) *ReadOnlyTransactionScope {
	return &ReadOnlyTransactionScope{client: client}
}

// Execute implements transaction.Scope. The snapshot is closed when fn
// returns.
func (s *ReadOnlyTransactionScope) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	tx := s.client.ReadOnlyTransaction()
	defer tx.Close()

	txCtx, err := withReadOnlyTx(ctx, tx)
	if err != nil {
		return err
	}
	return fn(txCtx)
}
