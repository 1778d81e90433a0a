package spanner

import (
	"context"

	"cloud.google.com/go/spanner"
)

// ReadTransaction is the read surface shared by Spanner read-write and
// read-only transactions. Repositories depend on this instead of a concrete
// transaction type so reads work inside either scope.
type ReadTransaction interface {
	ReadRow(ctx context.Context, table string, key spanner.Key, columns []string) (*spanner.Row, error)
	Read(ctx context.Context, table string, keys spanner.KeySet, columns []string) *spanner.RowIterator
	Query(ctx context.Context, statement spanner.Statement) *spanner.RowIterator
}

// rwTxKey is the context key for storing read-write transactions.
type rwTxKey struct{}

// roTxKey is the context key for storing read-only transactions.
type roTxKey struct{}

// withReadWriteTx embeds a Spanner ReadWriteTransaction in the context.
// Fails if a transaction is already present: Cloud Spanner does not support
// nesting, and silently starting an independent transaction would break
// atomicity guarantees.
func withReadWriteTx(ctx context.Context, tx *spanner.ReadWriteTransaction) (context.Context, error) {
	if _, ok := ReadWriteTxFromContext(ctx); ok {
		return nil, ErrNestedTransaction
	}
	return context.WithValue(ctx, rwTxKey{}, tx), nil
}

// withReadOnlyTx embeds a Spanner ReadOnlyTransaction in the context.
func withReadOnlyTx(ctx context.Context, tx *spanner.ReadOnlyTransaction) (context.Context, error) {
	if _, ok := ctx.Value(roTxKey{}).(*spanner.ReadOnlyTransaction); ok {
		return nil, ErrNestedTransaction
	}
	return context.WithValue(ctx, roTxKey{}, tx), nil
}

// ReadWriteTxFromContext extracts a Spanner ReadWriteTransaction from context.
// Returns (nil, false) if no transaction is present.
func ReadWriteTxFromContext(ctx context.Context) (*spanner.ReadWriteTransaction, bool) {
	tx, ok := ctx.Value(rwTxKey{}).(*spanner.ReadWriteTransaction)
	return tx, ok
}

// ReadTransactionFromContext extracts any transaction usable for reads.
// A read-write transaction takes precedence so reads inside a write scope
// observe the scope's own buffered view.
func ReadTransactionFromContext(ctx context.Context) (ReadTransaction, bool) {
	if tx, ok := ReadWriteTxFromContext(ctx); ok {
		return tx, true
	}
	tx, ok := ctx.Value(roTxKey{}).(*spanner.ReadOnlyTransaction)
	return tx, ok
}
