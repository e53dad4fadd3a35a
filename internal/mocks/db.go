package mocks

import (
	"context"

	"github.com/phrazzld/genops-api/internal/store"
)

// PassthroughTransactor runs units of work directly, passing a nil *sql.Tx.
// Use it with stores whose WithTx ignores the transaction.
type PassthroughTransactor struct{}

var _ store.Transactor = PassthroughTransactor{}

// RunInTransaction implements store.Transactor.
func (PassthroughTransactor) RunInTransaction(ctx context.Context, fn store.TxFn) error {
	return fn(ctx, nil)
}
