package firestore

import (
	"context"

	"docit/internal/domain/repositories"
)

// TransactionManager runs fn directly. Firestore transactions cannot span
// queries and bulk writes, so multi-document operations here are ordered
// children first and a failed cascade can be retried.
type TransactionManager struct{}

// NewTransactionManager creates a new transaction manager
func NewTransactionManager() repositories.TransactionManager {
	return &TransactionManager{}
}

func (tm *TransactionManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	return fn(ctx)
}
