package storage

import (
	"context"

	"github.com/stephenafamo/bob"

	"github.com/carson-networks/spendwise/internal/storage/memory"
	"github.com/carson-networks/spendwise/internal/storage/sqlconfig"
)

// Writer exposes the tables bound to a single write transaction.
type Writer struct {
	Transactions sqlconfig.ITransactionTable
	Budgets      sqlconfig.IBudgetTable

	commit   func(ctx context.Context) error
	rollback func(ctx context.Context) error
}

func NewWriter(tx bob.Tx) *Writer {
	return &Writer{
		Transactions: sqlconfig.NewTransactionsTable(tx),
		Budgets:      sqlconfig.NewBudgetsTable(tx),
		commit:       tx.Commit,
		rollback:     tx.Rollback,
	}
}

func newMemoryWriter(store *memory.Store) *Writer {
	tx := store.Begin()
	return &Writer{
		Transactions: store.Transactions(),
		Budgets:      store.Budgets(),
		commit:       func(context.Context) error { return tx.Commit() },
		rollback:     func(context.Context) error { return tx.Rollback() },
	}
}

func (w *Writer) Commit(ctx context.Context) error {
	return w.commit(ctx)
}

func (w *Writer) Rollback(ctx context.Context) error {
	return w.rollback(ctx)
}
