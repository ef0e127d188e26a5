package memory

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/spendwise/internal/storage/sqlconfig"
)

var _ sqlconfig.ITransactionTable = (*TransactionsTable)(nil)

type TransactionsTable struct {
	store *Store
}

func (t *TransactionsTable) FindByID(_ context.Context, id uuid.UUID) (*sqlconfig.Transaction, error) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()

	e, ok := t.store.transactions[id]
	if !ok {
		return nil, sqlconfig.ErrNotFound
	}
	row := e.row
	return &row, nil
}

func (t *TransactionsTable) Insert(_ context.Context, values *sqlconfig.TransactionValues) (uuid.UUID, error) {
	id, err := newID()
	if err != nil {
		return uuid.Nil, &sqlconfig.StoreError{Op: "transactions.Insert", Err: err}
	}

	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	t.store.transactions[id] = transactionEntry{
		row: transactionRow(id, values, t.store.now()),
		seq: t.store.nextSeq(),
	}
	return id, nil
}

func (t *TransactionsTable) Update(_ context.Context, id uuid.UUID, values *sqlconfig.TransactionValues) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	e, ok := t.store.transactions[id]
	if !ok {
		return sqlconfig.ErrNotFound
	}
	e.row = transactionRow(id, values, e.row.CreatedAt)
	t.store.transactions[id] = e
	return nil
}

func (t *TransactionsTable) Delete(_ context.Context, id uuid.UUID) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	if _, ok := t.store.transactions[id]; !ok {
		return sqlconfig.ErrNotFound
	}
	delete(t.store.transactions, id)
	return nil
}

// List returns matching transactions newest first.
func (t *TransactionsTable) List(_ context.Context, filter *sqlconfig.TransactionFilter) ([]*sqlconfig.Transaction, error) {
	t.store.mu.RLock()
	entries := make([]transactionEntry, 0, len(t.store.transactions))
	for _, e := range t.store.transactions {
		if filter.Matches(&e.row) {
			entries = append(entries, e)
		}
	}
	t.store.mu.RUnlock()

	slices.SortFunc(entries, func(a, b transactionEntry) int {
		if c := b.row.TransactionDate.Compare(a.row.TransactionDate); c != 0 {
			return c
		}
		return cmp.Compare(b.seq, a.seq)
	})
	if filter != nil && filter.Limit > 0 && len(entries) > filter.Limit {
		entries = entries[:filter.Limit]
	}

	rows := make([]*sqlconfig.Transaction, len(entries))
	for i := range entries {
		rows[i] = &entries[i].row
	}
	return rows, nil
}

func transactionRow(id uuid.UUID, v *sqlconfig.TransactionValues, createdAt time.Time) sqlconfig.Transaction {
	return sqlconfig.Transaction{
		ID:                id,
		Amount:            v.Amount,
		Type:              v.Type,
		Category:          v.Category,
		TransactionDate:   v.TransactionDate,
		Note:              v.Note,
		IsRecurring:       v.IsRecurring,
		RecurringInterval: v.RecurringInterval,
		CreatedAt:         createdAt,
	}
}
