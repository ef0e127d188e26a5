package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/spendwise/internal/storage/sqlconfig"
)

var _ sqlconfig.IBudgetTable = (*BudgetsTable)(nil)

type BudgetsTable struct {
	store *Store
}

func (t *BudgetsTable) FindByID(_ context.Context, id uuid.UUID) (*sqlconfig.Budget, error) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()

	e, ok := t.store.budgets[id]
	if !ok {
		return nil, sqlconfig.ErrNotFound
	}
	row := e.row
	return &row, nil
}

func (t *BudgetsTable) ListByCategory(ctx context.Context, category string) ([]*sqlconfig.Budget, error) {
	return t.List(ctx, &sqlconfig.BudgetFilter{Category: omit.From(category)})
}

func (t *BudgetsTable) Insert(_ context.Context, values *sqlconfig.BudgetValues) (uuid.UUID, error) {
	id, err := newID()
	if err != nil {
		return uuid.Nil, &sqlconfig.StoreError{Op: "budgets.Insert", Err: err}
	}

	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	if err := t.categoryTaken("budgets.Insert", values.Category, uuid.Nil); err != nil {
		return uuid.Nil, err
	}
	t.store.budgets[id] = budgetEntry{
		row: sqlconfig.Budget{
			ID:          id,
			Category:    values.Category,
			LimitAmount: values.LimitAmount,
			Period:      values.Period,
			CreatedAt:   t.store.now(),
		},
		seq: t.store.nextSeq(),
	}
	return id, nil
}

func (t *BudgetsTable) Update(_ context.Context, id uuid.UUID, values *sqlconfig.BudgetValues) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	e, ok := t.store.budgets[id]
	if !ok {
		return sqlconfig.ErrNotFound
	}
	if err := t.categoryTaken("budgets.Update", values.Category, id); err != nil {
		return err
	}
	e.row.Category = values.Category
	e.row.LimitAmount = values.LimitAmount
	e.row.Period = values.Period
	t.store.budgets[id] = e
	return nil
}

func (t *BudgetsTable) Delete(_ context.Context, id uuid.UUID) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	if _, ok := t.store.budgets[id]; !ok {
		return sqlconfig.ErrNotFound
	}
	delete(t.store.budgets, id)
	return nil
}

// List returns matching budgets in creation order.
func (t *BudgetsTable) List(_ context.Context, filter *sqlconfig.BudgetFilter) ([]*sqlconfig.Budget, error) {
	t.store.mu.RLock()
	entries := make([]budgetEntry, 0, len(t.store.budgets))
	for _, e := range t.store.budgets {
		if filter.Matches(&e.row) {
			entries = append(entries, e)
		}
	}
	t.store.mu.RUnlock()

	slices.SortFunc(entries, func(a, b budgetEntry) int {
		return cmp.Compare(a.seq, b.seq)
	})

	rows := make([]*sqlconfig.Budget, len(entries))
	for i := range entries {
		rows[i] = &entries[i].row
	}
	return rows, nil
}

// categoryTaken mirrors the unique index on budgets.category. The caller
// holds store.mu.
func (t *BudgetsTable) categoryTaken(op, category string, self uuid.UUID) error {
	for id, e := range t.store.budgets {
		if id != self && e.row.Category == category {
			return &sqlconfig.StoreError{Op: op, Err: fmt.Errorf("%w: budgets_category_key", sqlconfig.ErrUniqueViolation)}
		}
	}
	return nil
}
