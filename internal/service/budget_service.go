package service

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"golang.org/x/sync/errgroup"

	"github.com/carson-networks/spendwise/internal/aggregate"
	"github.com/carson-networks/spendwise/internal/ledger"
	"github.com/carson-networks/spendwise/internal/operator/actions"
	"github.com/carson-networks/spendwise/internal/storage"
	"github.com/carson-networks/spendwise/internal/storage/sqlconfig"
)

// BudgetOverview is the budgets screen: every budget with Spent filled in,
// most urgent first, plus the totals.
type BudgetOverview struct {
	Budgets  []ledger.Budget
	Summary  aggregate.BudgetSummary
	LoadedAt time.Time

	// Stale is set when the latest load failed and an earlier result is
	// served instead. StaleReason carries the failure.
	Stale       bool
	StaleReason string
}

// BudgetService handles budget business logic.
type BudgetService struct {
	storage      *storage.Storage
	operator     Operator
	transactions *TransactionService
	overview     Latest[BudgetOverview]
	now          func() time.Time
}

func NewBudgetService(store *storage.Storage, op Operator, transactions *TransactionService) *BudgetService {
	return &BudgetService{
		storage:      store,
		operator:     op,
		transactions: transactions,
		now:          time.Now,
	}
}

// FetchAll returns the stored budgets in creation order. Spent is zero.
func (s *BudgetService) FetchAll(ctx context.Context) ([]ledger.Budget, error) {
	rows, err := s.storage.Budgets.List(ctx, nil)
	if err != nil {
		return nil, err
	}
	return budgetsFromStorage(rows), nil
}

// FetchByCategory returns the budget for category with Spent summed over
// every expense in that category. ErrNotFound when there is none.
func (s *BudgetService) FetchByCategory(ctx context.Context, category ledger.Category) (ledger.Budget, error) {
	if !category.Valid() {
		return ledger.Budget{}, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, category)
	}

	var (
		rows []*sqlconfig.Budget
		txs  []ledger.Transaction
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rows, err = s.storage.Budgets.ListByCategory(gctx, string(category))
		return err
	})
	g.Go(func() error {
		var err error
		txs, err = s.transactions.FetchByCategory(gctx, category)
		return err
	})
	if err := g.Wait(); err != nil {
		return ledger.Budget{}, err
	}

	if len(rows) == 0 {
		return ledger.Budget{}, fmt.Errorf("budget for %s: %w", category, ErrNotFound)
	}
	return aggregate.ApplySpending(budgetsFromStorage(rows[:1]), txs)[0], nil
}

// Save stores a new budget. A category holds at most one budget.
func (s *BudgetService) Save(ctx context.Context, b ledger.Budget) (uuid.UUID, error) {
	if err := b.Validate(); err != nil {
		return uuid.Nil, err
	}

	create := &actions.CreateBudget{Values: budgetToStorage(b)}
	if err := s.operator.Process(ctx, create); err != nil {
		return uuid.Nil, err
	}
	return create.ID, nil
}

func (s *BudgetService) Update(ctx context.Context, b ledger.Budget) error {
	if b.ID == uuid.Nil {
		return fmt.Errorf("%w: budget id is required", ErrInvalidInput)
	}
	if err := b.Validate(); err != nil {
		return err
	}
	return s.operator.Process(ctx, &actions.UpdateBudget{ID: b.ID, Values: budgetToStorage(b)})
}

func (s *BudgetService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.operator.Process(ctx, &actions.DeleteBudget{ID: id})
}

// Overview loads budgets and transactions concurrently and derives the
// budgets screen.
func (s *BudgetService) Overview(ctx context.Context) (BudgetOverview, error) {
	return loadInto(&s.overview, "budgets", func() (BudgetOverview, error) {
		var (
			budgets []ledger.Budget
			txs     []ledger.Transaction
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			budgets, err = s.FetchAll(gctx)
			return err
		})
		g.Go(func() error {
			var err error
			txs, err = s.transactions.FetchAll(gctx)
			return err
		})
		if err := g.Wait(); err != nil {
			return BudgetOverview{}, err
		}

		withSpent := aggregate.ApplySpending(budgets, txs)
		return BudgetOverview{
			Budgets:  aggregate.SortBudgetsByUrgency(withSpent),
			Summary:  aggregate.SummarizeBudgets(withSpent),
			LoadedAt: s.now(),
		}, nil
	}, func(o *BudgetOverview, err error) {
		o.Stale = true
		o.StaleReason = err.Error()
	})
}
