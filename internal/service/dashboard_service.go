package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/carson-networks/spendwise/internal/aggregate"
	"github.com/carson-networks/spendwise/internal/ledger"
	"github.com/carson-networks/spendwise/internal/money"
)

const recentTransactions = 5

// Dashboard summarises the selected period. Budgets always count every
// expense, whatever the period.
type Dashboard struct {
	Period      ledger.Period
	PeriodStart time.Time

	Balance  money.Money
	Income   money.Money
	Expense  money.Money
	Expenses aggregate.CategoryBreakdown

	Recent []ledger.Transaction

	Budgets         []ledger.Budget
	BudgetLimit     money.Money
	BudgetSpent     money.Money
	OverallProgress decimal.Decimal

	LoadedAt    time.Time
	Stale       bool
	StaleReason string
}

type DashboardService struct {
	transactions *TransactionService
	budgets      *BudgetService
	loc          *time.Location
	now          func() time.Time
	latest       latestSet[ledger.Period, Dashboard]
}

func NewDashboardService(transactions *TransactionService, budgets *BudgetService, loc *time.Location) *DashboardService {
	if loc == nil {
		loc = time.UTC
	}
	return &DashboardService{
		transactions: transactions,
		budgets:      budgets,
		loc:          loc,
		now:          time.Now,
	}
}

func (s *DashboardService) Load(ctx context.Context, period ledger.Period) (Dashboard, error) {
	if !period.Valid() {
		return Dashboard{}, fmt.Errorf("%w: unknown period %q", ErrInvalidInput, period)
	}

	return loadInto(s.latest.get(period), "dashboard", func() (Dashboard, error) {
		var (
			txs     []ledger.Transaction
			budgets []ledger.Budget
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			txs, err = s.transactions.FetchAll(gctx)
			return err
		})
		g.Go(func() error {
			var err error
			budgets, err = s.budgets.FetchAll(gctx)
			return err
		})
		if err := g.Wait(); err != nil {
			return Dashboard{}, err
		}
		return buildDashboard(period, s.now().In(s.loc), txs, budgets), nil
	}, func(d *Dashboard, err error) {
		d.Stale = true
		d.StaleReason = err.Error()
	})
}

func buildDashboard(period ledger.Period, ref time.Time, txs []ledger.Transaction, budgets []ledger.Budget) Dashboard {
	inPeriod := aggregate.FilterPeriod(txs, period, ref)
	withSpent := aggregate.ApplySpending(budgets, txs)
	summary := aggregate.SummarizeBudgets(withSpent)

	return Dashboard{
		Period:          period,
		PeriodStart:     aggregate.PeriodStart(period, ref),
		Balance:         aggregate.Balance(inPeriod),
		Income:          aggregate.TotalByType(inPeriod, ledger.TypeIncome),
		Expense:         aggregate.TotalByType(inPeriod, ledger.TypeExpense),
		Expenses:        aggregate.CategoryTotals(inPeriod),
		Recent:          aggregate.Recent(txs, recentTransactions),
		Budgets:         withSpent,
		BudgetLimit:     summary.TotalLimit,
		BudgetSpent:     summary.TotalSpent,
		OverallProgress: summary.OverallProgress,
		LoadedAt:        ref,
	}
}
