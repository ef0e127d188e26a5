package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/carson-networks/spendwise/internal/aggregate"
	"github.com/carson-networks/spendwise/internal/ledger"
	"github.com/carson-networks/spendwise/internal/money"
)

// Report covers the window ending now and compares its expenses with the
// window of the same length before it.
type Report struct {
	Period   ledger.ReportPeriod
	Current  aggregate.Window
	Previous aggregate.Window

	Income          money.Money
	Expense         money.Money
	Savings         money.Money
	PreviousExpense money.Money
	Comparison      aggregate.Comparison

	Categories []aggregate.CategoryShare
	Daily      []aggregate.DailyTotal

	LoadedAt    time.Time
	Stale       bool
	StaleReason string
}

type ReportService struct {
	transactions *TransactionService
	loc          *time.Location
	now          func() time.Time
	latest       latestSet[ledger.ReportPeriod, Report]
}

func NewReportService(transactions *TransactionService, loc *time.Location) *ReportService {
	if loc == nil {
		loc = time.UTC
	}
	return &ReportService{
		transactions: transactions,
		loc:          loc,
		now:          time.Now,
	}
}

func (s *ReportService) Load(ctx context.Context, period ledger.ReportPeriod) (Report, error) {
	if !period.Valid() {
		return Report{}, fmt.Errorf("%w: unknown report period %q", ErrInvalidInput, period)
	}

	return loadInto(s.latest.get(period), "report", func() (Report, error) {
		current, previous := aggregate.ReportWindow(period, s.now().In(s.loc))

		var currentTxs, previousTxs []ledger.Transaction
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			currentTxs, err = s.transactions.FetchByRange(gctx, current.Start, current.End)
			return err
		})
		g.Go(func() error {
			var err error
			previousTxs, err = s.transactions.FetchByRange(gctx, previous.Start, previous.End)
			return err
		})
		if err := g.Wait(); err != nil {
			return Report{}, err
		}
		return buildReport(period, current, previous, currentTxs, previousTxs, s.loc), nil
	}, func(r *Report, err error) {
		r.Stale = true
		r.StaleReason = err.Error()
	})
}

func buildReport(period ledger.ReportPeriod, current, previous aggregate.Window, currentTxs, previousTxs []ledger.Transaction, loc *time.Location) Report {
	expense := aggregate.TotalByType(currentTxs, ledger.TypeExpense)
	previousExpense := aggregate.TotalByType(previousTxs, ledger.TypeExpense)

	return Report{
		Period:          period,
		Current:         current,
		Previous:        previous,
		Income:          aggregate.TotalByType(currentTxs, ledger.TypeIncome),
		Expense:         expense,
		Savings:         aggregate.Balance(currentTxs),
		PreviousExpense: previousExpense,
		Comparison:      aggregate.Compare(expense, previousExpense),
		Categories:      aggregate.CategoryPercentages(currentTxs),
		Daily:           aggregate.DailySeries(currentTxs, loc),
		LoadedAt:        current.End,
	}
}
