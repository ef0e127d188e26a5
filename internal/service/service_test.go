package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/spendwise/internal/ledger"
	"github.com/carson-networks/spendwise/internal/money"
	"github.com/carson-networks/spendwise/internal/notify"
	"github.com/carson-networks/spendwise/internal/operator"
	"github.com/carson-networks/spendwise/internal/operator/actions"
	"github.com/carson-networks/spendwise/internal/storage"
	"github.com/carson-networks/spendwise/internal/storage/sqlconfig"
)

type mockOperator struct {
	mock.Mock
}

func (m *mockOperator) Process(ctx context.Context, action actions.IAction) error {
	return m.Called(ctx, action).Error(0)
}

type recordingPublisher struct {
	mu     sync.Mutex
	alerts []notify.Alert
}

func (p *recordingPublisher) Publish(_ context.Context, alert notify.Alert) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.alerts = append(p.alerts, alert)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) Alerts() []notify.Alert {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]notify.Alert(nil), p.alerts...)
}

type mockedDeps struct {
	transactions *sqlconfig.MockITransactionTable
	budgets      *sqlconfig.MockIBudgetTable
	operator     *mockOperator
}

// newMockedService builds the services over mocked tables and a mocked
// operator.
func newMockedService(t *testing.T) (*Service, mockedDeps) {
	t.Helper()
	deps := mockedDeps{
		transactions: sqlconfig.NewMockITransactionTable(t),
		budgets:      sqlconfig.NewMockIBudgetTable(t),
		operator:     &mockOperator{},
	}
	t.Cleanup(func() { deps.operator.AssertExpectations(t) })

	store := &storage.Storage{Transactions: deps.transactions, Budgets: deps.budgets}
	return NewService(store, deps.operator, notify.Discard{}, time.UTC), deps
}

// newMemoryService builds the services over the in-memory store with a
// running operator. now is fixed for every service.
func newMemoryService(t *testing.T, now time.Time) (*Service, *recordingPublisher) {
	t.Helper()
	store := storage.NewMemoryStorage()
	op := operator.NewOperatorDelegator(store, 2)
	op.Start()
	t.Cleanup(op.Stop)

	publisher := &recordingPublisher{}
	svc := NewService(store, op, publisher, time.UTC)
	clock := func() time.Time { return now }
	svc.Transaction.now = clock
	svc.Budget.now = clock
	svc.Dashboard.now = clock
	svc.Report.now = clock
	return svc, publisher
}

func expenseTx(amount string, category ledger.Category, date time.Time) ledger.Transaction {
	return ledger.Transaction{
		Amount:   money.MustParse(amount),
		Type:     ledger.TypeExpense,
		Category: category,
		Date:     date,
	}
}

func incomeTx(amount string, date time.Time) ledger.Transaction {
	return ledger.Transaction{
		Amount:   money.MustParse(amount),
		Type:     ledger.TypeIncome,
		Category: ledger.CategoryOther,
		Date:     date,
	}
}

func monthlyBudget(category ledger.Category, limit string) ledger.Budget {
	return ledger.Budget{
		Category: category,
		Limit:    money.MustParse(limit),
		Period:   ledger.BudgetMonthly,
	}
}
