package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/spendwise/internal/aggregate"
	"github.com/carson-networks/spendwise/internal/ledger"
	"github.com/carson-networks/spendwise/internal/operator/actions"
	"github.com/carson-networks/spendwise/internal/storage/sqlconfig"
)

func makeStorageRows(dates ...time.Time) []*sqlconfig.Transaction {
	rows := make([]*sqlconfig.Transaction, len(dates))
	for i, date := range dates {
		rows[i] = &sqlconfig.Transaction{
			ID:              uuid.Must(uuid.NewV4()),
			Amount:          decimal.RequireFromString("10.00"),
			Type:            "expense",
			Category:        "food",
			TransactionDate: date,
			Note:            "lunch",
			CreatedAt:       date,
		}
	}
	return rows
}

// -- Fetch tests --

func TestFetchAll_ConvertsRows(t *testing.T) {
	svc, deps := newMockedService(t)

	date := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	rows := makeStorageRows(date)
	deps.transactions.EXPECT().List(mock.Anything, mock.Anything).Return(rows, nil)

	txs, err := svc.Transaction.FetchAll(context.Background())

	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, rows[0].ID, txs[0].ID)
	assert.Equal(t, ledger.TypeExpense, txs[0].Type)
	assert.Equal(t, ledger.CategoryFood, txs[0].Category)
	assert.Equal(t, "10", txs[0].Amount.String())
	assert.Equal(t, "lunch", txs[0].Note)
	assert.Equal(t, date, txs[0].Date)
}

func TestFetchAll_StorageError(t *testing.T) {
	svc, deps := newMockedService(t)

	deps.transactions.EXPECT().List(mock.Anything, mock.Anything).
		Return(nil, errors.New("database unavailable"))

	txs, err := svc.Transaction.FetchAll(context.Background())

	assert.EqualError(t, err, "database unavailable")
	assert.Nil(t, txs)
}

func TestFetchByRange_PassesInclusiveBounds(t *testing.T) {
	svc, deps := newMockedService(t)

	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 30, 23, 59, 59, 0, time.UTC)
	deps.transactions.EXPECT().List(mock.Anything, mock.MatchedBy(func(f *sqlconfig.TransactionFilter) bool {
		gotFrom, okFrom := f.From.Get()
		gotTo, okTo := f.To.Get()
		return okFrom && okTo && gotFrom.Equal(from) && gotTo.Equal(to) && f.Category.IsUnset()
	})).Return(makeStorageRows(from, to), nil)

	txs, err := svc.Transaction.FetchByRange(context.Background(), from, to)

	assert.NoError(t, err)
	assert.Len(t, txs, 2)
}

func TestFetchByRange_Reversed(t *testing.T) {
	svc, _ := newMockedService(t)

	now := time.Now()
	_, err := svc.Transaction.FetchByRange(context.Background(), now, now.Add(-time.Hour))

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestFetchByCategory(t *testing.T) {
	svc, deps := newMockedService(t)

	deps.transactions.EXPECT().List(mock.Anything, mock.MatchedBy(func(f *sqlconfig.TransactionFilter) bool {
		c, ok := f.Category.Get()
		return ok && c == "food"
	})).Return(makeStorageRows(time.Now()), nil)

	txs, err := svc.Transaction.FetchByCategory(context.Background(), ledger.CategoryFood)
	assert.NoError(t, err)
	assert.Len(t, txs, 1)

	_, err = svc.Transaction.FetchByCategory(context.Background(), "pets")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestFetchByID_NotFound(t *testing.T) {
	svc, deps := newMockedService(t)

	id := uuid.Must(uuid.NewV4())
	deps.transactions.EXPECT().FindByID(mock.Anything, id).Return(nil, sqlconfig.ErrNotFound)

	_, err := svc.Transaction.FetchByID(context.Background(), id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestList_AppliesQueryAndLimit(t *testing.T) {
	svc, deps := newMockedService(t)

	rows := makeStorageRows(
		time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	)
	rows[1].Note = "train ticket"
	rows[1].Category = "transport"

	deps.transactions.EXPECT().List(mock.Anything, mock.MatchedBy(func(f *sqlconfig.TransactionFilter) bool {
		return f.Category.IsUnset() && f.From.IsValue()
	})).Return(rows, nil)

	txs, err := svc.Transaction.List(context.Background(), TransactionFilter{
		From:  omit.From(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)),
		Query: aggregate.TransactionQuery{Type: ledger.TypeExpense, Text: "LUNCH"},
		Limit: 1,
	})

	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, rows[0].ID, txs[0].ID)
}

// -- Save tests --

func TestSave_InvalidNeverReachesOperator(t *testing.T) {
	svc, _ := newMockedService(t)

	tx := expenseTx("-5", ledger.CategoryFood, time.Now())
	id, err := svc.Transaction.Save(context.Background(), tx)

	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, uuid.Nil, id)
}

func TestSave_Income(t *testing.T) {
	svc, deps := newMockedService(t)

	expectedID := uuid.Must(uuid.NewV4())
	date := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	deps.operator.On("Process", mock.Anything, mock.MatchedBy(func(a *actions.CreateTransaction) bool {
		return a.Values.Type == "income" &&
			a.Values.Amount.Equal(decimal.RequireFromString("500")) &&
			a.Values.TransactionDate.Equal(date)
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*actions.CreateTransaction).ID = expectedID
	}).Return(nil)

	id, err := svc.Transaction.Save(context.Background(), incomeTx("500", date))

	assert.NoError(t, err)
	assert.Equal(t, expectedID, id)
}

func TestSave_OperatorError(t *testing.T) {
	svc, deps := newMockedService(t)

	deps.operator.On("Process", mock.Anything, mock.Anything).Return(errors.New("connection refused"))

	_, err := svc.Transaction.Save(context.Background(), expenseTx("10", ledger.CategoryFood, time.Now()))

	assert.EqualError(t, err, "connection refused")
}

func TestSave_PublishesBudgetAlert(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	svc, publisher := newMemoryService(t, now)
	ctx := context.Background()

	_, err := svc.Budget.Save(ctx, monthlyBudget(ledger.CategoryFood, "200"))
	require.NoError(t, err)

	_, err = svc.Transaction.Save(ctx, expenseTx("100", ledger.CategoryFood, now))
	require.NoError(t, err)
	assert.Empty(t, publisher.Alerts(), "50% used")

	_, err = svc.Transaction.Save(ctx, expenseTx("80", ledger.CategoryFood, now))
	require.NoError(t, err)
	alerts := publisher.Alerts()
	require.Len(t, alerts, 1)
	assert.Equal(t, ledger.BudgetNearLimit, alerts[0].Status)
	assert.Equal(t, "180.00", alerts[0].Spent)

	// Other categories never touch the food budget.
	_, err = svc.Transaction.Save(ctx, expenseTx("500", ledger.CategoryBills, now))
	require.NoError(t, err)
	assert.Len(t, publisher.Alerts(), 1)
}

// -- Update / Delete tests --

func TestUpdate_RequiresID(t *testing.T) {
	svc, _ := newMockedService(t)

	err := svc.Transaction.Update(context.Background(), expenseTx("1", ledger.CategoryFood, time.Now()))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdate_ReplacesWholeRecord(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	svc, _ := newMemoryService(t, now)
	ctx := context.Background()

	tx := expenseTx("10", ledger.CategoryFood, now)
	tx.Note = "groceries"
	id, err := svc.Transaction.Save(ctx, tx)
	require.NoError(t, err)

	replacement := incomeTx("42", now.Add(time.Hour))
	replacement.ID = id
	require.NoError(t, svc.Transaction.Update(ctx, replacement))

	got, err := svc.Transaction.FetchByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, ledger.TypeIncome, got.Type)
	assert.Equal(t, ledger.CategoryOther, got.Category)
	assert.Empty(t, got.Note)
	assert.Equal(t, "42", got.Amount.String())
}

func TestUpdate_UnknownID(t *testing.T) {
	svc, _ := newMemoryService(t, time.Now())

	tx := expenseTx("10", ledger.CategoryFood, time.Now())
	tx.ID = uuid.Must(uuid.NewV4())

	assert.ErrorIs(t, svc.Transaction.Update(context.Background(), tx), ErrNotFound)
}

func TestDelete(t *testing.T) {
	svc, _ := newMemoryService(t, time.Now())
	ctx := context.Background()

	id, err := svc.Transaction.Save(ctx, expenseTx("10", ledger.CategoryFood, time.Now()))
	require.NoError(t, err)

	require.NoError(t, svc.Transaction.Delete(ctx, id))
	assert.ErrorIs(t, svc.Transaction.Delete(ctx, id), ErrNotFound)
}
