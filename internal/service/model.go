package service

import (
	"github.com/carson-networks/spendwise/internal/ledger"
	"github.com/carson-networks/spendwise/internal/money"
	"github.com/carson-networks/spendwise/internal/storage/sqlconfig"
)

func transactionFromStorage(row *sqlconfig.Transaction) ledger.Transaction {
	return ledger.Transaction{
		ID:          row.ID,
		Amount:      money.New(row.Amount),
		Type:        ledger.TransactionType(row.Type),
		Category:    ledger.Category(row.Category),
		Date:        row.TransactionDate,
		Note:        row.Note,
		IsRecurring: row.IsRecurring,
		Interval:    ledger.RecurringInterval(row.RecurringInterval),
		CreatedAt:   row.CreatedAt,
	}
}

func transactionsFromStorage(rows []*sqlconfig.Transaction) []ledger.Transaction {
	out := make([]ledger.Transaction, len(rows))
	for i, row := range rows {
		out[i] = transactionFromStorage(row)
	}
	return out
}

func transactionToStorage(t ledger.Transaction) *sqlconfig.TransactionValues {
	return &sqlconfig.TransactionValues{
		Amount:            t.Amount.Decimal(),
		Type:              string(t.Type),
		Category:          string(t.Category),
		TransactionDate:   t.Date,
		Note:              t.Note,
		IsRecurring:       t.IsRecurring,
		RecurringInterval: string(t.Interval),
	}
}

// budgetFromStorage leaves Spent at zero; it is derived on every load.
func budgetFromStorage(row *sqlconfig.Budget) ledger.Budget {
	return ledger.Budget{
		ID:        row.ID,
		Category:  ledger.Category(row.Category),
		Limit:     money.New(row.LimitAmount),
		Period:    ledger.BudgetPeriod(row.Period),
		Spent:     money.Zero(),
		CreatedAt: row.CreatedAt,
	}
}

func budgetsFromStorage(rows []*sqlconfig.Budget) []ledger.Budget {
	out := make([]ledger.Budget, len(rows))
	for i, row := range rows {
		out[i] = budgetFromStorage(row)
	}
	return out
}

func budgetToStorage(b ledger.Budget) *sqlconfig.BudgetValues {
	return &sqlconfig.BudgetValues{
		Category:    string(b.Category),
		LimitAmount: b.Limit.Decimal(),
		Period:      string(b.Period),
	}
}
