package aggregate

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/spendwise/internal/ledger"
	"github.com/carson-networks/spendwise/internal/money"
)

// BudgetProgress returns a copy of b with Spent taken from spent, or zero
// when the category has no entry.
func BudgetProgress(b ledger.Budget, spent map[ledger.Category]money.Money) ledger.Budget {
	amount, ok := spent[b.Category]
	if !ok {
		amount = money.Zero()
	}
	b.Spent = amount
	return b
}

// ApplySpending fills Spent on every budget from all expenses in txs. Budget
// periods do not narrow the sum.
func ApplySpending(budgets []ledger.Budget, txs []ledger.Transaction) []ledger.Budget {
	spent := SpentByCategory(txs)
	out := make([]ledger.Budget, len(budgets))
	for i, b := range budgets {
		out[i] = BudgetProgress(b, spent)
	}
	return out
}

// SortBudgetsByUrgency returns a new slice ordered by progress, highest
// first. Equal progress keeps input order.
func SortBudgetsByUrgency(budgets []ledger.Budget) []ledger.Budget {
	out := slices.Clone(budgets)
	slices.SortStableFunc(out, func(a, b ledger.Budget) int {
		return b.Progress().Cmp(a.Progress())
	})
	return out
}

type BudgetSummary struct {
	TotalLimit      money.Money
	TotalSpent      money.Money
	OverallProgress decimal.Decimal
	Exceeded        []ledger.Budget
	NearLimit       []ledger.Budget
}

// SummarizeBudgets totals the budgets and picks out the ones that need
// attention, preserving input order.
func SummarizeBudgets(budgets []ledger.Budget) BudgetSummary {
	summary := BudgetSummary{
		TotalLimit: money.Zero(),
		TotalSpent: money.Zero(),
		Exceeded:   []ledger.Budget{},
		NearLimit:  []ledger.Budget{},
	}
	for _, b := range budgets {
		summary.TotalLimit = summary.TotalLimit.Add(b.Limit)
		summary.TotalSpent = summary.TotalSpent.Add(b.Spent)
		switch b.Status() {
		case ledger.BudgetExceeded:
			summary.Exceeded = append(summary.Exceeded, b)
		case ledger.BudgetNearLimit:
			summary.NearLimit = append(summary.NearLimit, b)
		}
	}

	summary.OverallProgress = decimal.Zero
	if summary.TotalLimit.IsPositive() {
		summary.OverallProgress = summary.TotalSpent.Ratio(summary.TotalLimit)
	}
	return summary
}

// AlertsFor returns the budgets for category that are near or over limit.
func AlertsFor(budgets []ledger.Budget, category ledger.Category) []ledger.Budget {
	var out []ledger.Budget
	for _, b := range budgets {
		if b.Category == category && b.Status() != ledger.BudgetOK {
			out = append(out, b)
		}
	}
	return out
}
