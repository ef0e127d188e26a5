// Package aggregate turns transactions and budgets into the figures every
// view shows. Functions here are pure: they do no I/O, never modify their
// arguments and never fail.
package aggregate

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/spendwise/internal/ledger"
	"github.com/carson-networks/spendwise/internal/money"
)

// TotalByType sums the amounts of every transaction of the given type.
func TotalByType(txs []ledger.Transaction, typ ledger.TransactionType) money.Money {
	total := money.Zero()
	for _, tx := range txs {
		if tx.Type == typ {
			total = total.Add(tx.Amount)
		}
	}
	return total
}

// Balance is income minus expenses.
func Balance(txs []ledger.Transaction) money.Money {
	return TotalByType(txs, ledger.TypeIncome).Sub(TotalByType(txs, ledger.TypeExpense))
}

type CategoryTotal struct {
	Category ledger.Category
	Total    money.Money
}

// CategoryBreakdown is ordered by Total descending.
type CategoryBreakdown []CategoryTotal

func (b CategoryBreakdown) Map() map[ledger.Category]money.Money {
	m := make(map[ledger.Category]money.Money, len(b))
	for _, ct := range b {
		m[ct.Category] = ct.Total
	}
	return m
}

// Get returns zero for a category with no expenses.
func (b CategoryBreakdown) Get(c ledger.Category) money.Money {
	for _, ct := range b {
		if ct.Category == c {
			return ct.Total
		}
	}
	return money.Zero()
}

func (b CategoryBreakdown) Sum() money.Money {
	total := money.Zero()
	for _, ct := range b {
		total = total.Add(ct.Total)
	}
	return total
}

// CategoryTotals sums expenses per category. Income is ignored and
// categories without expenses are absent. Ties keep first-seen order.
func CategoryTotals(txs []ledger.Transaction) CategoryBreakdown {
	index := make(map[ledger.Category]int)
	out := CategoryBreakdown{}
	for _, tx := range txs {
		if !tx.IsExpense() {
			continue
		}
		i, ok := index[tx.Category]
		if !ok {
			i = len(out)
			index[tx.Category] = i
			out = append(out, CategoryTotal{Category: tx.Category, Total: money.Zero()})
		}
		out[i].Total = out[i].Total.Add(tx.Amount)
	}
	slices.SortStableFunc(out, func(a, b CategoryTotal) int {
		return b.Total.Cmp(a.Total)
	})
	return out
}

// SpentByCategory is the lookup form of CategoryTotals used for budgets.
func SpentByCategory(txs []ledger.Transaction) map[ledger.Category]money.Money {
	return CategoryTotals(txs).Map()
}

type CategoryShare struct {
	Category   ledger.Category
	Total      money.Money
	Percentage decimal.Decimal
}

// CategoryPercentages reports each category's share of total expenses. The
// percentage is exactly zero when there are no expenses.
func CategoryPercentages(txs []ledger.Transaction) []CategoryShare {
	totals := CategoryTotals(txs)
	grand := totals.Sum()

	shares := make([]CategoryShare, len(totals))
	for i, ct := range totals {
		shares[i] = CategoryShare{
			Category:   ct.Category,
			Total:      ct.Total,
			Percentage: ct.Total.Percent(grand),
		}
	}
	return shares
}
