package aggregate

import (
	"slices"
	"time"

	"github.com/carson-networks/spendwise/internal/ledger"
	"github.com/carson-networks/spendwise/internal/money"
)

type DailyTotal struct {
	Day     time.Time
	Income  money.Money
	Expense money.Money
}

func (d DailyTotal) Net() money.Money {
	return d.Income.Sub(d.Expense)
}

type dayKey struct {
	year  int
	month time.Month
	day   int
}

func keyOf(t time.Time, loc *time.Location) dayKey {
	y, m, d := t.In(loc).Date()
	return dayKey{year: y, month: m, day: d}
}

func (k dayKey) start(loc *time.Location) time.Time {
	return time.Date(k.year, k.month, k.day, 0, 0, 0, 0, loc)
}

// StartOfDay truncates t to midnight in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = t.Location()
	}
	return keyOf(t, loc).start(loc)
}

// DailySeries buckets transactions by calendar day in loc, keeping income and
// expense apart. Only days with a transaction appear, oldest first. A nil loc
// means UTC.
func DailySeries(txs []ledger.Transaction, loc *time.Location) []DailyTotal {
	if loc == nil {
		loc = time.UTC
	}

	index := make(map[dayKey]int)
	out := []DailyTotal{}
	for _, tx := range txs {
		k := keyOf(tx.Date, loc)
		i, ok := index[k]
		if !ok {
			i = len(out)
			index[k] = i
			out = append(out, DailyTotal{Day: k.start(loc), Income: money.Zero(), Expense: money.Zero()})
		}
		switch tx.Type {
		case ledger.TypeIncome:
			out[i].Income = out[i].Income.Add(tx.Amount)
		case ledger.TypeExpense:
			out[i].Expense = out[i].Expense.Add(tx.Amount)
		}
	}

	slices.SortFunc(out, func(a, b DailyTotal) int {
		return a.Day.Compare(b.Day)
	})
	return out
}

type DayGroup struct {
	Day          time.Time
	Transactions []ledger.Transaction
}

// GroupByDay groups transactions by calendar day in loc, newest day first,
// each group newest first.
func GroupByDay(txs []ledger.Transaction, loc *time.Location) []DayGroup {
	if loc == nil {
		loc = time.UTC
	}

	index := make(map[dayKey]int)
	groups := []DayGroup{}
	for _, tx := range SortNewestFirst(txs) {
		k := keyOf(tx.Date, loc)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, DayGroup{Day: k.start(loc)})
		}
		groups[i].Transactions = append(groups[i].Transactions, tx)
	}
	return groups
}
