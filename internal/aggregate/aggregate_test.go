package aggregate

import (
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/spendwise/internal/ledger"
	"github.com/carson-networks/spendwise/internal/money"
)

func tx(typ ledger.TransactionType, amount string, cat ledger.Category, date time.Time) ledger.Transaction {
	return ledger.Transaction{
		ID:       uuid.Must(uuid.NewV4()),
		Amount:   money.MustParse(amount),
		Type:     typ,
		Category: cat,
		Date:     date,
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func moneyEq(t *testing.T, want string, got money.Money, msgAndArgs ...any) {
	t.Helper()
	if len(msgAndArgs) == 0 {
		msgAndArgs = []any{"want %s, got %s", want, got}
	}
	assert.True(t, got.Equal(money.MustParse(want)), msgAndArgs...)
}

// -- totals --

func TestTotals_MixedScenario(t *testing.T) {
	now := day(2025, 6, 1)
	txs := []ledger.Transaction{
		tx(ledger.TypeExpense, "100", ledger.CategoryFood, now),
		tx(ledger.TypeExpense, "50", ledger.CategoryFood, now),
		tx(ledger.TypeIncome, "500", ledger.CategoryOther, now),
	}

	totals := CategoryTotals(txs)
	require.Len(t, totals, 1)
	assert.Equal(t, ledger.CategoryFood, totals[0].Category)
	moneyEq(t, "150", totals[0].Total)

	moneyEq(t, "500", TotalByType(txs, ledger.TypeIncome))
	moneyEq(t, "150", TotalByType(txs, ledger.TypeExpense))
	moneyEq(t, "350", Balance(txs))
}

func TestTotalByType_Empty(t *testing.T) {
	assert.True(t, TotalByType(nil, ledger.TypeExpense).IsZero())
}

func TestCategoryTotals_OrderAndTies(t *testing.T) {
	now := day(2025, 6, 1)
	txs := []ledger.Transaction{
		tx(ledger.TypeExpense, "20", ledger.CategoryBills, now),
		tx(ledger.TypeExpense, "40", ledger.CategoryHealth, now),
		tx(ledger.TypeExpense, "20", ledger.CategoryShopping, now),
		tx(ledger.TypeIncome, "1000", ledger.CategoryShopping, now),
	}

	totals := CategoryTotals(txs)
	require.Len(t, totals, 3)
	assert.Equal(t, ledger.CategoryHealth, totals[0].Category)
	assert.Equal(t, ledger.CategoryBills, totals[1].Category, "tie keeps first-seen order")
	assert.Equal(t, ledger.CategoryShopping, totals[2].Category)
	moneyEq(t, "20", totals.Get(ledger.CategoryShopping))
	assert.True(t, totals.Get(ledger.CategoryFood).IsZero())
	_, present := totals.Map()[ledger.CategoryFood]
	assert.False(t, present, "absent categories are not zero-filled")
}

func TestCategoryTotals_NeverNegativeNeverIncome(t *testing.T) {
	now := day(2025, 6, 1)
	txs := []ledger.Transaction{
		tx(ledger.TypeIncome, "10", ledger.CategoryOther, now),
		tx(ledger.TypeExpense, "0", ledger.CategoryFood, now),
		tx(ledger.TypeExpense, "3.25", ledger.CategoryTransport, now),
	}

	for _, ct := range CategoryTotals(txs) {
		assert.False(t, ct.Total.IsNegative())
		assert.NotEqual(t, ledger.CategoryOther, ct.Category)
	}
}

func TestCategoryTotals_DoesNotMutateInput(t *testing.T) {
	now := day(2025, 6, 1)
	txs := []ledger.Transaction{
		tx(ledger.TypeExpense, "1", ledger.CategoryFood, now),
		tx(ledger.TypeExpense, "9", ledger.CategoryBills, now),
	}
	before := append([]ledger.Transaction(nil), txs...)

	CategoryTotals(txs)
	assert.Equal(t, before, txs)
}

// -- percentages --

func TestCategoryPercentages_SumToHundred(t *testing.T) {
	now := day(2025, 6, 1)
	txs := []ledger.Transaction{
		tx(ledger.TypeExpense, "10", ledger.CategoryFood, now),
		tx(ledger.TypeExpense, "10", ledger.CategoryBills, now),
		tx(ledger.TypeExpense, "10", ledger.CategoryHealth, now),
	}

	shares := CategoryPercentages(txs)
	require.Len(t, shares, 3)

	sum := decimal.Zero
	for _, s := range shares {
		sum = sum.Add(s.Percentage)
	}
	assert.True(t, sum.Sub(decimal.NewFromInt(100)).Abs().LessThan(decimal.RequireFromString("0.0001")), "sum=%s", sum)
}

func TestCategoryPercentages_SingleCategory(t *testing.T) {
	shares := CategoryPercentages([]ledger.Transaction{
		tx(ledger.TypeExpense, "42", ledger.CategoryFood, day(2025, 6, 1)),
	})
	require.Len(t, shares, 1)
	assert.True(t, shares[0].Percentage.Equal(decimal.NewFromInt(100)))
}

func TestCategoryPercentages_NoExpenses(t *testing.T) {
	assert.Empty(t, CategoryPercentages(nil))
	assert.Empty(t, CategoryPercentages([]ledger.Transaction{
		tx(ledger.TypeIncome, "42", ledger.CategoryOther, day(2025, 6, 1)),
	}))
}

func TestCategoryPercentages_ZeroGrandTotal(t *testing.T) {
	shares := CategoryPercentages([]ledger.Transaction{
		tx(ledger.TypeExpense, "0", ledger.CategoryFood, day(2025, 6, 1)),
	})
	require.Len(t, shares, 1)
	assert.True(t, shares[0].Percentage.IsZero())
}

// -- daily series --

func TestDailySeries_TwoDaysAscending(t *testing.T) {
	txs := []ledger.Transaction{
		tx(ledger.TypeExpense, "30", ledger.CategoryFood, time.Date(2025, 6, 2, 18, 0, 0, 0, time.UTC)),
		tx(ledger.TypeIncome, "100", ledger.CategoryOther, time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)),
		tx(ledger.TypeExpense, "5", ledger.CategoryFood, time.Date(2025, 6, 1, 22, 0, 0, 0, time.UTC)),
		tx(ledger.TypeExpense, "7", ledger.CategoryBills, time.Date(2025, 6, 2, 1, 0, 0, 0, time.UTC)),
	}

	series := DailySeries(txs, time.UTC)
	require.Len(t, series, 2)

	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), series[0].Day)
	moneyEq(t, "100", series[0].Income)
	moneyEq(t, "5", series[0].Expense)

	assert.Equal(t, time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), series[1].Day)
	assert.True(t, series[1].Income.IsZero())
	moneyEq(t, "37", series[1].Expense)
	moneyEq(t, "-37", series[1].Net())
}

func TestDailySeries_UsesLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	txs := []ledger.Transaction{
		tx(ledger.TypeExpense, "1", ledger.CategoryFood, time.Date(2025, 6, 1, 14, 0, 0, 0, time.UTC)),
		tx(ledger.TypeExpense, "2", ledger.CategoryFood, time.Date(2025, 6, 1, 16, 0, 0, 0, time.UTC)),
	}

	assert.Len(t, DailySeries(txs, time.UTC), 1)

	series := DailySeries(txs, tokyo)
	require.Len(t, series, 2, "16:00 UTC is the next day in Tokyo")
	assert.Equal(t, 2, series[1].Day.Day())
}

func TestDailySeries_Empty(t *testing.T) {
	assert.Empty(t, DailySeries(nil, nil))
}

func TestGroupByDay_NewestFirst(t *testing.T) {
	a := tx(ledger.TypeExpense, "1", ledger.CategoryFood, time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC))
	b := tx(ledger.TypeExpense, "2", ledger.CategoryFood, time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC))
	c := tx(ledger.TypeExpense, "3", ledger.CategoryFood, time.Date(2025, 6, 3, 8, 0, 0, 0, time.UTC))

	groups := GroupByDay([]ledger.Transaction{a, c, b}, time.UTC)
	require.Len(t, groups, 2)
	assert.Equal(t, 3, groups[0].Day.Day())
	assert.Equal(t, []ledger.Transaction{b, a}, groups[1].Transactions)
}

// -- period filter --

func TestFilterPeriod_MonthBoundary(t *testing.T) {
	ref := day(2025, 3, 15)
	before := tx(ledger.TypeExpense, "1", ledger.CategoryFood, time.Date(2025, 2, 28, 23, 59, 0, 0, time.UTC))
	first := tx(ledger.TypeExpense, "2", ledger.CategoryFood, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
	future := tx(ledger.TypeExpense, "3", ledger.CategoryFood, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC))

	got := FilterPeriod([]ledger.Transaction{before, first, future}, ledger.PeriodMonth, ref)
	assert.Equal(t, []ledger.Transaction{first, future}, got, "no upper bound")
}

func TestPeriodStart_WeekStartsMonday(t *testing.T) {
	monday := time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, monday, PeriodStart(ledger.PeriodWeek, time.Date(2025, 6, 11, 15, 0, 0, 0, time.UTC)))
	assert.Equal(t, monday, PeriodStart(ledger.PeriodWeek, time.Date(2025, 6, 15, 23, 0, 0, 0, time.UTC)), "sunday belongs to the week before")
	assert.Equal(t, monday, PeriodStart(ledger.PeriodWeek, monday))
}

func TestFilterPeriod_Week(t *testing.T) {
	ref := time.Date(2025, 6, 11, 15, 0, 0, 0, time.UTC)
	sunday := tx(ledger.TypeExpense, "1", ledger.CategoryFood, time.Date(2025, 6, 8, 23, 0, 0, 0, time.UTC))
	monday := tx(ledger.TypeExpense, "2", ledger.CategoryFood, time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC))

	got := FilterPeriod([]ledger.Transaction{sunday, monday}, ledger.PeriodWeek, ref)
	assert.Equal(t, []ledger.Transaction{monday}, got)
}

func TestFilterPeriod_DayIsSameCalendarDay(t *testing.T) {
	ref := time.Date(2025, 6, 11, 9, 0, 0, 0, time.UTC)
	yesterday := tx(ledger.TypeExpense, "1", ledger.CategoryFood, time.Date(2025, 6, 10, 23, 0, 0, 0, time.UTC))
	later := tx(ledger.TypeExpense, "2", ledger.CategoryFood, time.Date(2025, 6, 11, 22, 0, 0, 0, time.UTC))
	tomorrow := tx(ledger.TypeExpense, "3", ledger.CategoryFood, time.Date(2025, 6, 12, 1, 0, 0, 0, time.UTC))

	got := FilterPeriod([]ledger.Transaction{yesterday, later, tomorrow}, ledger.PeriodDay, ref)
	assert.Equal(t, []ledger.Transaction{later}, got)
}

func TestFilterPeriod_UnknownKeepsAll(t *testing.T) {
	txs := []ledger.Transaction{tx(ledger.TypeExpense, "1", ledger.CategoryFood, day(2020, 1, 1))}
	assert.Len(t, FilterPeriod(txs, "decade", day(2025, 1, 1)), 1)
}

func TestReportWindow(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	cur, prev := ReportWindow(ledger.ReportWeek, now)
	assert.Equal(t, time.Date(2025, 6, 8, 10, 0, 0, 0, time.UTC), cur.Start)
	assert.Equal(t, now, cur.End)
	assert.Equal(t, time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC), prev.Start)
	assert.Equal(t, cur.Start, prev.End)

	cur, prev = ReportWindow(ledger.ReportMonth, now)
	assert.Equal(t, time.Date(2025, 5, 15, 10, 0, 0, 0, time.UTC), cur.Start)
	assert.Equal(t, time.Date(2025, 4, 15, 10, 0, 0, 0, time.UTC), prev.Start)

	cur, _ = ReportWindow(ledger.ReportYear, now)
	assert.Equal(t, time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC), cur.Start)
}

func TestFilterWindow_Inclusive(t *testing.T) {
	w := Window{Start: day(2025, 6, 1), End: day(2025, 6, 3)}
	txs := []ledger.Transaction{
		tx(ledger.TypeExpense, "1", ledger.CategoryFood, w.Start),
		tx(ledger.TypeExpense, "2", ledger.CategoryFood, w.End),
		tx(ledger.TypeExpense, "3", ledger.CategoryFood, w.End.Add(time.Second)),
	}
	assert.Len(t, FilterWindow(txs, w), 2)
}

// -- comparison --

func TestCompare(t *testing.T) {
	c := Compare(money.FromInt(150), money.FromInt(100))
	moneyEq(t, "50", c.Delta)
	assert.True(t, c.PercentChange.Equal(decimal.NewFromInt(50)))

	c = Compare(money.FromInt(50), money.FromInt(100))
	assert.True(t, c.PercentChange.Equal(decimal.NewFromInt(-50)))
}

func TestCompare_ZeroPrevious(t *testing.T) {
	for _, current := range []string{"0", "1", "999.99"} {
		c := Compare(money.MustParse(current), money.Zero())
		assert.True(t, c.PercentChange.IsZero(), "current=%s", current)
		moneyEq(t, current, c.Delta)
	}
}

// -- budgets --

func TestBudgetProgress_Scenario(t *testing.T) {
	b := ledger.Budget{Category: ledger.CategoryFood, Limit: money.FromInt(200)}
	spent := map[ledger.Category]money.Money{ledger.CategoryFood: money.FromInt(180)}

	got := BudgetProgress(b, spent)

	assert.True(t, got.Progress().Equal(decimal.RequireFromString("0.9")))
	assert.True(t, got.IsNearLimit())
	assert.False(t, got.IsExceeded())
	moneyEq(t, "20", got.Remaining())
	assert.True(t, b.Spent.IsZero(), "input budget is untouched")
}

func TestBudgetProgress_Pure(t *testing.T) {
	b := ledger.Budget{Category: ledger.CategoryBills, Limit: money.FromInt(50), Spent: money.FromInt(7)}
	spent := map[ledger.Category]money.Money{ledger.CategoryBills: money.FromInt(10)}

	first := BudgetProgress(b, spent)
	second := BudgetProgress(b, spent)
	assert.Equal(t, first, second)
	moneyEq(t, "7", b.Spent)
}

func TestBudgetProgress_MissingCategory(t *testing.T) {
	b := ledger.Budget{Category: ledger.CategoryHealth, Limit: money.FromInt(50), Spent: money.FromInt(7)}
	got := BudgetProgress(b, nil)
	assert.True(t, got.Spent.IsZero())
}

func TestApplySpending_IgnoresBudgetPeriod(t *testing.T) {
	budgets := []ledger.Budget{
		{Category: ledger.CategoryFood, Limit: money.FromInt(100), Period: ledger.BudgetWeekly},
		{Category: ledger.CategoryFood, Limit: money.FromInt(300), Period: ledger.BudgetYearly},
	}
	txs := []ledger.Transaction{
		tx(ledger.TypeExpense, "60", ledger.CategoryFood, day(2020, 1, 1)),
		tx(ledger.TypeExpense, "40", ledger.CategoryFood, day(2025, 6, 1)),
		tx(ledger.TypeIncome, "999", ledger.CategoryFood, day(2025, 6, 1)),
	}

	got := ApplySpending(budgets, txs)
	moneyEq(t, "100", got[0].Spent)
	moneyEq(t, "100", got[1].Spent, "duplicate category budgets see the same spend")
	assert.True(t, budgets[0].Spent.IsZero())
}

func TestSortBudgetsByUrgency(t *testing.T) {
	zero := ledger.Budget{Category: ledger.CategoryOther, Limit: money.Zero(), Spent: money.FromInt(10)}
	half := ledger.Budget{Category: ledger.CategoryFood, Limit: money.FromInt(100), Spent: money.FromInt(50)}
	over := ledger.Budget{Category: ledger.CategoryBills, Limit: money.FromInt(100), Spent: money.FromInt(150)}
	idle := ledger.Budget{Category: ledger.CategoryHealth, Limit: money.FromInt(100)}

	input := []ledger.Budget{zero, half, over, idle}
	got := SortBudgetsByUrgency(input)

	assert.Equal(t, []ledger.Budget{over, half, zero, idle}, got, "zero-limit ties with idle and keeps input order")
	assert.Equal(t, zero, input[0], "input order untouched")
}

func TestSummarizeBudgets(t *testing.T) {
	budgets := []ledger.Budget{
		{Category: ledger.CategoryFood, Limit: money.FromInt(200), Spent: money.FromInt(180)},
		{Category: ledger.CategoryBills, Limit: money.FromInt(100), Spent: money.FromInt(120)},
		{Category: ledger.CategoryHealth, Limit: money.FromInt(100), Spent: money.FromInt(0)},
	}

	s := SummarizeBudgets(budgets)
	moneyEq(t, "400", s.TotalLimit)
	moneyEq(t, "300", s.TotalSpent)
	assert.True(t, s.OverallProgress.Equal(decimal.RequireFromString("0.75")))
	require.Len(t, s.Exceeded, 1)
	assert.Equal(t, ledger.CategoryBills, s.Exceeded[0].Category)
	require.Len(t, s.NearLimit, 1)
	assert.Equal(t, ledger.CategoryFood, s.NearLimit[0].Category)
}

func TestSummarizeBudgets_Empty(t *testing.T) {
	s := SummarizeBudgets(nil)
	assert.True(t, s.OverallProgress.IsZero())
	assert.Empty(t, s.Exceeded)
	assert.Empty(t, s.NearLimit)
}

func TestAlertsFor(t *testing.T) {
	budgets := []ledger.Budget{
		{Category: ledger.CategoryFood, Limit: money.FromInt(100), Spent: money.FromInt(85)},
		{Category: ledger.CategoryFood, Limit: money.FromInt(1000), Spent: money.FromInt(85)},
		{Category: ledger.CategoryBills, Limit: money.FromInt(10), Spent: money.FromInt(85)},
	}
	alerts := AlertsFor(budgets, ledger.CategoryFood)
	require.Len(t, alerts, 1)
	assert.True(t, alerts[0].Limit.Equal(money.FromInt(100)))
}

// -- search --

func TestSearch(t *testing.T) {
	now := day(2025, 6, 1)
	coffee := tx(ledger.TypeExpense, "4", ledger.CategoryFood, now)
	coffee.Note = "Morning Coffee"
	bus := tx(ledger.TypeExpense, "2", ledger.CategoryTransport, now)
	salary := tx(ledger.TypeIncome, "3000", ledger.CategoryOther, now)
	salary.Note = "June salary"
	all := []ledger.Transaction{coffee, bus, salary}

	assert.Equal(t, all, Search(all, TransactionQuery{}))
	assert.Equal(t, []ledger.Transaction{coffee}, Search(all, TransactionQuery{Text: "coffee"}))
	assert.Equal(t, []ledger.Transaction{bus}, Search(all, TransactionQuery{Text: "TRANS"}), "matches category label")
	assert.Equal(t, []ledger.Transaction{salary}, Search(all, TransactionQuery{Type: ledger.TypeIncome}))
	assert.Empty(t, Search(all, TransactionQuery{Type: ledger.TypeIncome, Text: "coffee"}))
}

func TestRecent(t *testing.T) {
	var txs []ledger.Transaction
	for d := 1; d <= 7; d++ {
		txs = append(txs, tx(ledger.TypeExpense, "1", ledger.CategoryFood, day(2025, 6, d)))
	}

	got := Recent(txs, 5)
	require.Len(t, got, 5)
	assert.Equal(t, 7, got[0].Date.Day())
	assert.Equal(t, 3, got[4].Date.Day())
	assert.Equal(t, 1, txs[0].Date.Day(), "input order untouched")

	assert.Len(t, Recent(txs[:2], 5), 2)
}
