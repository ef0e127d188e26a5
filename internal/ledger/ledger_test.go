package ledger

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/carson-networks/spendwise/internal/money"
)

// -- enums --

func TestParseCategory_CaseInsensitive(t *testing.T) {
	c, err := ParseCategory("Food")
	assert.NoError(t, err)
	assert.Equal(t, CategoryFood, c)

	c, err = ParseCategory(" EDUCATION ")
	assert.NoError(t, err)
	assert.Equal(t, CategoryEducation, c)
}

func TestParseCategory_Unknown(t *testing.T) {
	_, err := ParseCategory("pets")
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestCategories_FixedSet(t *testing.T) {
	cats := Categories()
	assert.Len(t, cats, 8)
	cats[0] = "mutated"
	assert.Equal(t, CategoryFood, Categories()[0], "returned slice is a copy")
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "Entertainment", CategoryEntertainment.Label())
	assert.Equal(t, "Expense", TypeExpense.Label())
	assert.Equal(t, "Monthly", BudgetMonthly.Label())
}

func TestParsePeriods(t *testing.T) {
	p, err := ParsePeriod("week")
	assert.NoError(t, err)
	assert.Equal(t, PeriodWeek, p)

	rp, err := ParseReportPeriod("Year")
	assert.NoError(t, err)
	assert.Equal(t, ReportYear, rp)

	_, err = ParsePeriod("year")
	assert.Error(t, err, "year is a report period only")
}

// -- transaction validation --

func validTransaction() Transaction {
	return Transaction{
		Amount:   money.FromInt(10),
		Type:     TypeExpense,
		Category: CategoryFood,
		Date:     time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestTransactionValidate(t *testing.T) {
	assert.NoError(t, validTransaction().Validate())

	tests := map[string]func(*Transaction){
		"negative amount":     func(tx *Transaction) { tx.Amount = money.FromInt(-1) },
		"sub-cent amount":     func(tx *Transaction) { tx.Amount = money.MustParse("12.345") },
		"unknown type":        func(tx *Transaction) { tx.Type = "transfer" },
		"unknown category":    func(tx *Transaction) { tx.Category = "pets" },
		"missing date":        func(tx *Transaction) { tx.Date = time.Time{} },
		"recurring no period": func(tx *Transaction) { tx.IsRecurring = true },
		"interval not flagged": func(tx *Transaction) {
			tx.Interval = IntervalMonthly
		},
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			tx := validTransaction()
			mutate(&tx)
			assert.ErrorIs(t, tx.Validate(), ErrInvalidInput)
		})
	}
}

func TestTransactionValidate_Recurring(t *testing.T) {
	tx := validTransaction()
	tx.IsRecurring = true
	tx.Interval = IntervalWeekly
	assert.NoError(t, tx.Validate())
}

// -- budget derived values --

func TestBudget_NearLimit(t *testing.T) {
	b := Budget{Category: CategoryFood, Limit: money.FromInt(200), Spent: money.FromInt(180)}

	assert.True(t, b.Progress().Equal(decimal.RequireFromString("0.9")))
	assert.True(t, b.IsNearLimit())
	assert.False(t, b.IsExceeded())
	assert.True(t, b.Remaining().Equal(money.FromInt(20)))
	assert.Equal(t, BudgetNearLimit, b.Status())
}

func TestBudget_ZeroLimit(t *testing.T) {
	b := Budget{Limit: money.Zero(), Spent: money.FromInt(50)}

	assert.True(t, b.Progress().IsZero())
	assert.True(t, b.Remaining().IsZero())
	assert.False(t, b.IsNearLimit())
	assert.True(t, b.IsExceeded())
}

func TestBudget_Exceeded(t *testing.T) {
	b := Budget{Limit: money.FromInt(100), Spent: money.MustParse("100.01")}

	assert.True(t, b.IsExceeded())
	assert.False(t, b.IsNearLimit())
	assert.True(t, b.Remaining().IsZero())
	assert.True(t, b.Progress().GreaterThan(decimal.NewFromInt(1)), "progress is not capped")
}

func TestBudget_ExactlyAtLimitIsNearNotExceeded(t *testing.T) {
	b := Budget{Limit: money.FromInt(100), Spent: money.FromInt(100)}

	assert.False(t, b.IsExceeded())
	assert.True(t, b.IsNearLimit())
}

func TestBudget_NearAndExceededExclusive(t *testing.T) {
	limit := money.FromInt(100)
	for spent := int64(0); spent <= 150; spent += 5 {
		b := Budget{Limit: limit, Spent: money.FromInt(spent)}
		assert.False(t, b.IsNearLimit() && b.IsExceeded(), "spent=%d", spent)
	}
}

func TestBudgetValidate(t *testing.T) {
	ok := Budget{Category: CategoryBills, Limit: money.FromInt(10), Period: BudgetMonthly}
	assert.NoError(t, ok.Validate())

	zeroLimit := ok
	zeroLimit.Limit = money.Zero()
	assert.ErrorIs(t, zeroLimit.Validate(), ErrInvalidInput)

	badPeriod := ok
	badPeriod.Period = "daily"
	assert.ErrorIs(t, badPeriod.Validate(), ErrInvalidInput)

	subCent := ok
	subCent.Limit = money.MustParse("99.999")
	assert.ErrorIs(t, subCent.Validate(), ErrInvalidInput)

	trailingZeros := ok
	trailingZeros.Limit = money.MustParse("99.9900")
	assert.NoError(t, trailingZeros.Validate())
}
