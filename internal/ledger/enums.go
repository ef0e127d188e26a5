package ledger

import (
	"fmt"
	"slices"
	"strings"
)

// Category is one of the eight fixed spending categories.
type Category string

const (
	CategoryFood          Category = "food"
	CategoryTransport     Category = "transport"
	CategoryEntertainment Category = "entertainment"
	CategoryBills         Category = "bills"
	CategoryShopping      Category = "shopping"
	CategoryHealth        Category = "health"
	CategoryEducation     Category = "education"
	CategoryOther         Category = "other"
)

var categories = []Category{
	CategoryFood,
	CategoryTransport,
	CategoryEntertainment,
	CategoryBills,
	CategoryShopping,
	CategoryHealth,
	CategoryEducation,
	CategoryOther,
}

// Categories returns every category in display order.
func Categories() []Category {
	return slices.Clone(categories)
}

func (c Category) Valid() bool { return slices.Contains(categories, c) }
func (c Category) Label() string { return label(string(c)) }

func ParseCategory(s string) (Category, error) {
	return parseEnum("category", s, categories)
}

type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

var transactionTypes = []TransactionType{TypeIncome, TypeExpense}

func (t TransactionType) Valid() bool { return slices.Contains(transactionTypes, t) }
func (t TransactionType) Label() string { return label(string(t)) }

func ParseTransactionType(s string) (TransactionType, error) {
	return parseEnum("transaction type", s, transactionTypes)
}

// RecurringInterval labels a recurring transaction. Nothing materialises
// future occurrences from it.
type RecurringInterval string

const (
	IntervalDaily   RecurringInterval = "daily"
	IntervalWeekly  RecurringInterval = "weekly"
	IntervalMonthly RecurringInterval = "monthly"
	IntervalYearly  RecurringInterval = "yearly"
)

var intervals = []RecurringInterval{IntervalDaily, IntervalWeekly, IntervalMonthly, IntervalYearly}

func (r RecurringInterval) Valid() bool { return slices.Contains(intervals, r) }
func (r RecurringInterval) Label() string { return label(string(r)) }

func ParseRecurringInterval(s string) (RecurringInterval, error) {
	return parseEnum("recurring interval", s, intervals)
}

// BudgetPeriod is descriptive only: spent is always summed over every
// matching expense regardless of period.
type BudgetPeriod string

const (
	BudgetWeekly  BudgetPeriod = "weekly"
	BudgetMonthly BudgetPeriod = "monthly"
	BudgetYearly  BudgetPeriod = "yearly"
)

var budgetPeriods = []BudgetPeriod{BudgetWeekly, BudgetMonthly, BudgetYearly}

func (b BudgetPeriod) Valid() bool { return slices.Contains(budgetPeriods, b) }
func (b BudgetPeriod) Label() string { return label(string(b)) }

func ParseBudgetPeriod(s string) (BudgetPeriod, error) {
	return parseEnum("budget period", s, budgetPeriods)
}

// Period selects the dashboard window.
type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

var periods = []Period{PeriodDay, PeriodWeek, PeriodMonth}

func (p Period) Valid() bool { return slices.Contains(periods, p) }
func (p Period) Label() string { return label(string(p)) }

func ParsePeriod(s string) (Period, error) {
	return parseEnum("period", s, periods)
}

// ReportPeriod selects the reports window.
type ReportPeriod string

const (
	ReportWeek  ReportPeriod = "week"
	ReportMonth ReportPeriod = "month"
	ReportYear  ReportPeriod = "year"
)

var reportPeriods = []ReportPeriod{ReportWeek, ReportMonth, ReportYear}

func (p ReportPeriod) Valid() bool { return slices.Contains(reportPeriods, p) }
func (p ReportPeriod) Label() string { return label(string(p)) }

func ParseReportPeriod(s string) (ReportPeriod, error) {
	return parseEnum("report period", s, reportPeriods)
}

// parseEnum matches case-insensitively so "Food" and "food" both resolve.
func parseEnum[T ~string](kind, s string, values []T) (T, error) {
	want := strings.ToLower(strings.TrimSpace(s))
	for _, v := range values {
		if string(v) == want {
			return v, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("%w: unknown %s %q", ErrInvalidInput, kind, s)
}

func label(s string) string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
