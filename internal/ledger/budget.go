package ledger

import (
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/spendwise/internal/money"
)

// NearLimitThreshold is the progress ratio at which a budget is flagged.
var NearLimitThreshold = decimal.RequireFromString("0.8")

// BudgetStatus classifies a budget by how much of it has been used.
type BudgetStatus string

const (
	BudgetOK        BudgetStatus = "ok"
	BudgetNearLimit BudgetStatus = "near_limit"
	BudgetExceeded  BudgetStatus = "exceeded"
)

// Budget caps spending for one category. Spent is derived on every load and
// is never written to a store.
type Budget struct {
	ID        uuid.UUID
	Category  Category
	Limit     money.Money
	Period    BudgetPeriod
	Spent     money.Money
	CreatedAt time.Time
}

// Progress is Spent/Limit, unbounded above 1, and zero when Limit <= 0.
func (b Budget) Progress() decimal.Decimal {
	if !b.Limit.IsPositive() {
		return decimal.Zero
	}
	return b.Spent.Ratio(b.Limit)
}

// Remaining is max(Limit - Spent, 0).
func (b Budget) Remaining() money.Money {
	return b.Limit.Sub(b.Spent).ClampZero()
}

func (b Budget) IsExceeded() bool {
	return b.Spent.GreaterThan(b.Limit)
}

// IsNearLimit never holds together with IsExceeded.
func (b Budget) IsNearLimit() bool {
	if !b.Limit.IsPositive() || b.IsExceeded() {
		return false
	}
	return b.Progress().GreaterThanOrEqual(NearLimitThreshold)
}

func (b Budget) Status() BudgetStatus {
	switch {
	case b.IsExceeded():
		return BudgetExceeded
	case b.IsNearLimit():
		return BudgetNearLimit
	default:
		return BudgetOK
	}
}

func (b Budget) Validate() error {
	if !b.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidInput, b.Category)
	}
	if !b.Limit.IsPositive() {
		return fmt.Errorf("%w: limit must be greater than zero", ErrInvalidInput)
	}
	if !b.Limit.FitsCents() {
		return fmt.Errorf("%w: limit has more than %d decimal places", ErrInvalidInput, money.Cents)
	}
	if !b.Period.Valid() {
		return fmt.Errorf("%w: unknown budget period %q", ErrInvalidInput, b.Period)
	}
	return nil
}
