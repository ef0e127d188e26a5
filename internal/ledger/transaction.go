package ledger

import (
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/spendwise/internal/money"
)

// Transaction is a single income or expense. The amount is never negative;
// the sign lives in Type. A transaction is only ever replaced whole.
type Transaction struct {
	ID          uuid.UUID
	Amount      money.Money
	Type        TransactionType
	Category    Category
	Date        time.Time
	Note        string
	IsRecurring bool
	Interval    RecurringInterval
	CreatedAt   time.Time
}

func (t Transaction) IsExpense() bool { return t.Type == TypeExpense }
func (t Transaction) IsIncome() bool { return t.Type == TypeIncome }

// Validate checks the record before it reaches a store.
func (t Transaction) Validate() error {
	if t.Amount.IsNegative() {
		return fmt.Errorf("%w: amount must not be negative", ErrInvalidInput)
	}
	if !t.Amount.FitsCents() {
		return fmt.Errorf("%w: amount has more than %d decimal places", ErrInvalidInput, money.Cents)
	}
	if !t.Type.Valid() {
		return fmt.Errorf("%w: unknown transaction type %q", ErrInvalidInput, t.Type)
	}
	if !t.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidInput, t.Category)
	}
	if t.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if t.IsRecurring && !t.Interval.Valid() {
		return fmt.Errorf("%w: recurring transaction needs an interval", ErrInvalidInput)
	}
	if !t.IsRecurring && t.Interval != "" {
		return fmt.Errorf("%w: interval set on a non-recurring transaction", ErrInvalidInput)
	}
	return nil
}
