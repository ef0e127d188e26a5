package sqlconfig

import (
	"context"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Transaction represents a transaction record.
type Transaction struct {
	ID                uuid.UUID       `db:"id"`
	Amount            decimal.Decimal `db:"amount"`
	Type              string          `db:"type"`
	Category          string          `db:"category"`
	TransactionDate   time.Time       `db:"transaction_date"`
	Note              string          `db:"note"`
	IsRecurring       bool            `db:"is_recurring"`
	RecurringInterval string          `db:"recurring_interval"`
	CreatedAt         time.Time       `db:"created_at"`
}

// TransactionValues holds the writable columns for insert and full-row update.
type TransactionValues struct {
	Amount            decimal.Decimal
	Type              string
	Category          string
	TransactionDate   time.Time
	Note              string
	IsRecurring       bool
	RecurringInterval string
}

// TransactionFilter specifies filters for listing transactions. Date bounds
// are inclusive.
type TransactionFilter struct {
	Category omit.Val[string]
	Type     omit.Val[string]
	From     omit.Val[time.Time]
	To       omit.Val[time.Time]
	Limit    int
}

// ITransactionTable defines the interface for transaction storage operations.
// This abstraction allows swapping the implementation (e.g. Bob) without changing callers.
//
//go:generate mockery --name ITransactionTable --output mock_ITransactionTable.go
type ITransactionTable interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error)
	Insert(ctx context.Context, values *TransactionValues) (uuid.UUID, error)
	Update(ctx context.Context, id uuid.UUID, values *TransactionValues) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter *TransactionFilter) ([]*Transaction, error)
}

// Matches applies the filter to a single record. Stores that cannot push
// the filter down to a query use it.
func (f *TransactionFilter) Matches(t *Transaction) bool {
	if f == nil {
		return true
	}
	if c, ok := f.Category.Get(); ok && t.Category != c {
		return false
	}
	if typ, ok := f.Type.Get(); ok && t.Type != typ {
		return false
	}
	if from, ok := f.From.Get(); ok && t.TransactionDate.Before(from) {
		return false
	}
	if to, ok := f.To.Get(); ok && t.TransactionDate.After(to) {
		return false
	}
	return true
}
