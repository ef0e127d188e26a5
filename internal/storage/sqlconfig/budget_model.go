package sqlconfig

import (
	"context"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Budget represents a budget record. Spent is derived and has no column.
type Budget struct {
	ID          uuid.UUID       `db:"id"`
	Category    string          `db:"category"`
	LimitAmount decimal.Decimal `db:"limit_amount"`
	Period      string          `db:"period"`
	CreatedAt   time.Time       `db:"created_at"`
}

// BudgetValues holds the writable columns for insert and full-row update.
type BudgetValues struct {
	Category    string
	LimitAmount decimal.Decimal
	Period      string
}

// BudgetFilter specifies filters for listing budgets.
type BudgetFilter struct {
	Category omit.Val[string]
}

func (f *BudgetFilter) Matches(b *Budget) bool {
	if f == nil {
		return true
	}
	if c, ok := f.Category.Get(); ok && b.Category != c {
		return false
	}
	return true
}

// IBudgetTable defines the interface for budget storage operations.
//
//go:generate mockery --name IBudgetTable --output mock_IBudgetTable.go
type IBudgetTable interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Budget, error)
	ListByCategory(ctx context.Context, category string) ([]*Budget, error)
	Insert(ctx context.Context, values *BudgetValues) (uuid.UUID, error)
	Update(ctx context.Context, id uuid.UUID, values *BudgetValues) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter *BudgetFilter) ([]*Budget, error)
}
