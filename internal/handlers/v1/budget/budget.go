package budget

import (
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/spendwise/internal/aggregate"
	"github.com/carson-networks/spendwise/internal/ledger"
	"github.com/carson-networks/spendwise/internal/money"
	"github.com/carson-networks/spendwise/internal/service"
)

// Budget is the API response model for a budget with its derived values.
type Budget struct {
	ID        string `json:"id" doc:"Budget UUID"`
	Category  string `json:"category" doc:"Spending category"`
	Limit     string `json:"limit" doc:"Decimal limit"`
	Period    string `json:"period" doc:"weekly, monthly or yearly; descriptive only"`
	Spent     string `json:"spent" doc:"All expenses in the category"`
	Remaining string `json:"remaining" doc:"Limit minus spent, never below zero"`
	Progress  string `json:"progress" doc:"Spent divided by limit, may exceed 1"`
	Status    string `json:"status" doc:"ok, near_limit or exceeded"`
	CreatedAt string `json:"createdAt" doc:"RFC3339 creation time"`
}

func fromLedger(b ledger.Budget) Budget {
	return Budget{
		ID:        b.ID.String(),
		Category:  string(b.Category),
		Limit:     b.Limit.StringFixed(2),
		Period:    string(b.Period),
		Spent:     b.Spent.StringFixed(2),
		Remaining: b.Remaining().StringFixed(2),
		Progress:  b.Progress().StringFixed(4),
		Status:    string(b.Status()),
		CreatedAt: b.CreatedAt.Format(time.RFC3339),
	}
}

func fromLedgerList(budgets []ledger.Budget) []Budget {
	out := make([]Budget, len(budgets))
	for i, b := range budgets {
		out[i] = fromLedger(b)
	}
	return out
}

// Summary is the API model of the budget totals.
type Summary struct {
	TotalLimit      string   `json:"totalLimit"`
	TotalSpent      string   `json:"totalSpent"`
	OverallProgress string   `json:"overallProgress" doc:"Total spent divided by total limit, 0 without budgets"`
	Exceeded        []Budget `json:"exceeded"`
	NearLimit       []Budget `json:"nearLimit"`
}

func summaryFrom(s aggregate.BudgetSummary) Summary {
	return Summary{
		TotalLimit:      s.TotalLimit.StringFixed(2),
		TotalSpent:      s.TotalSpent.StringFixed(2),
		OverallProgress: s.OverallProgress.StringFixed(4),
		Exceeded:        fromLedgerList(s.Exceeded),
		NearLimit:       fromLedgerList(s.NearLimit),
	}
}

// BudgetBody is the request body for creating or replacing a budget.
type BudgetBody struct {
	Category string `json:"category" required:"true" doc:"Spending category, at most one budget each"`
	Limit    string `json:"limit" required:"true" doc:"Positive decimal limit"`
	Period   string `json:"period" required:"true" doc:"weekly, monthly or yearly"`
}

func parseBudgetBody(body *BudgetBody) (ledger.Budget, error) {
	category, err := ledger.ParseCategory(body.Category)
	if err != nil {
		return ledger.Budget{}, err
	}
	limit, err := money.Parse(body.Limit)
	if err != nil {
		return ledger.Budget{}, fmt.Errorf("%w: limit: %v", service.ErrInvalidInput, err)
	}
	period, err := ledger.ParseBudgetPeriod(body.Period)
	if err != nil {
		return ledger.Budget{}, err
	}
	return ledger.Budget{Category: category, Limit: limit, Period: period}, nil
}

func parseID(raw string) (uuid.UUID, error) {
	id, err := uuid.FromString(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: id: %v", service.ErrInvalidInput, err)
	}
	return id, nil
}
