package budget

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/spendwise/internal/handlers/v1/apierror"
	"github.com/carson-networks/spendwise/internal/ledger"
	"github.com/carson-networks/spendwise/internal/logging"
	"github.com/carson-networks/spendwise/internal/service"
)

type budgetReader interface {
	Overview(ctx context.Context) (service.BudgetOverview, error)
	FetchByCategory(ctx context.Context, category ledger.Category) (ledger.Budget, error)
}

type ListBudgetsInput struct{}

// ListBudgetsResponseBody is the budgets screen.
type ListBudgetsResponseBody struct {
	Budgets     []Budget `json:"budgets" doc:"Budgets, highest progress first"`
	Summary     Summary  `json:"summary"`
	LoadedAt    string   `json:"loadedAt" doc:"RFC3339 time the data was computed"`
	Stale       bool     `json:"stale" doc:"The latest load failed and an earlier result is shown"`
	StaleReason string   `json:"staleReason,omitempty"`
}

type ListBudgetsOutput struct {
	Body ListBudgetsResponseBody
}

type BudgetByCategoryInput struct {
	Category string `path:"category" doc:"Spending category"`
}

type BudgetByCategoryOutput struct {
	Body Budget
}

// ReadBudgetHandler handles GET /v1/budgets and GET /v1/budget/category/{category}.
type ReadBudgetHandler struct {
	BudgetService budgetReader
}

func NewReadBudgetHandler(svc budgetReader) *ReadBudgetHandler {
	return &ReadBudgetHandler{BudgetService: svc}
}

func (h *ReadBudgetHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-budgets",
		Method:      http.MethodGet,
		Path:        "/v1/budgets",
		Summary:     "Budgets overview",
		Description: "Returns every budget with spending applied, sorted by urgency, plus totals.",
		Tags:        []string{"Budgets"},
	}, h.list)

	huma.Register(api, huma.Operation{
		OperationID: "get-budget-by-category",
		Method:      http.MethodGet,
		Path:        "/v1/budget/category/{category}",
		Summary:     "Budget for a category",
		Tags:        []string{"Budgets"},
	}, h.byCategory)
}

func (h *ReadBudgetHandler) list(ctx context.Context, _ *ListBudgetsInput) (*ListBudgetsOutput, error) {
	logData := logging.GetLogData(ctx)

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("budgetOverviewMs")
	}
	overview, err := h.BudgetService.Overview(ctx)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, apierror.From(err, "failed to load budgets")
	}

	if logData != nil {
		logData.AddData("budgetCount", len(overview.Budgets))
		logData.AddData("stale", overview.Stale)
	}

	return &ListBudgetsOutput{Body: ListBudgetsResponseBody{
		Budgets:     fromLedgerList(overview.Budgets),
		Summary:     summaryFrom(overview.Summary),
		LoadedAt:    overview.LoadedAt.Format(time.RFC3339),
		Stale:       overview.Stale,
		StaleReason: overview.StaleReason,
	}}, nil
}

func (h *ReadBudgetHandler) byCategory(ctx context.Context, input *BudgetByCategoryInput) (*BudgetByCategoryOutput, error) {
	category, err := ledger.ParseCategory(input.Category)
	if err != nil {
		return nil, apierror.From(err, "invalid category")
	}

	b, err := h.BudgetService.FetchByCategory(ctx, category)
	if err != nil {
		return nil, apierror.From(err, "failed to load budget")
	}
	return &BudgetByCategoryOutput{Body: fromLedger(b)}, nil
}
