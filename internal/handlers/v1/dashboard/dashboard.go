package dashboard

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

type CategoryTotal struct {
	Category string `json:"category"`
	Total    string `json:"total"`
}

type RecentTransaction struct {
	ID       string `json:"id"`
	Amount   string `json:"amount"`
	Type     string `json:"type"`
	Category string `json:"category"`
	Date     string `json:"date"`
	Note     string `json:"note"`
}

type BudgetProgress struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Limit    string `json:"limit"`
	Spent    string `json:"spent"`
	Progress string `json:"progress"`
	Status   string `json:"status"`
}

// DashboardResponseBody is the home screen for one period.
type DashboardResponseBody struct {
	Period          string              `json:"period"`
	PeriodStart     string              `json:"periodStart" doc:"RFC3339 start of the period in the configured timezone"`
	Balance         string              `json:"balance" doc:"Income minus expense within the period"`
	Income          string              `json:"income"`
	Expense         string              `json:"expense"`
	Expenses        []CategoryTotal     `json:"expenses" doc:"Expense totals per category, largest first"`
	Recent          []RecentTransaction `json:"recent" doc:"Newest transactions of any date"`
	Budgets         []BudgetProgress    `json:"budgets" doc:"Budgets with all-time spending applied"`
	BudgetLimit     string              `json:"budgetLimit"`
	BudgetSpent     string              `json:"budgetSpent"`
	OverallProgress string              `json:"overallProgress"`
	LoadedAt        string              `json:"loadedAt"`
	Stale           bool                `json:"stale"`
	StaleReason     string              `json:"staleReason,omitempty"`
}

type DashboardInput struct {
	Period string `query:"period" default:"month" enum:"day,week,month" doc:"Dashboard window"`
}

type DashboardOutput struct {
	Body DashboardResponseBody
}

type dashboardLoader interface {
	Load(ctx context.Context, period ledger.Period) (service.Dashboard, error)
}

// DashboardHandler handles GET /v1/dashboard.
type DashboardHandler struct {
	DashboardService dashboardLoader
}

func NewDashboardHandler(svc dashboardLoader) *DashboardHandler {
	return &DashboardHandler{DashboardService: svc}
}

func (h *DashboardHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-dashboard",
		Method:      http.MethodGet,
		Path:        "/v1/dashboard",
		Summary:     "Dashboard",
		Description: "Totals for the current day, week or month with recent activity and budget progress.",
		Tags:        []string{"Dashboard"},
	}, h.handle)
}

func (h *DashboardHandler) handle(ctx context.Context, input *DashboardInput) (*DashboardOutput, error) {
	period, err := ledger.ParsePeriod(input.Period)
	if err != nil {
		return nil, apierror.From(err, "invalid period")
	}

	logData := logging.GetLogData(ctx)
	if logData != nil {
		logData.AddData("period", string(period))
		defer logData.AddTiming("dashboardMs")()
	}

	d, err := h.DashboardService.Load(ctx, period)
	if err != nil {
		return nil, apierror.From(err, "failed to load dashboard")
	}
	return &DashboardOutput{Body: toResponse(d)}, nil
}

func toResponse(d service.Dashboard) DashboardResponseBody {
	body := DashboardResponseBody{
		Period:          string(d.Period),
		PeriodStart:     d.PeriodStart.Format(time.RFC3339),
		Balance:         d.Balance.StringFixed(2),
		Income:          d.Income.StringFixed(2),
		Expense:         d.Expense.StringFixed(2),
		Expenses:        make([]CategoryTotal, len(d.Expenses)),
		Recent:          make([]RecentTransaction, len(d.Recent)),
		Budgets:         make([]BudgetProgress, len(d.Budgets)),
		BudgetLimit:     d.BudgetLimit.StringFixed(2),
		BudgetSpent:     d.BudgetSpent.StringFixed(2),
		OverallProgress: d.OverallProgress.StringFixed(4),
		LoadedAt:        d.LoadedAt.Format(time.RFC3339),
		Stale:           d.Stale,
		StaleReason:     d.StaleReason,
	}
	for i, ct := range d.Expenses {
		body.Expenses[i] = CategoryTotal{Category: string(ct.Category), Total: ct.Total.StringFixed(2)}
	}
	for i, tx := range d.Recent {
		body.Recent[i] = RecentTransaction{
			ID:       tx.ID.String(),
			Amount:   tx.Amount.StringFixed(2),
			Type:     string(tx.Type),
			Category: string(tx.Category),
			Date:     tx.Date.Format(time.RFC3339),
			Note:     tx.Note,
		}
	}
	for i, b := range d.Budgets {
		body.Budgets[i] = BudgetProgress{
			ID:       b.ID.String(),
			Category: string(b.Category),
			Limit:    b.Limit.StringFixed(2),
			Spent:    b.Spent.StringFixed(2),
			Progress: b.Progress().StringFixed(4),
			Status:   string(b.Status()),
		}
	}
	return body
}
