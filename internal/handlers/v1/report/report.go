package report

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

type Window struct {
	Start string `json:"start" doc:"RFC3339, inclusive"`
	End   string `json:"end" doc:"RFC3339, inclusive"`
}

type Comparison struct {
	Current       string `json:"current"`
	Previous      string `json:"previous"`
	Delta         string `json:"delta"`
	PercentChange string `json:"percentChange" doc:"0 when the previous window had no expenses"`
}

type CategoryShare struct {
	Category   string `json:"category"`
	Total      string `json:"total"`
	Percentage string `json:"percentage"`
}

type DailyTotal struct {
	Day     string `json:"day" doc:"RFC3339 start of the day"`
	Income  string `json:"income"`
	Expense string `json:"expense"`
	Net     string `json:"net"`
}

// ReportResponseBody is the reports screen for one window.
type ReportResponseBody struct {
	Period          string          `json:"period"`
	Current         Window          `json:"current"`
	Previous        Window          `json:"previous"`
	Income          string          `json:"income"`
	Expense         string          `json:"expense"`
	Savings         string          `json:"savings"`
	PreviousExpense string          `json:"previousExpense"`
	Comparison      Comparison      `json:"comparison"`
	Categories      []CategoryShare `json:"categories"`
	Daily           []DailyTotal    `json:"daily" doc:"Days with activity, oldest first"`
	LoadedAt        string          `json:"loadedAt"`
	Stale           bool            `json:"stale"`
	StaleReason     string          `json:"staleReason,omitempty"`
}

type ReportInput struct {
	Period string `query:"period" default:"month" enum:"week,month,year" doc:"Report window ending now"`
}

type ReportOutput struct {
	Body ReportResponseBody
}

type reportLoader interface {
	Load(ctx context.Context, period ledger.ReportPeriod) (service.Report, error)
}

// ReportHandler handles GET /v1/report and GET /v1/report/export.
type ReportHandler struct {
	ReportService reportLoader
}

func NewReportHandler(svc reportLoader) *ReportHandler {
	return &ReportHandler{ReportService: svc}
}

func (h *ReportHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-report",
		Method:      http.MethodGet,
		Path:        "/v1/report",
		Summary:     "Report",
		Description: "Income, expenses and savings for the last week, month or year, compared with the window before it.",
		Tags:        []string{"Reports"},
	}, h.handle)

	huma.Register(api, huma.Operation{
		OperationID: "export-report",
		Method:      http.MethodGet,
		Path:        "/v1/report/export",
		Summary:     "Export report",
		Description: "Renders the report as an XLSX workbook or a PDF document.",
		Tags:        []string{"Reports"},
	}, h.export)
}

func (h *ReportHandler) load(ctx context.Context, rawPeriod string) (service.Report, error) {
	period, err := ledger.ParseReportPeriod(rawPeriod)
	if err != nil {
		return service.Report{}, apierror.From(err, "invalid period")
	}

	logData := logging.GetLogData(ctx)
	if logData != nil {
		logData.AddData("period", string(period))
		defer logData.AddTiming("reportMs")()
	}

	r, err := h.ReportService.Load(ctx, period)
	if err != nil {
		return service.Report{}, apierror.From(err, "failed to load report")
	}
	return r, nil
}

func (h *ReportHandler) handle(ctx context.Context, input *ReportInput) (*ReportOutput, error) {
	r, err := h.load(ctx, input.Period)
	if err != nil {
		return nil, err
	}
	return &ReportOutput{Body: toResponse(r)}, nil
}

func toResponse(r service.Report) ReportResponseBody {
	body := ReportResponseBody{
		Period:          string(r.Period),
		Current:         Window{Start: r.Current.Start.Format(time.RFC3339), End: r.Current.End.Format(time.RFC3339)},
		Previous:        Window{Start: r.Previous.Start.Format(time.RFC3339), End: r.Previous.End.Format(time.RFC3339)},
		Income:          r.Income.StringFixed(2),
		Expense:         r.Expense.StringFixed(2),
		Savings:         r.Savings.StringFixed(2),
		PreviousExpense: r.PreviousExpense.StringFixed(2),
		Comparison: Comparison{
			Current:       r.Comparison.Current.StringFixed(2),
			Previous:      r.Comparison.Previous.StringFixed(2),
			Delta:         r.Comparison.Delta.StringFixed(2),
			PercentChange: r.Comparison.PercentChange.StringFixed(2),
		},
		Categories:  make([]CategoryShare, len(r.Categories)),
		Daily:       make([]DailyTotal, len(r.Daily)),
		LoadedAt:    r.LoadedAt.Format(time.RFC3339),
		Stale:       r.Stale,
		StaleReason: r.StaleReason,
	}
	for i, share := range r.Categories {
		body.Categories[i] = CategoryShare{
			Category:   string(share.Category),
			Total:      share.Total.StringFixed(2),
			Percentage: share.Percentage.StringFixed(2),
		}
	}
	for i, day := range r.Daily {
		body.Daily[i] = DailyTotal{
			Day:     day.Day.Format(time.RFC3339),
			Income:  day.Income.StringFixed(2),
			Expense: day.Expense.StringFixed(2),
			Net:     day.Net().StringFixed(2),
		}
	}
	return body
}
