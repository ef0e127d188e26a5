package transaction

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/spendwise/internal/aggregate"
	"github.com/carson-networks/spendwise/internal/handlers/v1/apierror"
	"github.com/carson-networks/spendwise/internal/ledger"
	"github.com/carson-networks/spendwise/internal/logging"
	"github.com/carson-networks/spendwise/internal/service"
)

// ListTransactionsInput is the Huma input for listing transactions.
type ListTransactionsInput struct {
	From     string `query:"from" doc:"RFC3339 lower bound, inclusive"`
	To       string `query:"to" doc:"RFC3339 upper bound, inclusive"`
	Category string `query:"category" doc:"Only this category"`
	Type     string `query:"type" doc:"income or expense"`
	Search   string `query:"search" doc:"Case-insensitive match on category or note"`
	Limit    int    `query:"limit" minimum:"0" maximum:"1000" doc:"Maximum number of transactions, 0 for all"`
	Grouped  bool   `query:"grouped" doc:"Group the result by calendar day"`
}

// DayGroup is one calendar day of transactions, newest first.
type DayGroup struct {
	Day          string        `json:"day" doc:"RFC3339 start of the day"`
	Transactions []Transaction `json:"transactions"`
}

// ListTransactionsResponseBody is the response body for listing transactions.
type ListTransactionsResponseBody struct {
	Transactions []Transaction `json:"transactions" doc:"Matching transactions, newest first"`
	Days         []DayGroup    `json:"days,omitempty" doc:"The same transactions grouped by day, when requested"`
}

// ListTransactionsOutput is the Huma output for listing transactions.
type ListTransactionsOutput struct {
	Body ListTransactionsResponseBody
}

// transactionLister is the interface for listing transactions.
type transactionLister interface {
	List(ctx context.Context, filter service.TransactionFilter) ([]ledger.Transaction, error)
}

// ListTransactionsHandler handles GET /v1/transactions.
type ListTransactionsHandler struct {
	TransactionService transactionLister
	loc                *time.Location
}

func NewListTransactionsHandler(svc transactionLister, loc *time.Location) *ListTransactionsHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &ListTransactionsHandler{TransactionService: svc, loc: loc}
}

// Register registers the list transactions endpoint with the Huma API.
func (h *ListTransactionsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-transactions",
		Method:      http.MethodGet,
		Path:        "/v1/transactions",
		Summary:     "List transactions",
		Description: "Returns transactions newest first, optionally filtered, searched and grouped by day.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

// parseListTransactionsInput parses and validates the query parameters.
func parseListTransactionsInput(input *ListTransactionsInput) (service.TransactionFilter, error) {
	var filter service.TransactionFilter

	if input.From != "" {
		from, err := time.Parse(time.RFC3339, input.From)
		if err != nil {
			return filter, fmt.Errorf("%w: from: %v", service.ErrInvalidInput, err)
		}
		filter.From = omit.From(from)
	}
	if input.To != "" {
		to, err := time.Parse(time.RFC3339, input.To)
		if err != nil {
			return filter, fmt.Errorf("%w: to: %v", service.ErrInvalidInput, err)
		}
		filter.To = omit.From(to)
	}
	if input.Category != "" {
		category, err := ledger.ParseCategory(input.Category)
		if err != nil {
			return filter, err
		}
		filter.Category = omit.From(category)
	}
	if input.Type != "" {
		typ, err := ledger.ParseTransactionType(input.Type)
		if err != nil {
			return filter, err
		}
		filter.Query.Type = typ
	}
	filter.Query.Text = input.Search
	filter.Limit = input.Limit
	return filter, nil
}

func (h *ListTransactionsHandler) handle(ctx context.Context, input *ListTransactionsInput) (*ListTransactionsOutput, error) {
	logData := logging.GetLogData(ctx)
	filter, err := parseListTransactionsInput(input)
	if err != nil {
		return nil, apierror.From(err, "invalid query")
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("listTransactionsMs")
	}
	transactions, err := h.TransactionService.List(ctx, filter)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, apierror.From(err, "failed to list transactions")
	}

	if logData != nil {
		logData.AddData("transactionCount", len(transactions))
	}

	resp := ListTransactionsResponseBody{Transactions: fromLedgerList(transactions)}
	if input.Grouped {
		groups := aggregate.GroupByDay(transactions, h.loc)
		resp.Days = make([]DayGroup, len(groups))
		for i, g := range groups {
			resp.Days[i] = DayGroup{
				Day:          g.Day.Format(time.RFC3339),
				Transactions: fromLedgerList(g.Transactions),
			}
		}
	}

	return &ListTransactionsOutput{Body: resp}, nil
}
