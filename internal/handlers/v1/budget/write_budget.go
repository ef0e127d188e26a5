package budget

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/spendwise/internal/handlers/v1/apierror"
	"github.com/carson-networks/spendwise/internal/ledger"
	"github.com/carson-networks/spendwise/internal/logging"
)

type budgetWriter interface {
	Save(ctx context.Context, b ledger.Budget) (uuid.UUID, error)
	Update(ctx context.Context, b ledger.Budget) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type CreateBudgetInput struct {
	Body BudgetBody
}

type CreateBudgetResponse struct {
	ID string `json:"id" doc:"UUID of the new budget"`
}

type CreateBudgetOutput struct {
	Body CreateBudgetResponse
}

type UpdateBudgetInput struct {
	ID   string `path:"id" doc:"Budget UUID"`
	Body BudgetBody
}

type DeleteBudgetInput struct {
	ID string `path:"id" doc:"Budget UUID"`
}

type NoContentOutput struct{}

// WriteBudgetHandler handles POST /v1/budget and PUT, DELETE /v1/budget/{id}.
type WriteBudgetHandler struct {
	BudgetService budgetWriter
}

func NewWriteBudgetHandler(svc budgetWriter) *WriteBudgetHandler {
	return &WriteBudgetHandler{BudgetService: svc}
}

func (h *WriteBudgetHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-budget",
		Method:        http.MethodPost,
		Path:          "/v1/budget",
		Summary:       "Create budget",
		Description:   "Creates a spending limit for a category. A category holds one budget.",
		Tags:          []string{"Budgets"},
		DefaultStatus: http.StatusCreated,
	}, h.create)

	huma.Register(api, huma.Operation{
		OperationID:   "update-budget",
		Method:        http.MethodPut,
		Path:          "/v1/budget/{id}",
		Summary:       "Replace budget",
		Tags:          []string{"Budgets"},
		DefaultStatus: http.StatusNoContent,
	}, h.update)

	huma.Register(api, huma.Operation{
		OperationID:   "delete-budget",
		Method:        http.MethodDelete,
		Path:          "/v1/budget/{id}",
		Summary:       "Delete budget",
		Tags:          []string{"Budgets"},
		DefaultStatus: http.StatusNoContent,
	}, h.delete)
}

func (h *WriteBudgetHandler) create(ctx context.Context, input *CreateBudgetInput) (*CreateBudgetOutput, error) {
	b, err := parseBudgetBody(&input.Body)
	if err != nil {
		return nil, apierror.From(err, "invalid budget")
	}

	id, err := h.BudgetService.Save(ctx, b)
	if err != nil {
		return nil, apierror.From(err, "failed to create budget")
	}

	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("budgetID", id.String())
	}
	return &CreateBudgetOutput{Body: CreateBudgetResponse{ID: id.String()}}, nil
}

func (h *WriteBudgetHandler) update(ctx context.Context, input *UpdateBudgetInput) (*NoContentOutput, error) {
	id, err := parseID(input.ID)
	if err != nil {
		return nil, apierror.From(err, "invalid budget id")
	}
	b, err := parseBudgetBody(&input.Body)
	if err != nil {
		return nil, apierror.From(err, "invalid budget")
	}
	b.ID = id

	if err := h.BudgetService.Update(ctx, b); err != nil {
		return nil, apierror.From(err, "failed to update budget")
	}
	return &NoContentOutput{}, nil
}

func (h *WriteBudgetHandler) delete(ctx context.Context, input *DeleteBudgetInput) (*NoContentOutput, error) {
	id, err := parseID(input.ID)
	if err != nil {
		return nil, apierror.From(err, "invalid budget id")
	}
	if err := h.BudgetService.Delete(ctx, id); err != nil {
		return nil, apierror.From(err, "failed to delete budget")
	}
	return &NoContentOutput{}, nil
}
