package transaction

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/spendwise/internal/handlers/v1/apierror"
	"github.com/carson-networks/spendwise/internal/ledger"
)

type UpdateTransactionInput struct {
	ID   string `path:"id" doc:"Transaction UUID"`
	Body TransactionBody
}

type UpdateTransactionOutput struct{}

type transactionUpdater interface {
	Update(ctx context.Context, t ledger.Transaction) error
}

// UpdateTransactionHandler handles PUT /v1/transaction/{id}. The body
// replaces the whole record.
type UpdateTransactionHandler struct {
	TransactionService transactionUpdater
	now                func() time.Time
}

func NewUpdateTransactionHandler(svc transactionUpdater) *UpdateTransactionHandler {
	return &UpdateTransactionHandler{TransactionService: svc, now: time.Now}
}

func (h *UpdateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "update-transaction",
		Method:        http.MethodPut,
		Path:          "/v1/transaction/{id}",
		Summary:       "Replace transaction",
		Tags:          []string{"Transactions"},
		DefaultStatus: http.StatusNoContent,
	}, h.handle)
}

func (h *UpdateTransactionHandler) handle(ctx context.Context, input *UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	id, err := parseID(input.ID)
	if err != nil {
		return nil, apierror.From(err, "invalid transaction id")
	}
	tx, err := parseTransactionBody(&input.Body, h.now())
	if err != nil {
		return nil, apierror.From(err, "invalid transaction")
	}
	tx.ID = id

	if err := h.TransactionService.Update(ctx, tx); err != nil {
		return nil, apierror.From(err, "failed to update transaction")
	}
	return &UpdateTransactionOutput{}, nil
}
