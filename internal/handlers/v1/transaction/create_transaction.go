package transaction

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/spendwise/internal/handlers/v1/apierror"
	"github.com/carson-networks/spendwise/internal/ledger"
	"github.com/carson-networks/spendwise/internal/logging"
)

// CreateTransactionInput is the Huma input for creating a transaction.
type CreateTransactionInput struct {
	Body TransactionBody
}

// CreateTransactionResponse is the response body for creating a transaction.
type CreateTransactionResponse struct {
	ID string `json:"id" doc:"UUID of the new transaction"`
}

// CreateTransactionOutput is the Huma output for creating a transaction.
type CreateTransactionOutput struct {
	Body CreateTransactionResponse
}

type transactionSaver interface {
	Save(ctx context.Context, t ledger.Transaction) (uuid.UUID, error)
}

// CreateTransactionHandler handles POST /v1/transaction.
type CreateTransactionHandler struct {
	TransactionService transactionSaver
	now                func() time.Time
}

func NewCreateTransactionHandler(svc transactionSaver) *CreateTransactionHandler {
	return &CreateTransactionHandler{TransactionService: svc, now: time.Now}
}

// Register registers the create transaction endpoint with the Huma API.
func (h *CreateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-transaction",
		Method:        http.MethodPost,
		Path:          "/v1/transaction",
		Summary:       "Create transaction",
		Description:   "Creates a new income or expense.",
		Tags:          []string{"Transactions"},
		DefaultStatus: http.StatusCreated,
	}, h.handle)
}

func (h *CreateTransactionHandler) handle(ctx context.Context, input *CreateTransactionInput) (*CreateTransactionOutput, error) {
	logData := logging.GetLogData(ctx)

	tx, err := parseTransactionBody(&input.Body, h.now())
	if err != nil {
		return nil, apierror.From(err, "invalid transaction")
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("saveTransactionMs")
	}
	id, err := h.TransactionService.Save(ctx, tx)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, apierror.From(err, "failed to create transaction")
	}

	if logData != nil {
		logData.AddData("transactionID", id.String())
	}
	return &CreateTransactionOutput{Body: CreateTransactionResponse{ID: id.String()}}, nil
}
