package transaction

import (
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/spendwise/internal/ledger"
	"github.com/carson-networks/spendwise/internal/money"
	"github.com/carson-networks/spendwise/internal/service"
)

// Transaction is the API response model for a transaction.
// It is used only for responses, not for request bodies.
type Transaction struct {
	ID                string `json:"id" doc:"Transaction UUID"`
	Amount            string `json:"amount" doc:"Decimal amount, never negative"`
	Type              string `json:"type" doc:"income or expense"`
	Category          string `json:"category" doc:"Spending category"`
	Date              string `json:"date" doc:"RFC3339 transaction date"`
	Note              string `json:"note" doc:"Free text note"`
	IsRecurring       bool   `json:"isRecurring" doc:"Whether the transaction is flagged recurring"`
	RecurringInterval string `json:"recurringInterval,omitempty" doc:"daily, weekly, monthly or yearly"`
	CreatedAt         string `json:"createdAt" doc:"RFC3339 creation time"`
}

func fromLedger(t ledger.Transaction) Transaction {
	return Transaction{
		ID:                t.ID.String(),
		Amount:            t.Amount.StringFixed(2),
		Type:              string(t.Type),
		Category:          string(t.Category),
		Date:              t.Date.Format(time.RFC3339),
		Note:              t.Note,
		IsRecurring:       t.IsRecurring,
		RecurringInterval: string(t.Interval),
		CreatedAt:         t.CreatedAt.Format(time.RFC3339),
	}
}

func fromLedgerList(txs []ledger.Transaction) []Transaction {
	out := make([]Transaction, len(txs))
	for i, t := range txs {
		out[i] = fromLedger(t)
	}
	return out
}

// TransactionBody is the request body for creating or replacing a transaction.
type TransactionBody struct {
	Amount            string `json:"amount" required:"true" doc:"Non-negative decimal amount"`
	Type              string `json:"type" required:"true" doc:"income or expense"`
	Category          string `json:"category" required:"true" doc:"One of food, transport, entertainment, bills, shopping, health, education, other"`
	Date              string `json:"date,omitempty" doc:"RFC3339 transaction date, defaults to now"`
	Note              string `json:"note,omitempty" maxLength:"500" doc:"Free text note"`
	IsRecurring       bool   `json:"isRecurring,omitempty" doc:"Flag the transaction as recurring"`
	RecurringInterval string `json:"recurringInterval,omitempty" doc:"Required when recurring: daily, weekly, monthly or yearly"`
}

// parseTransactionBody converts the body into a transaction. A missing date
// becomes now. Errors wrap service.ErrInvalidInput.
func parseTransactionBody(body *TransactionBody, now time.Time) (ledger.Transaction, error) {
	amount, err := money.Parse(body.Amount)
	if err != nil {
		return ledger.Transaction{}, fmt.Errorf("%w: amount: %v", service.ErrInvalidInput, err)
	}
	typ, err := ledger.ParseTransactionType(body.Type)
	if err != nil {
		return ledger.Transaction{}, err
	}
	category, err := ledger.ParseCategory(body.Category)
	if err != nil {
		return ledger.Transaction{}, err
	}

	date := now
	if body.Date != "" {
		date, err = time.Parse(time.RFC3339, body.Date)
		if err != nil {
			return ledger.Transaction{}, fmt.Errorf("%w: date: %v", service.ErrInvalidInput, err)
		}
	}

	var interval ledger.RecurringInterval
	if body.RecurringInterval != "" {
		interval, err = ledger.ParseRecurringInterval(body.RecurringInterval)
		if err != nil {
			return ledger.Transaction{}, err
		}
	}

	return ledger.Transaction{
		Amount:      amount,
		Type:        typ,
		Category:    category,
		Date:        date,
		Note:        body.Note,
		IsRecurring: body.IsRecurring,
		Interval:    interval,
	}, nil
}

func parseID(raw string) (uuid.UUID, error) {
	id, err := uuid.FromString(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: id: %v", service.ErrInvalidInput, err)
	}
	return id, nil
}
