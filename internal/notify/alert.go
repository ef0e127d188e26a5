// Package notify publishes budget alerts raised after a transaction write.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/spendwise/internal/ledger"
)

// Alert describes a budget that is near its limit or over it.
type Alert struct {
	BudgetID  uuid.UUID           `json:"budget_id"`
	Category  ledger.Category     `json:"category"`
	Status    ledger.BudgetStatus `json:"status"`
	Limit     string              `json:"limit"`
	Spent     string              `json:"spent"`
	Remaining string              `json:"remaining"`
	Progress  string              `json:"progress"`
	RaisedAt  time.Time           `json:"raised_at"`
}

func NewAlert(b ledger.Budget, at time.Time) Alert {
	return Alert{
		BudgetID:  b.ID,
		Category:  b.Category,
		Status:    b.Status(),
		Limit:     b.Limit.StringFixed(2),
		Spent:     b.Spent.StringFixed(2),
		Remaining: b.Remaining().StringFixed(2),
		Progress:  b.Progress().StringFixed(4),
		RaisedAt:  at.UTC(),
	}
}

func (a Alert) ToJSON() ([]byte, error) {
	body, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("marshal alert: %w", err)
	}
	return body, nil
}

// Publisher delivers alerts somewhere outside the process.
type Publisher interface {
	Publish(ctx context.Context, alert Alert) error
	Close() error
}
