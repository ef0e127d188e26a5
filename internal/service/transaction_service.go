package service

import (
	"context"
	"fmt"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/spendwise/internal/aggregate"
	"github.com/carson-networks/spendwise/internal/ledger"
	"github.com/carson-networks/spendwise/internal/notify"
	"github.com/carson-networks/spendwise/internal/operator/actions"
	"github.com/carson-networks/spendwise/internal/storage"
	"github.com/carson-networks/spendwise/internal/storage/sqlconfig"
)

// Operator runs a write action inside one storage transaction.
type Operator interface {
	Process(ctx context.Context, action actions.IAction) error
}

// TransactionFilter narrows List. Zero fields match everything.
type TransactionFilter struct {
	From     omit.Val[time.Time]
	To       omit.Val[time.Time]
	Category omit.Val[ledger.Category]
	Query    aggregate.TransactionQuery
	Limit    int
}

// TransactionService handles transaction business logic.
type TransactionService struct {
	storage   *storage.Storage
	operator  Operator
	publisher notify.Publisher
	now       func() time.Time
}

func NewTransactionService(store *storage.Storage, op Operator, publisher notify.Publisher) *TransactionService {
	if publisher == nil {
		publisher = notify.Discard{}
	}
	return &TransactionService{
		storage:   store,
		operator:  op,
		publisher: publisher,
		now:       time.Now,
	}
}

// FetchAll returns every transaction, newest first.
func (s *TransactionService) FetchAll(ctx context.Context) ([]ledger.Transaction, error) {
	return s.list(ctx, &sqlconfig.TransactionFilter{})
}

// FetchByRange returns transactions dated within [from, to], newest first.
func (s *TransactionService) FetchByRange(ctx context.Context, from, to time.Time) ([]ledger.Transaction, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: range ends before it starts", ErrInvalidInput)
	}
	return s.list(ctx, &sqlconfig.TransactionFilter{
		From: omit.From(from),
		To:   omit.From(to),
	})
}

func (s *TransactionService) FetchByCategory(ctx context.Context, category ledger.Category) ([]ledger.Transaction, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, category)
	}
	return s.list(ctx, &sqlconfig.TransactionFilter{Category: omit.From(string(category))})
}

func (s *TransactionService) FetchByID(ctx context.Context, id uuid.UUID) (ledger.Transaction, error) {
	row, err := s.storage.Transactions.FindByID(ctx, id)
	if err != nil {
		return ledger.Transaction{}, err
	}
	return transactionFromStorage(row), nil
}

// List pushes the range and category down to the store and applies the
// type and text query on the result.
func (s *TransactionService) List(ctx context.Context, filter TransactionFilter) ([]ledger.Transaction, error) {
	storageFilter := &sqlconfig.TransactionFilter{
		From: filter.From,
		To:   filter.To,
	}
	if c, ok := filter.Category.Get(); ok {
		storageFilter.Category = omit.From(string(c))
	}

	txs, err := s.list(ctx, storageFilter)
	if err != nil {
		return nil, err
	}

	txs = aggregate.Search(txs, filter.Query)
	if filter.Limit > 0 && len(txs) > filter.Limit {
		txs = txs[:filter.Limit]
	}
	return txs, nil
}

func (s *TransactionService) list(ctx context.Context, filter *sqlconfig.TransactionFilter) ([]ledger.Transaction, error) {
	rows, err := s.storage.Transactions.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return transactionsFromStorage(rows), nil
}

// Save stores a new transaction and returns its ID.
func (s *TransactionService) Save(ctx context.Context, t ledger.Transaction) (uuid.UUID, error) {
	if err := t.Validate(); err != nil {
		return uuid.Nil, err
	}

	create := &actions.CreateTransaction{Values: transactionToStorage(t)}
	if err := s.operator.Process(ctx, create); err != nil {
		return uuid.Nil, err
	}

	s.checkBudgets(ctx, t)
	return create.ID, nil
}

// Update replaces the stored transaction with the same ID.
func (s *TransactionService) Update(ctx context.Context, t ledger.Transaction) error {
	if t.ID == uuid.Nil {
		return fmt.Errorf("%w: transaction id is required", ErrInvalidInput)
	}
	if err := t.Validate(); err != nil {
		return err
	}

	if err := s.operator.Process(ctx, &actions.UpdateTransaction{ID: t.ID, Values: transactionToStorage(t)}); err != nil {
		return err
	}

	s.checkBudgets(ctx, t)
	return nil
}

func (s *TransactionService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.operator.Process(ctx, &actions.DeleteTransaction{ID: id})
}

// checkBudgets publishes an alert for every budget of the written
// transaction's category that is near or over its limit. Failures are
// logged; the write has already committed.
func (s *TransactionService) checkBudgets(ctx context.Context, t ledger.Transaction) {
	if !t.IsExpense() {
		return
	}

	rows, err := s.storage.Budgets.ListByCategory(ctx, string(t.Category))
	if err != nil {
		logrus.WithError(err).Warn("Budget check: failed to load budgets")
		return
	}
	if len(rows) == 0 {
		return
	}

	txs, err := s.FetchByCategory(ctx, t.Category)
	if err != nil {
		logrus.WithError(err).Warn("Budget check: failed to load transactions")
		return
	}

	budgets := aggregate.ApplySpending(budgetsFromStorage(rows), txs)
	now := s.now()
	for _, b := range aggregate.AlertsFor(budgets, t.Category) {
		if err := s.publisher.Publish(ctx, notify.NewAlert(b, now)); err != nil {
			logrus.WithError(err).WithField("budgetID", b.ID.String()).Warn("Budget check: failed to publish alert")
		}
	}
}
