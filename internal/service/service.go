package service

import (
	"time"

	"github.com/carson-networks/spendwise/internal/notify"
	"github.com/carson-networks/spendwise/internal/storage"
)

// Service holds all business logic services.
type Service struct {
	Transaction *TransactionService
	Budget      *BudgetService
	Dashboard   *DashboardService
	Report      *ReportService
}

// NewService wires the services over one storage and write operator. loc
// fixes calendar days and weeks.
func NewService(store *storage.Storage, op Operator, publisher notify.Publisher, loc *time.Location) *Service {
	transactions := NewTransactionService(store, op, publisher)
	budgets := NewBudgetService(store, op, transactions)
	return &Service{
		Transaction: transactions,
		Budget:      budgets,
		Dashboard:   NewDashboardService(transactions, budgets, loc),
		Report:      NewReportService(transactions, loc),
	}
}
