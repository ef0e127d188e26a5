package notify

import (
	"context"

	"github.com/sirupsen/logrus"
)

// LogPublisher writes alerts to the log. It is used when no broker is configured.
type LogPublisher struct {
	logger logrus.FieldLogger
}

func NewLogPublisher(logger logrus.FieldLogger) *LogPublisher {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(_ context.Context, alert Alert) error {
	p.logger.WithFields(logrus.Fields{
		"budgetID": alert.BudgetID.String(),
		"category": alert.Category,
		"status":   alert.Status,
		"limit":    alert.Limit,
		"spent":    alert.Spent,
		"progress": alert.Progress,
	}).Warn("Budget alert")
	return nil
}

func (p *LogPublisher) Close() error { return nil }
