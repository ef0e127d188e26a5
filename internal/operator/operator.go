package operator

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/spendwise/internal/operator/actions"
	"github.com/carson-networks/spendwise/internal/storage"
)

// Operator is one worker draining the shared write queue.
type Operator struct {
	id      int
	storage *storage.Storage
	queue   chan ActionItem
}

func NewOperator(id int, s *storage.Storage, queue chan ActionItem) *Operator {
	return &Operator{
		id:      id,
		storage: s,
		queue:   queue,
	}
}

// Run processes items until the queue is closed.
func (o *Operator) Run() {
	for item := range o.queue {
		start := time.Now()
		err := o.processItem(item)
		item.response <- ActionItemResponse{err: err}

		entry := logrus.WithFields(logrus.Fields{
			"worker":   o.id,
			"action":   actions.Name(item.action),
			"duration": time.Since(start).Milliseconds(),
		})
		if err != nil {
			entry.WithError(err).Debug("action failed")
		} else {
			entry.Debug("action committed")
		}
	}
}

func (o *Operator) processItem(item ActionItem) error {
	// The caller may have given up while the item sat in the queue.
	if err := item.ctx.Err(); err != nil {
		return err
	}

	writer, err := o.storage.Write(item.ctx)
	if err != nil {
		return err
	}

	if err = item.action.Perform(item.ctx, writer); err != nil {
		if rbErr := writer.Rollback(item.ctx); rbErr != nil {
			logrus.WithError(rbErr).Warn("rollback failed")
		}
		return err
	}

	return writer.Commit(item.ctx)
}

type ActionItem struct {
	ctx      context.Context
	action   actions.IAction
	response chan ActionItemResponse
}

type ActionItemResponse struct {
	err error
}
