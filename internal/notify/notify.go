package notify

import (
	"context"

	"github.com/carson-networks/spendwise/internal/config"
)

var (
	_ Publisher = Discard{}
	_ Publisher = (*LogPublisher)(nil)
	_ Publisher = (*AMQPPublisher)(nil)
)

// NewPublisher dials the broker when AMQP_URL is set and logs otherwise.
func NewPublisher(env *config.Config) (Publisher, error) {
	if env.AMQPURL == "" {
		return NewLogPublisher(nil), nil
	}
	return NewAMQPPublisher(env.AMQPURL, env.AMQPExchange, env.AMQPQueue)
}

// Discard drops every alert.
type Discard struct{}

func (Discard) Publish(context.Context, Alert) error { return nil }
func (Discard) Close() error { return nil }
