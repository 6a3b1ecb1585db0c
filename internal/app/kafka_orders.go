package app

import (
	"context"

	"go.uber.org/dig"

	"dispatch-go-Orurh/internal/config"
	"dispatch-go-Orurh/internal/logx"
	"dispatch-go-Orurh/internal/service/dispatch"
	"dispatch-go-Orurh/internal/service/orders"
	"dispatch-go-Orurh/internal/transport/kafka"
)

type orderHandler interface {
	Handle(ctx context.Context, e orders.Event) error
}

// makeOrdersKafka adapts the processor to the consumer. Errors the dispatch
// engine considers final are marked permanent so the message is committed
// instead of being redelivered forever.
func makeOrdersKafka(p orderHandler) kafka.HandleFunc {
	return func(ctx context.Context, event orders.Event) error {
		err := p.Handle(ctx, event)
		if err != nil && dispatch.IsTerminalError(err) {
			return kafka.Permanent(err)
		}
		return err
	}
}

var newOrdersConsumer = kafka.NewConsumer

func registerKafka(container *dig.Container) error {
	return provideAll(container,
		func(cfg *config.Config, logger logx.Logger, p *orders.Processor) (*kafka.Consumer, error) {
			return newOrdersConsumer(logger, cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.OrdersTopic, makeOrdersKafka(p))
		},
	)
}
