package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/dig"

	"dispatch-go-Orurh/internal/logx"
	"dispatch-go-Orurh/internal/transport/kafka"
)

// WorkerRunner runs the order-event consumer process.
type WorkerRunner struct {
	runFn func(*dig.Container) error
}

// NewWorkerRunner returns a new WorkerRunner.
func NewWorkerRunner() *WorkerRunner {
	return &WorkerRunner{runFn: runWorker}
}

// MustRun consumes until the context is cancelled and panics on any other
// error.
func (r *WorkerRunner) MustRun(container *dig.Container) {
	err := r.runFn(container)
	if err == nil || errors.Is(err, context.Canceled) {
		return
	}
	panic(err)
}

type workerIn struct {
	dig.In

	Ctx      context.Context
	Logger   logx.Logger
	Consumer *kafka.Consumer
	Storage  *storage
	Notifier *notifier
}

func runWorker(container *dig.Container) error {
	return container.Invoke(func(in workerIn) error {
		return workerRun(in.Ctx, in.Logger, in.Consumer, in.Notifier, in.Storage)
	})
}

func workerRun(ctx context.Context, logger logx.Logger, consumer *kafka.Consumer, n *notifier, st *storage) error {
	if consumer == nil {
		return fmt.Errorf("kafka consumer is nil: set KAFKA_BROKERS, KAFKA_GROUP_ID and KAFKA_ORDERS_TOPIC")
	}
	defer closeResources(logger, consumer, n, st)

	logger.Info("service-dispatch-worker started")
	return consumer.Run(ctx)
}
