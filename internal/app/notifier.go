package app

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"dispatch-go-Orurh/internal/config"
	"dispatch-go-Orurh/internal/logx"
	"dispatch-go-Orurh/internal/notify"
	"dispatch-go-Orurh/internal/transport/kafka"
	"dispatch-go-Orurh/internal/transport/rabbitmq"
)

type notifier struct {
	pub   notify.Publisher
	close func() error
}

type notifierIn struct {
	dig.In
	Config  *config.Config
	Logger  logx.Logger
	Retries prometheus.Counter `name:"publish_retries_total"`
}

var (
	newKafkaProducer = func(brokers []string, topic string) (notifySink, error) {
		return kafka.NewProducer(brokers, topic)
	}
	dialRabbit = func(cfg rabbitmq.Config, logger logx.Logger) (notifySink, error) {
		return rabbitmq.Dial(cfg, logger)
	}
)

type notifySink interface {
	notify.Publisher
	Close() error
}

func newNotifier(in notifierIn) (*notifier, error) {
	cfg := in.Config

	var (
		sink  notify.Publisher
		closeFn = func() error { return nil }
	)
	switch cfg.Notifier.Kind {
	case "kafka":
		p, err := newKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.EventsTopic)
		if err != nil {
			return nil, fmt.Errorf("kafka producer: %w", err)
		}
		sink, closeFn = p, p.Close
	case "rabbitmq":
		p, err := dialRabbit(rabbitmq.Config{
			URL:       cfg.RabbitMQ.URL,
			Exchange:  cfg.RabbitMQ.Exchange,
			Heartbeat: cfg.RabbitMQ.Heartbeat,
		}, in.Logger)
		if err != nil {
			return nil, fmt.Errorf("rabbitmq publisher: %w", err)
		}
		sink, closeFn = p, p.Close
	default:
		sink = notify.NewLogPublisher(in.Logger)
	}

	in.Logger.Info("dispatch notifier ready", logx.String("kind", cfg.Notifier.Kind))
	return &notifier{
		pub: notify.NewRetryingPublisher(sink, in.Logger, in.Retries, notify.RetryConfig{
			MaxAttempts: cfg.Notifier.MaxAttempts,
			BaseDelay:   cfg.Notifier.BaseDelay,
			MaxDelay:    cfg.Notifier.MaxDelay,
		}),
		close: closeFn,
	}, nil
}
