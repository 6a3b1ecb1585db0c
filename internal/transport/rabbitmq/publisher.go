// Package rabbitmq publishes dispatch events to a RabbitMQ topic exchange.
package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"dispatch-go-Orurh/internal/domain"
	"dispatch-go-Orurh/internal/logx"
	"dispatch-go-Orurh/internal/notify"
)

// Config holds RabbitMQ connection settings.
type Config struct {
	URL       string
	Exchange  string
	Heartbeat time.Duration
}

type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Publisher sends every event to the exchange with the event type as routing
// key, so consumers can bind to "offer.*" or "job.*".
type Publisher struct {
	ch       channel
	conn     io.Closer
	exchange string
	logger   logx.Logger
	now      func() time.Time
}

// Dial connects, declares a durable topic exchange and returns a Publisher.
func Dial(cfg Config, logger logx.Logger) (*Publisher, error) {
	if cfg.URL == "" || cfg.Exchange == "" {
		return nil, errors.New("rabbitmq: url and exchange are required")
	}

	conn, err := amqp.DialConfig(cfg.URL, amqp.Config{
		Heartbeat: cfg.Heartbeat,
		Locale:    "en_US",
	})
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		cfg.Exchange,
		amqp.ExchangeTopic,
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq declare exchange %q: %w", cfg.Exchange, err)
	}

	logger.Info("rabbitmq publisher ready", logx.String("exchange", cfg.Exchange))
	return newPublisher(ch, conn, cfg.Exchange, logger), nil
}

func newPublisher(ch channel, conn io.Closer, exchange string, logger logx.Logger) *Publisher {
	return &Publisher{
		ch:       ch,
		conn:     conn,
		exchange: exchange,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Publish sends ev as a persistent JSON message.
func (p *Publisher) Publish(ctx context.Context, ev domain.Event) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return notify.Permanent(fmt.Errorf("encode event: %w", err))
	}

	err = p.ch.PublishWithContext(ctx,
		p.exchange,
		string(ev.Type),
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    fmt.Sprintf("%s:%s:%d", ev.JobID, ev.Type, ev.CourierID),
			Timestamp:    p.now(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("rabbitmq publish %s: %w", ev.Type, err)
	}
	return nil
}

// Close closes the channel and the connection.
func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	var errs []error
	if err := p.ch.Close(); err != nil {
		errs = append(errs, err)
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
