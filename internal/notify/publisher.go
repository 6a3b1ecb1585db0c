// Package notify delivers dispatch events to couriers and order management.
package notify

import (
	"context"
	"errors"
	"fmt"

	"dispatch-go-Orurh/internal/domain"
	"dispatch-go-Orurh/internal/logx"
)

// Publisher sends one dispatch event.
type Publisher interface {
	Publish(ctx context.Context, ev domain.Event) error
}

// PublisherFunc adapts a function to Publisher.
type PublisherFunc func(ctx context.Context, ev domain.Event) error

// Publish calls f.
func (f PublisherFunc) Publish(ctx context.Context, ev domain.Event) error { return f(ctx, ev) }

// LogPublisher writes events to the log. Used when no broker is configured.
type LogPublisher struct {
	logger logx.Logger
}

// NewLogPublisher creates a LogPublisher.
func NewLogPublisher(logger logx.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

// Publish logs the event at info level.
func (p *LogPublisher) Publish(_ context.Context, ev domain.Event) error {
	p.logger.Info("dispatch event",
		logx.String("event", string(ev.Type)),
		logx.String("job_id", ev.JobID),
		logx.String("order_id", ev.OrderID),
		logx.Int64("courier_id", ev.CourierID),
		logx.Int("round", ev.Round),
		logx.Time("occurred_at", ev.OccurredAt),
	)
	return nil
}

// permanentError marks a failure that retrying cannot fix.
type permanentError struct{ err error }

func (e *permanentError) Error() string { return fmt.Sprintf("permanent: %v", e.err) }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent wraps err so that RetryingPublisher gives up at once.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// IsPermanent reports whether err was wrapped with Permanent.
func IsPermanent(err error) bool {
	var pe *permanentError
	return errors.As(err, &pe)
}
