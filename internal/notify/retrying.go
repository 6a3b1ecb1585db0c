package notify

import (
	"context"
	"time"

	"dispatch-go-Orurh/internal/domain"
	"dispatch-go-Orurh/internal/logx"
)

type counter interface {
	Inc()
}

// RetryConfig describes the retry behaviour of RetryingPublisher.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// RetryingPublisher retries transient publish failures with exponential backoff.
type RetryingPublisher struct {
	next    Publisher
	logger  logx.Logger
	retries counter
	cfg     RetryConfig
}

// NewRetryingPublisher wraps next. It returns nil when next is nil.
func NewRetryingPublisher(next Publisher, logger logx.Logger, retries counter, cfg RetryConfig) *RetryingPublisher {
	if next == nil {
		return nil
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}
	return &RetryingPublisher{next: next, logger: logger, retries: retries, cfg: cfg}
}

// Publish sends ev, retrying until it succeeds, fails permanently, the
// attempts run out or ctx is done. The last error is returned.
func (p *RetryingPublisher) Publish(ctx context.Context, ev domain.Event) error {
	var lastErr error
	for attempt := 1; attempt <= p.cfg.MaxAttempts; attempt++ {
		err := p.next.Publish(ctx, ev)
		if err == nil {
			return nil
		}
		lastErr = err

		if ctx.Err() != nil || attempt == p.cfg.MaxAttempts || IsPermanent(err) {
			break
		}

		delay := backoff(p.cfg.BaseDelay, p.cfg.MaxDelay, attempt)
		if p.retries != nil {
			p.retries.Inc()
		}
		p.logger.Warn("dispatch event publish retry",
			logx.String("event", string(ev.Type)),
			logx.String("job_id", ev.JobID),
			logx.Int("attempt", attempt),
			logx.Duration("delay", delay),
			logx.Err(err),
		)
		if !sleepWithContext(ctx, delay) {
			break
		}
	}
	return lastErr
}

// backoff doubles base on every attempt, capped by limit.
func backoff(base, limit time.Duration, attempt int) time.Duration {
	d := base << (attempt - 1)
	if d > limit || d < 0 {
		return limit
	}
	return d
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
