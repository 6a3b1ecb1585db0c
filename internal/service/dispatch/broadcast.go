package dispatch

import (
	"context"
	"fmt"
	"time"

	"dispatch-go-Orurh/internal/domain"
	"dispatch-go-Orurh/internal/logx"
)

// Coordinator offers jobs to candidates and withdraws stale offers.
type Coordinator struct {
	jobs           JobRepository
	publisher      Publisher
	logger         logx.Logger
	publishTimeout time.Duration
	now            func() time.Time
}

// NewCoordinator creates a broadcast Coordinator. Every event gets its own
// publishTimeout, independent of the caller's deadline.
func NewCoordinator(jobs JobRepository, publisher Publisher, logger logx.Logger, publishTimeout time.Duration) *Coordinator {
	if publishTimeout <= 0 {
		publishTimeout = defaultPublishTimeout
	}
	return &Coordinator{
		jobs:           jobs,
		publisher:      publisher,
		logger:         logger,
		publishTimeout: publishTimeout,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// Broadcast records candidates in the job's broadcast set and sends an offer
// to each courier that was not offered before. It returns the newly offered
// couriers and updates job.BroadcastSet in place.
func (c *Coordinator) Broadcast(ctx context.Context, job *domain.Job, candidates []domain.Candidate) ([]int64, error) {
	ids := make([]int64, 0, len(candidates))
	for _, cand := range candidates {
		if job.Offered(cand.CourierID) {
			continue
		}
		ids = append(ids, cand.CourierID)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	now := c.now()
	added, err := c.jobs.AddOffers(ctx, job.ID, ids, now)
	if err != nil {
		return nil, fmt.Errorf("broadcast job %s: %w", job.ID, err)
	}
	job.BroadcastSet = append(job.BroadcastSet, added...)

	for _, courierID := range added {
		c.publish(ctx, domain.NewEvent(domain.EventOfferCreated, job, courierID, now))
	}
	return added, nil
}

// Withdraw voids the offers of every broadcast courier except keep (0 keeps
// nobody).
func (c *Coordinator) Withdraw(ctx context.Context, job *domain.Job, keep int64) {
	now := c.now()
	for _, courierID := range job.BroadcastSet {
		if courierID == keep {
			continue
		}
		c.publish(ctx, domain.NewEvent(domain.EventOfferWithdrawn, job, courierID, now))
	}
}

// Announce publishes a job-level event.
func (c *Coordinator) Announce(ctx context.Context, t domain.EventType, job *domain.Job, courierID int64) {
	c.publish(ctx, domain.NewEvent(t, job, courierID, c.now()))
}

// publish is best effort: the state change is already committed. The
// caller's cancellation is dropped so a slow sink cannot eat the request
// budget or lose the rest of a batch.
func (c *Coordinator) publish(ctx context.Context, ev domain.Event) {
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.publishTimeout)
	defer cancel()

	if err := c.publisher.Publish(pctx, ev); err != nil {
		c.logger.Warn("dispatch event publish failed",
			logx.String("event", string(ev.Type)),
			logx.String("job_id", ev.JobID),
			logx.Int64("courier_id", ev.CourierID),
			logx.Err(err),
		)
	}
}
