package orders

import (
	"context"
	"errors"

	"dispatch-go-Orurh/internal/apperr"
	"dispatch-go-Orurh/internal/domain"
	"dispatch-go-Orurh/internal/logx"
)

// cancelAttempts bounds re-reads when the job moves under an order cancel.
const cancelAttempts = 2

// Processor turns order events into dispatch calls. Redelivered events are
// absorbed: a second "ready" for a live job or a "cancelled" for a job that is
// gone are not errors.
type Processor struct {
	dispatch DispatchPort
	logger   logx.Logger
	factory  *actionFactory
}

// NewProcessor creates a new orders.Processor
func NewProcessor(dispatch DispatchPort, logger logx.Logger) *Processor {
	p := &Processor{
		dispatch: dispatch,
		logger:   logger,
	}
	p.factory = newActionFactory(p.onReady, p.onCancelled, p.onDelivered)
	return p
}

// Handle processes a single orders.Event
func (p *Processor) Handle(ctx context.Context, e Event) error {
	fn, ok := p.factory.get(e.Status)
	if !ok {
		p.logger.Debug("order event ignored",
			logx.String("order_id", e.OrderID),
			logx.String("status", e.Status),
		)
		return nil
	}
	return fn(ctx, e)
}

func (p *Processor) onReady(ctx context.Context, e Event) error {
	_, err := p.dispatch.CreateJob(ctx, domain.NewJob{
		OrderID:      e.OrderID,
		ShopID:       e.ShopID,
		ShopOrderID:  e.ShopOrderID,
		ShopLocation: e.ShopLocation,
	})
	if errors.Is(err, apperr.ErrDuplicateJob) {
		return nil
	}
	return err
}

// onCancelled cancels the live job in whatever state order management finds
// it. The cancel names the status it looked at, so a courier winning the job
// in between makes it fail; the job is then looked up again and the cancel
// repeated against the fresh state.
func (p *Processor) onCancelled(ctx context.Context, e Event) error {
	var err error
	for attempt := 1; attempt <= cancelAttempts; attempt++ {
		var job *domain.Job
		job, err = p.dispatch.FindActiveJob(ctx, e.OrderID, e.ShopOrderID)
		if errors.Is(err, apperr.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		_, err = p.dispatch.CancelJob(ctx, job.ID, job.Status)
		if !errors.Is(err, apperr.ErrIllegalTransition) {
			return err
		}
		p.logger.Info("job changed under order cancel, re-reading",
			logx.String("order_id", e.OrderID),
			logx.String("job_id", job.ID),
			logx.String("seen", string(job.Status)),
			logx.Int("attempt", attempt),
		)
	}
	return err
}

func (p *Processor) onDelivered(ctx context.Context, e Event) error {
	job, err := p.dispatch.FindActiveJob(ctx, e.OrderID, e.ShopOrderID)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	_, err = p.dispatch.CompleteJob(ctx, job.ID)
	return err
}
