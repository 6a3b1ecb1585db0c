package dispatch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"dispatch-go-Orurh/internal/apperr"
	"dispatch-go-Orurh/internal/domain"
	"dispatch-go-Orurh/internal/logx"
)

// Deps groups the collaborators of Service. Publisher, Times, Metrics, Logger,
// Clock and NewID are optional.
type Deps struct {
	Jobs      JobRepository
	Couriers  CourierSource
	Publisher Publisher
	Times     TimeFactory
	Metrics   Recorder
	Logger    logx.Logger
	Clock     func() time.Time
	NewID     func() string
}

// Service is the dispatch facade used by order management and courier clients.
type Service struct {
	jobs     JobRepository
	couriers CourierSource
	times    TimeFactory
	selector *Selector
	coord    *Coordinator
	machine  *Machine
	metrics  Recorder
	logger   logx.Logger
	opts     Options
	now      func() time.Time
	newID    func() string
}

// NewService wires the dispatch components around a single job store.
func NewService(d Deps, opts Options) *Service {
	opts = opts.withDefaults()
	if d.Metrics == nil {
		d.Metrics = nopRecorder{}
	}
	if d.Logger == nil {
		d.Logger = logx.Nop()
	}
	if d.Times == nil {
		d.Times = NewTimeFactory()
	}
	if d.Publisher == nil {
		d.Publisher = nopPublisher{}
	}
	if d.Clock == nil {
		d.Clock = func() time.Time { return time.Now().UTC() }
	}
	if d.NewID == nil {
		d.NewID = uuid.NewString
	}

	s := &Service{
		jobs:     d.Jobs,
		couriers: d.Couriers,
		times:    d.Times,
		selector: NewSelector(d.Couriers, opts),
		coord:    NewCoordinator(d.Jobs, d.Publisher, d.Logger, opts.PublishTimeout),
		machine:  NewMachine(d.Jobs, opts, d.Metrics, d.Logger),
		metrics:  d.Metrics,
		logger:   d.Logger,
		opts:     opts,
		now:      d.Clock,
		newID:    d.NewID,
	}
	s.selector.now = s.now
	s.coord.now = s.now
	s.machine.now = s.now
	return s
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.opts.OperationTimeout)
}

// CreateJob registers a shop-portion ready for pickup and runs the first
// broadcast round. A failed first round is retried by the sweeper.
func (s *Service) CreateJob(ctx context.Context, in domain.NewJob) (*domain.Job, error) {
	in, err := validateNewJob(in)
	if err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	now := s.now()
	job := &domain.Job{
		ID:           s.newID(),
		OrderID:      in.OrderID,
		ShopID:       in.ShopID,
		ShopOrderID:  in.ShopOrderID,
		ShopLocation: in.ShopLocation,
		Status:       domain.JobBroadcasting,
		NextRoundAt:  &now,
		Version:      1,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, err
	}

	s.logger.Info("dispatch job created",
		logx.String("event", "job_created"),
		logx.String("job_id", job.ID),
		logx.String("order_id", job.OrderID),
		logx.String("shop_order_id", job.ShopOrderID),
	)

	if err := s.runRound(ctx, job.ID); err != nil {
		s.logger.Warn("first broadcast round failed",
			logx.String("job_id", job.ID),
			logx.Err(err),
		)
	}

	if cur, err := s.jobs.Get(ctx, job.ID); err == nil && cur != nil {
		return cur, nil
	}
	return job, nil
}

// GetStatus returns a snapshot of the job.
func (s *Service) GetStatus(ctx context.Context, jobID string) (*domain.Job, error) {
	jobID, err := validateJobID(jobID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	job, err := s.jobs.Get(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, apperr.ErrNotFound
	}
	return job, nil
}

// FindActiveJob returns the live job of a shop-portion.
func (s *Service) FindActiveJob(ctx context.Context, orderID, shopOrderID string) (*domain.Job, error) {
	orderID = strings.TrimSpace(orderID)
	shopOrderID = strings.TrimSpace(shopOrderID)
	if orderID == "" || shopOrderID == "" {
		return nil, apperr.ErrInvalid
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	job, err := s.jobs.FindActive(ctx, orderID, shopOrderID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, apperr.ErrNotFound
	}
	return job, nil
}

// CancelJob moves the job to cancelled. expected is the status the caller
// last saw: empty means broadcasting. Once a courier has won, only a caller
// that names assigned explicitly may cancel; everyone else gets
// apperr.ErrIllegalTransition. Cancelling an assigned job un-assigns the
// courier and tells them through job.cancelled.
func (s *Service) CancelJob(ctx context.Context, jobID string, expected domain.JobStatus) (*domain.Job, error) {
	jobID, err := validateJobID(jobID)
	if err != nil {
		return nil, err
	}
	if expected == "" {
		expected = domain.JobBroadcasting
	}
	if expected != domain.JobBroadcasting && expected != domain.JobAssigned {
		return nil, fmt.Errorf("cancel from %q: %w", expected, apperr.ErrInvalid)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var courierID int64
	job, err := s.machine.Transition(ctx, jobID, func(j *domain.Job) error {
		if j.Status != expected {
			return fmt.Errorf("cancel expected %s, job is %s: %w", expected, j.Status, apperr.ErrIllegalTransition)
		}
		courierID = 0
		if j.AssignedCourier != nil {
			courierID = *j.AssignedCourier
		}
		j.Status = domain.JobCancelled
		j.AssignedCourier = nil
		j.Deadline = nil
		j.NextRoundAt = nil
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.coord.Announce(ctx, domain.EventJobCancelled, job, courierID)
	if expected == domain.JobBroadcasting {
		s.coord.Withdraw(ctx, job, 0)
	}

	s.logger.Info("dispatch job cancelled",
		logx.String("event", "job_cancelled"),
		logx.String("job_id", job.ID),
		logx.String("from", string(expected)),
		logx.Int64("courier_id", courierID),
	)
	return job, nil
}

// CompleteJob marks an assigned job as delivered.
func (s *Service) CompleteJob(ctx context.Context, jobID string) (*domain.Job, error) {
	jobID, err := validateJobID(jobID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	job, err := s.machine.Transition(ctx, jobID, func(j *domain.Job) error {
		j.Status = domain.JobCompleted
		return nil
	})
	if err != nil {
		return nil, err
	}

	courierID := *job.AssignedCourier
	s.coord.Announce(ctx, domain.EventJobCompleted, job, courierID)
	s.logger.Info("dispatch job completed",
		logx.String("event", "job_completed"),
		logx.String("job_id", job.ID),
		logx.Int64("courier_id", courierID),
	)
	return job, nil
}

// Release reopens an assigned job on behalf of its courier. The broadcast set
// is kept, so couriers offered before are not offered again. The releasing
// courier is recorded as declined and can no longer accept the job.
func (s *Service) Release(ctx context.Context, jobID string, courierID int64) (*domain.Job, error) {
	jobID, err := validateJobID(jobID)
	if err != nil {
		return nil, err
	}
	if courierID <= 0 {
		return nil, apperr.ErrInvalid
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	job, err := s.machine.Transition(ctx, jobID, func(j *domain.Job) error {
		if j.Status != domain.JobAssigned {
			return fmt.Errorf("release from %s: %w", j.Status, apperr.ErrIllegalTransition)
		}
		if j.AssignedCourier == nil || *j.AssignedCourier != courierID {
			return apperr.ErrInvalid
		}
		now := s.now()
		j.Status = domain.JobBroadcasting
		j.Declined = append(j.Declined, courierID)
		j.AssignedCourier = nil
		j.AcceptedAt = nil
		j.Deadline = nil
		j.Round = 0
		j.NextRoundAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.coord.Announce(ctx, domain.EventJobReopened, job, courierID)
	s.logger.Info("dispatch job reopened",
		logx.String("event", "job_reopened"),
		logx.String("job_id", job.ID),
		logx.Int64("courier_id", courierID),
	)

	if err := s.runRound(ctx, job.ID); err != nil {
		s.logger.Warn("broadcast round after reopen failed",
			logx.String("job_id", job.ID),
			logx.Err(err),
		)
	}
	if cur, err := s.jobs.Get(ctx, job.ID); err == nil && cur != nil {
		return cur, nil
	}
	return job, nil
}

// ActiveJobsForCourier lists assigned jobs of one courier.
func (s *Service) ActiveJobsForCourier(ctx context.Context, courierID int64) ([]domain.Job, error) {
	if courierID <= 0 {
		return nil, apperr.ErrInvalid
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	return s.jobs.ListActiveByCourier(ctx, courierID)
}

func validateJobID(raw string) (string, error) {
	id := strings.TrimSpace(raw)
	if id == "" {
		return "", apperr.ErrInvalid
	}
	return id, nil
}

func validateNewJob(in domain.NewJob) (domain.NewJob, error) {
	in.OrderID = strings.TrimSpace(in.OrderID)
	in.ShopID = strings.TrimSpace(in.ShopID)
	in.ShopOrderID = strings.TrimSpace(in.ShopOrderID)
	if in.OrderID == "" || in.ShopID == "" || in.ShopOrderID == "" {
		return in, apperr.ErrInvalid
	}
	if !in.ShopLocation.Valid() {
		return in, fmt.Errorf("shop location: %w", apperr.ErrInvalid)
	}
	return in, nil
}

// IsTerminalError reports whether err is a final answer that a caller should
// not retry.
func IsTerminalError(err error) bool {
	return errors.Is(err, apperr.ErrInvalid) ||
		errors.Is(err, apperr.ErrNotFound) ||
		errors.Is(err, apperr.ErrDuplicateJob) ||
		errors.Is(err, apperr.ErrIllegalTransition)
}
