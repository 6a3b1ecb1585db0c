//go:generate mockgen -source=contracts.go -destination=dispatch_mocks_test.go -package=dispatch_test

package dispatch

import (
	"context"
	"time"

	"dispatch-go-Orurh/internal/domain"
)

// JobRepository is the single authoritative store of dispatch jobs. Status
// changes go through CompareAndSwap only; the broadcast set grows through
// AddOffers only.
type JobRepository interface {
	// Create persists a new job. It returns apperr.ErrDuplicateJob when a
	// non-terminal job exists for the same (order, shop order) pair.
	Create(ctx context.Context, j *domain.Job) error
	// Get returns nil, nil when the job does not exist.
	Get(ctx context.Context, id string) (*domain.Job, error)
	// FindActive returns the non-terminal job of a shop-portion, or nil.
	FindActive(ctx context.Context, orderID, shopOrderID string) (*domain.Job, error)
	// CompareAndSwap writes the status fields of j if the stored version still
	// equals expectedVersion. It reports false on a version mismatch.
	CompareAndSwap(ctx context.Context, j *domain.Job, expectedVersion int64) (bool, error)
	// AddOffers appends couriers to the broadcast set while the job is
	// broadcasting and returns the ones that were not there before.
	AddOffers(ctx context.Context, jobID string, courierIDs []int64, at time.Time) ([]int64, error)
	ListDue(ctx context.Context, now time.Time, limit int) ([]domain.Job, error)
	ListActiveByCourier(ctx context.Context, courierID int64) ([]domain.Job, error)
}

// CourierSource reads courier availability owned by the courier service.
type CourierSource interface {
	Get(ctx context.Context, id int64) (*domain.Courier, error)
	ListOnlineWithin(ctx context.Context, box domain.BoundingBox, seenAfter time.Time) ([]domain.Courier, error)
}

// Publisher delivers dispatch events to couriers and order management.
type Publisher interface {
	Publish(ctx context.Context, ev domain.Event) error
}

// TimeFactory computes the delivery deadline for an accepted job.
type TimeFactory interface {
	Deadline(transport domain.CourierTransportType, acceptedAt time.Time) (time.Time, error)
}

// Recorder receives dispatch metrics.
type Recorder interface {
	AcceptOutcome(outcome domain.AcceptOutcome)
	RoundStarted(offered int)
	Transition(from, to domain.JobStatus)
}

type nopRecorder struct{}

func (nopRecorder) AcceptOutcome(domain.AcceptOutcome)             {}
func (nopRecorder) RoundStarted(int)                               {}
func (nopRecorder) Transition(domain.JobStatus, domain.JobStatus) {}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, domain.Event) error { return nil }
