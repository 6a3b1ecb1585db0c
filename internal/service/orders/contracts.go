//go:generate mockgen -source=contracts.go -destination=orders_mocks_test.go -package=orders_test

package orders

import (
	"context"

	"dispatch-go-Orurh/internal/domain"
)

// DispatchPort abstracts the subset of dispatch operations
// needed by orders Processor when handling order events
type DispatchPort interface {
	CreateJob(ctx context.Context, in domain.NewJob) (*domain.Job, error)
	FindActiveJob(ctx context.Context, orderID, shopOrderID string) (*domain.Job, error)
	CancelJob(ctx context.Context, jobID string, expected domain.JobStatus) (*domain.Job, error)
	CompleteJob(ctx context.Context, jobID string) (*domain.Job, error)
}
