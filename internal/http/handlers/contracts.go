package handlers

import (
	"context"

	"dispatch-go-Orurh/internal/domain"
	"dispatch-go-Orurh/internal/service/courier"
	"dispatch-go-Orurh/internal/service/dispatch"
)

type jobUsecase interface {
	CreateJob(ctx context.Context, in domain.NewJob) (*domain.Job, error)
	GetStatus(ctx context.Context, jobID string) (*domain.Job, error)
	CancelJob(ctx context.Context, jobID string, expected domain.JobStatus) (*domain.Job, error)
	CompleteJob(ctx context.Context, jobID string) (*domain.Job, error)
	Accept(ctx context.Context, jobID string, courierID int64) (domain.AcceptResult, error)
	Release(ctx context.Context, jobID string, courierID int64) (*domain.Job, error)
	ActiveJobsForCourier(ctx context.Context, courierID int64) ([]domain.Job, error)
}

// NewJobUsecase wires the dispatch Service into a jobUsecase.
func NewJobUsecase(svc *dispatch.Service) jobUsecase {
	return svc
}

type presenceUsecase interface {
	Get(ctx context.Context, id int64) (*domain.Courier, error)
	UpdatePresence(ctx context.Context, p domain.Presence) (*domain.Courier, error)
}

// NewPresenceUsecase wires the courier Service into a presenceUsecase.
func NewPresenceUsecase(svc *courier.Service) presenceUsecase {
	return svc
}
