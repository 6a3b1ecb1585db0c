package app

import (
	"context"
	"fmt"
	"time"

	"dispatch-go-Orurh/internal/config"
	"dispatch-go-Orurh/internal/domain"
	"dispatch-go-Orurh/internal/logx"
	"dispatch-go-Orurh/internal/repository"
	"dispatch-go-Orurh/internal/repository/memory"
	"dispatch-go-Orurh/internal/service/dispatch"
)

// courierStore serves both presence writes and candidate lookups.
type courierStore interface {
	dispatch.CourierSource
	Upsert(ctx context.Context, c *domain.Courier) error
}

type storage struct {
	jobs     dispatch.JobRepository
	couriers courierStore
	close    func()
}

func newStorage(ctx context.Context, cfg *config.Config, logger logx.Logger, connect dbConnectFunc) (*storage, error) {
	if cfg.Dispatch.Store == "memory" {
		logger.Warn("using in-memory job store, state is lost on restart")
		return &storage{
			jobs:     memory.NewJobStore(),
			couriers: memory.NewCourierStore(),
			close:    func() {},
		}, nil
	}

	pool, err := connect(ctx, logger, cfg.DB.DSN(), 10, time.Second)
	if err != nil {
		return nil, err
	}
	if err := repository.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &storage{
		jobs:     repository.NewJobRepo(pool),
		couriers: repository.NewCourierRepo(pool),
		close:    pool.Close,
	}, nil
}
