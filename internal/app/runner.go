package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/dig"
	"golang.org/x/sync/errgroup"

	"dispatch-go-Orurh/internal/config"
	"dispatch-go-Orurh/internal/logx"
	"dispatch-go-Orurh/internal/service/dispatch"
	"dispatch-go-Orurh/internal/transport/kafka"
)

const shutdownTimeout = 15 * time.Second

// Runner runs the API process.
type Runner struct {
	runFn func(*dig.Container) error
}

// NewRunner returns a new Runner.
func NewRunner() *Runner {
	return &Runner{runFn: run}
}

// MustRun runs the process until its context is cancelled.
func (r *Runner) MustRun(container *dig.Container) {
	err := r.runFn(container)
	if err == nil {
		return
	}
	logger := logx.Nop()
	_ = container.Invoke(func(l logx.Logger) { logger = l })

	switch {
	case errors.Is(err, context.Canceled):
		logger.Info("shutdown requested, exiting")
	case errors.Is(err, context.DeadlineExceeded):
		logger.Warn("startup aborted: startup timeout exceeded")
	default:
		logger.Error("run error", logx.Err(err))
		panic(err)
	}
}

type runIn struct {
	dig.In

	Ctx      context.Context
	Config   *config.Config
	Logger   logx.Logger
	Server   *http.Server
	Pprof    *http.Server `name:"pprof_server" optional:"true"`
	Service  *dispatch.Service
	Consumer *kafka.Consumer
	Storage  *storage
	Notifier *notifier
}

func run(container *dig.Container) error {
	return container.Invoke(appRun)
}

func appRun(in runIn) error {
	defer closeResources(in.Logger, in.Consumer, in.Notifier, in.Storage)

	g, gctx := errgroup.WithContext(in.Ctx)

	servers := []*http.Server{in.Server}
	if in.Pprof != nil {
		servers = append(servers, in.Pprof)
	}
	for _, srv := range servers {
		g.Go(func() error { return serve(srv, in.Logger) })
	}

	g.Go(func() error {
		sweepLoop(gctx, in.Logger, in.Service, in.Config.Dispatch.SweepInterval)
		return nil
	})

	if in.Consumer != nil {
		g.Go(func() error {
			if err := in.Consumer.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("orders consumer: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		in.Logger.Info("shutting down service-dispatch")
		for _, srv := range servers {
			gracefulShutdown(srv, in.Logger, shutdownTimeout)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	return in.Ctx.Err()
}

func serve(srv *http.Server, logger logx.Logger) error {
	logger.Info("http server listening", logx.String("addr", srv.Addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen %s: %w", srv.Addr, err)
	}
	return nil
}

type dueProcessor interface {
	ProcessDue(ctx context.Context) (int, error)
}

// sweepLoop advances timed-out broadcast rounds until ctx is done.
func sweepLoop(ctx context.Context, logger logx.Logger, svc dueProcessor, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := svc.ProcessDue(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				logger.Error("dispatch sweep failed", logx.Err(err))
				continue
			}
			if n > 0 {
				logger.Debug("dispatch sweep", logx.Int("processed", n))
			}
		}
	}
}

func gracefulShutdown(srv *http.Server, logger logx.Logger, timeout time.Duration) {
	shCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shCtx); err != nil {
		logger.Warn("graceful shutdown error", logx.String("addr", srv.Addr), logx.Err(err))
	}
}

func closeResources(logger logx.Logger, consumer *kafka.Consumer, n *notifier, st *storage) {
	if err := consumer.Close(); err != nil {
		logger.Error("kafka close error", logx.Err(err))
	}
	if n != nil && n.close != nil {
		if err := n.close(); err != nil {
			logger.Error("notifier close error", logx.Err(err))
		}
	}
	if st != nil && st.close != nil {
		st.close()
	}
}
