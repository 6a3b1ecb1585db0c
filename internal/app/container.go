package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"dispatch-go-Orurh/internal/config"
	"dispatch-go-Orurh/internal/http/handlers"
	"dispatch-go-Orurh/internal/http/middleware"
	"dispatch-go-Orurh/internal/http/middleware/ratelimit"
	"dispatch-go-Orurh/internal/http/pprofserver"
	"dispatch-go-Orurh/internal/http/router"
	"dispatch-go-Orurh/internal/logx"
	"dispatch-go-Orurh/internal/metrics"
	"dispatch-go-Orurh/internal/service/courier"
	"dispatch-go-Orurh/internal/service/dispatch"
	"dispatch-go-Orurh/internal/service/orders"
)

// ContainerBuilder is a dig container builder.
type ContainerBuilder struct {
	loadConfig func() (*config.Config, error)
	newLogger  func(*config.Config) logx.Logger
	dbConnect  dbConnectFunc
	logFatalf  func(string, ...interface{})
}

// NewContainerBuilder returns a new dig container builder.
func NewContainerBuilder() *ContainerBuilder {
	return &ContainerBuilder{
		loadConfig: config.Load,
		newLogger:  NewLogger,
		dbConnect:  connectDbWithRetry,
		logFatalf:  log.Fatalf,
	}
}

// WithConfig replaces config loading.
func (b *ContainerBuilder) WithConfig(fn func() (*config.Config, error)) *ContainerBuilder {
	if fn != nil {
		b.loadConfig = fn
	}
	return b
}

// WithLogger replaces the logger constructor.
func (b *ContainerBuilder) WithLogger(fn func(*config.Config) logx.Logger) *ContainerBuilder {
	if fn != nil {
		b.newLogger = fn
	}
	return b
}

// WithDBConnect sets the database connection function.
func (b *ContainerBuilder) WithDBConnect(fn dbConnectFunc) *ContainerBuilder {
	if fn != nil {
		b.dbConnect = fn
	}
	return b
}

// WithLogFatalf sets the log.Fatalf function.
func (b *ContainerBuilder) WithLogFatalf(fn func(string, ...interface{})) *ContainerBuilder {
	if fn != nil {
		b.logFatalf = fn
	}
	return b
}

// MustBuild builds the API container: HTTP server, sweeper and, when
// configured, the order-event consumer.
func (b *ContainerBuilder) MustBuild(ctx context.Context) *dig.Container {
	container, err := b.build(ctx, true)
	if err != nil {
		b.logFatalf("failed to build container: %v", err)
	}
	return container
}

// MustBuildWorker builds the consumer-only container.
func (b *ContainerBuilder) MustBuildWorker(ctx context.Context) *dig.Container {
	container, err := b.build(ctx, false)
	if err != nil {
		b.logFatalf("failed to build worker container: %v", err)
	}
	return container
}

func (b *ContainerBuilder) build(ctx context.Context, withHTTP bool) (*dig.Container, error) {
	container := dig.New()

	if err := b.registerCore(container, ctx); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := b.registerStorage(container); err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}
	if err := registerDomainServices(container); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	if err := registerKafka(container); err != nil {
		return nil, fmt.Errorf("kafka: %w", err)
	}
	if withHTTP {
		if err := registerHTTP(container); err != nil {
			return nil, fmt.Errorf("http: %w", err)
		}
	}
	return container, nil
}

// MustBuildContainer builds the API container with production settings.
func MustBuildContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuild(ctx)
}

// MustBuildWorkerContainer builds the worker container with production settings.
func MustBuildWorkerContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuildWorker(ctx)
}

func provideAll(container *dig.Container, providers ...any) error {
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return fmt.Errorf("provide %T: %w", provider, err)
		}
	}
	return nil
}

func (b *ContainerBuilder) registerCore(container *dig.Container, ctx context.Context) error {
	return provideAll(container,
		func() context.Context { return ctx },
		b.loadConfig,
		b.newLogger,
		newRegistry,
		func(reg *prometheus.Registry) prometheus.Registerer { return reg },
		provideMetrics,
		newNotifier,
	)
}

func (b *ContainerBuilder) registerStorage(container *dig.Container) error {
	return provideAll(container,
		func(ctx context.Context, cfg *config.Config, logger logx.Logger) (*storage, error) {
			return newStorage(ctx, cfg, logger, b.dbConnect)
		},
	)
}

func dispatchOptions(cfg *config.Config) dispatch.Options {
	d := cfg.Dispatch
	return dispatch.Options{
		RoundTimeout:          d.RoundTimeout,
		MaxRounds:             d.MaxRounds,
		ExpireOnEmptyRound:    d.ExpireOnEmptyRound,
		SearchRadiusKm:        d.SearchRadiusKm,
		MaxCandidatesPerRound: d.MaxCandidatesPerRound,
		PresenceTTL:           d.PresenceTTL,
		CASMaxAttempts:        d.CASMaxAttempts,
		OperationTimeout:      d.OperationTimeout,
		DueBatchSize:          d.DueBatchSize,
		PublishTimeout:        d.PublishTimeout,
	}
}

func registerDomainServices(container *dig.Container) error {
	return provideAll(container,
		func(cfg *config.Config, st *storage, n *notifier, m *metrics.Dispatch, logger logx.Logger) *dispatch.Service {
			return dispatch.NewService(dispatch.Deps{
				Jobs:      st.jobs,
				Couriers:  st.couriers,
				Publisher: n.pub,
				Metrics:   m,
				Logger:    logger,
			}, dispatchOptions(cfg))
		},
		func(cfg *config.Config, st *storage) *courier.Service {
			return courier.NewService(st.couriers, cfg.Dispatch.OperationTimeout)
		},
		func(svc *dispatch.Service, logger logx.Logger) *orders.Processor {
			return orders.NewProcessor(svc, logger)
		},
	)
}

type routerIn struct {
	dig.In

	Base          *handlers.Handlers
	Jobs          *handlers.JobHandler
	Couriers      *handlers.CourierHandler
	Observability *middleware.Observability
	RateLimit     *ratelimit.Middleware
	Registry      *prometheus.Registry
}

type rateLimitIn struct {
	dig.In

	Config  *config.Config
	Logger  logx.Logger
	Counter prometheus.Counter `name:"rate_limit_exceeded_total"`
}

type pprofOut struct {
	dig.Out

	Server *http.Server `name:"pprof_server"`
}

func newRateLimitMiddleware(in rateLimitIn) *ratelimit.Middleware {
	rl := in.Config.RateLimit
	var limiter ratelimit.Limiter = ratelimit.NopLimiter{}
	if rl.Enabled {
		limiter = ratelimit.NewTokenBucketLimiter(ratelimit.RealClock, ratelimit.Config{
			Rate:       rl.Rate,
			Burst:      rl.Burst,
			TTL:        rl.TTL,
			MaxBuckets: rl.MaxBuckets,
		})
	}
	return ratelimit.New(in.Logger, in.Counter, limiter)
}

func registerHTTP(container *dig.Container) error {
	serverProvider := func(cfg *config.Config, mux http.Handler) *http.Server {
		return &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		}
	}
	routerProvider := func(in routerIn) http.Handler {
		return router.New(router.Deps{
			Base:          in.Base,
			Jobs:          in.Jobs,
			Couriers:      in.Couriers,
			Observability: in.Observability,
			RateLimit:     in.RateLimit,
			Metrics:       newMetricsHandler(in.Registry),
		})
	}
	pprofProvider := func(cfg *config.Config) pprofOut {
		if !cfg.Pprof.Enabled {
			return pprofOut{}
		}
		return pprofOut{Server: pprofserver.NewServer(pprofserver.Config{
			Addr: cfg.Pprof.Addr,
			User: cfg.Pprof.User,
			Pass: cfg.Pprof.Pass,
		})}
	}
	return provideAll(container,
		handlers.New,
		handlers.NewJobUsecase,
		handlers.NewPresenceUsecase,
		handlers.NewJobHandler,
		handlers.NewCourierHandler,
		middleware.NewObservability,
		newRateLimitMiddleware,
		routerProvider,
		serverProvider,
		pprofProvider,
	)
}
