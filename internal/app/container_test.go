package app

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"go.uber.org/dig"

	"dispatch-go-Orurh/internal/config"
	"dispatch-go-Orurh/internal/http/handlers"
	"dispatch-go-Orurh/internal/logx"
	"dispatch-go-Orurh/internal/repository/memory"
	"dispatch-go-Orurh/internal/service/courier"
	"dispatch-go-Orurh/internal/service/dispatch"
	"dispatch-go-Orurh/internal/service/orders"
	"dispatch-go-Orurh/internal/transport/kafka"
)

func memoryConfig() *config.Config {
	cfg := config.Defaults()
	cfg.Dispatch.Store = "memory"
	return &cfg
}

func testBuilder(cfg *config.Config) *ContainerBuilder {
	return NewContainerBuilder().
		WithConfig(func() (*config.Config, error) { return cfg, nil }).
		WithLogger(func(*config.Config) logx.Logger { return logx.Nop() }).
		WithDBConnect(func(context.Context, logx.Logger, string, int, time.Duration) (*pgxpool.Pool, error) {
			return nil, errors.New("db must not be used")
		})
}

type httpServersIn struct {
	dig.In

	Main  *http.Server
	Pprof *http.Server `name:"pprof_server" optional:"true"`
}

func TestContainerBuilder_Build_MemoryStore(t *testing.T) {
	t.Parallel()

	c, err := testBuilder(memoryConfig()).build(context.Background(), true)
	require.NoError(t, err)

	err = c.Invoke(func(
		in httpServersIn,
		base *handlers.Handlers,
		jobs *handlers.JobHandler,
		couriers *handlers.CourierHandler,
		svc *dispatch.Service,
		presence *courier.Service,
		proc *orders.Processor,
		consumer *kafka.Consumer,
		st *storage,
	) {
		require.NotNil(t, in.Main)
		require.Equal(t, ":8080", in.Main.Addr)
		require.Greater(t, in.Main.ReadHeaderTimeout, time.Duration(0))
		require.Greater(t, in.Main.WriteTimeout, time.Duration(0))
		require.Nil(t, in.Pprof)

		require.NotNil(t, base)
		require.NotNil(t, jobs)
		require.NotNil(t, couriers)
		require.NotNil(t, svc)
		require.NotNil(t, presence)
		require.NotNil(t, proc)
		require.Nil(t, consumer, "kafka is not configured")

		require.IsType(t, &memory.JobStore{}, st.jobs)
		require.IsType(t, &memory.CourierStore{}, st.couriers)
	})
	require.NoError(t, err)
}

func TestContainerBuilder_Build_PprofEnabled(t *testing.T) {
	t.Parallel()

	cfg := memoryConfig()
	cfg.Pprof = config.Pprof{Enabled: true, Addr: "127.0.0.1:6060", User: "u", Pass: "p"}

	c, err := testBuilder(cfg).build(context.Background(), true)
	require.NoError(t, err)

	require.NoError(t, c.Invoke(func(in httpServersIn) {
		require.NotNil(t, in.Pprof)
		require.Equal(t, "127.0.0.1:6060", in.Pprof.Addr)
		require.NotNil(t, in.Pprof.Handler)
	}))
}

func TestContainerBuilder_Build_WorkerHasNoHTTP(t *testing.T) {
	t.Parallel()

	c, err := testBuilder(memoryConfig()).build(context.Background(), false)
	require.NoError(t, err)

	require.Error(t, c.Invoke(func(*http.Server) {}))
	require.NoError(t, c.Invoke(func(*orders.Processor) {}))
}

func TestContainerBuilder_PostgresConnectErrorSurfaces(t *testing.T) {
	t.Parallel()

	cfg := config.Defaults()
	c, err := testBuilder(&cfg).build(context.Background(), true)
	require.NoError(t, err, "providers are lazy")

	err = c.Invoke(func(*dispatch.Service) {})
	require.Error(t, err)
	require.Contains(t, err.Error(), "db must not be used")
}

func TestContainerBuilder_MustBuild_CallsFatalOnConfigError(t *testing.T) {
	t.Parallel()

	var fatal string
	b := testBuilder(nil).
		WithConfig(func() (*config.Config, error) { return nil, errors.New("bad config") }).
		WithLogFatalf(func(format string, args ...interface{}) { fatal = format })

	c := b.MustBuild(context.Background())
	require.NotNil(t, c, "providers are lazy, config errors show up on invoke")
	require.Empty(t, fatal)
	require.Error(t, c.Invoke(func(*config.Config) {}))
}

func TestProvideAll_Success(t *testing.T) {
	t.Parallel()

	c := dig.New()
	err := provideAll(c,
		func() context.Context { return context.Background() },
		func() time.Duration { return 3 * time.Second },
	)
	require.NoError(t, err)

	require.NoError(t, c.Invoke(func(ctx context.Context, d time.Duration) {
		require.NotNil(t, ctx)
		require.Equal(t, 3*time.Second, d)
	}))
}

func TestProvideAll_InvalidProvider(t *testing.T) {
	t.Parallel()

	type bad struct{}
	require.Error(t, provideAll(dig.New(), bad{}))
}

func TestDispatchOptions_MapsConfig(t *testing.T) {
	t.Parallel()

	cfg := config.Defaults()
	cfg.Dispatch.MaxRounds = 7
	cfg.Dispatch.ExpireOnEmptyRound = true
	cfg.Dispatch.MaxCandidatesPerRound = 4

	opts := dispatchOptions(&cfg)
	require.Equal(t, 7, opts.MaxRounds)
	require.True(t, opts.ExpireOnEmptyRound)
	require.Equal(t, 4, opts.MaxCandidatesPerRound)
	require.Equal(t, cfg.Dispatch.RoundTimeout, opts.RoundTimeout)
	require.Equal(t, cfg.Dispatch.SearchRadiusKm, opts.SearchRadiusKm)
	require.Equal(t, cfg.Dispatch.DueBatchSize, opts.DueBatchSize)
	require.Equal(t, cfg.Dispatch.PublishTimeout, opts.PublishTimeout)
}
