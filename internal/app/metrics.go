package app

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/dig"

	"dispatch-go-Orurh/internal/metrics"
)

type metricsOut struct {
	dig.Out

	RateLimitExceededTotal prometheus.Counter `name:"rate_limit_exceeded_total"`
	PublishRetriesTotal    prometheus.Counter `name:"publish_retries_total"`
	Dispatch               *metrics.Dispatch
}

func newRegistry() (*prometheus.Registry, error) {
	reg := prometheus.NewRegistry()
	if err := reg.Register(collectors.NewGoCollector()); err != nil {
		return nil, fmt.Errorf("register go collector: %w", err)
	}
	if err := reg.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		return nil, fmt.Errorf("register process collector: %w", err)
	}
	return reg, nil
}

func provideMetrics(reg prometheus.Registerer) (metricsOut, error) {
	rl, err := registerCounter(reg, metrics.NewRateLimitExceededTotal(), "rate_limit_exceeded_total")
	if err != nil {
		return metricsOut{}, err
	}
	retries, err := registerCounter(reg, metrics.NewPublishRetriesTotal(), "dispatch_publish_retries_total")
	if err != nil {
		return metricsOut{}, err
	}
	d, err := metrics.NewDispatch(reg)
	if err != nil {
		return metricsOut{}, err
	}
	return metricsOut{
		RateLimitExceededTotal: rl,
		PublishRetriesTotal:    retries,
		Dispatch:               d,
	}, nil
}

// registerCounter returns the already registered collector when there is one.
func registerCounter(reg prometheus.Registerer, c prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
		}
		return nil, fmt.Errorf("register %s: %w", name, err)
	}
	return c, nil
}

func newMetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}
