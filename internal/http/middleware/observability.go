package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"dispatch-go-Orurh/internal/logx"
)

// Observability records request counters and latency per route pattern and
// writes an access log line.
type Observability struct {
	logger   logx.Logger
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewObservability registers the HTTP collectors in reg. Collectors that are
// already registered are reused.
func NewObservability(reg prometheus.Registerer, logger logx.Logger) (*Observability, error) {
	if logger == nil {
		logger = logx.Nop()
	}
	requests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
	duration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	if err := reg.Register(requests); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			return nil, fmt.Errorf("register http_requests_total: %w", err)
		}
		requests = are.ExistingCollector.(*prometheus.CounterVec)
	}
	if err := reg.Register(duration); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			return nil, fmt.Errorf("register http_request_duration_seconds: %w", err)
		}
		duration = are.ExistingCollector.(*prometheus.HistogramVec)
	}

	return &Observability{logger: logger, requests: requests, duration: duration}, nil
}

// Handler returns chi-style middleware.
func (o *Observability) Handler() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			// шаблон маршрута, а не сырой путь: иначе job id взорвёт кардинальность
			path := pathPattern(r)
			tm := time.Since(start)
			status := strconv.Itoa(ww.Status())

			o.requests.WithLabelValues(r.Method, path, status).Inc()
			o.duration.WithLabelValues(r.Method, path, status).Observe(tm.Seconds())

			o.logger.Info("http request",
				logx.String("request_id", chimw.GetReqID(r.Context())),
				logx.String("method", r.Method),
				logx.String("path", path),
				logx.Int("status", ww.Status()),
				logx.Duration("duration", tm),
			)
		})
	}
}

func pathPattern(r *http.Request) string {
	rc := chi.RouteContext(r.Context())
	if rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return r.URL.Path
}
