package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"dispatch-go-Orurh/internal/http/handlers"
	"dispatch-go-Orurh/internal/http/middleware"
	"dispatch-go-Orurh/internal/http/middleware/ratelimit"
)

// Deps groups what the router mounts. Observability, RateLimit and Metrics
// are optional.
type Deps struct {
	Base          *handlers.Handlers
	Jobs          *handlers.JobHandler
	Couriers      *handlers.CourierHandler
	Observability *middleware.Observability
	RateLimit     *ratelimit.Middleware
	Metrics       http.Handler
}

// New constructs the chi router with base middleware and routes.
func New(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	if d.Observability != nil {
		r.Use(d.Observability.Handler())
	}
	r.Use(chimw.Timeout(5 * time.Second))

	r.Get("/ping", d.Base.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(d.Base.HealthcheckHead))
	if d.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", d.Metrics)
	}

	r.Group(func(r chi.Router) {
		if d.RateLimit != nil {
			r.Use(d.RateLimit.Handler())
		}

		r.Route("/jobs", func(r chi.Router) {
			r.Post("/", d.Jobs.Create)
			r.Route("/{jobID}", func(r chi.Router) {
				r.Get("/", d.Jobs.Get)
				r.Post("/cancel", d.Jobs.Cancel)
				r.Post("/complete", d.Jobs.Complete)
				r.Post("/accept", d.Jobs.Accept)
				r.Post("/release", d.Jobs.Release)
			})
		})

		r.Route("/couriers/{courierID}", func(r chi.Router) {
			r.Get("/", d.Couriers.Get)
			r.Put("/presence", d.Couriers.UpdatePresence)
			r.Get("/jobs", d.Couriers.ActiveJobs)
		})
	})

	r.NotFound(http.HandlerFunc(d.Base.NotFound))
	return r
}
