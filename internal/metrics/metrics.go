package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"dispatch-go-Orurh/internal/domain"
)

// NewRateLimitExceededTotal returns a Prometheus counter for the number of rejected HTTP requests due to rate limiting
func NewRateLimitExceededTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rate_limit_exceeded_total",
		Help: "Total number of rejected HTTP requests due to rate limiting",
	})
}

// NewPublishRetriesTotal returns a Prometheus counter for retried dispatch event publishes
func NewPublishRetriesTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dispatch_publish_retries_total",
		Help: "Total number of retry attempts performed by the dispatch event publisher",
	})
}

// Dispatch collects dispatch engine metrics.
type Dispatch struct {
	accepts     *prometheus.CounterVec
	transitions *prometheus.CounterVec
	rounds      prometheus.Counter
	offers      prometheus.Counter
	emptyRounds prometheus.Counter
}

// NewDispatch creates dispatch metrics and registers them with reg.
func NewDispatch(reg prometheus.Registerer) (*Dispatch, error) {
	d := &Dispatch{
		accepts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dispatch_accepts_total",
			Help: "Accept calls by outcome",
		}, []string{"outcome"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dispatch_transitions_total",
			Help: "Committed job status transitions",
		}, []string{"from", "to"}),
		rounds: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dispatch_rounds_total",
			Help: "Broadcast rounds started",
		}),
		offers: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dispatch_offers_total",
			Help: "Offers sent to couriers",
		}),
		emptyRounds: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dispatch_empty_rounds_total",
			Help: "Broadcast rounds that found no new candidates",
		}),
	}
	for _, c := range []prometheus.Collector{d.accepts, d.transitions, d.rounds, d.offers, d.emptyRounds} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// AcceptOutcome counts one accept call.
func (d *Dispatch) AcceptOutcome(outcome domain.AcceptOutcome) {
	d.accepts.WithLabelValues(string(outcome)).Inc()
}

// RoundStarted counts a round and the offers it sent.
func (d *Dispatch) RoundStarted(offered int) {
	d.rounds.Inc()
	d.offers.Add(float64(offered))
	if offered == 0 {
		d.emptyRounds.Inc()
	}
}

// Transition counts a committed status change.
func (d *Dispatch) Transition(from, to domain.JobStatus) {
	d.transitions.WithLabelValues(string(from), string(to)).Inc()
}
