package dispatch

import "time"

// Options tunes the dispatch engine. Zero values fall back to defaults.
type Options struct {
	// RoundTimeout is how long a broadcast round waits for an accept.
	RoundTimeout time.Duration
	// MaxRounds is the broadcast round budget before a job expires.
	MaxRounds int
	// ExpireOnEmptyRound expires a job as soon as a round finds no new
	// candidates instead of waiting for the round budget to run out.
	ExpireOnEmptyRound bool
	SearchRadiusKm     float64
	// MaxCandidatesPerRound caps offers per round; 0 means unlimited.
	MaxCandidatesPerRound int
	// PresenceTTL drops couriers whose last ping is older than this.
	PresenceTTL time.Duration
	// CASMaxAttempts bounds the read-check-write loop of one transition.
	CASMaxAttempts   int
	OperationTimeout time.Duration
	DueBatchSize     int
	// PublishTimeout bounds delivery of one event, retries included.
	PublishTimeout time.Duration
}

const defaultPublishTimeout = 2 * time.Second

func (o Options) withDefaults() Options {
	if o.RoundTimeout <= 0 {
		o.RoundTimeout = 30 * time.Second
	}
	if o.MaxRounds <= 0 {
		o.MaxRounds = 3
	}
	if o.SearchRadiusKm <= 0 {
		o.SearchRadiusKm = 5
	}
	if o.MaxCandidatesPerRound < 0 {
		o.MaxCandidatesPerRound = 0
	}
	if o.PresenceTTL <= 0 {
		o.PresenceTTL = 2 * time.Minute
	}
	if o.CASMaxAttempts <= 0 {
		o.CASMaxAttempts = 5
	}
	if o.OperationTimeout <= 0 {
		o.OperationTimeout = 3 * time.Second
	}
	if o.DueBatchSize <= 0 {
		o.DueBatchSize = 100
	}
	if o.PublishTimeout <= 0 {
		o.PublishTimeout = defaultPublishTimeout
	}
	return o
}
