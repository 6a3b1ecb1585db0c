package dispatch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dispatch-go-Orurh/internal/apperr"
	"dispatch-go-Orurh/internal/domain"
	"dispatch-go-Orurh/internal/logx"
)

// errSkip aborts a transition without an error: the job moved on and the
// caller's intent no longer applies.
var errSkip = errors.New("transition skipped")

// Machine applies lifecycle transitions with optimistic concurrency. Every
// write is conditioned on the version read in the same attempt.
type Machine struct {
	jobs        JobRepository
	maxAttempts int
	metrics     Recorder
	logger      logx.Logger
	now         func() time.Time
}

// NewMachine creates a state Machine over jobs.
func NewMachine(jobs JobRepository, opts Options, metrics Recorder, logger logx.Logger) *Machine {
	opts = opts.withDefaults()
	if metrics == nil {
		metrics = nopRecorder{}
	}
	return &Machine{
		jobs:        jobs,
		maxAttempts: opts.CASMaxAttempts,
		metrics:     metrics,
		logger:      logger,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Transition reads the job, lets mutate change a copy of it and commits the
// copy only if nobody else wrote in between. On a version conflict the whole
// read-check-write is repeated, up to maxAttempts times.
//
// mutate may return an error to abort; that error is returned together with
// the job it observed. The status change mutate makes must be a legal single
// step; staying in broadcasting is allowed for round bookkeeping.
func (m *Machine) Transition(ctx context.Context, jobID string, mutate func(j *domain.Job) error) (*domain.Job, error) {
	for attempt := 1; attempt <= m.maxAttempts; attempt++ {
		cur, err := m.jobs.Get(ctx, jobID)
		if err != nil {
			return nil, fmt.Errorf("load job %s: %w", jobID, err)
		}
		if cur == nil {
			return nil, apperr.ErrNotFound
		}

		next := cur.Clone()
		if err := mutate(next); err != nil {
			return cur, err
		}
		if next.Status != cur.Status && !domain.CanTransition(cur.Status, next.Status) {
			return cur, fmt.Errorf("%s -> %s: %w", cur.Status, next.Status, apperr.ErrIllegalTransition)
		}
		if next.Status == cur.Status && cur.Status != domain.JobBroadcasting {
			return cur, fmt.Errorf("%s -> %s: %w", cur.Status, next.Status, apperr.ErrIllegalTransition)
		}
		next.UpdatedAt = m.now()

		ok, err := m.jobs.CompareAndSwap(ctx, next, cur.Version)
		if err != nil {
			return nil, fmt.Errorf("commit job %s: %w", jobID, err)
		}
		if ok {
			next.Version = cur.Version + 1
			if next.Status != cur.Status {
				m.metrics.Transition(cur.Status, next.Status)
			}
			return next, nil
		}

		m.logger.Debug("job version conflict, retrying",
			logx.String("job_id", jobID),
			logx.Int64("version", cur.Version),
			logx.Int("attempt", attempt),
		)
	}
	return nil, fmt.Errorf("job %s: %d attempts: %w", jobID, m.maxAttempts, apperr.ErrConflict)
}
