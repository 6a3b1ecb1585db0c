package dispatch

import (
	"context"
	"errors"
	"fmt"

	"dispatch-go-Orurh/internal/domain"
	"dispatch-go-Orurh/internal/logx"
)

// ProcessDue runs the next round of every broadcasting job whose round timed
// out, expiring jobs that used up their round budget. It returns the number of
// jobs handled; per-job failures are logged and left for the next sweep.
func (s *Service) ProcessDue(ctx context.Context) (int, error) {
	lctx, cancel := s.withTimeout(ctx)
	due, err := s.jobs.ListDue(lctx, s.now(), s.opts.DueBatchSize)
	cancel()
	if err != nil {
		return 0, fmt.Errorf("list due jobs: %w", err)
	}

	processed := 0
	for _, j := range due {
		if err := ctx.Err(); err != nil {
			return processed, err
		}

		rctx, cancel := s.withTimeout(ctx)
		err := s.runRound(rctx, j.ID)
		cancel()
		if err != nil {
			s.logger.Warn("broadcast round failed",
				logx.String("job_id", j.ID),
				logx.Int("round", j.Round),
				logx.Err(err),
			)
			continue
		}
		processed++
	}
	return processed, nil
}

// runRound claims the next round of a broadcasting job and offers it to fresh
// candidates. The claim is a version-checked write of Round and NextRoundAt,
// so concurrent sweepers never run the same round twice.
func (s *Service) runRound(ctx context.Context, jobID string) error {
	now := s.now()
	expired := false

	job, err := s.machine.Transition(ctx, jobID, func(j *domain.Job) error {
		expired = false
		if j.Status != domain.JobBroadcasting {
			return errSkip
		}
		if j.NextRoundAt != nil && j.NextRoundAt.After(now) {
			return errSkip
		}
		if j.Round >= s.opts.MaxRounds {
			j.Status = domain.JobExpired
			j.NextRoundAt = nil
			expired = true
			return nil
		}
		j.Round++
		next := now.Add(s.opts.RoundTimeout)
		j.NextRoundAt = &next
		return nil
	})
	if errors.Is(err, errSkip) {
		return nil
	}
	if err != nil {
		return err
	}
	if expired {
		s.onExpired(ctx, job)
		return nil
	}

	candidates, err := s.selector.Select(ctx, job.ShopLocation, job.BroadcastSet)
	if err != nil {
		return fmt.Errorf("round %d: %w", job.Round, err)
	}
	offered, err := s.coord.Broadcast(ctx, job, candidates)
	if err != nil {
		return fmt.Errorf("round %d: %w", job.Round, err)
	}
	s.metrics.RoundStarted(len(offered))

	s.logger.Info("broadcast round started",
		logx.String("event", "round_started"),
		logx.String("job_id", job.ID),
		logx.Int("round", job.Round),
		logx.Int("offered", len(offered)),
		logx.Int("broadcast_set", len(job.BroadcastSet)),
	)

	if len(offered) == 0 && s.opts.ExpireOnEmptyRound {
		return s.expire(ctx, job.ID, job.Round)
	}
	return nil
}

// expire ends a broadcasting job whose round found nobody, unless the job
// moved on in the meantime.
func (s *Service) expire(ctx context.Context, jobID string, round int) error {
	job, err := s.machine.Transition(ctx, jobID, func(j *domain.Job) error {
		if j.Status != domain.JobBroadcasting || j.Round != round {
			return errSkip
		}
		j.Status = domain.JobExpired
		j.NextRoundAt = nil
		return nil
	})
	if errors.Is(err, errSkip) {
		return nil
	}
	if err != nil {
		return err
	}
	s.onExpired(ctx, job)
	return nil
}

func (s *Service) onExpired(ctx context.Context, job *domain.Job) {
	s.coord.Announce(ctx, domain.EventJobExpired, job, 0)
	s.coord.Withdraw(ctx, job, 0)
	s.logger.Info("dispatch job expired",
		logx.String("event", "job_expired"),
		logx.String("job_id", job.ID),
		logx.Int("rounds", job.Round),
		logx.Int("broadcast_set", len(job.BroadcastSet)),
	)
}
