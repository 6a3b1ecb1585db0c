package dispatch

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"dispatch-go-Orurh/internal/apperr"
	"dispatch-go-Orurh/internal/domain"
	"dispatch-go-Orurh/internal/logx"
)

var (
	errNotOffered = errors.New("courier was not offered the job")
	errTaken      = errors.New("job no longer available")
)

// Accept resolves a courier's claim on a job. Exactly one caller per job ever
// gets AcceptWon: the broadcasting -> assigned write is conditioned on the
// version read in the same attempt, so concurrent winners cannot both commit.
// Lost and invalid are outcomes, not errors; err is set only when the outcome
// could not be decided.
func (s *Service) Accept(ctx context.Context, jobID string, courierID int64) (domain.AcceptResult, error) {
	res := domain.AcceptResult{
		JobID:     strings.TrimSpace(jobID),
		CourierID: courierID,
		Outcome:   domain.AcceptInvalid,
	}
	if res.JobID == "" || courierID <= 0 {
		s.metrics.AcceptOutcome(res.Outcome)
		return res, nil
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	courier, err := s.couriers.Get(ctx, courierID)
	if err != nil {
		return res, fmt.Errorf("load courier %d: %w", courierID, err)
	}
	if courier == nil {
		s.metrics.AcceptOutcome(res.Outcome)
		return res, nil
	}

	job, err := s.machine.Transition(ctx, res.JobID, func(j *domain.Job) error {
		if !j.Offered(courierID) || j.HasDeclined(courierID) || j.Status == domain.JobCancelled {
			return errNotOffered
		}
		if j.Status != domain.JobBroadcasting {
			return errTaken
		}

		acceptedAt := s.now()
		deadline, err := s.times.Deadline(courier.TransportType, acceptedAt)
		if err != nil {
			return err
		}
		j.Status = domain.JobAssigned
		j.AssignedCourier = &courierID
		j.AcceptedAt = &acceptedAt
		j.Deadline = &deadline
		j.NextRoundAt = nil
		return nil
	})
	switch {
	case err == nil:
		res.Outcome = domain.AcceptWon
		res.AcceptedAt = *job.AcceptedAt
		res.Deadline = *job.Deadline
	case errors.Is(err, apperr.ErrNotFound), errors.Is(err, errNotOffered):
		res.Outcome = domain.AcceptInvalid
	case errors.Is(err, errTaken):
		res.Outcome = domain.AcceptLost
	default:
		return res, err
	}
	s.metrics.AcceptOutcome(res.Outcome)

	if res.Outcome != domain.AcceptWon {
		s.logger.Debug("accept rejected",
			logx.String("job_id", res.JobID),
			logx.Int64("courier_id", courierID),
			logx.String("outcome", string(res.Outcome)),
		)
		return res, nil
	}

	s.coord.Announce(ctx, domain.EventJobAssigned, job, courierID)
	s.coord.Withdraw(ctx, job, courierID)

	s.logger.Info("courier assigned",
		logx.String("event", "courier_assigned"),
		logx.String("job_id", job.ID),
		logx.String("order_id", job.OrderID),
		logx.Int64("courier_id", courierID),
		logx.String("transport", string(courier.TransportType)),
		logx.Time("deadline", res.Deadline),
	)
	return res, nil
}
