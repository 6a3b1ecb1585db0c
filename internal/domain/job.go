package domain

import (
	"slices"
	"time"
)

// Job is one delivery task for one shop-portion of one order.
type Job struct {
	ID           string
	OrderID      string
	ShopID       string
	ShopOrderID  string
	ShopLocation Location

	// BroadcastSet lists couriers offered this job, in offer order.
	BroadcastSet []int64
	// Declined lists couriers that released the job after winning it.
	Declined []int64

	Status          JobStatus
	AssignedCourier *int64
	AcceptedAt      *time.Time
	Deadline        *time.Time

	Round       int
	NextRoundAt *time.Time
	Version     int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewJob carries the fields order management provides when a shop-portion
// becomes ready for pickup.
type NewJob struct {
	OrderID      string
	ShopID       string
	ShopOrderID  string
	ShopLocation Location
}

// Offered reports whether courierID is in the broadcast set.
func (j *Job) Offered(courierID int64) bool {
	return slices.Contains(j.BroadcastSet, courierID)
}

// HasDeclined reports whether courierID released the job before.
func (j *Job) HasDeclined(courierID int64) bool {
	return slices.Contains(j.Declined, courierID)
}

// Clone returns a deep copy so callers can mutate it without touching shared state.
func (j *Job) Clone() *Job {
	if j == nil {
		return nil
	}
	cp := *j
	cp.BroadcastSet = slices.Clone(j.BroadcastSet)
	cp.Declined = slices.Clone(j.Declined)
	cp.AssignedCourier = clonePtr(j.AssignedCourier)
	cp.AcceptedAt = clonePtr(j.AcceptedAt)
	cp.Deadline = clonePtr(j.Deadline)
	cp.NextRoundAt = clonePtr(j.NextRoundAt)
	return &cp
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// AcceptOutcome is the answer to a single accept call.
type AcceptOutcome string

// Possible accept outcomes.
const (
	AcceptWon     AcceptOutcome = "won"
	AcceptLost    AcceptOutcome = "lost"
	AcceptInvalid AcceptOutcome = "invalid"
)

// AcceptResult describes the outcome of an accept call. AcceptedAt and
// Deadline are only set for AcceptWon.
type AcceptResult struct {
	JobID      string
	CourierID  int64
	Outcome    AcceptOutcome
	AcceptedAt time.Time
	Deadline   time.Time
}
