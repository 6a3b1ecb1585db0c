// Package memory holds in-process stores for single-node runs and tests.
// Every write is serialised by one mutex, which makes CompareAndSwap atomic.
package memory

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"dispatch-go-Orurh/internal/apperr"
	"dispatch-go-Orurh/internal/domain"
)

type activeKey struct {
	orderID     string
	shopOrderID string
}

// JobStore is an in-memory dispatch job repository.
type JobStore struct {
	mu     sync.Mutex
	jobs   map[string]*domain.Job
	active map[activeKey]string
}

// NewJobStore creates an empty JobStore.
func NewJobStore() *JobStore {
	return &JobStore{
		jobs:   make(map[string]*domain.Job),
		active: make(map[activeKey]string),
	}
}

// Create stores a new job.
func (s *JobStore) Create(_ context.Context, j *domain.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.jobs[j.ID]; ok {
		return apperr.ErrDuplicateJob
	}
	key := activeKey{j.OrderID, j.ShopOrderID}
	if !j.Status.Terminal() {
		if _, ok := s.active[key]; ok {
			return apperr.ErrDuplicateJob
		}
		s.active[key] = j.ID
	}
	s.jobs[j.ID] = j.Clone()
	return nil
}

// Get returns a copy of the job or nil.
func (s *JobStore) Get(_ context.Context, id string) (*domain.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.jobs[id].Clone(), nil
}

// FindActive returns the live job of a shop-portion, or nil.
func (s *JobStore) FindActive(_ context.Context, orderID, shopOrderID string) (*domain.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.active[activeKey{orderID, shopOrderID}]
	if !ok {
		return nil, nil
	}
	return s.jobs[id].Clone(), nil
}

// CompareAndSwap writes the status fields of j when the stored version equals
// expectedVersion. The broadcast set is left alone.
func (s *JobStore) CompareAndSwap(_ context.Context, j *domain.Job, expectedVersion int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.jobs[j.ID]
	if !ok || cur.Version != expectedVersion {
		return false, nil
	}

	next := j.Clone()
	cur.Status = next.Status
	cur.Declined = next.Declined
	cur.AssignedCourier = next.AssignedCourier
	cur.AcceptedAt = next.AcceptedAt
	cur.Deadline = next.Deadline
	cur.Round = next.Round
	cur.NextRoundAt = next.NextRoundAt
	cur.UpdatedAt = next.UpdatedAt
	cur.Version++

	if cur.Status.Terminal() {
		key := activeKey{cur.OrderID, cur.ShopOrderID}
		if s.active[key] == cur.ID {
			delete(s.active, key)
		}
	}
	return true, nil
}

// AddOffers appends couriers that are not yet in the broadcast set. Nothing is
// added once the job left broadcasting.
func (s *JobStore) AddOffers(_ context.Context, jobID string, courierIDs []int64, _ time.Time) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.jobs[jobID]
	if !ok || cur.Status != domain.JobBroadcasting {
		return nil, nil
	}

	var added []int64
	for _, id := range courierIDs {
		if slices.Contains(cur.BroadcastSet, id) {
			continue
		}
		cur.BroadcastSet = append(cur.BroadcastSet, id)
		added = append(added, id)
	}
	return added, nil
}

// ListDue returns broadcasting jobs whose round timed out, oldest first.
func (s *JobStore) ListDue(_ context.Context, now time.Time, limit int) ([]domain.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []domain.Job
	for _, j := range s.jobs {
		if j.Status != domain.JobBroadcasting || j.NextRoundAt == nil || j.NextRoundAt.After(now) {
			continue
		}
		out = append(out, *j.Clone())
	}
	sort.Slice(out, func(a, b int) bool {
		if !out[a].NextRoundAt.Equal(*out[b].NextRoundAt) {
			return out[a].NextRoundAt.Before(*out[b].NextRoundAt)
		}
		return out[a].ID < out[b].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ListActiveByCourier returns the courier's assigned jobs by acceptance time.
func (s *JobStore) ListActiveByCourier(_ context.Context, courierID int64) ([]domain.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []domain.Job
	for _, j := range s.jobs {
		if j.Status != domain.JobAssigned || j.AssignedCourier == nil || *j.AssignedCourier != courierID {
			continue
		}
		out = append(out, *j.Clone())
	}
	sort.Slice(out, func(a, b int) bool {
		return out[a].AcceptedAt.Before(*out[b].AcceptedAt)
	})
	return out, nil
}
