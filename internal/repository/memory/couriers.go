package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"dispatch-go-Orurh/internal/domain"
)

// CourierStore keeps the latest presence of each courier.
type CourierStore struct {
	mu       sync.RWMutex
	couriers map[int64]domain.Courier
}

// NewCourierStore creates an empty CourierStore.
func NewCourierStore() *CourierStore {
	return &CourierStore{couriers: make(map[int64]domain.Courier)}
}

// Get returns the courier or nil.
func (s *CourierStore) Get(_ context.Context, id int64) (*domain.Courier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.couriers[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

// Upsert stores the courier's presence, replacing the previous one.
func (s *CourierStore) Upsert(_ context.Context, c *domain.Courier) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.couriers[c.ID] = *c
	return nil
}

// ListOnlineWithin returns online couriers inside box seen after seenAfter.
func (s *CourierStore) ListOnlineWithin(_ context.Context, box domain.BoundingBox, seenAfter time.Time) ([]domain.Courier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Courier
	for _, c := range s.couriers {
		if !c.Online || c.LastSeenAt.Before(seenAfter) || !box.Contains(c.Location) {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].ID < out[b].ID })
	return out, nil
}
