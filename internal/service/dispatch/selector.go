package dispatch

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"time"

	"dispatch-go-Orurh/internal/apperr"
	"dispatch-go-Orurh/internal/domain"
)

// Selector picks couriers eligible for an offer. It never writes.
type Selector struct {
	couriers    CourierSource
	radiusKm    float64
	limit       int
	presenceTTL time.Duration
	now         func() time.Time
}

// NewSelector creates a Selector reading availability from src.
func NewSelector(src CourierSource, opts Options) *Selector {
	opts = opts.withDefaults()
	return &Selector{
		couriers:    src,
		radiusKm:    opts.SearchRadiusKm,
		limit:       opts.MaxCandidatesPerRound,
		presenceTTL: opts.PresenceTTL,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Select returns online couriers within the search radius of shop, nearest
// first, skipping everyone in exclude. An empty result is not an error.
func (s *Selector) Select(ctx context.Context, shop domain.Location, exclude []int64) ([]domain.Candidate, error) {
	if !shop.Valid() {
		return nil, apperr.ErrInvalid
	}

	seenAfter := s.now().Add(-s.presenceTTL)
	couriers, err := s.couriers.ListOnlineWithin(ctx, shop.BoundingBox(s.radiusKm), seenAfter)
	if err != nil {
		return nil, fmt.Errorf("select candidates: %w", err)
	}

	out := make([]domain.Candidate, 0, len(couriers))
	for _, c := range couriers {
		if !c.Online || c.LastSeenAt.Before(seenAfter) || slices.Contains(exclude, c.ID) {
			continue
		}
		d := shop.DistanceKm(c.Location)
		if d > s.radiusKm {
			continue
		}
		out = append(out, domain.Candidate{
			CourierID:     c.ID,
			TransportType: c.TransportType,
			DistanceKm:    d,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].DistanceKm != out[j].DistanceKm {
			return out[i].DistanceKm < out[j].DistanceKm
		}
		return out[i].CourierID < out[j].CourierID
	})
	if s.limit > 0 && len(out) > s.limit {
		out = out[:s.limit]
	}
	return out, nil
}
