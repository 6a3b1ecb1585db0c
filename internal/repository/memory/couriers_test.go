package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"dispatch-go-Orurh/internal/domain"
)

func TestCourierStore_UpsertAndList(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	now := time.Now().UTC()
	s := NewCourierStore()

	center := domain.Location{Lat: 55.75, Lon: 37.61}
	require.NoError(t, s.Upsert(ctx, &domain.Courier{ID: 2, Online: true, Location: center, LastSeenAt: now}))
	require.NoError(t, s.Upsert(ctx, &domain.Courier{ID: 1, Online: true, Location: center, LastSeenAt: now}))
	require.NoError(t, s.Upsert(ctx, &domain.Courier{ID: 3, Online: false, Location: center, LastSeenAt: now}))
	require.NoError(t, s.Upsert(ctx, &domain.Courier{ID: 4, Online: true, Location: center, LastSeenAt: now.Add(-time.Hour)}))
	require.NoError(t, s.Upsert(ctx, &domain.Courier{ID: 5, Online: true, Location: domain.Location{Lat: 10, Lon: 10}, LastSeenAt: now}))

	got, err := s.ListOnlineWithin(ctx, center.BoundingBox(5), now.Add(-time.Minute))
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, int64(1), got[0].ID)
	require.Equal(t, int64(2), got[1].ID)

	require.NoError(t, s.Upsert(ctx, &domain.Courier{ID: 2, Online: false, Location: center, LastSeenAt: now}))
	c, err := s.Get(ctx, 2)
	require.NoError(t, err)
	require.False(t, c.Online)

	missing, err := s.Get(ctx, 42)
	require.NoError(t, err)
	require.Nil(t, missing)
}
