package courier

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"dispatch-go-Orurh/internal/apperr"
	"dispatch-go-Orurh/internal/domain"
)

type mockPresenceRepo struct {
	getFn    func(ctx context.Context, id int64) (*domain.Courier, error)
	upsertFn func(ctx context.Context, c *domain.Courier) error
}

func (m *mockPresenceRepo) Get(ctx context.Context, id int64) (*domain.Courier, error) {
	return m.getFn(ctx, id)
}

func (m *mockPresenceRepo) Upsert(ctx context.Context, c *domain.Courier) error {
	return m.upsertFn(ctx, c)
}

func TestNewService_Timeouts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   time.Duration
		want time.Duration
	}{
		{name: "zero uses default", in: 0, want: 3 * time.Second},
		{name: "negative uses default", in: -10 * time.Second, want: 3 * time.Second},
		{name: "positive kept", in: 5 * time.Second, want: 5 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := NewService(&mockPresenceRepo{}, tt.in)
			require.Equal(t, tt.want, s.operationTimeout)
		})
	}
}

func TestService_Get(t *testing.T) {
	t.Parallel()

	expected := &domain.Courier{ID: 50, Online: true, TransportType: domain.TransportTypeCar}
	repo := &mockPresenceRepo{
		getFn: func(ctx context.Context, id int64) (*domain.Courier, error) {
			if _, ok := ctx.Deadline(); !ok {
				t.Fatalf("expected context with deadline")
			}
			if id == expected.ID {
				return expected, nil
			}
			return nil, nil
		},
	}
	s := NewService(repo, time.Second)

	got, err := s.Get(context.Background(), 50)
	require.NoError(t, err)
	require.Equal(t, expected, got)

	_, err = s.Get(context.Background(), 51)
	require.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = s.Get(context.Background(), 0)
	require.ErrorIs(t, err, apperr.ErrInvalid)
}

func TestService_UpdatePresence_StampsServerTime(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	var stored *domain.Courier
	repo := &mockPresenceRepo{
		upsertFn: func(_ context.Context, c *domain.Courier) error {
			stored = c
			return nil
		},
	}
	s := NewService(repo, time.Second)
	s.now = func() time.Time { return now }

	got, err := s.UpdatePresence(context.Background(), domain.Presence{
		CourierID: 7,
		Online:    true,
		Location:  domain.Location{Lat: 55.75, Lon: 37.61},
	})
	require.NoError(t, err)
	require.Equal(t, stored, got)
	require.Equal(t, now, got.LastSeenAt)
	require.Equal(t, domain.TransportTypeFoot, got.TransportType, "empty transport defaults to on_foot")
}

func TestService_UpdatePresence_Validation(t *testing.T) {
	t.Parallel()

	repo := &mockPresenceRepo{
		upsertFn: func(context.Context, *domain.Courier) error {
			t.Fatal("repo must not be called for invalid input")
			return nil
		},
	}
	s := NewService(repo, time.Second)

	cases := map[string]domain.Presence{
		"bad id":        {CourierID: 0, Location: domain.Location{Lat: 1, Lon: 1}},
		"bad latitude":  {CourierID: 1, Location: domain.Location{Lat: 91, Lon: 1}},
		"bad transport": {CourierID: 1, Location: domain.Location{Lat: 1, Lon: 1}, TransportType: "bike"},
	}
	for name, p := range cases {
		_, err := s.UpdatePresence(context.Background(), p)
		require.ErrorIs(t, err, apperr.ErrInvalid, name)
	}
}

func TestService_UpdatePresence_RepoError(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("db down")
	repo := &mockPresenceRepo{
		upsertFn: func(context.Context, *domain.Courier) error { return sentinel },
	}
	s := NewService(repo, time.Second)

	_, err := s.UpdatePresence(context.Background(), domain.Presence{
		CourierID: 1,
		Location:  domain.Location{Lat: 1, Lon: 1},
	})
	require.ErrorIs(t, err, sentinel)
}
