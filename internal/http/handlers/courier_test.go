package handlers_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dispatch-go-Orurh/internal/apperr"
	"dispatch-go-Orurh/internal/domain"
	"dispatch-go-Orurh/internal/http/handlers"
	"dispatch-go-Orurh/internal/logx"
)

type stubPresenceUsecase struct {
	getFn    func(ctx context.Context, id int64) (*domain.Courier, error)
	updateFn func(ctx context.Context, p domain.Presence) (*domain.Courier, error)
}

func (s *stubPresenceUsecase) Get(ctx context.Context, id int64) (*domain.Courier, error) {
	return s.getFn(ctx, id)
}

func (s *stubPresenceUsecase) UpdatePresence(ctx context.Context, p domain.Presence) (*domain.Courier, error) {
	return s.updateFn(ctx, p)
}

func courierRouter(p *stubPresenceUsecase, jobs *stubJobUsecase) http.Handler {
	h := handlers.NewCourierHandler(logx.Nop(), p, jobs)
	r := chi.NewRouter()
	r.Get("/couriers/{courierID}", h.Get)
	r.Put("/couriers/{courierID}/presence", h.UpdatePresence)
	r.Get("/couriers/{courierID}/jobs", h.ActiveJobs)
	return r
}

func TestCourierHandler_UpdatePresence_OK(t *testing.T) {
	t.Parallel()

	seen := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	p := &stubPresenceUsecase{
		updateFn: func(ctx context.Context, in domain.Presence) (*domain.Courier, error) {
			require.Equal(t, domain.Presence{
				CourierID:     42,
				Online:        true,
				Location:      domain.Location{Lat: 55.7, Lon: 37.6},
				TransportType: domain.TransportTypeScooter,
			}, in)
			return &domain.Courier{
				ID:            42,
				Online:        true,
				Location:      in.Location,
				TransportType: in.TransportType,
				LastSeenAt:    seen,
			}, nil
		},
	}

	rr := do(t, courierRouter(p, nil), http.MethodPut, "/couriers/42/presence",
		`{"online":true,"lat":55.7,"lon":37.6,"transport_type":"scooter"}`)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{
		"id": 42,
		"online": true,
		"location": {"lat": 55.7, "lon": 37.6},
		"transport_type": "scooter",
		"last_seen_at": "2025-01-02T03:04:05Z"
	}`, rr.Body.String())
}

func TestCourierHandler_UpdatePresence_Validation(t *testing.T) {
	t.Parallel()

	p := &stubPresenceUsecase{
		updateFn: func(ctx context.Context, in domain.Presence) (*domain.Courier, error) {
			return nil, apperr.ErrInvalid
		},
	}
	h := courierRouter(p, nil)

	rr := do(t, h, http.MethodPut, "/couriers/abc/presence", `{"online":true,"lat":1,"lon":1}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"error":"invalid id"}`, rr.Body.String())

	rr = do(t, h, http.MethodPut, "/couriers/42/presence", `{"online":true}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"error":"lat and lon are required"}`, rr.Body.String())

	rr = do(t, h, http.MethodPut, "/couriers/42/presence", `{"online":true,"lat":95,"lon":1,"transport_type":"jetpack"}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"error":"invalid input"}`, rr.Body.String())
}

func TestCourierHandler_Get_NotFound(t *testing.T) {
	t.Parallel()

	p := &stubPresenceUsecase{
		getFn: func(ctx context.Context, id int64) (*domain.Courier, error) {
			require.Equal(t, int64(5), id)
			return nil, apperr.ErrNotFound
		},
	}
	rr := do(t, courierRouter(p, nil), http.MethodGet, "/couriers/5", "")
	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCourierHandler_ActiveJobs(t *testing.T) {
	t.Parallel()

	jobs := &stubJobUsecase{
		activeFn: func(ctx context.Context, courierID int64) ([]domain.Job, error) {
			require.Equal(t, int64(7), courierID)
			j := sampleJob()
			j.Status = domain.JobAssigned
			j.AssignedCourier = &courierID
			j.NextRoundAt = nil
			return []domain.Job{*j}, nil
		},
	}
	rr := do(t, courierRouter(&stubPresenceUsecase{}, jobs), http.MethodGet, "/couriers/7/jobs", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), `"status":"assigned"`)
	require.Contains(t, rr.Body.String(), `"assigned_courier":7`)
}

func TestCourierHandler_ActiveJobs_Empty(t *testing.T) {
	t.Parallel()

	jobs := &stubJobUsecase{
		activeFn: func(ctx context.Context, courierID int64) ([]domain.Job, error) { return nil, nil },
	}
	rr := do(t, courierRouter(&stubPresenceUsecase{}, jobs), http.MethodGet, "/couriers/7/jobs", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}
