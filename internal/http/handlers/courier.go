package handlers

import (
	"net/http"

	"dispatch-go-Orurh/internal/logx"
)

// CourierHandler serves courier-facing endpoints.
type CourierHandler struct {
	presence presenceUsecase
	jobs     jobUsecase
	logger   logx.Logger
}

// NewCourierHandler creates a new CourierHandler.
func NewCourierHandler(logger logx.Logger, presence presenceUsecase, jobs jobUsecase) *CourierHandler {
	if logger == nil {
		logger = logx.Nop()
	}
	return &CourierHandler{presence: presence, jobs: jobs, logger: logger}
}

// Get handles GET /couriers/{courierID}.
func (h *CourierHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "courierID")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	c, err := h.presence.Get(r.Context(), id)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, courierToResponse(c))
}

// UpdatePresence handles PUT /couriers/{courierID}/presence.
func (h *CourierHandler) UpdatePresence(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "courierID")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	var req presenceRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	p, ok := req.toModel(id)
	if !ok {
		writeError(h.logger, w, r, http.StatusBadRequest, "lat and lon are required")
		return
	}

	c, err := h.presence.UpdatePresence(r.Context(), p)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, courierToResponse(c))
}

// ActiveJobs handles GET /couriers/{courierID}/jobs.
func (h *CourierHandler) ActiveJobs(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "courierID")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	list, err := h.jobs.ActiveJobsForCourier(r.Context(), id)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, jobsToResponse(list))
}
