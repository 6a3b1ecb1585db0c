package handlers

import (
	"context"
	"net/http"
	"strings"

	"dispatch-go-Orurh/internal/domain"
	"dispatch-go-Orurh/internal/logx"
)

// JobHandler serves dispatch job endpoints.
type JobHandler struct {
	usecase jobUsecase
	logger  logx.Logger
}

// NewJobHandler creates a new JobHandler.
func NewJobHandler(logger logx.Logger, uc jobUsecase) *JobHandler {
	if logger == nil {
		logger = logx.Nop()
	}
	return &JobHandler{usecase: uc, logger: logger}
}

// Create handles POST /jobs.
// @Summary Создать задание на доставку
// @Description Регистрирует готовую к выдаче часть заказа и запускает первый раунд рассылки
// @Tags jobs
// @Accept json
// @Produce json
// @Param request body createJobRequest true "Job payload"
// @Success 201 {object} jobResponse
// @Failure 400 {object} ErrorResponse "invalid input"
// @Failure 409 {object} ErrorResponse "active job already exists"
// @Router /jobs [post]
func (h *JobHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createJobRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	in, ok := req.toModel()
	if !ok {
		writeError(h.logger, w, r, http.StatusBadRequest, "shop_location is required")
		return
	}

	job, err := h.usecase.CreateJob(r.Context(), in)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	w.Header().Set("Location", "/jobs/"+job.ID)
	writeJSON(h.logger, w, r, http.StatusCreated, jobToResponse(job))
}

// Get handles GET /jobs/{jobID}.
func (h *JobHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.byID(w, r, h.usecase.GetStatus)
}

// Cancel handles POST /jobs/{jobID}/cancel.
// @Summary Отменить задание
// @Description Без expected_status отменяет только задание в рассылке; назначенное задание отменяется при expected_status=assigned
// @Tags jobs
// @Produce json
// @Param expected_status query string false "broadcasting | assigned"
// @Success 200 {object} jobResponse
// @Failure 409 {object} ErrorResponse "illegal transition"
// @Router /jobs/{jobID}/cancel [post]
func (h *JobHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	expected := domain.JobStatus(strings.TrimSpace(r.URL.Query().Get("expected_status")))
	h.byID(w, r, func(ctx context.Context, jobID string) (*domain.Job, error) {
		return h.usecase.CancelJob(ctx, jobID, expected)
	})
}

// Complete handles POST /jobs/{jobID}/complete.
func (h *JobHandler) Complete(w http.ResponseWriter, r *http.Request) {
	h.byID(w, r, h.usecase.CompleteJob)
}

func (h *JobHandler) byID(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, jobID string) (*domain.Job, error)) {
	jobID, err := jobIDFromURL(r)
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid job id")
		return
	}
	job, err := fn(r.Context(), jobID)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, jobToResponse(job))
}

// Accept handles POST /jobs/{jobID}/accept.
// @Summary Принять предложение
// @Description Курьер принимает задание; выигрывает ровно один
// @Tags jobs
// @Accept json
// @Produce json
// @Param request body courierActionRequest true "Courier"
// @Success 200 {object} acceptResponse "won"
// @Failure 409 {object} ErrorResponse "job no longer available"
// @Failure 422 {object} ErrorResponse "courier was not offered the job"
// @Router /jobs/{jobID}/accept [post]
func (h *JobHandler) Accept(w http.ResponseWriter, r *http.Request) {
	jobID, err := jobIDFromURL(r)
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid job id")
		return
	}
	var req courierActionRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	res, err := h.usecase.Accept(r.Context(), jobID, req.CourierID)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	switch res.Outcome {
	case domain.AcceptWon:
		writeJSON(h.logger, w, r, http.StatusOK, acceptResponse{
			Outcome:    res.Outcome,
			JobID:      res.JobID,
			CourierID:  res.CourierID,
			AcceptedAt: res.AcceptedAt,
			Deadline:   res.Deadline,
		})
	case domain.AcceptLost:
		writeError(h.logger, w, r, http.StatusConflict, "job no longer available")
	default:
		writeError(h.logger, w, r, http.StatusUnprocessableEntity, "courier was not offered the job")
	}
}

// Release handles POST /jobs/{jobID}/release.
func (h *JobHandler) Release(w http.ResponseWriter, r *http.Request) {
	jobID, err := jobIDFromURL(r)
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid job id")
		return
	}
	var req courierActionRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	job, err := h.usecase.Release(r.Context(), jobID, req.CourierID)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, jobToResponse(job))
}
