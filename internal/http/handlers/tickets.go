package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/smartsupport/triage-backend/internal/domain"
	"github.com/smartsupport/triage-backend/internal/service"
	"github.com/smartsupport/triage-backend/internal/tracker"
)

type TicketsHandler struct {
	service *service.TicketsService
	logger  zerolog.Logger
}

func NewTicketsHandler(svc *service.TicketsService, logger zerolog.Logger) *TicketsHandler {
	return &TicketsHandler{service: svc, logger: logger}
}

type submitTicketRequest struct {
	Text string `json:"text" validate:"required,min=1,max=10000"`
}

type submitTicketResponse struct {
	JobID   string           `json:"job_id"`
	Status  domain.JobStatus `json:"status"`
	Message string           `json:"message"`
}

// Submit accepts a ticket and returns 202 immediately; classification
// happens asynchronously.
func (h *TicketsHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var request submitTicketRequest
	if err := decodeJSON(r, &request); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if strings.TrimSpace(request.Text) == "" {
		writeError(w, r, http.StatusBadRequest, "invalid_request", "text must not be blank")
		return
	}

	jobID, err := h.service.Submit(r.Context(), request.Text)
	if err != nil {
		h.logger.Error().Err(err).Msg("ticket submission failed")
		writeError(w, r, http.StatusInternalServerError, "internal_error", "could not accept ticket")
		return
	}

	writeJSON(w, http.StatusAccepted, submitTicketResponse{
		JobID:   jobID,
		Status:  domain.JobStatusPending,
		Message: "ticket accepted for classification",
	})
}

// Status reports the tracker snapshot for one job.
func (h *TicketsHandler) Status(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("job_id")
	snapshot, err := h.service.Status(r.Context(), jobID)
	if errors.Is(err, tracker.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, "not_found", "unknown job id")
		return
	}
	if err != nil {
		h.logger.Error().Err(err).Str("job_id", jobID).Msg("status lookup failed")
		writeError(w, r, http.StatusInternalServerError, "internal_error", "could not load job status")
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

type revokeResponse struct {
	JobID  string           `json:"job_id"`
	Status domain.JobStatus `json:"status"`
}

// Revoke cancels a job that has not reached a terminal state.
func (h *TicketsHandler) Revoke(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("job_id")
	err := h.service.Revoke(r.Context(), jobID)
	switch {
	case errors.Is(err, tracker.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "not_found", "unknown job id")
	case errors.Is(err, tracker.ErrConflict):
		writeError(w, r, http.StatusConflict, "conflict", "job already finished")
	case err != nil:
		h.logger.Error().Err(err).Str("job_id", jobID).Msg("revoke failed")
		writeError(w, r, http.StatusInternalServerError, "internal_error", "could not revoke job")
	default:
		writeJSON(w, http.StatusOK, revokeResponse{JobID: jobID, Status: domain.JobStatusRevoked})
	}
}

type historyResponse struct {
	Tickets []domain.TicketRecord `json:"tickets"`
	Count   int                   `json:"count"`
}

// History lists the newest persisted classifications.
func (h *TicketsHandler) History(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeError(w, r, http.StatusBadRequest, "invalid_request", "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	records, err := h.service.History(r.Context(), limit)
	if err != nil {
		h.logger.Error().Err(err).Msg("history query failed")
		writeError(w, r, http.StatusInternalServerError, "internal_error", "could not load history")
		return
	}
	if records == nil {
		records = []domain.TicketRecord{}
	}
	writeJSON(w, http.StatusOK, historyResponse{Tickets: records, Count: len(records)})
}

// Stats summarizes stored classifications and in-flight jobs.
func (h *TicketsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("stats query failed")
		writeError(w, r, http.StatusInternalServerError, "internal_error", "could not compute stats")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
