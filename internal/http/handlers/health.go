package handlers

import (
	"context"
	"net/http"
	"time"
)

// Pinger is anything with a backend liveness check (Redis, Postgres).
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	version string
	checks  map[string]Pinger
}

func NewHealthHandler(version string, checks map[string]Pinger) *HealthHandler {
	return &HealthHandler{version: version, checks: checks}
}

type healthResponse struct {
	Status  string            `json:"status"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks,omitempty"`
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	response := healthResponse{Status: "ok", Version: h.version}
	status := http.StatusOK
	if len(h.checks) > 0 {
		response.Checks = make(map[string]string, len(h.checks))
		for name, pinger := range h.checks {
			if err := pinger.Ping(ctx); err != nil {
				response.Checks[name] = err.Error()
				response.Status = "degraded"
				status = http.StatusServiceUnavailable
				continue
			}
			response.Checks[name] = "ok"
		}
	}
	writeJSON(w, status, response)
}
