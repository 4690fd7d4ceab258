package httpserver

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/smartsupport/triage-backend/internal/http/handlers"
	"github.com/smartsupport/triage-backend/internal/http/middleware"
)

type RouterDependencies struct {
	Tickets         *handlers.TicketsHandler
	Health          *handlers.HealthHandler
	Logger          zerolog.Logger
	APIKey          string
	CORSOrigins     []string
	RateLimitWindow time.Duration
	RateLimitBudget int
}

// NewRouter wires the API surface. Health stays open; every /api/v1 route
// is behind the API key, and only submission is rate limited. CORS only
// covers the /api/v1 subtree, since the health probes are never called
// from a browser.
func NewRouter(deps RouterDependencies) http.Handler {
	auth := middleware.APIKey(deps.APIKey)
	limiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
		Window: deps.RateLimitWindow,
		Budget: deps.RateLimitBudget,
	})

	api := http.NewServeMux()
	api.Handle("POST /api/v1/tickets", auth(limiter.Middleware(http.HandlerFunc(deps.Tickets.Submit))))
	api.Handle("GET /api/v1/tickets/status/{job_id}", auth(http.HandlerFunc(deps.Tickets.Status)))
	api.Handle("DELETE /api/v1/tickets/{job_id}", auth(http.HandlerFunc(deps.Tickets.Revoke)))
	api.Handle("GET /api/v1/history", auth(http.HandlerFunc(deps.Tickets.History)))
	api.Handle("GET /api/v1/stats", auth(http.HandlerFunc(deps.Tickets.Stats)))

	cors := middleware.CORS(middleware.CORSConfig{
		AllowedOrigins: deps.CORSOrigins,
	})

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", deps.Health.Health)
	mux.HandleFunc("GET /healthz", deps.Health.Health)
	mux.Handle("/api/v1/", cors(api))

	handler := http.Handler(mux)
	handler = middleware.AccessLog(deps.Logger)(handler)
	handler = middleware.RequestID(handler)

	return handler
}
