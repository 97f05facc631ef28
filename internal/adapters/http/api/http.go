// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	service "github.com/okian/moodmeter/internal/app"
	"github.com/okian/moodmeter/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	StatsProvider

	// Read operations run one scoring pass each.
	Depression(ctx context.Context) (types.Depression, error)
	Teams(ctx context.Context) ([]types.EntityView, error)
	Report(ctx context.Context) (string, error)

	// Write operations change the loaded document.
	Refresh(ctx context.Context) (types.RosterRefresh, error)
	Reload(ctx context.Context) error
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler *HealthHandler
	statsHandler  *StatsHandler
	moodHandler   *MoodHandler
	adminHandler  *AdminHandler
	corsOrigins   []string
}

// NewServer creates a new API server with all handlers. corsOrigins lists
// the browser origins allowed to call the API; "*" allows any.
func NewServer(deps Dependencies, corsOrigins []string) *Server {
	return &Server{
		healthHandler: NewHealthHandler(),
		statsHandler:  NewStatsHandler(deps),
		moodHandler:   NewMoodHandler(deps),
		adminHandler:  NewAdminHandler(deps),
		corsOrigins:   corsOrigins,
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleMetrics, "healthz"))
	mux.HandleFunc("/metrics", MetricsMiddleware(s.healthHandler.HandleMetrics, "metrics"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/api/health", MetricsMiddleware(s.healthHandler.HandleHealth, "health"))
	mux.HandleFunc("/api/depression", MetricsMiddleware(s.moodHandler.HandleDepression, "depression"))
	mux.HandleFunc("/api/teams", MetricsMiddleware(s.moodHandler.HandleTeams, "teams"))
	mux.HandleFunc("/api/report", MetricsMiddleware(s.moodHandler.HandleReport, "report"))
	mux.HandleFunc("/api/refresh", MetricsMiddleware(s.adminHandler.HandleRefresh, "refresh"))
	mux.HandleFunc("/api/reload", MetricsMiddleware(s.adminHandler.HandleReload, "reload"))
}

// Handler wraps mux with request IDs, panic recovery and CORS.
func (s *Server) Handler(mux http.Handler) http.Handler {
	return CORS(s.corsOrigins)(Recover(RequestID(mux)))
}

type errorResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeServiceError maps service failures onto status codes.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNotStarted):
		writeError(w, http.StatusServiceUnavailable, "not_started", err)
	case errors.Is(err, service.ErrRefreshUnavailable):
		writeError(w, http.StatusServiceUnavailable, "refresh_unavailable", err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusServiceUnavailable, "cancelled", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}

// allowMethod rejects requests whose method is not m.
func allowMethod(w http.ResponseWriter, r *http.Request, op, m string) bool {
	if r.Method == m || (m == http.MethodGet && r.Method == http.MethodHead) {
		return true
	}
	w.Header().Set("Allow", m)
	writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", Wrap(op, ErrMethodNotAllowed))
	return false
}
