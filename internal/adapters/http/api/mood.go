package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/okian/moodmeter/internal/domain/types"
)

// MoodDependencies defines the read operations behind the mood endpoints.
type MoodDependencies interface {
	Depression(ctx context.Context) (types.Depression, error)
	Teams(ctx context.Context) ([]types.EntityView, error)
	Report(ctx context.Context) (string, error)
}

// MoodHandler serves the score, entity views and text report.
type MoodHandler struct {
	deps MoodDependencies
}

// NewMoodHandler creates a new mood handler.
func NewMoodHandler(deps MoodDependencies) *MoodHandler {
	return &MoodHandler{deps: deps}
}

type depressionResponse struct {
	Success bool `json:"success"`
	types.Depression
}

type teamsResponse struct {
	Success   bool               `json:"success"`
	Teams     []types.EntityView `json:"teams"`
	Timestamp time.Time          `json:"timestamp"`
}

// HandleDepression handles GET /api/depression requests.
func (h *MoodHandler) HandleDepression(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_depression"
	if !allowMethod(w, r, op, http.MethodGet) {
		return
	}
	dep, err := h.deps.Depression(r.Context())
	if err != nil {
		writeServiceError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, depressionResponse{Success: true, Depression: dep})
}

// HandleTeams handles GET /api/teams?kind=team|driver|roster requests.
func (h *MoodHandler) HandleTeams(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_teams"
	if !allowMethod(w, r, op, http.MethodGet) {
		return
	}
	kind := r.URL.Query().Get("kind")
	switch kind {
	case "", types.KindTeam, types.KindDriver, types.KindRoster:
	default:
		writeError(w, http.StatusBadRequest, "bad_request", Wrap(op, fmt.Errorf("%w: unknown kind %q", ErrBadRequest, kind)))
		return
	}

	views, err := h.deps.Teams(r.Context())
	if err != nil {
		writeServiceError(w, Wrap(op, err))
		return
	}
	if kind != "" {
		filtered := views[:0:0]
		for _, v := range views {
			if v.Kind == kind {
				filtered = append(filtered, v)
			}
		}
		views = filtered
	}
	writeJSON(w, http.StatusOK, teamsResponse{Success: true, Teams: views, Timestamp: time.Now()})
}

// HandleReport handles GET /api/report requests with a plain-text body.
func (h *MoodHandler) HandleReport(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_report"
	if !allowMethod(w, r, op, http.MethodGet) {
		return
	}
	report, err := h.deps.Report(r.Context())
	if err != nil {
		writeServiceError(w, Wrap(op, err))
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(report + "\n"))
}
