package api

import (
	"context"
	"net/http"
	"time"

	"github.com/okian/moodmeter/internal/domain/types"
)

// AdminDependencies defines the operations that change the loaded document.
type AdminDependencies interface {
	Refresh(ctx context.Context) (types.RosterRefresh, error)
	Reload(ctx context.Context) error
}

// AdminHandler serves refresh and reload.
type AdminHandler struct {
	deps AdminDependencies
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(deps AdminDependencies) *AdminHandler {
	return &AdminHandler{deps: deps}
}

type refreshResponse struct {
	Success   bool                `json:"success"`
	Fantasy   types.RosterRefresh `json:"fantasy_team"`
	Timestamp time.Time           `json:"timestamp"`
}

type reloadResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// HandleRefresh handles POST /api/refresh requests.
func (h *AdminHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_refresh"
	if !allowMethod(w, r, op, http.MethodPost) {
		return
	}
	res, err := h.deps.Refresh(r.Context())
	if err != nil {
		writeServiceError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, refreshResponse{Success: true, Fantasy: res, Timestamp: time.Now()})
}

// HandleReload handles POST /api/reload requests.
func (h *AdminHandler) HandleReload(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_reload"
	if !allowMethod(w, r, op, http.MethodPost) {
		return
	}
	if err := h.deps.Reload(r.Context()); err != nil {
		writeServiceError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, reloadResponse{Success: true, Message: "document reloaded", Timestamp: time.Now()})
}
