package api

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/okian/moodmeter/pkg/metrics"
)

// HealthHandler handles health check requests.
type HealthHandler struct {
	metrics http.Handler
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{
		metrics: promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}),
	}
}

// HandleMetrics serves the Prometheus registry for GET /healthz and /metrics.
func (h *HealthHandler) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	h.metrics.ServeHTTP(w, r)
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// HandleHealth handles GET /api/health requests.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, "api.get_health", http.MethodGet) {
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "healthy", Timestamp: time.Now()})
}
