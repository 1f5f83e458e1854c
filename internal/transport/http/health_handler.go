package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"
)

// HealthHandler handles health-related HTTP requests.
type HealthHandler struct {
	service DashboardService
	logger  *slog.Logger
	started time.Time
	version string
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(service DashboardService, logger *slog.Logger, version string) *HealthHandler {
	return &HealthHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "health")),
		started: time.Now(),
		version: version,
	}
}

// HealthCheck handles GET /healthz. Panel availability is reported but
// does not fail the check; the process itself is healthy either way.
func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	panelStatus := "ok"
	if _, err := h.service.Dimensions(r.Context()); err != nil {
		panelStatus = err.Error()
	}

	render.JSON(w, r, map[string]interface{}{
		"status":  "ok",
		"version": h.version,
		"uptime":  time.Since(h.started).String(),
		"panel":   panelStatus,
	})
}
