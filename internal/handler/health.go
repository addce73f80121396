package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"docit/internal/httputil"
)

// HealthCheck checks one dependency (database, transcript store)
type HealthCheck func(ctx context.Context) error

// HealthHandler reports liveness plus the state of named dependencies
type HealthHandler struct {
	checks map[string]HealthCheck
	logger *slog.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(checks map[string]HealthCheck, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{checks: checks, logger: logger}
}

// HealthCheck is a public health check endpoint.
// Responds 503 when any dependency check fails.
// GET /health
func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	deps := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			h.logger.Warn("health check failed", "dependency", name, "error", err)
			deps[name] = "unavailable"
			status = http.StatusServiceUnavailable
			continue
		}
		deps[name] = "ok"
	}

	state := "ok"
	if status != http.StatusOK {
		state = "degraded"
	}
	httputil.RespondJSON(w, status, map[string]interface{}{
		"status":       state,
		"time":         time.Now().UTC(),
		"dependencies": deps,
	})
}
