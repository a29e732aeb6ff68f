package handlers

import (
	"log/slog"
	"net/http"

	"github.com/abhishekk-y16/KisanMitra/pkg/api"
)

// Pinger reports storage availability. Implemented by *sql.DB.
type Pinger interface {
	Ping() error
}

// HealthHandler handles health check requests
type HealthHandler struct {
	logger  *slog.Logger
	db      Pinger
	version string
}

// NewHealthHandler creates a new health check handler
func NewHealthHandler(db Pinger, version string, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		logger:  logger,
		db:      db,
		version: version,
	}
}

// Health handles GET /api/v1/health. Clients use this endpoint as their
// connectivity probe, so it must stay cheap and unauthenticated.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(); err != nil {
		h.logger.Error("health check failed, database unreachable", "error", err)
		writeError(w, h.logger, http.StatusServiceUnavailable, "storage unavailable")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, api.HealthResponse{
		Status:  "ok",
		Version: h.version,
	})
}
