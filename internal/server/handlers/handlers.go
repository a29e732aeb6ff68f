// Package handlers implements the HTTP endpoints of the sync backend:
// health, device enrollment and record ingest.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/abhishekk-y16/KisanMitra/pkg/api"
)

// contextKey is a private type for request context values
type contextKey string

// DeviceIDKey holds the authenticated device id in the request context
const DeviceIDKey contextKey = "device_id"

// DeviceIDFromContext extracts the authenticated device id set by the
// auth middleware. Returns "" for unauthenticated requests.
func DeviceIDFromContext(r *http.Request) string {
	deviceID, _ := r.Context().Value(DeviceIDKey).(string)
	return deviceID
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, logger *slog.Logger, status int, message string) {
	writeJSON(w, logger, status, api.ErrorResponse{Error: message})
}
