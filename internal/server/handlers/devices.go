package handlers

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/abhishekk-y16/KisanMitra/internal/models"
	"github.com/abhishekk-y16/KisanMitra/internal/server/storage"
	"github.com/abhishekk-y16/KisanMitra/internal/server/token"
	"github.com/abhishekk-y16/KisanMitra/internal/validation"
	"github.com/abhishekk-y16/KisanMitra/pkg/api"
)

// DeviceHandler handles device enrollment
type DeviceHandler struct {
	devices       storage.DeviceStorage
	logger        *slog.Logger
	tokenConfig   token.Config
	enrollmentKey string
}

// NewDeviceHandler creates a new device enrollment handler
func NewDeviceHandler(devices storage.DeviceStorage, tokenConfig token.Config, enrollmentKey string, logger *slog.Logger) *DeviceHandler {
	return &DeviceHandler{
		devices:       devices,
		logger:        logger,
		tokenConfig:   tokenConfig,
		enrollmentKey: enrollmentKey,
	}
}

// Enroll handles POST /api/v1/devices/enroll. A device trades the shared
// enrollment key for a bearer token. Re-enrollment with the same
// device_id is allowed and issues a fresh token, so a device that lost
// its local state can recover.
func (h *DeviceHandler) Enroll(w http.ResponseWriter, r *http.Request) {
	var req api.EnrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := validation.ValidateDeviceID(req.DeviceID); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	if subtle.ConstantTimeCompare([]byte(req.EnrollmentKey), []byte(h.enrollmentKey)) != 1 {
		h.logger.Warn("enrollment rejected, bad key", "device_id", req.DeviceID)
		writeError(w, h.logger, http.StatusUnauthorized, "invalid enrollment key")
		return
	}

	now := time.Now()
	device := &models.Device{
		ID:         uuid.New().String(),
		DeviceID:   req.DeviceID,
		EnrolledAt: now,
		LastSeenAt: now,
	}

	err := h.devices.CreateDevice(r.Context(), device)
	switch {
	case errors.Is(err, storage.ErrDeviceAlreadyExists):
		if err := h.devices.TouchDevice(r.Context(), req.DeviceID, now); err != nil {
			h.logger.Error("failed to touch re-enrolling device", "device_id", req.DeviceID, "error", err)
			writeError(w, h.logger, http.StatusInternalServerError, "internal server error")
			return
		}
		h.logger.Info("device re-enrolled", "device_id", req.DeviceID)
	case err != nil:
		h.logger.Error("failed to create device", "device_id", req.DeviceID, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "internal server error")
		return
	default:
		h.logger.Info("device enrolled", "device_id", req.DeviceID)
	}

	accessToken, expiresIn, err := token.Issue(h.tokenConfig, req.DeviceID)
	if err != nil {
		h.logger.Error("failed to issue token", "device_id", req.DeviceID, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, api.TokenResponse{
		AccessToken: accessToken,
		ExpiresIn:   expiresIn,
	})
}
