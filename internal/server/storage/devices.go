package storage

import (
	"context"
	"time"

	"github.com/abhishekk-y16/KisanMitra/internal/models"
)

// DeviceStorage defines the interface for enrolled-device persistence
type DeviceStorage interface {
	// CreateDevice enrolls a new device
	// Returns ErrDeviceAlreadyExists if the device_id is taken
	CreateDevice(ctx context.Context, device *models.Device) error

	// GetDeviceByDeviceID retrieves a device by its stable identifier
	// Returns ErrDeviceNotFound if the device doesn't exist
	GetDeviceByDeviceID(ctx context.Context, deviceID string) (*models.Device, error)

	// TouchDevice updates the last-seen timestamp
	// Returns ErrDeviceNotFound if the device doesn't exist
	TouchDevice(ctx context.Context, deviceID string, seenAt time.Time) error
}
