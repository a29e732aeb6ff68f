package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/abhishekk-y16/KisanMitra/internal/models"
	"github.com/abhishekk-y16/KisanMitra/internal/server/storage"
)

// CreateDevice enrolls a new device
// Returns ErrDeviceAlreadyExists if the device_id is taken
func (s *Storage) CreateDevice(ctx context.Context, device *models.Device) error {
	query := `
		INSERT INTO devices (id, device_id, enrolled_at, last_seen_at)
		VALUES (?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		device.ID,
		device.DeviceID,
		device.EnrolledAt.Unix(),
		device.LastSeenAt.Unix(),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return storage.ErrDeviceAlreadyExists
		}
		return fmt.Errorf("failed to insert device: %w", err)
	}

	return nil
}

// GetDeviceByDeviceID retrieves a device by its stable identifier
// Returns ErrDeviceNotFound if the device doesn't exist
func (s *Storage) GetDeviceByDeviceID(ctx context.Context, deviceID string) (*models.Device, error) {
	query := `
		SELECT id, device_id, enrolled_at, last_seen_at
		FROM devices
		WHERE device_id = ?
	`

	device := &models.Device{}
	var enrolledAt, lastSeenAt int64

	err := s.db.QueryRowContext(ctx, query, deviceID).Scan(
		&device.ID,
		&device.DeviceID,
		&enrolledAt,
		&lastSeenAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrDeviceNotFound
		}
		return nil, fmt.Errorf("failed to get device: %w", err)
	}

	device.EnrolledAt = time.Unix(enrolledAt, 0)
	device.LastSeenAt = time.Unix(lastSeenAt, 0)

	return device, nil
}

// TouchDevice updates the last-seen timestamp
// Returns ErrDeviceNotFound if the device doesn't exist
func (s *Storage) TouchDevice(ctx context.Context, deviceID string, seenAt time.Time) error {
	query := `
		UPDATE devices
		SET last_seen_at = ?
		WHERE device_id = ?
	`

	result, err := s.db.ExecContext(ctx, query, seenAt.Unix(), deviceID)
	if err != nil {
		return fmt.Errorf("failed to touch device: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return storage.ErrDeviceNotFound
	}

	return nil
}
