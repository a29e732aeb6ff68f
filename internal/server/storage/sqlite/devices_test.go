package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhishekk-y16/KisanMitra/internal/models"
	"github.com/abhishekk-y16/KisanMitra/internal/server/storage"
)

func newTestDevice(deviceID string) *models.Device {
	now := time.Now().Truncate(time.Second)
	return &models.Device{
		ID:         uuid.New().String(),
		DeviceID:   deviceID,
		EnrolledAt: now,
		LastSeenAt: now,
	}
}

func TestCreateDevice_AndGet(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	device := newTestDevice("field-tablet-01")
	require.NoError(t, s.CreateDevice(ctx, device))

	got, err := s.GetDeviceByDeviceID(ctx, "field-tablet-01")
	require.NoError(t, err)
	assert.Equal(t, device.ID, got.ID)
	assert.Equal(t, device.DeviceID, got.DeviceID)
	assert.WithinDuration(t, device.EnrolledAt, got.EnrolledAt, time.Second)
}

func TestCreateDevice_Duplicate(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.CreateDevice(ctx, newTestDevice("field-tablet-01")))

	err := s.CreateDevice(ctx, newTestDevice("field-tablet-01"))
	assert.ErrorIs(t, err, storage.ErrDeviceAlreadyExists)
}

func TestGetDeviceByDeviceID_NotFound(t *testing.T) {
	s := newTestStorage(t)

	_, err := s.GetDeviceByDeviceID(context.Background(), "unknown")
	assert.ErrorIs(t, err, storage.ErrDeviceNotFound)
}

func TestTouchDevice(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	device := newTestDevice("field-tablet-01")
	require.NoError(t, s.CreateDevice(ctx, device))

	seenAt := device.LastSeenAt.Add(time.Hour)
	require.NoError(t, s.TouchDevice(ctx, device.DeviceID, seenAt))

	got, err := s.GetDeviceByDeviceID(ctx, device.DeviceID)
	require.NoError(t, err)
	assert.WithinDuration(t, seenAt, got.LastSeenAt, time.Second)
}

func TestTouchDevice_NotFound(t *testing.T) {
	s := newTestStorage(t)

	err := s.TouchDevice(context.Background(), "unknown", time.Now())
	assert.ErrorIs(t, err, storage.ErrDeviceNotFound)
}
