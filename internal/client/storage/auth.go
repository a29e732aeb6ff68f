package storage

import (
	"context"
	"time"
)

// AuthData holds the device token issued at enrollment.
type AuthData struct {
	ExpiresAt   time.Time `json:"expires_at"`
	DeviceID    string    `json:"device_id"`
	AccessToken string    `json:"access_token"`
}

// AuthStore persists the enrollment token between runs.
type AuthStore interface {
	// SaveAuth stores the device token.
	SaveAuth(ctx context.Context, auth *AuthData) error

	// GetAuth retrieves the stored token.
	// Returns ErrAuthNotFound if the device has not enrolled.
	GetAuth(ctx context.Context) (*AuthData, error)

	// DeleteAuth removes the stored token.
	DeleteAuth(ctx context.Context) error
}
