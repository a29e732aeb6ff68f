package storage

import "errors"

// Common storage errors
var (
	// ErrDeviceNotFound indicates that the device was not found in storage
	ErrDeviceNotFound = errors.New("device not found")

	// ErrDeviceAlreadyExists indicates that a device with this device_id is already enrolled
	ErrDeviceAlreadyExists = errors.New("device already exists")

	// ErrSubmissionNotFound indicates that the submitted record was not found
	ErrSubmissionNotFound = errors.New("submission not found")
)
