package storage

import "errors"

// Common client storage errors
var (
	// ErrRecordNotFound indicates that no record exists under the id.
	ErrRecordNotFound = errors.New("record not found")

	// ErrUnknownCollection indicates a collection that was not created
	// at store initialization.
	ErrUnknownCollection = errors.New("unknown collection")

	// ErrAuthNotFound indicates that no enrollment token is stored.
	ErrAuthNotFound = errors.New("authentication data not found")
)
