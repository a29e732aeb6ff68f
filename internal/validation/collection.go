package validation

import (
	"fmt"
	"regexp"
)

// CollectionPattern defines the allowed collection name format: lowercase
// letters, digits and underscores, 3-32 characters. Collection names end
// up in bucket names and URL paths, so the character set stays narrow.
var CollectionPattern = regexp.MustCompile(`^[a-z0-9_]{3,32}$`)

const (
	// MinCollectionLen is the minimum collection name length.
	MinCollectionLen = 3
	// MaxCollectionLen is the maximum collection name length.
	MaxCollectionLen = 32
)

// ValidateCollection checks that a collection name is usable as a store
// partition and endpoint path segment.
func ValidateCollection(name string) error {
	if name == "" {
		return fmt.Errorf("collection name cannot be empty")
	}

	if len(name) < MinCollectionLen {
		return fmt.Errorf("collection name must be at least %d characters long", MinCollectionLen)
	}

	if len(name) > MaxCollectionLen {
		return fmt.Errorf("collection name must not exceed %d characters", MaxCollectionLen)
	}

	if !CollectionPattern.MatchString(name) {
		return fmt.Errorf("collection name can only contain lowercase letters (a-z), numbers (0-9), and underscores (_)")
	}

	return nil
}

// ValidateDeviceID checks the device identifier used during enrollment.
// Same character set as collections but longer, to fit UUIDs with dashes.
var devicePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,64}$`)

func ValidateDeviceID(deviceID string) error {
	if deviceID == "" {
		return fmt.Errorf("device id cannot be empty")
	}
	if !devicePattern.MatchString(deviceID) {
		return fmt.Errorf("device id can only contain letters, numbers, dashes and underscores (3-64 characters)")
	}
	return nil
}
