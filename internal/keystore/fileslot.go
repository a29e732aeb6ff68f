package keystore

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileSlot persists the key envelope in a mode-0600 file under the
// client data directory. Suitable wherever no OS keychain is available.
type FileSlot struct {
	path string
}

// NewFileSlot creates a slot at the given path, creating parent
// directories as needed.
func NewFileSlot(path string) (*FileSlot, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create key directory: %w", err)
	}
	return &FileSlot{path: path}, nil
}

// Load returns the file content, or ErrSlotEmpty when no key file exists.
func (s *FileSlot) Load() ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, ErrSlotEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read key file: %w", err)
	}
	return data, nil
}

// Store writes the content with owner-only permissions.
func (s *FileSlot) Store(data []byte) error {
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write key file: %w", err)
	}
	return nil
}
