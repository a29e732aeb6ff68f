// Package keystore owns the symmetric key protecting records at rest.
// The key is created once per device profile, persisted in a local
// secret slot, and reused for the lifetime of the installation. Losing
// it makes every encrypted record permanently unreadable, so a corrupt
// slot is surfaced as ErrKeyUnavailable and never papered over by
// generating a fresh key.
package keystore

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/abhishekk-y16/KisanMitra/internal/crypto"
)

var (
	// ErrSlotEmpty is returned by a SecretSlot that has no key yet.
	ErrSlotEmpty = errors.New("secret slot is empty")

	// ErrKeyUnavailable indicates the slot holds data that cannot be
	// decoded back into a key. Fatal for all encrypted data; requires
	// operator action, never automatic recovery.
	ErrKeyUnavailable = errors.New("encryption key unavailable: secret slot is corrupted")

	// ErrPassphraseRequired indicates the slot holds a wrapped key but
	// the manager was built without a passphrase.
	ErrPassphraseRequired = errors.New("encryption key is passphrase protected")
)

// SecretSlot is a place to persist the encryption key across process
// restarts: a file, an OS keychain entry, anything scoped to the user
// profile.
type SecretSlot interface {
	// Load returns the stored slot content, or ErrSlotEmpty.
	Load() ([]byte, error)

	// Store persists the slot content.
	Store(data []byte) error
}

// envelope is the serialized slot format. In plain mode Key holds the
// base64 key itself; with a passphrase it holds the AES-GCM wrapped key
// and Salt the argon2 salt.
type envelope struct {
	Key  string `json:"key"`
	Salt string `json:"salt,omitempty"`
}

// Manager loads or creates the device encryption key. The key is
// immutable for the process lifetime and safe to share once returned.
type Manager struct {
	slot       SecretSlot
	logger     *slog.Logger
	passphrase string
	key        []byte
	mu         sync.Mutex
}

// New creates a key manager over the given slot. passphrase may be
// empty, in which case the key is stored unwrapped.
func New(slot SecretSlot, passphrase string, logger *slog.Logger) *Manager {
	return &Manager{
		slot:       slot,
		passphrase: passphrase,
		logger:     logger,
	}
}

// GetOrCreateKey returns the device key, generating and persisting a
// fresh one on first use. The new key is stored before it is returned,
// so a crash between generation and first encryption cannot orphan data.
func (m *Manager) GetOrCreateKey() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.key != nil {
		return m.key, nil
	}

	data, err := m.slot.Load()
	switch {
	case errors.Is(err, ErrSlotEmpty):
		key, err := m.createKey()
		if err != nil {
			return nil, err
		}
		m.key = key
		m.logger.Info("generated new encryption key", "fingerprint", crypto.Fingerprint(key))
		return m.key, nil
	case err != nil:
		return nil, fmt.Errorf("failed to read secret slot: %w", err)
	}

	key, err := m.decodeKey(data)
	if err != nil {
		return nil, err
	}
	m.key = key
	m.logger.Debug("loaded encryption key", "fingerprint", crypto.Fingerprint(key))
	return m.key, nil
}

func (m *Manager) createKey() ([]byte, error) {
	key, err := crypto.GenerateKey()
	if err != nil {
		return nil, err
	}

	env := envelope{Key: base64.StdEncoding.EncodeToString(key)}
	if m.passphrase != "" {
		salt, err := crypto.GenerateSalt()
		if err != nil {
			return nil, err
		}
		wrapKey, err := crypto.DeriveWrapKey(m.passphrase, salt)
		if err != nil {
			return nil, err
		}
		wrapped, err := crypto.EncryptToBase64(key, wrapKey)
		if err != nil {
			return nil, fmt.Errorf("failed to wrap key: %w", err)
		}
		env = envelope{Key: wrapped, Salt: base64.StdEncoding.EncodeToString(salt)}
	}

	data, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("failed to encode key envelope: %w", err)
	}
	if err := m.slot.Store(data); err != nil {
		return nil, fmt.Errorf("failed to persist key: %w", err)
	}
	return key, nil
}

func (m *Manager) decodeKey(data []byte) ([]byte, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyUnavailable, err)
	}

	if env.Salt == "" {
		key, err := base64.StdEncoding.DecodeString(env.Key)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrKeyUnavailable, err)
		}
		if len(key) != crypto.KeySize {
			return nil, fmt.Errorf("%w: stored key has wrong length %d", ErrKeyUnavailable, len(key))
		}
		return key, nil
	}

	if m.passphrase == "" {
		return nil, ErrPassphraseRequired
	}
	salt, err := base64.StdEncoding.DecodeString(env.Salt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyUnavailable, err)
	}
	wrapKey, err := crypto.DeriveWrapKey(m.passphrase, salt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyUnavailable, err)
	}
	key, err := crypto.DecryptFromBase64(env.Key, wrapKey)
	if err != nil {
		// Wrong passphrase and corrupted slot are indistinguishable here.
		return nil, fmt.Errorf("%w: %v", ErrKeyUnavailable, err)
	}
	if len(key) != crypto.KeySize {
		return nil, fmt.Errorf("%w: unwrapped key has wrong length %d", ErrKeyUnavailable, len(key))
	}
	return key, nil
}
