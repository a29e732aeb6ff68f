// Package records is the typed boundary between application payloads
// and the encrypted durable store: it serializes, encrypts and persists
// on the way in, and decrypts on the way out. Save and Get never touch
// the network.
package records

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/abhishekk-y16/KisanMitra/internal/client/storage"
	"github.com/abhishekk-y16/KisanMitra/internal/crypto"
	"github.com/abhishekk-y16/KisanMitra/internal/models"
)

// Counts summarizes the sync backlog for status reporting.
type Counts struct {
	Pending   int // eligible for delivery
	Abandoned int // permanently excluded (retries exhausted or rejected)
}

// Repository provides typed save/get over the encrypted store.
type Repository struct {
	store       storage.RecordStore
	logger      *slog.Logger
	collections []string
	key         []byte
	maxRetries  int
}

// NewRepository creates a repository using the given device key.
// maxRetries bounds how many failed delivery attempts a record may
// accumulate before Pending stops returning it.
func NewRepository(store storage.RecordStore, key []byte, collections []string, maxRetries int, logger *slog.Logger) *Repository {
	if maxRetries <= 0 {
		maxRetries = models.DefaultMaxRetries
	}
	return &Repository{
		store:       store,
		key:         key,
		collections: collections,
		maxRetries:  maxRetries,
		logger:      logger,
	}
}

// MaxRetries returns the configured delivery-attempt budget.
func (r *Repository) MaxRetries() int {
	return r.maxRetries
}

// Collections returns the collection names the repository serves.
func (r *Repository) Collections() []string {
	return r.collections
}

// Save serializes and encrypts the payload, then persists it as a new
// unsynced record. Purely local: succeeds or fails on storage alone.
// Returns the generated record id.
func (r *Repository) Save(ctx context.Context, collection string, payload any) (string, error) {
	plaintext, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal payload: %w", err)
	}

	blob, err := crypto.EncryptToBase64(plaintext, r.key)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt payload: %w", err)
	}

	record := models.NewRecord(collection, blob)
	if err := r.store.SaveRecord(ctx, record); err != nil {
		return "", fmt.Errorf("failed to save record: %w", err)
	}

	r.logger.Debug("saved record", "collection", collection, "id", record.ID)
	return record.ID, nil
}

// Get reads a record, decrypts it and unmarshals the payload into out.
func (r *Repository) Get(ctx context.Context, collection, id string, out any) error {
	record, err := r.store.GetRecord(ctx, collection, id)
	if err != nil {
		return err
	}

	plaintext, err := r.Open(record)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(plaintext, out); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}
	return nil
}

// Open decrypts a record's payload. Returns crypto.ErrDecryptionFailed
// when the blob is corrupted or was written under a different key.
func (r *Repository) Open(record *models.Record) ([]byte, error) {
	return crypto.DecryptFromBase64(record.Payload, r.key)
}

// Update persists modified delivery state for a record.
func (r *Repository) Update(ctx context.Context, record *models.Record) error {
	return r.store.SaveRecord(ctx, record)
}

// Pending returns the records still awaiting delivery in the
// collection: unsynced, not abandoned, ascending by creation time.
func (r *Repository) Pending(ctx context.Context, collection string) ([]*models.Record, error) {
	unsynced, err := r.store.ListUnsynced(ctx, collection)
	if err != nil {
		return nil, fmt.Errorf("failed to list unsynced records: %w", err)
	}

	pending := make([]*models.Record, 0, len(unsynced))
	for _, record := range unsynced {
		if record.Eligible(r.maxRetries) {
			pending = append(pending, record)
		}
	}
	return pending, nil
}

// Counts tallies pending and abandoned records across all collections.
func (r *Repository) Counts(ctx context.Context) (Counts, error) {
	var counts Counts
	for _, collection := range r.collections {
		unsynced, err := r.store.ListUnsynced(ctx, collection)
		if err != nil {
			return Counts{}, fmt.Errorf("failed to list unsynced records in %q: %w", collection, err)
		}
		for _, record := range unsynced {
			if record.Abandoned(r.maxRetries) {
				counts.Abandoned++
			} else {
				counts.Pending++
			}
		}
	}
	return counts, nil
}

// PendingCount returns the number of records awaiting delivery across
// all collections, for sync-status indicators.
func (r *Repository) PendingCount(ctx context.Context) (int, error) {
	counts, err := r.Counts(ctx)
	if err != nil {
		return 0, err
	}
	return counts.Pending, nil
}

// Get is the typed convenience wrapper around Repository.Get.
func Get[T any](ctx context.Context, r *Repository, collection, id string) (*T, error) {
	var out T
	if err := r.Get(ctx, collection, id, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
