// Package boltdb implements the client durable store on bbolt. Each
// collection gets a records bucket keyed by id plus an index bucket over
// unsynced records keyed by creation time, which gives the sync engine
// its "pending, oldest first" scan without touching synced records.
package boltdb

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/abhishekk-y16/KisanMitra/internal/validation"
)

var bucketAuth = []byte("auth")

// Storage represents the BoltDB-backed client store.
type Storage struct {
	db          *bbolt.DB
	collections []string
}

// New opens the database and creates the buckets for the given
// collections. Collections are fixed at initialization and never removed
// at runtime.
func New(ctx context.Context, dbPath string, collections []string) (*Storage, error) {
	for _, name := range collections {
		if err := validation.ValidateCollection(name); err != nil {
			return nil, fmt.Errorf("invalid collection %q: %w", name, err)
		}
	}

	db, err := bbolt.Open(dbPath, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open boltdb: %w", err)
	}

	storage := &Storage{db: db, collections: collections}

	if err := storage.initBuckets(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize buckets: %w", err)
	}

	return storage, nil
}

// Close closes the database connection.
func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Collections returns the collection names this store was opened with.
func (s *Storage) Collections() []string {
	return s.collections
}

func recordsBucket(collection string) []byte {
	return []byte("records:" + collection)
}

func unsyncedBucket(collection string) []byte {
	return []byte("unsynced:" + collection)
}

func (s *Storage) initBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketAuth); err != nil {
			return fmt.Errorf("failed to create auth bucket: %w", err)
		}

		for _, name := range s.collections {
			if _, err := tx.CreateBucketIfNotExists(recordsBucket(name)); err != nil {
				return fmt.Errorf("failed to create records bucket for %q: %w", name, err)
			}
			if _, err := tx.CreateBucketIfNotExists(unsyncedBucket(name)); err != nil {
				return fmt.Errorf("failed to create index bucket for %q: %w", name, err)
			}
		}

		return nil
	})
}
