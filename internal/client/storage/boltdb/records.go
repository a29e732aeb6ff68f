package boltdb

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/abhishekk-y16/KisanMitra/internal/client/storage"
	"github.com/abhishekk-y16/KisanMitra/internal/models"
)

// indexKey orders the unsynced index by creation time. CreatedAt is
// never mutated, so a record keeps the same index key across updates;
// the id suffix disambiguates identical timestamps.
func indexKey(record *models.Record) []byte {
	key := make([]byte, 8, 8+len(record.ID))
	binary.BigEndian.PutUint64(key, uint64(record.CreatedAt.UnixNano()))
	return append(key, []byte(record.ID)...)
}

// SaveRecord upserts a record by id and keeps the unsynced index in
// step within the same transaction.
func (s *Storage) SaveRecord(ctx context.Context, record *models.Record) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		records := tx.Bucket(recordsBucket(record.Collection))
		index := tx.Bucket(unsyncedBucket(record.Collection))
		if records == nil || index == nil {
			return fmt.Errorf("%w: %q", storage.ErrUnknownCollection, record.Collection)
		}

		data, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("failed to marshal record: %w", err)
		}

		if err := records.Put([]byte(record.ID), data); err != nil {
			return fmt.Errorf("failed to save record: %w", err)
		}

		if record.Synced {
			if err := index.Delete(indexKey(record)); err != nil {
				return fmt.Errorf("failed to remove index entry: %w", err)
			}
		} else {
			if err := index.Put(indexKey(record), []byte(record.ID)); err != nil {
				return fmt.Errorf("failed to update index entry: %w", err)
			}
		}

		return nil
	})
}

// GetRecord retrieves a record by id.
func (s *Storage) GetRecord(ctx context.Context, collection, id string) (*models.Record, error) {
	var record *models.Record

	err := s.db.View(func(tx *bbolt.Tx) error {
		records := tx.Bucket(recordsBucket(collection))
		if records == nil {
			return fmt.Errorf("%w: %q", storage.ErrUnknownCollection, collection)
		}

		data := records.Get([]byte(id))
		if data == nil {
			return storage.ErrRecordNotFound
		}

		record = &models.Record{}
		if err := json.Unmarshal(data, record); err != nil {
			return fmt.Errorf("failed to unmarshal record: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return record, nil
}

// ListUnsynced returns all unsynced records in the collection, ascending
// by creation time. The index key encodes the ordering, so a plain
// cursor walk is already sorted.
func (s *Storage) ListUnsynced(ctx context.Context, collection string) ([]*models.Record, error) {
	var result []*models.Record

	err := s.db.View(func(tx *bbolt.Tx) error {
		records := tx.Bucket(recordsBucket(collection))
		index := tx.Bucket(unsyncedBucket(collection))
		if records == nil || index == nil {
			return fmt.Errorf("%w: %q", storage.ErrUnknownCollection, collection)
		}

		return index.ForEach(func(_, id []byte) error {
			data := records.Get(id)
			if data == nil {
				// Index entry without a record should not happen; skip
				// rather than fail the whole scan.
				return nil
			}
			record := &models.Record{}
			if err := json.Unmarshal(data, record); err != nil {
				return fmt.Errorf("failed to unmarshal record %s: %w", id, err)
			}
			result = append(result, record)
			return nil
		})
	})

	if err != nil {
		return nil, err
	}

	return result, nil
}

// CountUnsynced returns the number of unsynced records in the collection.
func (s *Storage) CountUnsynced(ctx context.Context, collection string) (int, error) {
	var count int

	err := s.db.View(func(tx *bbolt.Tx) error {
		index := tx.Bucket(unsyncedBucket(collection))
		if index == nil {
			return fmt.Errorf("%w: %q", storage.ErrUnknownCollection, collection)
		}
		count = index.Stats().KeyN
		return nil
	})

	if err != nil {
		return 0, err
	}

	return count, nil
}
