package storage

import (
	"context"

	"github.com/abhishekk-y16/KisanMitra/internal/models"
)

//go:generate moq -out records_mock.go . RecordStore

// RecordStore is the durable persistence substrate for encrypted
// records: per-collection key-value storage with a secondary index over
// sync state ordered by creation time. Implementations must make
// SaveRecord atomic per record; the sync engine and repository assume
// nothing about the engine beyond this contract.
type RecordStore interface {
	// SaveRecord upserts a record by id and maintains the unsynced index.
	SaveRecord(ctx context.Context, record *models.Record) error

	// GetRecord retrieves a record by id.
	// Returns ErrRecordNotFound if the record doesn't exist.
	GetRecord(ctx context.Context, collection, id string) (*models.Record, error)

	// ListUnsynced returns all records with Synced == false in the
	// collection, sorted ascending by CreatedAt.
	ListUnsynced(ctx context.Context, collection string) ([]*models.Record, error)

	// CountUnsynced returns the number of unsynced records in the collection.
	CountUnsynced(ctx context.Context, collection string) (int, error)
}
