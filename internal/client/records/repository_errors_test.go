package records

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhishekk-y16/KisanMitra/internal/client/storage"
	"github.com/abhishekk-y16/KisanMitra/internal/crypto"
	"github.com/abhishekk-y16/KisanMitra/internal/models"
)

func newMockRepository(t *testing.T, store *storage.RecordStoreMock) *Repository {
	t.Helper()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	return NewRepository(store, key, models.Collections(), models.DefaultMaxRetries, testLogger())
}

func TestSave_StorageFailure(t *testing.T) {
	storeErr := errors.New("database is read-only")
	store := &storage.RecordStoreMock{
		SaveRecordFunc: func(ctx context.Context, record *models.Record) error {
			return storeErr
		},
	}
	repo := newMockRepository(t, store)

	_, err := repo.Save(context.Background(), models.CollectionDiagnoses, models.Diagnosis{Crop: "rice"})
	assert.ErrorIs(t, err, storeErr)

	// The record handed to storage was already encrypted.
	calls := store.SaveRecordCalls()
	require.Len(t, calls, 1)
	assert.NotContains(t, calls[0].Record.Payload, "rice")
}

func TestPending_StorageFailure(t *testing.T) {
	storeErr := errors.New("database is read-only")
	store := &storage.RecordStoreMock{
		ListUnsyncedFunc: func(ctx context.Context, collection string) ([]*models.Record, error) {
			return nil, storeErr
		},
	}
	repo := newMockRepository(t, store)

	_, err := repo.Pending(context.Background(), models.CollectionDiagnoses)
	assert.ErrorIs(t, err, storeErr)

	_, err = repo.Counts(context.Background())
	assert.ErrorIs(t, err, storeErr)
}
