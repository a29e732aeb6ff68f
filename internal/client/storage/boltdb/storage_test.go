package boltdb

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"

	"github.com/abhishekk-y16/KisanMitra/internal/models"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "testdb.db")

	store, err := New(context.Background(), dbPath, models.Collections())
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})
	return store
}

func TestNew_Success(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "testdb.db")

	ctx := context.Background()
	store, err := New(ctx, dbPath, models.Collections())
	require.NoError(t, err)
	require.NotNil(t, store)
	defer func() {
		require.NoError(t, store.Close())
	}()

	info, err := os.Stat(dbPath)
	require.NoError(t, err)
	assert.False(t, info.IsDir())

	// Every collection gets a records and an index bucket.
	err = store.db.View(func(tx *bbolt.Tx) error {
		if tx.Bucket(bucketAuth) == nil {
			return os.ErrNotExist
		}
		for _, name := range models.Collections() {
			if tx.Bucket(recordsBucket(name)) == nil {
				return os.ErrNotExist
			}
			if tx.Bucket(unsyncedBucket(name)) == nil {
				return os.ErrNotExist
			}
		}
		return nil
	})
	require.NoError(t, err)
}

func TestNew_InvalidCollectionName(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "testdb.db")

	store, err := New(context.Background(), dbPath, []string{"Not Valid"})
	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestNew_InvalidPath(t *testing.T) {
	store, err := New(context.Background(), string([]byte{0}), models.Collections())
	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "testdb.db")

	store, err := New(context.Background(), dbPath, models.Collections())
	require.NoError(t, err)
	require.NoError(t, store.Close())
}
