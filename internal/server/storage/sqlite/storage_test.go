package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()

	storage, err := New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, storage.Close()) })

	return storage
}

func TestNew_RunsMigrations(t *testing.T) {
	storage := newTestStorage(t)

	for _, table := range []string{"devices", "submissions"} {
		var name string
		err := storage.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		require.NoError(t, err, "table %s must exist after migrations", table)
		assert.Equal(t, table, name)
	}
}

func TestNew_InvalidPath(t *testing.T) {
	_, err := New(context.Background(), "/nonexistent/dir/server.db")
	assert.Error(t, err)
}
