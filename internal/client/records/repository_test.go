package records

import (
	"context"
	"encoding/base64"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhishekk-y16/KisanMitra/internal/client/storage"
	"github.com/abhishekk-y16/KisanMitra/internal/client/storage/boltdb"
	"github.com/abhishekk-y16/KisanMitra/internal/crypto"
	"github.com/abhishekk-y16/KisanMitra/internal/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestRepository(t *testing.T) (*Repository, *boltdb.Storage) {
	t.Helper()

	store, err := boltdb.New(context.Background(), filepath.Join(t.TempDir(), "client.db"), models.Collections())
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, store.Close()) })

	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	repo := NewRepository(store, key, models.Collections(), models.DefaultMaxRetries, testLogger())
	return repo, store
}

func TestSaveGet_RoundTrip(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	diag := models.Diagnosis{
		Crop:       "rice",
		Disease:    "blast",
		Severity:   "high",
		Confidence: 0.87,
		ObservedAt: time.Now().UTC().Truncate(time.Second),
	}

	id, err := repo.Save(ctx, models.CollectionDiagnoses, diag)
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	// save followed immediately by get, before any sync, returns the
	// original payload unchanged.
	got, err := Get[models.Diagnosis](ctx, repo, models.CollectionDiagnoses, id)
	require.NoError(t, err)
	assert.Equal(t, diag, *got)
}

func TestGet_NotFound(t *testing.T) {
	repo, _ := newTestRepository(t)

	var out models.Diagnosis
	err := repo.Get(context.Background(), models.CollectionDiagnoses, "missing", &out)
	assert.ErrorIs(t, err, storage.ErrRecordNotFound)
}

func TestSave_StoresCiphertextOnly(t *testing.T) {
	repo, store := newTestRepository(t)
	ctx := context.Background()

	snapshot := models.PriceSnapshot{Commodity: "cotton", Market: "Guntur", PriceINR: 7100}
	id, err := repo.Save(ctx, models.CollectionPrices, snapshot)
	require.NoError(t, err)

	record, err := store.GetRecord(ctx, models.CollectionPrices, id)
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(record.Payload)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "cotton", "payload must not be stored in plaintext")
	assert.False(t, record.Synced)
	assert.Equal(t, 0, record.RetryCount)
	assert.False(t, record.CreatedAt.IsZero())
}

func TestGet_TamperedRecord(t *testing.T) {
	repo, store := newTestRepository(t)
	ctx := context.Background()

	id, err := repo.Save(ctx, models.CollectionParcels, models.ParcelLookup{SurveyNo: "112/2A"})
	require.NoError(t, err)

	record, err := store.GetRecord(ctx, models.CollectionParcels, id)
	require.NoError(t, err)

	// Corrupt a ciphertext byte, keeping the blob valid base64.
	raw, err := base64.StdEncoding.DecodeString(record.Payload)
	require.NoError(t, err)
	raw[len(raw)/2] ^= 0xff
	record.Payload = base64.StdEncoding.EncodeToString(raw)
	require.NoError(t, store.SaveRecord(ctx, record))

	var out models.ParcelLookup
	err = repo.Get(ctx, models.CollectionParcels, id, &out)
	require.Error(t, err)
	assert.ErrorIs(t, err, crypto.ErrDecryptionFailed)
}

func TestGet_WrongKey(t *testing.T) {
	repo, store := newTestRepository(t)
	ctx := context.Background()

	id, err := repo.Save(ctx, models.CollectionDiagnoses, models.Diagnosis{Crop: "wheat"})
	require.NoError(t, err)

	otherKey, err := crypto.GenerateKey()
	require.NoError(t, err)
	otherRepo := NewRepository(store, otherKey, models.Collections(), models.DefaultMaxRetries, testLogger())

	var out models.Diagnosis
	err = otherRepo.Get(ctx, models.CollectionDiagnoses, id, &out)
	assert.ErrorIs(t, err, crypto.ErrDecryptionFailed)
}

func TestPending_OrderAndFiltering(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 4; i++ {
		id, err := repo.Save(ctx, models.CollectionDiagnoses, models.Diagnosis{Crop: "rice", Notes: string(rune('a' + i))})
		require.NoError(t, err)
		ids = append(ids, id)
		time.Sleep(time.Millisecond) // distinct CreatedAt
	}

	pending, err := repo.Pending(ctx, models.CollectionDiagnoses)
	require.NoError(t, err)
	require.Len(t, pending, 4)
	for i, record := range pending {
		assert.Equal(t, ids[i], record.ID, "pending must preserve creation order")
	}

	// Synced records drop out.
	pending[0].Synced = true
	require.NoError(t, repo.Update(ctx, pending[0]))

	// Exhausted records drop out.
	pending[1].RetryCount = repo.MaxRetries()
	require.NoError(t, repo.Update(ctx, pending[1]))

	// Rejected records drop out.
	pending[2].Rejected = true
	require.NoError(t, repo.Update(ctx, pending[2]))

	remaining, err := repo.Pending(ctx, models.CollectionDiagnoses)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, ids[3], remaining[0].ID)
}

func TestCounts(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	id1, err := repo.Save(ctx, models.CollectionDiagnoses, models.Diagnosis{Crop: "rice"})
	require.NoError(t, err)
	_, err = repo.Save(ctx, models.CollectionPrices, models.PriceSnapshot{Commodity: "wheat"})
	require.NoError(t, err)

	counts, err := repo.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, Counts{Pending: 2, Abandoned: 0}, counts)

	// Abandon one of them.
	pending, err := repo.Pending(ctx, models.CollectionDiagnoses)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.Equal(t, id1, pending[0].ID)
	pending[0].RetryCount = repo.MaxRetries()
	require.NoError(t, repo.Update(ctx, pending[0]))

	counts, err = repo.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, Counts{Pending: 1, Abandoned: 1}, counts)

	pendingCount, err := repo.PendingCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, pendingCount)
}
