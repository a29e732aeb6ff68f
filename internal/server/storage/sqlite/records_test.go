package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhishekk-y16/KisanMitra/internal/models"
	"github.com/abhishekk-y16/KisanMitra/internal/server/storage"
)

func newTestSubmission(deviceID, collection string, payload []byte) *models.Submission {
	now := time.Now()
	return &models.Submission{
		ID:         uuid.New().String(),
		DeviceID:   deviceID,
		Collection: collection,
		Payload:    payload,
		CreatedAt:  now,
		ReceivedAt: now,
	}
}

func enrollTestDevice(t *testing.T, s *Storage, deviceID string) {
	t.Helper()
	require.NoError(t, s.CreateDevice(context.Background(), newTestDevice(deviceID)))
}

func TestUpsertSubmission_AndGet(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	enrollTestDevice(t, s, "field-tablet-01")

	submission := newTestSubmission("field-tablet-01", models.CollectionDiagnoses, []byte(`{"crop":"rice"}`))
	duplicate, err := s.UpsertSubmission(ctx, submission)
	require.NoError(t, err)
	assert.False(t, duplicate)

	got, err := s.GetSubmission(ctx, submission.ID)
	require.NoError(t, err)
	assert.Equal(t, submission.DeviceID, got.DeviceID)
	assert.Equal(t, submission.Collection, got.Collection)
	assert.JSONEq(t, `{"crop":"rice"}`, string(got.Payload))
	assert.True(t, got.CreatedAt.Equal(submission.CreatedAt), "timestamps must round-trip without losing precision")
}

func TestUpsertSubmission_DuplicateKeepsFirstWrite(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	enrollTestDevice(t, s, "field-tablet-01")

	first := newTestSubmission("field-tablet-01", models.CollectionDiagnoses, []byte(`{"crop":"rice"}`))
	_, err := s.UpsertSubmission(ctx, first)
	require.NoError(t, err)

	// A retried delivery carries the same id.
	retry := *first
	retry.Payload = []byte(`{"crop":"tampered"}`)
	duplicate, err := s.UpsertSubmission(ctx, &retry)
	require.NoError(t, err)
	assert.True(t, duplicate)

	got, err := s.GetSubmission(ctx, first.ID)
	require.NoError(t, err)
	assert.JSONEq(t, `{"crop":"rice"}`, string(got.Payload))
}

func TestGetSubmission_NotFound(t *testing.T) {
	s := newTestStorage(t)

	_, err := s.GetSubmission(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, storage.ErrSubmissionNotFound)
}

func TestListSubmissions_OrderedByCreation(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	enrollTestDevice(t, s, "field-tablet-01")

	// All within the same second and inserted newest first; ordering
	// must come from the stored creation time, not the insert order.
	base := time.Now().Truncate(time.Second)
	ids := make([]string, 3)
	for i := 2; i >= 0; i-- {
		submission := newTestSubmission("field-tablet-01", models.CollectionPrices, []byte(`{}`))
		submission.CreatedAt = base.Add(time.Duration(i) * 100 * time.Millisecond)
		_, err := s.UpsertSubmission(ctx, submission)
		require.NoError(t, err)
		ids[i] = submission.ID
	}

	got, err := s.ListSubmissions(ctx, models.CollectionPrices)
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i, submission := range got {
		assert.Equal(t, ids[i], submission.ID)
	}
}

func TestListSubmissions_EmptyCollection(t *testing.T) {
	s := newTestStorage(t)

	got, err := s.ListSubmissions(context.Background(), models.CollectionParcels)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCountSubmissions(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	enrollTestDevice(t, s, "field-tablet-01")

	for i := 0; i < 2; i++ {
		_, err := s.UpsertSubmission(ctx, newTestSubmission("field-tablet-01", models.CollectionDiagnoses, []byte(`{}`)))
		require.NoError(t, err)
	}
	_, err := s.UpsertSubmission(ctx, newTestSubmission("field-tablet-01", models.CollectionPrices, []byte(`{}`)))
	require.NoError(t, err)

	counts, err := s.CountSubmissions(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{
		models.CollectionDiagnoses: 2,
		models.CollectionPrices:    1,
	}, counts)
}
