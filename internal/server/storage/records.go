package storage

import (
	"context"

	"github.com/abhishekk-y16/KisanMitra/internal/models"
)

// RecordStorage defines the interface for submitted-record persistence.
// Clients retry deliveries after lost acknowledgments, so the write path
// must be idempotent by record id.
type RecordStorage interface {
	// UpsertSubmission stores a submission, keeping the first write for a
	// given id. Returns duplicate=true when the id was already stored;
	// the later payload is discarded in that case.
	UpsertSubmission(ctx context.Context, submission *models.Submission) (duplicate bool, err error)

	// GetSubmission retrieves a submission by record id
	// Returns ErrSubmissionNotFound if it doesn't exist
	GetSubmission(ctx context.Context, id string) (*models.Submission, error)

	// ListSubmissions retrieves all submissions in a collection ordered
	// by client creation time. Returns an empty slice when none exist.
	ListSubmissions(ctx context.Context, collection string) ([]*models.Submission, error)

	// CountSubmissions reports the number of stored submissions per collection
	CountSubmissions(ctx context.Context) (map[string]int, error)
}
