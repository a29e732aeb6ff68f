package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/abhishekk-y16/KisanMitra/internal/models"
	"github.com/abhishekk-y16/KisanMitra/internal/server/storage"
)

// UpsertSubmission stores a submission, keeping the first write for a
// given id. Returns duplicate=true when the id was already stored.
// Clients resubmit after lost acknowledgments; the conflict clause makes
// those retries harmless.
func (s *Storage) UpsertSubmission(ctx context.Context, submission *models.Submission) (bool, error) {
	query := `
		INSERT INTO submissions (
			id, device_id, collection, payload, created_at, received_at
		) VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`

	result, err := s.db.ExecContext(ctx, query,
		submission.ID,
		submission.DeviceID,
		submission.Collection,
		submission.Payload,
		submission.CreatedAt.UnixNano(),
		submission.ReceivedAt.UnixNano(),
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert submission: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rows == 0, nil
}

// GetSubmission retrieves a submission by record id
// Returns ErrSubmissionNotFound if it doesn't exist
func (s *Storage) GetSubmission(ctx context.Context, id string) (*models.Submission, error) {
	query := `
		SELECT id, device_id, collection, payload, created_at, received_at
		FROM submissions
		WHERE id = ?
	`

	submission := &models.Submission{}
	var createdAt, receivedAt int64

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&submission.ID,
		&submission.DeviceID,
		&submission.Collection,
		&submission.Payload,
		&createdAt,
		&receivedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}

	submission.CreatedAt = time.Unix(0, createdAt)
	submission.ReceivedAt = time.Unix(0, receivedAt)

	return submission, nil
}

// ListSubmissions retrieves all submissions in a collection ordered by
// client creation time
func (s *Storage) ListSubmissions(ctx context.Context, collection string) ([]*models.Submission, error) {
	query := `
		SELECT id, device_id, collection, payload, created_at, received_at
		FROM submissions
		WHERE collection = ?
		ORDER BY created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, collection)
	if err != nil {
		return nil, fmt.Errorf("failed to query submissions: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			err = cerr
		}
	}()

	var submissions []*models.Submission
	for rows.Next() {
		submission := &models.Submission{}
		var createdAt, receivedAt int64

		err := rows.Scan(
			&submission.ID,
			&submission.DeviceID,
			&submission.Collection,
			&submission.Payload,
			&createdAt,
			&receivedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}

		submission.CreatedAt = time.Unix(0, createdAt)
		submission.ReceivedAt = time.Unix(0, receivedAt)
		submissions = append(submissions, submission)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return submissions, nil
}

// CountSubmissions reports the number of stored submissions per collection
func (s *Storage) CountSubmissions(ctx context.Context) (map[string]int, error) {
	query := `
		SELECT collection, COUNT(*)
		FROM submissions
		GROUP BY collection
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to count submissions: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			err = cerr
		}
	}()

	counts := make(map[string]int)
	for rows.Next() {
		var collection string
		var count int
		if err := rows.Scan(&collection, &count); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		counts[collection] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return counts, nil
}
