package api

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhishekk-y16/KisanMitra/internal/client/storage"
	pkgapi "github.com/abhishekk-y16/KisanMitra/pkg/api"
)

// Submitter binds the API client to the stored device token. It is the
// concrete transport handed to the sync engine; an unenrolled device
// submits without a token and lets the server decide.
type Submitter struct {
	client *Client
	auth   storage.AuthStore
}

// NewSubmitter creates a transport that reads the token from the auth
// store on every submission, so re-enrollment takes effect without a
// restart.
func NewSubmitter(client *Client, auth storage.AuthStore) *Submitter {
	return &Submitter{client: client, auth: auth}
}

// SubmitRecord delivers one record using the enrolled device token.
func (s *Submitter) SubmitRecord(ctx context.Context, collection string, req pkgapi.SubmitRecordRequest) error {
	var token string
	auth, err := s.auth.GetAuth(ctx)
	switch {
	case err == nil:
		token = auth.AccessToken
	case errors.Is(err, storage.ErrAuthNotFound):
		// proceed unauthenticated
	default:
		// No request was made; surface this as a local failure so the
		// caller does not mistake it for a refused delivery.
		return fmt.Errorf("%w: failed to load device token: %w", ErrLocalStorage, err)
	}

	_, err = s.client.SubmitRecord(ctx, token, collection, req)
	return err
}
