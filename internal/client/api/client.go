// Package api implements the HTTP transport to the KisanMitra backend.
// Every call carries a context deadline; the remote endpoint is a slow,
// unreliable collaborator and the sync engine treats a timeout like any
// other transport failure.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/abhishekk-y16/KisanMitra/pkg/api"
)

// DefaultTimeout bounds a single request round trip.
const DefaultTimeout = 10 * time.Second

// Client is the HTTP client for the sync backend.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates an API client. timeout <= 0 falls back to
// DefaultTimeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Keep the device token across same-host redirects.
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}
}

// Health probes the backend health endpoint. Used by the connectivity
// monitor as the online/offline signal.
func (c *Client) Health(ctx context.Context) error {
	var resp api.HealthResponse
	if err := c.doRequest(ctx, http.MethodGet, "/api/v1/health", "", nil, &resp); err != nil {
		return fmt.Errorf("health request failed: %w", err)
	}
	return nil
}

// Enroll registers the device and returns a bearer token for record
// submissions.
func (c *Client) Enroll(ctx context.Context, req api.EnrollRequest) (*api.TokenResponse, error) {
	var resp api.TokenResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/devices/enroll", "", req, &resp); err != nil {
		return nil, fmt.Errorf("enroll request failed: %w", err)
	}
	return &resp, nil
}

// SubmitRecord delivers one decrypted record to its collection endpoint.
// The server applies submissions idempotently by record id, so the same
// record may be resubmitted after a lost acknowledgment.
func (c *Client) SubmitRecord(ctx context.Context, token, collection string, req api.SubmitRecordRequest) (*api.SubmitRecordResponse, error) {
	var resp api.SubmitRecordResponse
	path := fmt.Sprintf("/api/v1/records/%s", collection)
	if err := c.doRequest(ctx, http.MethodPost, path, token, req, &resp); err != nil {
		return nil, fmt.Errorf("submit record failed: %w", err)
	}
	return &resp, nil
}

func (c *Client) doRequest(ctx context.Context, method, path, token string, body, result any) error {
	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := &StatusError{StatusCode: resp.StatusCode}
		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error != "" {
			statusErr.Message = errResp.Error
		} else {
			statusErr.Message = string(respBody)
		}
		return statusErr
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
