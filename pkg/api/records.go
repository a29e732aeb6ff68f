package api

import (
	"encoding/json"
	"time"
)

// SubmitRecordRequest is the body of POST /api/v1/records/{collection}.
// Payload carries the decrypted application document; encryption only
// protects the record at rest on the device and is stripped before
// transmission. The server applies submissions idempotently by ID, so
// resubmitting after a lost acknowledgment is safe.
type SubmitRecordRequest struct {
	ID        string          `json:"id"`         // client-generated record id, idempotency key
	CreatedAt time.Time       `json:"created_at"` // creation time on the device
	Payload   json.RawMessage `json:"payload"`    // plaintext application document
}

// SubmitRecordResponse acknowledges a stored record.
type SubmitRecordResponse struct {
	ID        string `json:"id"`
	Duplicate bool   `json:"duplicate"` // true when the id had already been applied
}

// StoredRecord is one stored submission as returned by the read
// endpoints.
type StoredRecord struct {
	ID         string          `json:"id"`
	DeviceID   string          `json:"device_id"`
	CreatedAt  time.Time       `json:"created_at"`
	ReceivedAt time.Time       `json:"received_at"`
	Payload    json.RawMessage `json:"payload"`
}

// ListRecordsResponse is returned by GET /api/v1/records/{collection},
// ordered by client creation time.
type ListRecordsResponse struct {
	Records []StoredRecord `json:"records"`
}

// StatsResponse is returned by GET /api/v1/stats.
type StatsResponse struct {
	Collections map[string]int `json:"collections"`
}

// HealthResponse is returned by GET /api/v1/health.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

// ErrorResponse is the generic error body for non-2xx responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
