package models

import "time"

// Device represents an enrolled field device. A device exchanges its
// enrollment key for access tokens and submits records under its own
// identity.
type Device struct {
	ID         string    `json:"id"`           // internal UUID
	DeviceID   string    `json:"device_id"`    // caller-chosen stable identifier
	EnrolledAt time.Time `json:"enrolled_at"`  // first successful enrollment
	LastSeenAt time.Time `json:"last_seen_at"` // last authenticated request
}

// Submission is a record as accepted by the backend. The payload is the
// decrypted application document; the server never sees client-side
// encryption keys.
type Submission struct {
	ID         string    `json:"id"`          // record UUID, chosen by the client
	DeviceID   string    `json:"device_id"`   // submitting device
	Collection string    `json:"collection"`  // logical collection name
	Payload    []byte    `json:"payload"`     // JSON document
	CreatedAt  time.Time `json:"created_at"`  // client-side creation time
	ReceivedAt time.Time `json:"received_at"` // server-side arrival time
}
