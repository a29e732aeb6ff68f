package models

import (
	"time"

	"github.com/google/uuid"
)

// DefaultMaxRetries is the delivery-attempt budget per record. A record
// whose RetryCount reaches this value is permanently excluded from
// automatic sync.
const DefaultMaxRetries = 5

// Collection names known to the reference deployment. Collections are
// created when the local store is opened and never removed at runtime.
const (
	CollectionDiagnoses = "diagnoses"
	CollectionPrices    = "prices"
	CollectionParcels   = "parcels"
)

// Collections returns the full set of collection names in a stable order.
func Collections() []string {
	return []string{CollectionDiagnoses, CollectionPrices, CollectionParcels}
}

// Record is one encrypted document waiting in the local store. The
// payload is opaque to the sync engine: base64(nonce || ciphertext) as
// produced by crypto.EncryptToBase64.
type Record struct {
	CreatedAt     time.Time `json:"created_at"`      // assigned once at creation, ordering key
	NextAttemptAt time.Time `json:"next_attempt_at"` // earliest time the next delivery may run
	ID            string    `json:"id"`
	Collection    string    `json:"collection"`
	Payload       string    `json:"payload"`
	RetryCount    int       `json:"retry_count"`
	Synced        bool      `json:"synced"`
	Rejected      bool      `json:"rejected"` // server refused the record permanently
}

// NewRecord builds an unsynced record around an already-encrypted payload.
func NewRecord(collection, payload string) *Record {
	return &Record{
		ID:         uuid.New().String(),
		Collection: collection,
		Payload:    payload,
		CreatedAt:  time.Now(),
	}
}

// Abandoned reports whether the record is permanently excluded from
// automatic delivery, either by exhausting its retry budget or by an
// explicit server rejection.
func (r *Record) Abandoned(maxRetries int) bool {
	return r.Rejected || r.RetryCount >= maxRetries
}

// Eligible reports whether the record should still be offered to the
// sync engine.
func (r *Record) Eligible(maxRetries int) bool {
	return !r.Synced && !r.Abandoned(maxRetries)
}
