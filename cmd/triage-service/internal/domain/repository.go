package domain

import (
	"context"
	"time"
)

// TriageRecord is the persisted trace of one triage call. Payload is the
// encrypted response metadata; the engine itself never encrypts.
type TriageRecord struct {
	ID         string    `json:"id"`
	ClinicID   string    `json:"clinic_id"`
	CustomerID string    `json:"customer_id,omitempty"`
	Payload    []byte    `json:"payload"`
	CreatedAt  time.Time `json:"created_at"`
}

// TriageRecordStore persists finished triage records. Store failures must
// never affect the response already returned to the caller.
type TriageRecordStore interface {
	Save(ctx context.Context, record *TriageRecord) error
	Get(ctx context.Context, id string) (*TriageRecord, error)
}

// FieldEncryptor is the external field-level encryption collaborator.
type FieldEncryptor interface {
	Encrypt(plaintext []byte) ([]byte, error)
	Decrypt(ciphertext []byte) ([]byte, error)
}
