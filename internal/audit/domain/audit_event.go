// Package domain defines the append-only audit trail of cryptographic operations.
// Every encrypt or decrypt that reaches the hybrid codec produces exactly one
// AuditEvent; events are never updated or deleted by this service.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Action is the cryptographic operation being audited.
type Action string

const (
	ActionEncrypt      Action = "encrypt"
	ActionDecrypt      Action = "decrypt"
	ActionGenerateKeys Action = "generate_keys"
)

// EncryptionStatus is the outcome recorded for an operation.
type EncryptionStatus string

const (
	StatusSuccess EncryptionStatus = "success"
	// StatusPartial is used by multi-recipient encryption when some recipients were skipped.
	StatusPartial EncryptionStatus = "partial"
	StatusFailure EncryptionStatus = "failure"
)

// ResourceType names the kind of entity an operation touched.
type ResourceType string

const (
	ResourcePost        ResourceType = "post"
	ResourceComment     ResourceType = "comment"
	ResourceChatMessage ResourceType = "chat_message"
	ResourceUserKeys    ResourceType = "user_keys"
)

// Resource identifies the entity an audited operation touched.
type Resource struct {
	Type ResourceType
	ID   uuid.UUID
}

// AuditEvent is one immutable row of the audit trail.
type AuditEvent struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	Action           Action
	ResourceType     ResourceType
	ResourceID       uuid.UUID
	EncryptionStatus EncryptionStatus
	IPAddress        string
	UserAgent        string
	Signature        []byte
	CreatedAt        time.Time
}

// VerificationResult summarizes a signature check over a user's audit trail.
type VerificationResult struct {
	Total    int
	Valid    int
	Unsigned int
	Invalid  []uuid.UUID
}

// Intact reports whether every event carried a valid signature.
func (v VerificationResult) Intact() bool {
	return len(v.Invalid) == 0 && v.Unsigned == 0
}
