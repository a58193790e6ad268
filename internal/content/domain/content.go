// Package domain defines encrypted content as stored by the secure content store.
package domain

import (
	"time"

	"github.com/google/uuid"

	auditDomain "github.com/allisson/sealfeed/internal/audit/domain"
	cryptoDomain "github.com/allisson/sealfeed/internal/crypto/domain"
)

// DefaultPlaceholderText replaces content that cannot be decrypted for the reader.
const DefaultPlaceholderText = "[encrypted content unavailable]"

// ContentType is the kind of parent entity a payload belongs to.
type ContentType string

const (
	ContentPost        ContentType = "post"
	ContentComment     ContentType = "comment"
	ContentChatMessage ContentType = "chat_message"
)

// IsValid reports whether t is a known content type.
func (t ContentType) IsValid() bool {
	switch t {
	case ContentPost, ContentComment, ContentChatMessage:
		return true
	}
	return false
}

// IsMultiRecipient reports whether content of this type is addressed to a recipient set
// rather than kept by a single owner.
func (t ContentType) IsMultiRecipient() bool {
	return t == ContentChatMessage
}

// ResourceType maps the content type onto the audit resource type.
func (t ContentType) ResourceType() auditDomain.ResourceType {
	return auditDomain.ResourceType(t)
}

// ContentRef identifies one content entity.
type ContentRef struct {
	Type ContentType
	ID   uuid.UUID
}

// Resource returns the audit resource for the referenced content.
func (r ContentRef) Resource() auditDomain.Resource {
	return auditDomain.Resource{Type: r.Type.ResourceType(), ID: r.ID}
}

// StoredPayload is one persisted EncryptedPayload row. Deleting the parent content
// deletes all of its rows.
type StoredPayload struct {
	ID          uuid.UUID
	Ref         ContentRef
	OwnerID     uuid.UUID
	Payload     cryptoDomain.EncryptedPayload
	ContentHash string
	CreatedAt   time.Time
}

// IntegrityInput is the byte string covered by ContentHash: nonce, tag, wrapped key and
// ciphertext, each length-prefixed.
func IntegrityInput(p *cryptoDomain.EncryptedPayload) []byte {
	size := 16 + len(p.Nonce) + len(p.AuthTag) + len(p.WrappedKey) + len(p.Ciphertext)
	buf := make([]byte, 0, size)
	for _, part := range [][]byte{p.Nonce, p.AuthTag, p.WrappedKey, p.Ciphertext} {
		n := len(part)
		buf = append(buf, byte(n>>24), byte(n>>16), byte(n>>8), byte(n))
		buf = append(buf, part...)
	}
	return buf
}

// CreateResult is returned by the create operations.
type CreateResult struct {
	Ref ContentRef
	// FailedRecipientIDs lists recipients who will not be able to read the content.
	FailedRecipientIDs []uuid.UUID
}
