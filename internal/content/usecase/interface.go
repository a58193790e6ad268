// Package usecase is the secure content store: it encrypts content on write and
// decrypts it for the requesting user on read, degrading to a placeholder when the
// user cannot read it.
package usecase

import (
	"context"

	"github.com/google/uuid"

	contentDomain "github.com/allisson/sealfeed/internal/content/domain"
)

// EncryptedPayloadRepository persists one payload row per content and recipient.
//
// Available implementations:
//   - PostgreSQLEncryptedPayloadRepository
//   - MySQLEncryptedPayloadRepository
type EncryptedPayloadRepository interface {
	Create(ctx context.Context, payload *contentDomain.StoredPayload) error
	GetByContentAndRecipient(
		ctx context.Context,
		ref contentDomain.ContentRef,
		recipientID uuid.UUID,
	) (*contentDomain.StoredPayload, error)
	GetOwnerID(ctx context.Context, ref contentDomain.ContentRef) (uuid.UUID, error)
	DeleteByContent(ctx context.Context, ref contentDomain.ContentRef) (int64, error)
}

// ContentUseCase creates and reads encrypted posts, comments and chat messages.
type ContentUseCase interface {
	// CreateEncrypted stores single-owner content (posts, comments) readable only by ownerID.
	CreateEncrypted(
		ctx context.Context,
		contentType contentDomain.ContentType,
		content string,
		ownerID uuid.UUID,
	) (*contentDomain.CreateResult, error)

	// CreateEncryptedForRecipients stores content readable by the sender and every
	// recipient whose key could be wrapped. Unreachable recipients are reported in
	// CreateResult.FailedRecipientIDs.
	CreateEncryptedForRecipients(
		ctx context.Context,
		contentType contentDomain.ContentType,
		content string,
		senderID uuid.UUID,
		recipientIDs []uuid.UUID,
	) (*contentDomain.CreateResult, error)

	// ReadDecrypted returns the plaintext or the placeholder text. Only infrastructure
	// errors are returned.
	ReadDecrypted(ctx context.Context, ref contentDomain.ContentRef, requestingUserID uuid.UUID) (string, error)

	// ReadManyDecrypted applies ReadDecrypted to each ref, in order.
	ReadManyDecrypted(
		ctx context.Context,
		refs []contentDomain.ContentRef,
		requestingUserID uuid.UUID,
	) ([]string, error)

	// GetOwner returns the owner of the content.
	GetOwner(ctx context.Context, ref contentDomain.ContentRef) (uuid.UUID, error)

	// Delete removes every payload of the content. Returns ErrPayloadNotFound when
	// nothing was stored for it.
	Delete(ctx context.Context, ref contentDomain.ContentRef) error
}
