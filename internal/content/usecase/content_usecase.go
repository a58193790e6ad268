package usecase

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	auditDomain "github.com/allisson/sealfeed/internal/audit/domain"
	contentDomain "github.com/allisson/sealfeed/internal/content/domain"
	cryptoDomain "github.com/allisson/sealfeed/internal/crypto/domain"
	cryptoService "github.com/allisson/sealfeed/internal/crypto/service"
	cryptoUseCase "github.com/allisson/sealfeed/internal/crypto/usecase"
	"github.com/allisson/sealfeed/internal/database"
	apperrors "github.com/allisson/sealfeed/internal/errors"
)

type contentUseCase struct {
	txManager   database.TxManager
	repo        EncryptedPayloadRepository
	keys        cryptoUseCase.KeyUseCase
	codec       cryptoService.MessageCodec
	hasher      cryptoService.IntegrityHasher
	recorder    cryptoService.AuditRecorder
	logger      *slog.Logger
	placeholder string
}

// NewContentUseCase creates a new ContentUseCase. An empty placeholder uses
// DefaultPlaceholderText.
func NewContentUseCase(
	txManager database.TxManager,
	repo EncryptedPayloadRepository,
	keys cryptoUseCase.KeyUseCase,
	codec cryptoService.MessageCodec,
	hasher cryptoService.IntegrityHasher,
	recorder cryptoService.AuditRecorder,
	logger *slog.Logger,
	placeholder string,
) ContentUseCase {
	if placeholder == "" {
		placeholder = contentDomain.DefaultPlaceholderText
	}
	return &contentUseCase{
		txManager:   txManager,
		repo:        repo,
		keys:        keys,
		codec:       codec,
		hasher:      hasher,
		recorder:    recorder,
		logger:      logger,
		placeholder: placeholder,
	}
}

// CreateEncrypted provisions the owner's keys, encrypts under the owner's symmetric key
// and stores the payload with its content hash.
func (c *contentUseCase) CreateEncrypted(
	ctx context.Context,
	contentType contentDomain.ContentType,
	content string,
	ownerID uuid.UUID,
) (*contentDomain.CreateResult, error) {
	ref, err := newContentRef(contentType)
	if err != nil {
		return nil, err
	}
	if ownerID == uuid.Nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "owner id is required")
	}
	ctx = auditDomain.EnsureActor(ctx, ownerID)

	kp, err := c.keys.GetOrCreateUserKeys(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	payload, err := c.codec.EncryptSingleOwner(ctx, ref.Resource(), []byte(content), ownerID.String(), kp.SymmetricKey)
	if err != nil {
		return nil, err
	}

	if err := c.persist(ctx, ref, ownerID, []cryptoDomain.EncryptedPayload{*payload}); err != nil {
		return nil, err
	}
	return &contentDomain.CreateResult{Ref: ref}, nil
}

// CreateEncryptedForRecipients provisions keys for the sender and each recipient, wraps
// one content key per recipient and stores every delivered payload in one transaction.
// The sender is always a recipient. A recipient whose keys cannot be provisioned is
// reported as failed; a failure for the sender aborts the call.
func (c *contentUseCase) CreateEncryptedForRecipients(
	ctx context.Context,
	contentType contentDomain.ContentType,
	content string,
	senderID uuid.UUID,
	recipientIDs []uuid.UUID,
) (*contentDomain.CreateResult, error) {
	ref, err := newContentRef(contentType)
	if err != nil {
		return nil, err
	}
	if senderID == uuid.Nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "sender id is required")
	}
	ctx = auditDomain.EnsureActor(ctx, senderID)

	recipients := make([]cryptoDomain.Recipient, 0, len(recipientIDs)+1)
	for _, id := range recipientSet(senderID, recipientIDs) {
		kp, err := c.keys.GetOrCreateUserKeys(ctx, id)
		if err != nil {
			if id == senderID {
				return nil, err
			}
			c.logger.Warn("failed to provision recipient keys",
				slog.String("recipient_id", id.String()),
				slog.Any("error", err),
			)
			// Without a key the codec reports the recipient as failed, so the
			// encrypt event is recorded as partial.
			recipients = append(recipients, cryptoDomain.NewPublicKeyRecipient(id.String(), ""))
			continue
		}
		recipients = append(recipients, cryptoDomain.NewPublicKeyRecipient(id.String(), kp.PublicKey))
	}

	envelope, err := c.codec.EncryptForRecipients(ctx, ref.Resource(), []byte(content), recipients)
	if err != nil {
		return nil, err
	}

	var failed []uuid.UUID
	for _, id := range envelope.FailedRecipientIDs() {
		if parsed, err := uuid.Parse(id); err == nil {
			failed = append(failed, parsed)
		}
	}

	if err := c.persist(ctx, ref, senderID, envelope.Payloads); err != nil {
		return nil, err
	}
	return &contentDomain.CreateResult{Ref: ref, FailedRecipientIDs: failed}, nil
}

// ReadDecrypted loads the payload addressed to the requesting user, checks its content
// hash and decrypts it.
func (c *contentUseCase) ReadDecrypted(
	ctx context.Context,
	ref contentDomain.ContentRef,
	requestingUserID uuid.UUID,
) (string, error) {
	ctx = auditDomain.EnsureActor(ctx, requestingUserID)
	resource := ref.Resource()

	stored, err := c.repo.GetByContentAndRecipient(ctx, ref, requestingUserID)
	if err != nil {
		if apperrors.Is(err, contentDomain.ErrPayloadNotFound) ||
			apperrors.Is(err, cryptoDomain.ErrUnsupportedWrapMethod) {
			return c.degrade(ctx, resource, err), nil
		}
		return "", err
	}

	if !c.hasher.Verify(contentDomain.IntegrityInput(&stored.Payload), stored.ContentHash) {
		return c.degrade(ctx, resource, contentDomain.ErrIntegrityCheckFailed), nil
	}

	kp, err := c.keys.GetUserKeys(ctx, requestingUserID)
	if err != nil {
		if apperrors.Is(err, cryptoDomain.ErrUserKeysNotFound) {
			return c.degrade(ctx, resource, err), nil
		}
		return "", err
	}

	var plaintext []byte
	switch stored.Payload.WrapMethod {
	case cryptoDomain.WrapOwnerKey:
		plaintext, err = c.codec.DecryptSingleOwner(ctx, resource, &stored.Payload, kp.SymmetricKey)
	default:
		plaintext, err = c.codec.DecryptForRecipient(ctx, resource, &stored.Payload, kp.PrivateKey)
	}
	if err != nil {
		// The codec has already audited the failure.
		c.logDegraded(resource, err)
		return c.placeholder, nil
	}
	return string(plaintext), nil
}

// ReadManyDecrypted degrades per item and stops only on an infrastructure error.
func (c *contentUseCase) ReadManyDecrypted(
	ctx context.Context,
	refs []contentDomain.ContentRef,
	requestingUserID uuid.UUID,
) ([]string, error) {
	contents := make([]string, 0, len(refs))
	for _, ref := range refs {
		content, err := c.ReadDecrypted(ctx, ref, requestingUserID)
		if err != nil {
			return nil, err
		}
		contents = append(contents, content)
	}
	return contents, nil
}

// GetOwner returns the owner recorded on the content's payloads.
func (c *contentUseCase) GetOwner(ctx context.Context, ref contentDomain.ContentRef) (uuid.UUID, error) {
	return c.repo.GetOwnerID(ctx, ref)
}

// Delete removes every payload row of the content.
func (c *contentUseCase) Delete(ctx context.Context, ref contentDomain.ContentRef) error {
	return c.txManager.WithTx(ctx, func(ctx context.Context) error {
		count, err := c.repo.DeleteByContent(ctx, ref)
		if err != nil {
			return err
		}
		if count == 0 {
			return contentDomain.ErrPayloadNotFound
		}
		return nil
	})
}

func (c *contentUseCase) persist(
	ctx context.Context,
	ref contentDomain.ContentRef,
	ownerID uuid.UUID,
	payloads []cryptoDomain.EncryptedPayload,
) error {
	now := time.Now().UTC()
	return c.txManager.WithTx(ctx, func(ctx context.Context) error {
		for i := range payloads {
			stored := &contentDomain.StoredPayload{
				ID:          uuid.Must(uuid.NewV7()),
				Ref:         ref,
				OwnerID:     ownerID,
				Payload:     payloads[i],
				ContentHash: c.hasher.Hash(contentDomain.IntegrityInput(&payloads[i])),
				CreatedAt:   now,
			}
			if err := c.repo.Create(ctx, stored); err != nil {
				return err
			}
		}
		return nil
	})
}

// degrade audits a failure that never reached the codec and returns the placeholder.
func (c *contentUseCase) degrade(ctx context.Context, resource auditDomain.Resource, cause error) string {
	c.recorder.Record(ctx, auditDomain.ActionDecrypt, resource, auditDomain.StatusFailure)
	c.logDegraded(resource, cause)
	return c.placeholder
}

func (c *contentUseCase) logDegraded(resource auditDomain.Resource, cause error) {
	c.logger.Info("content unavailable to reader",
		slog.String("resource_type", string(resource.Type)),
		slog.String("resource_id", resource.ID.String()),
		slog.Any("error", cause),
	)
}

func newContentRef(contentType contentDomain.ContentType) (contentDomain.ContentRef, error) {
	if !contentType.IsValid() {
		return contentDomain.ContentRef{}, contentDomain.ErrInvalidContentType
	}
	return contentDomain.ContentRef{Type: contentType, ID: uuid.Must(uuid.NewV7())}, nil
}

// recipientSet returns the sender followed by the distinct non-nil recipients.
func recipientSet(senderID uuid.UUID, recipientIDs []uuid.UUID) []uuid.UUID {
	set := []uuid.UUID{senderID}
	for _, id := range recipientIDs {
		if id == uuid.Nil || slices.Contains(set, id) {
			continue
		}
		set = append(set, id)
	}
	return set
}
