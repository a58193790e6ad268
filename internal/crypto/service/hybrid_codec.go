package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	auditDomain "github.com/allisson/sealfeed/internal/audit/domain"
	cryptoDomain "github.com/allisson/sealfeed/internal/crypto/domain"
)

// DefaultWrapConcurrency bounds the number of recipients wrapped in parallel.
const DefaultWrapConcurrency = 4

// HybridCodec encrypts content once with a fresh key and wraps that key per recipient.
//
// Every public method records exactly one audit event, whatever the outcome.
type HybridCodec struct {
	cipher      SymmetricCipher
	keys        KeyGenerator
	wrappers    map[cryptoDomain.WrapMethod]KeyWrapper
	recorder    AuditRecorder
	concurrency int
}

// NewHybridCodec assembles a codec. concurrency <= 0 uses DefaultWrapConcurrency.
func NewHybridCodec(
	cipher SymmetricCipher,
	keys KeyGenerator,
	rsaWrapper KeyWrapper,
	ownerWrapper KeyWrapper,
	recorder AuditRecorder,
	concurrency int,
) *HybridCodec {
	if concurrency <= 0 {
		concurrency = DefaultWrapConcurrency
	}
	return &HybridCodec{
		cipher: cipher,
		keys:   keys,
		wrappers: map[cryptoDomain.WrapMethod]KeyWrapper{
			cryptoDomain.WrapRSAOAEP:  rsaWrapper,
			cryptoDomain.WrapOwnerKey: ownerWrapper,
		},
		recorder:    recorder,
		concurrency: concurrency,
	}
}

// EncryptForRecipients encrypts plaintext for every recipient that can be served.
func (c *HybridCodec) EncryptForRecipients(
	ctx context.Context,
	resource auditDomain.Resource,
	plaintext []byte,
	recipients []cryptoDomain.Recipient,
) (*cryptoDomain.Envelope, error) {
	envelope, err := c.seal(plaintext, recipients)
	c.recorder.Record(ctx, auditDomain.ActionEncrypt, resource, encryptStatus(envelope, err))
	return envelope, err
}

// EncryptSingleOwner encrypts content with exactly one logical owner.
func (c *HybridCodec) EncryptSingleOwner(
	ctx context.Context,
	resource auditDomain.Resource,
	plaintext []byte,
	ownerID string,
	ownerKey string,
) (*cryptoDomain.EncryptedPayload, error) {
	envelope, err := c.seal(plaintext, []cryptoDomain.Recipient{
		cryptoDomain.NewOwnerRecipient(ownerID, ownerKey),
	})
	if err == nil && len(envelope.Payloads) != 1 {
		err = cryptoDomain.ErrNoDeliverableRecipients
	}
	if err != nil {
		c.recorder.Record(ctx, auditDomain.ActionEncrypt, resource, auditDomain.StatusFailure)
		if envelope != nil && len(envelope.Failed) == 1 {
			return nil, envelope.Failed[0].Err
		}
		return nil, err
	}

	c.recorder.Record(ctx, auditDomain.ActionEncrypt, resource, auditDomain.StatusSuccess)
	return &envelope.Payloads[0], nil
}

// DecryptForRecipient opens an RSA-wrapped payload with the recipient's private key.
func (c *HybridCodec) DecryptForRecipient(
	ctx context.Context,
	resource auditDomain.Resource,
	payload *cryptoDomain.EncryptedPayload,
	privateKey string,
) ([]byte, error) {
	return c.openAudited(ctx, resource, payload, cryptoDomain.WrapRSAOAEP, privateKey)
}

// DecryptSingleOwner opens an owner-wrapped payload with the owner's symmetric key.
func (c *HybridCodec) DecryptSingleOwner(
	ctx context.Context,
	resource auditDomain.Resource,
	payload *cryptoDomain.EncryptedPayload,
	ownerKey string,
) ([]byte, error) {
	return c.openAudited(ctx, resource, payload, cryptoDomain.WrapOwnerKey, ownerKey)
}

func (c *HybridCodec) openAudited(
	ctx context.Context,
	resource auditDomain.Resource,
	payload *cryptoDomain.EncryptedPayload,
	method cryptoDomain.WrapMethod,
	key string,
) ([]byte, error) {
	plaintext, err := c.open(payload, method, key)
	status := auditDomain.StatusSuccess
	if err != nil {
		status = auditDomain.StatusFailure
	}
	c.recorder.Record(ctx, auditDomain.ActionDecrypt, resource, status)
	return plaintext, err
}

// seal performs the hybrid encryption without auditing.
func (c *HybridCodec) seal(
	plaintext []byte,
	recipients []cryptoDomain.Recipient,
) (*cryptoDomain.Envelope, error) {
	if len(recipients) == 0 {
		return nil, cryptoDomain.ErrNoDeliverableRecipients
	}

	contentKey, err := c.keys.GenerateContentKey()
	if err != nil {
		return nil, err
	}
	defer cryptoDomain.Zero(contentKey)

	sealed, err := c.cipher.Encrypt(plaintext, contentKey)
	if err != nil {
		return nil, err
	}

	wrapped := make([][]byte, len(recipients))
	wrapErrs := make([]error, len(recipients))

	var g errgroup.Group
	g.SetLimit(c.concurrency)
	for i, recipient := range recipients {
		g.Go(func() error {
			wrapped[i], wrapErrs[i] = c.wrap(recipient, contentKey)
			return nil
		})
	}
	_ = g.Wait()

	envelope := &cryptoDomain.Envelope{
		Payloads: make([]cryptoDomain.EncryptedPayload, 0, len(recipients)),
	}
	for i, recipient := range recipients {
		if wrapErrs[i] != nil {
			envelope.Failed = append(envelope.Failed, cryptoDomain.RecipientFailure{
				RecipientID: recipient.ID,
				Err:         wrapErrs[i],
			})
			continue
		}
		envelope.Payloads = append(envelope.Payloads, cryptoDomain.EncryptedPayload{
			RecipientID: recipient.ID,
			Ciphertext:  sealed.Ciphertext,
			Nonce:       sealed.Nonce,
			AuthTag:     sealed.AuthTag,
			WrappedKey:  wrapped[i],
			WrapMethod:  recipient.Method,
			IsEncrypted: true,
		})
	}

	if len(envelope.Payloads) == 0 {
		return envelope, cryptoDomain.ErrNoDeliverableRecipients
	}
	return envelope, nil
}

func (c *HybridCodec) wrap(recipient cryptoDomain.Recipient, contentKey []byte) ([]byte, error) {
	wrapper, ok := c.wrappers[recipient.Method]
	if !ok || wrapper == nil {
		return nil, cryptoDomain.ErrUnsupportedWrapMethod
	}
	if recipient.Key == "" {
		return nil, fmt.Errorf("%w: recipient %s has no key", cryptoDomain.ErrKeyWrap, recipient.ID)
	}
	return wrapper.WrapKey(contentKey, recipient.Key)
}

// open unwraps then decrypts. Every failure is wrapped in ErrMessageDecryption while
// keeping the cause (ErrKeyUnwrap or ErrDecryptionFailed) in the chain.
func (c *HybridCodec) open(
	payload *cryptoDomain.EncryptedPayload,
	method cryptoDomain.WrapMethod,
	key string,
) ([]byte, error) {
	wrapper := c.wrappers[method]
	if payload == nil || payload.WrapMethod != method || wrapper == nil {
		return nil, fmt.Errorf("%w: %w", cryptoDomain.ErrMessageDecryption, cryptoDomain.ErrUnsupportedWrapMethod)
	}

	contentKey, err := wrapper.UnwrapKey(payload.WrappedKey, key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cryptoDomain.ErrMessageDecryption, err)
	}
	defer cryptoDomain.Zero(contentKey)

	plaintext, err := c.cipher.Decrypt(payload.Sealed(), contentKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cryptoDomain.ErrMessageDecryption, err)
	}
	return plaintext, nil
}

func encryptStatus(envelope *cryptoDomain.Envelope, err error) auditDomain.EncryptionStatus {
	switch {
	case err != nil:
		return auditDomain.StatusFailure
	case len(envelope.Failed) > 0:
		return auditDomain.StatusPartial
	default:
		return auditDomain.StatusSuccess
	}
}
