// Package service provides the cryptographic primitives and the hybrid codec built
// on top of them. Every type is a small stateless struct constructed with its
// dependencies (entropy source, wrappers, audit recorder), so tests can swap them.
package service

import (
	"context"

	auditDomain "github.com/allisson/sealfeed/internal/audit/domain"
	cryptoDomain "github.com/allisson/sealfeed/internal/crypto/domain"
)

// SymmetricCipher encrypts one content blob under a 32-byte key.
type SymmetricCipher interface {
	// Encrypt seals plaintext with a fresh random nonce. The tag is detached.
	Encrypt(plaintext, key []byte) (cryptoDomain.SealedContent, error)

	// Decrypt authenticates and opens sealed. Any failure is ErrDecryptionFailed and
	// no plaintext is returned.
	Decrypt(sealed cryptoDomain.SealedContent, key []byte) ([]byte, error)
}

// KeyWrapper protects a 32-byte content key for one recipient. recipientKey is the
// base64 key material the wrap method expects (public key to wrap, private key to
// unwrap for RSA; the owner's symmetric key for both directions otherwise).
type KeyWrapper interface {
	WrapKey(contentKey []byte, recipientKey string) ([]byte, error)
	UnwrapKey(wrappedKey []byte, recipientKey string) ([]byte, error)
}

// IntegrityHasher detects tampering on paths that bypass the AEAD tag.
type IntegrityHasher interface {
	Hash(data []byte) string
	Verify(data []byte, expectedHash string) bool
}

// KeyGenerator produces fresh key material. It performs no I/O besides reading the
// entropy source.
type KeyGenerator interface {
	// GenerateKeyPair returns an RSA-2048 pair and a 256-bit symmetric key, base64 encoded.
	GenerateKeyPair() (cryptoDomain.KeyPair, error)

	// GenerateContentKey returns a fresh 32-byte one-time content key.
	GenerateContentKey() ([]byte, error)
}

// AuditRecorder receives exactly one call per codec operation. Implementations must
// not fail or block the caller.
type AuditRecorder interface {
	Record(
		ctx context.Context,
		action auditDomain.Action,
		resource auditDomain.Resource,
		status auditDomain.EncryptionStatus,
	)
}

// KeySealer protects key material at rest. The no-op sealer stores keys as given.
type KeySealer interface {
	Seal(ctx context.Context, plaintext []byte) ([]byte, error)
	Open(ctx context.Context, ciphertext []byte) ([]byte, error)
}

// MessageCodec composes the symmetric cipher and the key wrappers.
type MessageCodec interface {
	// EncryptForRecipients encrypts plaintext once and wraps the content key for each
	// recipient. Recipients whose key cannot be wrapped are skipped and reported in
	// Envelope.Failed; ErrNoDeliverableRecipients is returned only when none succeeded.
	EncryptForRecipients(
		ctx context.Context,
		resource auditDomain.Resource,
		plaintext []byte,
		recipients []cryptoDomain.Recipient,
	) (*cryptoDomain.Envelope, error)

	// DecryptForRecipient unwraps with the recipient's base64 private key and decrypts.
	DecryptForRecipient(
		ctx context.Context,
		resource auditDomain.Resource,
		payload *cryptoDomain.EncryptedPayload,
		privateKey string,
	) ([]byte, error)

	// EncryptSingleOwner is the one-element recipient set keyed by the owner's symmetric key.
	EncryptSingleOwner(
		ctx context.Context,
		resource auditDomain.Resource,
		plaintext []byte,
		ownerID string,
		ownerKey string,
	) (*cryptoDomain.EncryptedPayload, error)

	// DecryptSingleOwner opens a payload produced by EncryptSingleOwner.
	DecryptSingleOwner(
		ctx context.Context,
		resource auditDomain.Resource,
		payload *cryptoDomain.EncryptedPayload,
		ownerKey string,
	) ([]byte, error)
}
