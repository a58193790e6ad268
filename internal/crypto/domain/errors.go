package domain

import (
	"github.com/allisson/sealfeed/internal/errors"
)

// Cryptographic error definitions.
//
// Only ErrKeyGeneration is fatal to the request that triggered it. The decryption
// family is local to a single content item and is degraded to a placeholder by the
// content store.
var (
	// ErrKeyGeneration indicates key material could not be generated, usually because
	// the entropy source failed. Content creation cannot proceed without keys.
	ErrKeyGeneration = errors.Wrap(errors.ErrUnavailable, "key generation failed")

	// ErrInvalidKeySize indicates a symmetric key is not exactly 32 bytes.
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid key size")

	// ErrInvalidKeyEncoding indicates stored key material is not valid base64 or DER.
	ErrInvalidKeyEncoding = errors.Wrap(errors.ErrInvalidInput, "invalid key encoding")

	// ErrEncryptionFailed indicates the AEAD seal or nonce generation failed.
	ErrEncryptionFailed = errors.Wrap(errors.ErrUnavailable, "encryption failed")

	// ErrDecryptionFailed indicates AEAD authentication failed: wrong key, tampered
	// ciphertext or tag, or malformed nonce/tag lengths. The cause is not disclosed.
	ErrDecryptionFailed = errors.Wrap(errors.ErrInvalidInput, "decryption failed")

	// ErrKeyWrap indicates a content key could not be wrapped for a recipient.
	ErrKeyWrap = errors.Wrap(errors.ErrInvalidInput, "key wrap failed")

	// ErrKeyUnwrap indicates a wrapped key could not be recovered, because the private
	// key does not match or the envelope is corrupted.
	ErrKeyUnwrap = errors.Wrap(errors.ErrInvalidInput, "key unwrap failed")

	// ErrMessageDecryption is returned by the hybrid codec when either the unwrap or the
	// symmetric decryption step fails. It wraps the underlying cause.
	ErrMessageDecryption = errors.Wrap(errors.ErrInvalidInput, "message decryption failed")

	// ErrNoDeliverableRecipients indicates a multi-recipient encryption produced no
	// payload at all (empty recipient set or every wrap failed).
	ErrNoDeliverableRecipients = errors.Wrap(errors.ErrInvalidInput, "no deliverable recipients")

	// ErrUnsupportedWrapMethod indicates a payload or recipient names an unknown wrap method.
	ErrUnsupportedWrapMethod = errors.Wrap(errors.ErrInvalidInput, "unsupported wrap method")

	// ErrKeySealing indicates the at-rest key sealer (KMS keeper) could not seal or open
	// stored key material.
	ErrKeySealing = errors.Wrap(errors.ErrUnavailable, "key sealing failed")

	// ErrUserKeysNotFound indicates no key pair has been persisted for the user yet.
	ErrUserKeysNotFound = errors.Wrap(errors.ErrNotFound, "user keys not found")

	// ErrUserKeysAlreadyExist indicates a concurrent writer already persisted keys for
	// the user. The key use case treats it as a signal to re-read.
	ErrUserKeysAlreadyExist = errors.Wrap(errors.ErrConflict, "user keys already exist")
)
