// Package domain defines the cryptographic domain models for hybrid content encryption.
//
// Content is encrypted once with a fresh 256-bit content key (AES-256-GCM) and the
// content key is wrapped separately for every recipient: with RSA-OAEP under the
// recipient's public key, or with AES-GCM under the owner's symmetric key when the
// content has a single owner.
package domain

// WrapMethod identifies how a content key was wrapped for one recipient.
type WrapMethod string

const (
	// WrapRSAOAEP wraps the content key with RSA-OAEP (SHA-256) under the
	// recipient's public key. Used for multi-recipient chat messages.
	WrapRSAOAEP WrapMethod = "rsa-oaep-sha256"

	// WrapOwnerKey wraps the content key with AES-256-GCM under the owner's
	// symmetric key. Used for single-owner posts and comments.
	WrapOwnerKey WrapMethod = "owner-aes-gcm"
)

// Fixed sizes. Any deviation on the decrypt path is a decryption failure.
const (
	KeySize    = 32
	NonceSize  = 16
	TagSize    = 16
	RSAKeyBits = 2048
)

// IsValid reports whether m is a known wrap method.
func (m WrapMethod) IsValid() bool {
	switch m {
	case WrapRSAOAEP, WrapOwnerKey:
		return true
	default:
		return false
	}
}
