package service

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"

	cryptoDomain "github.com/allisson/sealfeed/internal/crypto/domain"
)

// AESGCMCipher implements SymmetricCipher with AES-256-GCM.
//
// The nonce is 16 bytes rather than the GCM default of 12, and the 16-byte tag is
// stored apart from the ciphertext, matching the persisted layout
// (ciphertext, nonce, auth_tag). A new random nonce is drawn for every call.
//
// The cipher holds no key state and is safe for concurrent use.
type AESGCMCipher struct {
	random io.Reader
}

// NewAESGCM creates an AES-256-GCM cipher reading nonces from random.
// A nil random falls back to crypto/rand.
func NewAESGCM(random io.Reader) *AESGCMCipher {
	if random == nil {
		random = rand.Reader
	}
	return &AESGCMCipher{random: random}
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}
	return cipher.NewGCMWithNonceSize(block, cryptoDomain.NonceSize)
}

// Encrypt seals plaintext under key. Returns ErrInvalidKeySize for keys that are not
// 32 bytes and ErrEncryptionFailed if the entropy source fails.
func (a *AESGCMCipher) Encrypt(plaintext, key []byte) (cryptoDomain.SealedContent, error) {
	if len(key) != cryptoDomain.KeySize {
		return cryptoDomain.SealedContent{}, cryptoDomain.ErrInvalidKeySize
	}

	aead, err := newGCM(key)
	if err != nil {
		return cryptoDomain.SealedContent{}, fmt.Errorf("%w: %w", cryptoDomain.ErrEncryptionFailed, err)
	}

	nonce := make([]byte, cryptoDomain.NonceSize)
	if _, err := io.ReadFull(a.random, nonce); err != nil {
		return cryptoDomain.SealedContent{}, fmt.Errorf("%w: nonce: %w", cryptoDomain.ErrEncryptionFailed, err)
	}

	sealed := aead.Seal(nil, nonce, plaintext, nil)
	split := len(sealed) - cryptoDomain.TagSize

	return cryptoDomain.SealedContent{
		Ciphertext: sealed[:split:split],
		Nonce:      nonce,
		AuthTag:    sealed[split:],
	}, nil
}

// Decrypt verifies the tag and returns the plaintext. Wrong key size, wrong nonce or
// tag length, and authentication failure all map to ErrDecryptionFailed.
func (a *AESGCMCipher) Decrypt(sealed cryptoDomain.SealedContent, key []byte) ([]byte, error) {
	if len(key) != cryptoDomain.KeySize ||
		len(sealed.Nonce) != cryptoDomain.NonceSize ||
		len(sealed.AuthTag) != cryptoDomain.TagSize {
		return nil, cryptoDomain.ErrDecryptionFailed
	}

	aead, err := newGCM(key)
	if err != nil {
		return nil, cryptoDomain.ErrDecryptionFailed
	}

	combined := make([]byte, 0, len(sealed.Ciphertext)+cryptoDomain.TagSize)
	combined = append(combined, sealed.Ciphertext...)
	combined = append(combined, sealed.AuthTag...)

	plaintext, err := aead.Open(nil, sealed.Nonce, combined, nil)
	if err != nil {
		return nil, cryptoDomain.ErrDecryptionFailed
	}
	return plaintext, nil
}
