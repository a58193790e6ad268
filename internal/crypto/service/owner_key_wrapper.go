package service

import (
	"fmt"

	cryptoDomain "github.com/allisson/sealfeed/internal/crypto/domain"
)

// wrappedOwnerKeySize is nonce || wrapped content key || tag.
const wrappedOwnerKeySize = cryptoDomain.NonceSize + cryptoDomain.KeySize + cryptoDomain.TagSize

// OwnerKeyWrapper wraps content keys under the owner's own symmetric key. It makes
// single-owner content the one-element case of the recipient set: the per-message
// content key is still fresh and is only persisted inside this envelope.
type OwnerKeyWrapper struct {
	cipher SymmetricCipher
}

// NewOwnerKeyWrapper creates an owner-key wrapper on top of cipher.
func NewOwnerKeyWrapper(cipher SymmetricCipher) *OwnerKeyWrapper {
	return &OwnerKeyWrapper{cipher: cipher}
}

// WrapKey seals contentKey with the base64 owner key.
func (w *OwnerKeyWrapper) WrapKey(contentKey []byte, ownerKey string) ([]byte, error) {
	if len(contentKey) != cryptoDomain.KeySize {
		return nil, cryptoDomain.ErrInvalidKeySize
	}

	kp := cryptoDomain.KeyPair{SymmetricKey: ownerKey}
	key, err := kp.DecodeSymmetricKey()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cryptoDomain.ErrKeyWrap, err)
	}
	defer cryptoDomain.Zero(key)

	sealed, err := w.cipher.Encrypt(contentKey, key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cryptoDomain.ErrKeyWrap, err)
	}

	wrapped := make([]byte, 0, wrappedOwnerKeySize)
	wrapped = append(wrapped, sealed.Nonce...)
	wrapped = append(wrapped, sealed.Ciphertext...)
	wrapped = append(wrapped, sealed.AuthTag...)
	return wrapped, nil
}

// UnwrapKey opens an envelope produced by WrapKey.
func (w *OwnerKeyWrapper) UnwrapKey(wrappedKey []byte, ownerKey string) ([]byte, error) {
	if len(wrappedKey) != wrappedOwnerKeySize {
		return nil, cryptoDomain.ErrKeyUnwrap
	}

	kp := cryptoDomain.KeyPair{SymmetricKey: ownerKey}
	key, err := kp.DecodeSymmetricKey()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cryptoDomain.ErrKeyUnwrap, err)
	}
	defer cryptoDomain.Zero(key)

	tagStart := cryptoDomain.NonceSize + cryptoDomain.KeySize
	contentKey, err := w.cipher.Decrypt(cryptoDomain.SealedContent{
		Nonce:      wrappedKey[:cryptoDomain.NonceSize],
		Ciphertext: wrappedKey[cryptoDomain.NonceSize:tagStart],
		AuthTag:    wrappedKey[tagStart:],
	}, key)
	if err != nil {
		return nil, cryptoDomain.ErrKeyUnwrap
	}
	return contentKey, nil
}
