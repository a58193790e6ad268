package service

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"fmt"
	"io"

	cryptoDomain "github.com/allisson/sealfeed/internal/crypto/domain"
)

// contentKeyLabel binds wrapped envelopes to their purpose; an RSA ciphertext
// produced for any other use will not unwrap here.
var contentKeyLabel = []byte("sealfeed-content-key-v1")

// RSAOAEPWrapper wraps 32-byte content keys with RSA-OAEP (SHA-256). It is never
// used for bulk content, so the RSA message size limit does not apply.
type RSAOAEPWrapper struct {
	random io.Reader
}

// NewRSAOAEPWrapper creates a wrapper using random for OAEP padding.
// A nil random falls back to crypto/rand.
func NewRSAOAEPWrapper(random io.Reader) *RSAOAEPWrapper {
	if random == nil {
		random = rand.Reader
	}
	return &RSAOAEPWrapper{random: random}
}

// WrapKey encrypts contentKey under the base64 PKIX public key.
func (w *RSAOAEPWrapper) WrapKey(contentKey []byte, publicKey string) ([]byte, error) {
	if len(contentKey) != cryptoDomain.KeySize {
		return nil, cryptoDomain.ErrInvalidKeySize
	}

	pub, err := ParsePublicKey(publicKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cryptoDomain.ErrKeyWrap, err)
	}

	wrapped, err := rsa.EncryptOAEP(sha256.New(), w.random, pub, contentKey, contentKeyLabel)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cryptoDomain.ErrKeyWrap, err)
	}
	return wrapped, nil
}

// UnwrapKey recovers the content key with the base64 PKCS#1 private key. Any
// mismatch or corruption is ErrKeyUnwrap.
func (w *RSAOAEPWrapper) UnwrapKey(wrappedKey []byte, privateKey string) ([]byte, error) {
	priv, err := ParsePrivateKey(privateKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cryptoDomain.ErrKeyUnwrap, err)
	}

	contentKey, err := rsa.DecryptOAEP(sha256.New(), nil, priv, wrappedKey, contentKeyLabel)
	if err != nil {
		return nil, cryptoDomain.ErrKeyUnwrap
	}
	if len(contentKey) != cryptoDomain.KeySize {
		cryptoDomain.Zero(contentKey)
		return nil, cryptoDomain.ErrKeyUnwrap
	}
	return contentKey, nil
}

// ParsePublicKey decodes a base64 PKIX DER RSA public key.
func ParsePublicKey(encoded string) (*rsa.PublicKey, error) {
	der, err := cryptoDomain.DecodeKey(encoded)
	if err != nil {
		return nil, err
	}

	pub, err := x509.ParsePKIXPublicKey(der)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cryptoDomain.ErrInvalidKeyEncoding, err)
	}

	rsaPub, ok := pub.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("%w: not an RSA public key", cryptoDomain.ErrInvalidKeyEncoding)
	}
	return rsaPub, nil
}

// ParsePrivateKey decodes a base64 PKCS#1 DER RSA private key.
func ParsePrivateKey(encoded string) (*rsa.PrivateKey, error) {
	der, err := cryptoDomain.DecodeKey(encoded)
	if err != nil {
		return nil, err
	}
	defer cryptoDomain.Zero(der)

	priv, err := x509.ParsePKCS1PrivateKey(der)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cryptoDomain.ErrInvalidKeyEncoding, err)
	}
	return priv, nil
}
