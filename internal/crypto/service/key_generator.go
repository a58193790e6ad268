package service

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"fmt"
	"io"

	cryptoDomain "github.com/allisson/sealfeed/internal/crypto/domain"
)

// RSAKeyGenerator implements KeyGenerator with RSA-2048 and 256-bit symmetric keys.
type RSAKeyGenerator struct {
	random io.Reader
}

// NewKeyGenerator creates a generator reading entropy from random.
// A nil random falls back to crypto/rand.
func NewKeyGenerator(random io.Reader) *RSAKeyGenerator {
	if random == nil {
		random = rand.Reader
	}
	return &RSAKeyGenerator{random: random}
}

// GenerateContentKey returns a fresh one-time content key.
func (g *RSAKeyGenerator) GenerateContentKey() ([]byte, error) {
	key := make([]byte, cryptoDomain.KeySize)
	if _, err := io.ReadFull(g.random, key); err != nil {
		return nil, fmt.Errorf("%w: %w", cryptoDomain.ErrKeyGeneration, err)
	}
	return key, nil
}

// GenerateKeyPair returns a new base64 encoded KeyPair. Fails with ErrKeyGeneration
// only when the entropy source is unavailable.
func (g *RSAKeyGenerator) GenerateKeyPair() (cryptoDomain.KeyPair, error) {
	symmetricKey, err := g.GenerateContentKey()
	if err != nil {
		return cryptoDomain.KeyPair{}, err
	}
	defer cryptoDomain.Zero(symmetricKey)

	privateKey, err := rsa.GenerateKey(g.random, cryptoDomain.RSAKeyBits)
	if err != nil {
		return cryptoDomain.KeyPair{}, fmt.Errorf("%w: %w", cryptoDomain.ErrKeyGeneration, err)
	}

	publicDER, err := x509.MarshalPKIXPublicKey(&privateKey.PublicKey)
	if err != nil {
		return cryptoDomain.KeyPair{}, fmt.Errorf("%w: %w", cryptoDomain.ErrKeyGeneration, err)
	}

	privateDER := x509.MarshalPKCS1PrivateKey(privateKey)
	defer cryptoDomain.Zero(privateDER)

	return cryptoDomain.KeyPair{
		PublicKey:    cryptoDomain.EncodeKey(publicDER),
		PrivateKey:   cryptoDomain.EncodeKey(privateDER),
		SymmetricKey: cryptoDomain.EncodeKey(symmetricKey),
	}, nil
}
