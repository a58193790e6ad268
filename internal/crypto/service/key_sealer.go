package service

import (
	"context"
	"fmt"

	"gocloud.dev/secrets"

	cryptoDomain "github.com/allisson/sealfeed/internal/crypto/domain"

	// Register all KMS provider drivers
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

// KMSKeySealer seals private and symmetric key material with an external KMS keeper
// before it reaches the key store.
type KMSKeySealer struct {
	keeper *secrets.Keeper
}

// OpenKeySealer opens a sealer for keyURI.
// Supports: gcpkms://, awskms://, azurekeyvault://, hashivault://, base64key://
// An empty keyURI returns a NoopKeySealer.
func OpenKeySealer(ctx context.Context, keyURI string) (KeySealer, error) {
	if keyURI == "" {
		return NoopKeySealer{}, nil
	}
	keeper, err := secrets.OpenKeeper(ctx, keyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	return &KMSKeySealer{keeper: keeper}, nil
}

// Seal encrypts plaintext with the KMS keeper.
func (s *KMSKeySealer) Seal(ctx context.Context, plaintext []byte) ([]byte, error) {
	ciphertext, err := s.keeper.Encrypt(ctx, plaintext)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cryptoDomain.ErrKeySealing, err)
	}
	return ciphertext, nil
}

// Open decrypts ciphertext produced by Seal.
func (s *KMSKeySealer) Open(ctx context.Context, ciphertext []byte) ([]byte, error) {
	plaintext, err := s.keeper.Decrypt(ctx, ciphertext)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cryptoDomain.ErrKeySealing, err)
	}
	return plaintext, nil
}

// Close releases the keeper.
func (s *KMSKeySealer) Close() error {
	return s.keeper.Close()
}

// NoopKeySealer stores key material as given. Used when no KMS is configured.
type NoopKeySealer struct{}

func (NoopKeySealer) Seal(_ context.Context, plaintext []byte) ([]byte, error) {
	return plaintext, nil
}

func (NoopKeySealer) Open(_ context.Context, ciphertext []byte) ([]byte, error) {
	return ciphertext, nil
}
