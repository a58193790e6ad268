package domain

import (
	"encoding/base64"
	"time"

	"github.com/google/uuid"
)

// KeyPair is the key material owned by one user. All fields are base64 text, the way
// they travel in JSON and sit in the key store:
//   - PublicKey: PKIX DER encoded RSA-2048 public key
//   - PrivateKey: PKCS#1 DER encoded RSA-2048 private key
//   - SymmetricKey: 32 random bytes used to wrap single-owner content keys
type KeyPair struct {
	PublicKey    string
	PrivateKey   string `json:"-"`
	SymmetricKey string `json:"-"`
}

// StoredUserKeys is the persisted form of a user's KeyPair. Created once and never
// rotated. The private and symmetric keys are the base64 text passed through the
// configured key sealer, so they are opaque bytes to the repository.
type StoredUserKeys struct {
	UserID             uuid.UUID
	PublicKey          string
	SealedPrivateKey   []byte
	SealedSymmetricKey []byte
	CreatedAt          time.Time
}

// DecodeSymmetricKey returns the raw owner key. Callers must Zero the result.
func (k KeyPair) DecodeSymmetricKey() ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(k.SymmetricKey)
	if err != nil {
		return nil, ErrInvalidKeyEncoding
	}
	if len(key) != KeySize {
		Zero(key)
		return nil, ErrInvalidKeySize
	}
	return key, nil
}

// EncodeKey base64-encodes raw key material.
func EncodeKey(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

// DecodeKey decodes base64 key material.
func DecodeKey(s string) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, ErrInvalidKeyEncoding
	}
	return b, nil
}

// Zero overwrites sensitive bytes in place.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
