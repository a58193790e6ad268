package service

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"
)

// SHA256Hasher implements IntegrityHasher with hex-encoded SHA-256 digests.
type SHA256Hasher struct{}

// NewSHA256Hasher creates a new SHA256Hasher.
func NewSHA256Hasher() *SHA256Hasher {
	return &SHA256Hasher{}
}

// Hash returns the lowercase hex SHA-256 digest of data.
func (h *SHA256Hasher) Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Verify reports whether data hashes to expectedHash. Comparison is constant time
// and accepts upper or lower case hex.
func (h *SHA256Hasher) Verify(data []byte, expectedHash string) bool {
	expected, err := hex.DecodeString(strings.ToLower(expectedHash))
	if err != nil || len(expected) != sha256.Size {
		return false
	}
	sum := sha256.Sum256(data)
	return subtle.ConstantTimeCompare(sum[:], expected) == 1
}
