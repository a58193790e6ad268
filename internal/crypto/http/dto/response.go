// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"github.com/google/uuid"

	cryptoDomain "github.com/allisson/sealfeed/internal/crypto/domain"
)

// PublicKeyResponse exposes only the public half of a user's key material.
type PublicKeyResponse struct {
	UserID    string `json:"user_id"`
	PublicKey string `json:"public_key"`
}

// MapKeyPairToPublicKeyResponse converts a key pair to an API response.
func MapKeyPairToPublicKeyResponse(userID uuid.UUID, keys *cryptoDomain.KeyPair) PublicKeyResponse {
	return PublicKeyResponse{
		UserID:    userID.String(),
		PublicKey: keys.PublicKey,
	}
}
