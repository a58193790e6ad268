// Package usecase provisions and loads per-user key material.
package usecase

import (
	"context"

	"github.com/google/uuid"

	cryptoDomain "github.com/allisson/sealfeed/internal/crypto/domain"
)

// UserKeysRepository persists one key record per user.
//
// Available implementations:
//   - PostgreSQLUserKeysRepository
//   - MySQLUserKeysRepository
type UserKeysRepository interface {
	// Create stores a new key record. Returns ErrUserKeysAlreadyExist if the user
	// already has one.
	Create(ctx context.Context, keys *cryptoDomain.StoredUserKeys) error

	// GetByUserID returns ErrUserKeysNotFound when the user has no keys yet.
	GetByUserID(ctx context.Context, userID uuid.UUID) (*cryptoDomain.StoredUserKeys, error)
}

// KeyUseCase is the key manager used by the content store and the CLI.
type KeyUseCase interface {
	// GetOrCreateUserKeys returns the user's key pair, generating and persisting it on
	// first use. Concurrent first calls for the same user persist exactly one pair and
	// every caller observes it.
	GetOrCreateUserKeys(ctx context.Context, userID uuid.UUID) (*cryptoDomain.KeyPair, error)

	// GetUserKeys returns the stored key pair without provisioning.
	GetUserKeys(ctx context.Context, userID uuid.UUID) (*cryptoDomain.KeyPair, error)
}
