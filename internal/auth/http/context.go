// Package http provides HTTP middleware and utilities for request identity.
package http

import (
	"context"

	"github.com/google/uuid"
)

// userIDKey is a context key type for storing the identified user.
type userIDKey struct{}

// WithUserID stores the identified user in the context.
// This is typically called by IdentityMiddleware after validating the gateway header.
func WithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// GetUserID retrieves the identified user from the context.
// Returns (userID, true) if present, or (uuid.Nil, false) if no user was set.
func GetUserID(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(userIDKey{}).(uuid.UUID)
	return userID, ok && userID != uuid.Nil
}
