package domain

import (
	"context"

	"github.com/google/uuid"
)

// Actor is the request-scoped identity attached to audit events.
type Actor struct {
	UserID    uuid.UUID
	IPAddress string
	UserAgent string
}

type actorKey struct{}

// WithActor stores the actor in the context.
func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFromContext returns the actor stored in ctx, if any.
func ActorFromContext(ctx context.Context) (Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(Actor)
	return actor, ok
}

// EnsureActor sets userID on the context actor when none is present, keeping any
// IP address and user agent already recorded by the transport layer.
func EnsureActor(ctx context.Context, userID uuid.UUID) context.Context {
	actor, _ := ActorFromContext(ctx)
	if actor.UserID != uuid.Nil {
		return ctx
	}
	actor.UserID = userID
	return WithActor(ctx, actor)
}
