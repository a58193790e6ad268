package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	cryptoDomain "github.com/allisson/sealfeed/internal/crypto/domain"
	"github.com/allisson/sealfeed/internal/metrics"
)

// keyUseCaseWithMetrics decorates KeyUseCase with metrics instrumentation.
type keyUseCaseWithMetrics struct {
	next    KeyUseCase
	metrics metrics.BusinessMetrics
}

// NewKeyUseCaseWithMetrics wraps a KeyUseCase with metrics recording.
func NewKeyUseCaseWithMetrics(useCase KeyUseCase, m metrics.BusinessMetrics) KeyUseCase {
	return &keyUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// GetOrCreateUserKeys records metrics for key provisioning.
func (k *keyUseCaseWithMetrics) GetOrCreateUserKeys(
	ctx context.Context,
	userID uuid.UUID,
) (*cryptoDomain.KeyPair, error) {
	start := time.Now()
	kp, err := k.next.GetOrCreateUserKeys(ctx, userID)
	status := metrics.Status(err)

	k.metrics.RecordOperation(ctx, "crypto", "user_keys_get_or_create", status)
	k.metrics.RecordDuration(ctx, "crypto", "user_keys_get_or_create", time.Since(start), status)

	return kp, err
}

// GetUserKeys records metrics for key lookups.
func (k *keyUseCaseWithMetrics) GetUserKeys(ctx context.Context, userID uuid.UUID) (*cryptoDomain.KeyPair, error) {
	start := time.Now()
	kp, err := k.next.GetUserKeys(ctx, userID)
	status := metrics.Status(err)

	k.metrics.RecordOperation(ctx, "crypto", "user_keys_get", status)
	k.metrics.RecordDuration(ctx, "crypto", "user_keys_get", time.Since(start), status)

	return kp, err
}
