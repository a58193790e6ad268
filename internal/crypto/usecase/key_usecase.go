package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	auditDomain "github.com/allisson/sealfeed/internal/audit/domain"
	cryptoDomain "github.com/allisson/sealfeed/internal/crypto/domain"
	cryptoService "github.com/allisson/sealfeed/internal/crypto/service"
	apperrors "github.com/allisson/sealfeed/internal/errors"
)

// keyUseCase provisions keys lazily. In-process callers for the same user share one
// provisioning call through singleflight; callers in other processes are serialized by
// the unique user_id in the key store and re-read the winning row on conflict.
type keyUseCase struct {
	repo      UserKeysRepository
	generator cryptoService.KeyGenerator
	sealer    cryptoService.KeySealer
	recorder  cryptoService.AuditRecorder
	group     singleflight.Group
}

// NewKeyUseCase creates a new KeyUseCase.
func NewKeyUseCase(
	repo UserKeysRepository,
	generator cryptoService.KeyGenerator,
	sealer cryptoService.KeySealer,
	recorder cryptoService.AuditRecorder,
) KeyUseCase {
	return &keyUseCase{
		repo:      repo,
		generator: generator,
		sealer:    sealer,
		recorder:  recorder,
	}
}

// GetOrCreateUserKeys returns the user's key pair, provisioning it on first use.
func (k *keyUseCase) GetOrCreateUserKeys(
	ctx context.Context,
	userID uuid.UUID,
) (*cryptoDomain.KeyPair, error) {
	if userID == uuid.Nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "user id is required")
	}

	// The shared call outlives any single waiter.
	shared := context.WithoutCancel(ctx)
	v, err, _ := k.group.Do(userID.String(), func() (any, error) {
		return k.getOrCreate(shared, userID)
	})
	if err != nil {
		return nil, err
	}

	kp := *v.(*cryptoDomain.KeyPair)
	return &kp, nil
}

// GetUserKeys returns the stored key pair of userID.
func (k *keyUseCase) GetUserKeys(ctx context.Context, userID uuid.UUID) (*cryptoDomain.KeyPair, error) {
	stored, err := k.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return k.open(ctx, stored)
}

func (k *keyUseCase) getOrCreate(ctx context.Context, userID uuid.UUID) (*cryptoDomain.KeyPair, error) {
	stored, err := k.repo.GetByUserID(ctx, userID)
	if err == nil {
		return k.open(ctx, stored)
	}
	if !apperrors.Is(err, cryptoDomain.ErrUserKeysNotFound) {
		return nil, err
	}

	resource := auditDomain.Resource{Type: auditDomain.ResourceUserKeys, ID: userID}
	ctx = auditDomain.EnsureActor(ctx, userID)

	kp, err := k.generator.GenerateKeyPair()
	if err != nil {
		k.recorder.Record(ctx, auditDomain.ActionGenerateKeys, resource, auditDomain.StatusFailure)
		return nil, err
	}

	stored, err = k.seal(ctx, userID, kp)
	if err != nil {
		k.recorder.Record(ctx, auditDomain.ActionGenerateKeys, resource, auditDomain.StatusFailure)
		return nil, err
	}

	if err := k.repo.Create(ctx, stored); err != nil {
		if !apperrors.Is(err, cryptoDomain.ErrUserKeysAlreadyExist) {
			k.recorder.Record(ctx, auditDomain.ActionGenerateKeys, resource, auditDomain.StatusFailure)
			return nil, err
		}
		// Another process provisioned first; its pair is the user's pair.
		winner, err := k.repo.GetByUserID(ctx, userID)
		if err != nil {
			return nil, err
		}
		return k.open(ctx, winner)
	}

	k.recorder.Record(ctx, auditDomain.ActionGenerateKeys, resource, auditDomain.StatusSuccess)
	return &kp, nil
}

func (k *keyUseCase) seal(
	ctx context.Context,
	userID uuid.UUID,
	kp cryptoDomain.KeyPair,
) (*cryptoDomain.StoredUserKeys, error) {
	privateKey, err := k.sealer.Seal(ctx, []byte(kp.PrivateKey))
	if err != nil {
		return nil, err
	}
	symmetricKey, err := k.sealer.Seal(ctx, []byte(kp.SymmetricKey))
	if err != nil {
		return nil, err
	}
	return &cryptoDomain.StoredUserKeys{
		UserID:             userID,
		PublicKey:          kp.PublicKey,
		SealedPrivateKey:   privateKey,
		SealedSymmetricKey: symmetricKey,
		CreatedAt:          time.Now().UTC(),
	}, nil
}

func (k *keyUseCase) open(ctx context.Context, stored *cryptoDomain.StoredUserKeys) (*cryptoDomain.KeyPair, error) {
	privateKey, err := k.sealer.Open(ctx, stored.SealedPrivateKey)
	if err != nil {
		return nil, err
	}
	symmetricKey, err := k.sealer.Open(ctx, stored.SealedSymmetricKey)
	if err != nil {
		return nil, err
	}
	return &cryptoDomain.KeyPair{
		PublicKey:    stored.PublicKey,
		PrivateKey:   string(privateKey),
		SymmetricKey: string(symmetricKey),
	}, nil
}
