package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	auditDomain "github.com/allisson/sealfeed/internal/audit/domain"
	contentDomain "github.com/allisson/sealfeed/internal/content/domain"
	cryptoDomain "github.com/allisson/sealfeed/internal/crypto/domain"
	cryptoService "github.com/allisson/sealfeed/internal/crypto/service"
	cryptoUseCase "github.com/allisson/sealfeed/internal/crypto/usecase"
	apperrors "github.com/allisson/sealfeed/internal/errors"
)

const testPlaceholder = "[unavailable]"

// passthroughTxManager runs fn without a transaction.
type passthroughTxManager struct{}

func (passthroughTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type payloadKey struct {
	ref       contentDomain.ContentRef
	recipient string
}

type memoryPayloadRepository struct {
	mu     sync.Mutex
	rows   map[payloadKey]contentDomain.StoredPayload
	getErr error
}

func newMemoryPayloadRepository() *memoryPayloadRepository {
	return &memoryPayloadRepository{rows: make(map[payloadKey]contentDomain.StoredPayload)}
}

func (m *memoryPayloadRepository) Create(_ context.Context, payload *contentDomain.StoredPayload) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := payloadKey{ref: payload.Ref, recipient: payload.Payload.RecipientID}
	if _, ok := m.rows[key]; ok {
		return contentDomain.ErrPayloadAlreadyExists
	}
	m.rows[key] = *payload
	return nil
}

func (m *memoryPayloadRepository) GetByContentAndRecipient(
	_ context.Context,
	ref contentDomain.ContentRef,
	recipientID uuid.UUID,
) (*contentDomain.StoredPayload, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	row, ok := m.rows[payloadKey{ref: ref, recipient: recipientID.String()}]
	if !ok {
		return nil, contentDomain.ErrPayloadNotFound
	}
	return &row, nil
}

func (m *memoryPayloadRepository) GetOwnerID(_ context.Context, ref contentDomain.ContentRef) (uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, row := range m.rows {
		if key.ref == ref {
			return row.OwnerID, nil
		}
	}
	return uuid.Nil, contentDomain.ErrPayloadNotFound
}

func (m *memoryPayloadRepository) DeleteByContent(_ context.Context, ref contentDomain.ContentRef) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for key := range m.rows {
		if key.ref == ref {
			delete(m.rows, key)
			count++
		}
	}
	return count, nil
}

func (m *memoryPayloadRepository) update(ref contentDomain.ContentRef, recipientID uuid.UUID, fn func(*contentDomain.StoredPayload)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := payloadKey{ref: ref, recipient: recipientID.String()}
	row := m.rows[key]
	fn(&row)
	m.rows[key] = row
}

func (m *memoryPayloadRepository) count(ref contentDomain.ContentRef) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for key := range m.rows {
		if key.ref == ref {
			n++
		}
	}
	return n
}

type memoryUserKeysRepository struct {
	mu   sync.Mutex
	rows map[uuid.UUID]cryptoDomain.StoredUserKeys
}

func (m *memoryUserKeysRepository) Create(_ context.Context, keys *cryptoDomain.StoredUserKeys) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[keys.UserID]; ok {
		return cryptoDomain.ErrUserKeysAlreadyExist
	}
	m.rows[keys.UserID] = *keys
	return nil
}

func (m *memoryUserKeysRepository) GetByUserID(
	_ context.Context,
	userID uuid.UUID,
) (*cryptoDomain.StoredUserKeys, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[userID]
	if !ok {
		return nil, cryptoDomain.ErrUserKeysNotFound
	}
	return &row, nil
}

// stubKeyUseCase delegates to a real key manager with per-user overrides.
type stubKeyUseCase struct {
	cryptoUseCase.KeyUseCase
	failFor    map[uuid.UUID]error
	publicKeys map[uuid.UUID]string
}

func (s *stubKeyUseCase) GetOrCreateUserKeys(ctx context.Context, userID uuid.UUID) (*cryptoDomain.KeyPair, error) {
	if err := s.failFor[userID]; err != nil {
		return nil, err
	}
	kp, err := s.KeyUseCase.GetOrCreateUserKeys(ctx, userID)
	if err != nil {
		return nil, err
	}
	if publicKey, ok := s.publicKeys[userID]; ok {
		kp.PublicKey = publicKey
	}
	return kp, nil
}

type recordedEvent struct {
	userID   uuid.UUID
	action   auditDomain.Action
	resource auditDomain.Resource
	status   auditDomain.EncryptionStatus
}

type fakeRecorder struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (f *fakeRecorder) Record(
	ctx context.Context,
	action auditDomain.Action,
	resource auditDomain.Resource,
	status auditDomain.EncryptionStatus,
) {
	actor, _ := auditDomain.ActorFromContext(ctx)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, recordedEvent{userID: actor.UserID, action: action, resource: resource, status: status})
}

// eventsFor returns the events of action on resource.
func (f *fakeRecorder) eventsFor(action auditDomain.Action, resource auditDomain.Resource) []recordedEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	var events []recordedEvent
	for _, e := range f.events {
		if e.action == action && e.resource == resource {
			events = append(events, e)
		}
	}
	return events
}

type testStore struct {
	useCase  ContentUseCase
	payloads *memoryPayloadRepository
	keys     *stubKeyUseCase
	recorder *fakeRecorder
}

func newTestStore(t *testing.T) *testStore {
	t.Helper()

	recorder := &fakeRecorder{}
	keyUseCase := cryptoUseCase.NewKeyUseCase(
		&memoryUserKeysRepository{rows: make(map[uuid.UUID]cryptoDomain.StoredUserKeys)},
		cryptoService.NewKeyGenerator(nil),
		cryptoService.NoopKeySealer{},
		recorder,
	)
	keys := &stubKeyUseCase{
		KeyUseCase: keyUseCase,
		failFor:    make(map[uuid.UUID]error),
		publicKeys: make(map[uuid.UUID]string),
	}

	cipher := cryptoService.NewAESGCM(nil)
	codec := cryptoService.NewHybridCodec(
		cipher,
		cryptoService.NewKeyGenerator(nil),
		cryptoService.NewRSAOAEPWrapper(nil),
		cryptoService.NewOwnerKeyWrapper(cipher),
		recorder,
		2,
	)

	payloads := newMemoryPayloadRepository()
	useCase := NewContentUseCase(
		passthroughTxManager{},
		payloads,
		keys,
		codec,
		cryptoService.NewSHA256Hasher(),
		recorder,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		testPlaceholder,
	)

	return &testStore{useCase: useCase, payloads: payloads, keys: keys, recorder: recorder}
}

func TestContentUseCase_SingleOwner(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_OwnerReadsPost", func(t *testing.T) {
		store := newTestStore(t)
		ownerID := uuid.New()

		result, err := store.useCase.CreateEncrypted(ctx, contentDomain.ContentPost, "hello followers", ownerID)
		require.NoError(t, err)
		assert.Equal(t, contentDomain.ContentPost, result.Ref.Type)
		assert.Empty(t, result.FailedRecipientIDs)
		assert.Equal(t, 1, store.payloads.count(result.Ref))

		got, err := store.useCase.ReadDecrypted(ctx, result.Ref, ownerID)
		require.NoError(t, err)
		assert.Equal(t, "hello followers", got)

		encrypts := store.recorder.eventsFor(auditDomain.ActionEncrypt, result.Ref.Resource())
		require.Len(t, encrypts, 1)
		assert.Equal(t, auditDomain.StatusSuccess, encrypts[0].status)
		assert.Equal(t, ownerID, encrypts[0].userID)

		decrypts := store.recorder.eventsFor(auditDomain.ActionDecrypt, result.Ref.Resource())
		require.Len(t, decrypts, 1)
		assert.Equal(t, auditDomain.StatusSuccess, decrypts[0].status)

		keyEvents := store.recorder.eventsFor(
			auditDomain.ActionGenerateKeys,
			auditDomain.Resource{Type: auditDomain.ResourceUserKeys, ID: ownerID},
		)
		assert.Len(t, keyEvents, 1)
	})

	t.Run("Success_StoredPayloadShape", func(t *testing.T) {
		store := newTestStore(t)
		ownerID := uuid.New()

		result, err := store.useCase.CreateEncrypted(ctx, contentDomain.ContentComment, "nice post", ownerID)
		require.NoError(t, err)

		stored, err := store.payloads.GetByContentAndRecipient(ctx, result.Ref, ownerID)
		require.NoError(t, err)
		assert.Equal(t, ownerID, stored.OwnerID)
		assert.Equal(t, cryptoDomain.WrapOwnerKey, stored.Payload.WrapMethod)
		assert.True(t, stored.Payload.IsEncrypted)
		assert.NotContains(t, string(stored.Payload.Ciphertext), "nice post")
		assert.Len(t, stored.ContentHash, 64)
		assert.True(t, cryptoService.NewSHA256Hasher().Verify(
			contentDomain.IntegrityInput(&stored.Payload), stored.ContentHash,
		))
	})

	t.Run("Placeholder_OtherUser", func(t *testing.T) {
		store := newTestStore(t)
		ownerID, followerID := uuid.New(), uuid.New()

		result, err := store.useCase.CreateEncrypted(ctx, contentDomain.ContentPost, "owner only", ownerID)
		require.NoError(t, err)

		got, err := store.useCase.ReadDecrypted(ctx, result.Ref, followerID)
		require.NoError(t, err)
		assert.Equal(t, testPlaceholder, got)

		decrypts := store.recorder.eventsFor(auditDomain.ActionDecrypt, result.Ref.Resource())
		require.Len(t, decrypts, 1)
		assert.Equal(t, auditDomain.StatusFailure, decrypts[0].status)
		assert.Equal(t, followerID, decrypts[0].userID)
	})

	t.Run("Error_InvalidContentType", func(t *testing.T) {
		store := newTestStore(t)

		_, err := store.useCase.CreateEncrypted(ctx, contentDomain.ContentType("poll"), "x", uuid.New())
		assert.ErrorIs(t, err, contentDomain.ErrInvalidContentType)
	})

	t.Run("Error_MissingOwner", func(t *testing.T) {
		store := newTestStore(t)

		_, err := store.useCase.CreateEncrypted(ctx, contentDomain.ContentPost, "x", uuid.Nil)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("Error_KeyGenerationFailed", func(t *testing.T) {
		store := newTestStore(t)
		ownerID := uuid.New()
		store.keys.failFor[ownerID] = cryptoDomain.ErrKeyGeneration

		result, err := store.useCase.CreateEncrypted(ctx, contentDomain.ContentPost, "x", ownerID)
		assert.ErrorIs(t, err, cryptoDomain.ErrKeyGeneration)
		assert.Nil(t, result)
	})
}

func TestContentUseCase_MultiRecipient(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_EveryParticipantReads", func(t *testing.T) {
		store := newTestStore(t)
		senderID, aliceID, bobID := uuid.New(), uuid.New(), uuid.New()

		result, err := store.useCase.CreateEncryptedForRecipients(
			ctx, contentDomain.ContentChatMessage, "meet at noon", senderID, []uuid.UUID{aliceID, bobID},
		)
		require.NoError(t, err)
		assert.Empty(t, result.FailedRecipientIDs)
		assert.Equal(t, 3, store.payloads.count(result.Ref))

		for _, id := range []uuid.UUID{senderID, aliceID, bobID} {
			got, err := store.useCase.ReadDecrypted(ctx, result.Ref, id)
			require.NoError(t, err)
			assert.Equal(t, "meet at noon", got)
		}

		outsider, err := store.useCase.ReadDecrypted(ctx, result.Ref, uuid.New())
		require.NoError(t, err)
		assert.Equal(t, testPlaceholder, outsider)

		encrypts := store.recorder.eventsFor(auditDomain.ActionEncrypt, result.Ref.Resource())
		require.Len(t, encrypts, 1)
		assert.Equal(t, auditDomain.StatusSuccess, encrypts[0].status)
		assert.Len(t, store.recorder.eventsFor(auditDomain.ActionDecrypt, result.Ref.Resource()), 4)
	})

	t.Run("Success_SharedCiphertextDistinctWrappedKeys", func(t *testing.T) {
		store := newTestStore(t)
		senderID, aliceID := uuid.New(), uuid.New()

		result, err := store.useCase.CreateEncryptedForRecipients(
			ctx, contentDomain.ContentChatMessage, "hi", senderID, []uuid.UUID{aliceID},
		)
		require.NoError(t, err)

		fromSender, err := store.payloads.GetByContentAndRecipient(ctx, result.Ref, senderID)
		require.NoError(t, err)
		fromAlice, err := store.payloads.GetByContentAndRecipient(ctx, result.Ref, aliceID)
		require.NoError(t, err)

		assert.Equal(t, fromSender.Payload.Ciphertext, fromAlice.Payload.Ciphertext)
		assert.Equal(t, fromSender.Payload.Nonce, fromAlice.Payload.Nonce)
		assert.NotEqual(t, fromSender.Payload.WrappedKey, fromAlice.Payload.WrappedKey)
		assert.Equal(t, senderID, fromAlice.OwnerID)
	})

	t.Run("Success_SenderAddedAndDuplicatesIgnored", func(t *testing.T) {
		store := newTestStore(t)
		senderID, aliceID := uuid.New(), uuid.New()

		result, err := store.useCase.CreateEncryptedForRecipients(
			ctx, contentDomain.ContentChatMessage, "hi", senderID, []uuid.UUID{aliceID, aliceID, senderID, uuid.Nil},
		)
		require.NoError(t, err)
		assert.Equal(t, 2, store.payloads.count(result.Ref))
	})

	t.Run("Partial_RecipientWithBrokenKey", func(t *testing.T) {
		store := newTestStore(t)
		senderID, aliceID, bobID := uuid.New(), uuid.New(), uuid.New()
		store.keys.publicKeys[bobID] = "not-a-public-key"

		result, err := store.useCase.CreateEncryptedForRecipients(
			ctx, contentDomain.ContentChatMessage, "partial", senderID, []uuid.UUID{aliceID, bobID},
		)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{bobID}, result.FailedRecipientIDs)
		assert.Equal(t, 2, store.payloads.count(result.Ref))

		got, err := store.useCase.ReadDecrypted(ctx, result.Ref, aliceID)
		require.NoError(t, err)
		assert.Equal(t, "partial", got)

		got, err = store.useCase.ReadDecrypted(ctx, result.Ref, bobID)
		require.NoError(t, err)
		assert.Equal(t, testPlaceholder, got)

		encrypts := store.recorder.eventsFor(auditDomain.ActionEncrypt, result.Ref.Resource())
		require.Len(t, encrypts, 1)
		assert.Equal(t, auditDomain.StatusPartial, encrypts[0].status)
	})

	t.Run("Partial_RecipientProvisioningFailed", func(t *testing.T) {
		store := newTestStore(t)
		senderID, aliceID := uuid.New(), uuid.New()
		store.keys.failFor[aliceID] = cryptoDomain.ErrKeyGeneration

		result, err := store.useCase.CreateEncryptedForRecipients(
			ctx, contentDomain.ContentChatMessage, "hi", senderID, []uuid.UUID{aliceID},
		)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{aliceID}, result.FailedRecipientIDs)
		assert.Equal(t, 1, store.payloads.count(result.Ref))

		encrypts := store.recorder.eventsFor(auditDomain.ActionEncrypt, result.Ref.Resource())
		require.Len(t, encrypts, 1)
		assert.Equal(t, auditDomain.StatusPartial, encrypts[0].status)
		assert.Equal(t, senderID, encrypts[0].userID)

		got, err := store.useCase.ReadDecrypted(ctx, result.Ref, aliceID)
		require.NoError(t, err)
		assert.Equal(t, testPlaceholder, got)
	})

	t.Run("Partial_ProvisioningAndWrapFailuresInRecipientOrder", func(t *testing.T) {
		store := newTestStore(t)
		senderID, aliceID, bobID, carolID := uuid.New(), uuid.New(), uuid.New(), uuid.New()
		store.keys.failFor[aliceID] = cryptoDomain.ErrKeyGeneration
		store.keys.publicKeys[bobID] = "not-a-public-key"

		result, err := store.useCase.CreateEncryptedForRecipients(
			ctx, contentDomain.ContentChatMessage, "hi", senderID, []uuid.UUID{aliceID, bobID, carolID},
		)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{aliceID, bobID}, result.FailedRecipientIDs)
		assert.Equal(t, 2, store.payloads.count(result.Ref))

		encrypts := store.recorder.eventsFor(auditDomain.ActionEncrypt, result.Ref.Resource())
		require.Len(t, encrypts, 1)
		assert.Equal(t, auditDomain.StatusPartial, encrypts[0].status)
	})

	t.Run("Error_SenderProvisioningFailed", func(t *testing.T) {
		store := newTestStore(t)
		senderID := uuid.New()
		store.keys.failFor[senderID] = cryptoDomain.ErrKeyGeneration

		result, err := store.useCase.CreateEncryptedForRecipients(
			ctx, contentDomain.ContentChatMessage, "hi", senderID, []uuid.UUID{uuid.New()},
		)
		assert.ErrorIs(t, err, cryptoDomain.ErrKeyGeneration)
		assert.Nil(t, result)
	})

	t.Run("Error_NoDeliverableRecipients", func(t *testing.T) {
		store := newTestStore(t)
		senderID := uuid.New()
		store.keys.publicKeys[senderID] = "broken"

		result, err := store.useCase.CreateEncryptedForRecipients(
			ctx, contentDomain.ContentChatMessage, "hi", senderID, nil,
		)
		assert.ErrorIs(t, err, cryptoDomain.ErrNoDeliverableRecipients)
		assert.Nil(t, result)
	})
}

func TestContentUseCase_ReadDecrypted_Tampering(t *testing.T) {
	ctx := context.Background()

	t.Run("Placeholder_CiphertextModified", func(t *testing.T) {
		store := newTestStore(t)
		ownerID := uuid.New()

		result, err := store.useCase.CreateEncrypted(ctx, contentDomain.ContentPost, "original", ownerID)
		require.NoError(t, err)

		store.payloads.update(result.Ref, ownerID, func(p *contentDomain.StoredPayload) {
			tampered := append([]byte(nil), p.Payload.Ciphertext...)
			tampered[0] ^= 0xFF
			p.Payload.Ciphertext = tampered
		})

		got, err := store.useCase.ReadDecrypted(ctx, result.Ref, ownerID)
		require.NoError(t, err)
		assert.Equal(t, testPlaceholder, got)

		decrypts := store.recorder.eventsFor(auditDomain.ActionDecrypt, result.Ref.Resource())
		require.Len(t, decrypts, 1)
		assert.Equal(t, auditDomain.StatusFailure, decrypts[0].status)
	})

	t.Run("Placeholder_HashRecomputedAfterTampering", func(t *testing.T) {
		store := newTestStore(t)
		ownerID := uuid.New()
		hasher := cryptoService.NewSHA256Hasher()

		result, err := store.useCase.CreateEncrypted(ctx, contentDomain.ContentPost, "original", ownerID)
		require.NoError(t, err)

		store.payloads.update(result.Ref, ownerID, func(p *contentDomain.StoredPayload) {
			tampered := append([]byte(nil), p.Payload.Ciphertext...)
			tampered[0] ^= 0xFF
			p.Payload.Ciphertext = tampered
			p.ContentHash = hasher.Hash(contentDomain.IntegrityInput(&p.Payload))
		})

		got, err := store.useCase.ReadDecrypted(ctx, result.Ref, ownerID)
		require.NoError(t, err)
		assert.Equal(t, testPlaceholder, got)

		decrypts := store.recorder.eventsFor(auditDomain.ActionDecrypt, result.Ref.Resource())
		require.Len(t, decrypts, 1)
		assert.Equal(t, auditDomain.StatusFailure, decrypts[0].status)
	})

	t.Run("Placeholder_ReaderWithoutKeys", func(t *testing.T) {
		store := newTestStore(t)
		ownerID, strangerID := uuid.New(), uuid.New()

		result, err := store.useCase.CreateEncrypted(ctx, contentDomain.ContentPost, "x", ownerID)
		require.NoError(t, err)

		// A payload addressed to a user whose keys were never stored.
		stored, err := store.payloads.GetByContentAndRecipient(ctx, result.Ref, ownerID)
		require.NoError(t, err)
		stored.Payload.RecipientID = strangerID.String()
		require.NoError(t, store.payloads.Create(ctx, stored))

		got, err := store.useCase.ReadDecrypted(ctx, result.Ref, strangerID)
		require.NoError(t, err)
		assert.Equal(t, testPlaceholder, got)
	})

	t.Run("Placeholder_UnknownStoredWrapMethod", func(t *testing.T) {
		store := newTestStore(t)
		store.payloads.getErr = apperrors.Wrapf(cryptoDomain.ErrUnsupportedWrapMethod, "wrap method %q", "rot13")
		ref := contentDomain.ContentRef{Type: contentDomain.ContentChatMessage, ID: uuid.New()}

		got, err := store.useCase.ReadDecrypted(ctx, ref, uuid.New())
		require.NoError(t, err)
		assert.Equal(t, testPlaceholder, got)

		decrypts := store.recorder.eventsFor(auditDomain.ActionDecrypt, ref.Resource())
		require.Len(t, decrypts, 1)
		assert.Equal(t, auditDomain.StatusFailure, decrypts[0].status)
	})

	t.Run("Error_Infrastructure", func(t *testing.T) {
		store := newTestStore(t)
		store.payloads.getErr = errors.New("database is down")
		ref := contentDomain.ContentRef{Type: contentDomain.ContentPost, ID: uuid.New()}

		got, err := store.useCase.ReadDecrypted(ctx, ref, uuid.New())
		assert.EqualError(t, err, "database is down")
		assert.Empty(t, got)
		assert.Empty(t, store.recorder.eventsFor(auditDomain.ActionDecrypt, ref.Resource()))
	})
}

func TestContentUseCase_ReadManyDecrypted(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	ownerID := uuid.New()

	first, err := store.useCase.CreateEncrypted(ctx, contentDomain.ContentPost, "first", ownerID)
	require.NoError(t, err)
	second, err := store.useCase.CreateEncrypted(ctx, contentDomain.ContentComment, "second", ownerID)
	require.NoError(t, err)
	missing := contentDomain.ContentRef{Type: contentDomain.ContentPost, ID: uuid.New()}

	got, err := store.useCase.ReadManyDecrypted(ctx, []contentDomain.ContentRef{first.Ref, missing, second.Ref}, ownerID)
	require.NoError(t, err)
	assert.Equal(t, []string{"first", testPlaceholder, "second"}, got)

	store.payloads.getErr = errors.New("database is down")
	got, err = store.useCase.ReadManyDecrypted(ctx, []contentDomain.ContentRef{first.Ref}, ownerID)
	assert.Error(t, err)
	assert.Nil(t, got)
}

func TestContentUseCase_Delete(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	senderID, aliceID := uuid.New(), uuid.New()

	result, err := store.useCase.CreateEncryptedForRecipients(
		ctx, contentDomain.ContentChatMessage, "bye", senderID, []uuid.UUID{aliceID},
	)
	require.NoError(t, err)

	owner, err := store.useCase.GetOwner(ctx, result.Ref)
	require.NoError(t, err)
	assert.Equal(t, senderID, owner)

	require.NoError(t, store.useCase.Delete(ctx, result.Ref))
	assert.Equal(t, 0, store.payloads.count(result.Ref))

	err = store.useCase.Delete(ctx, result.Ref)
	assert.ErrorIs(t, err, contentDomain.ErrPayloadNotFound)

	got, err := store.useCase.ReadDecrypted(ctx, result.Ref, aliceID)
	require.NoError(t, err)
	assert.Equal(t, testPlaceholder, got)
}

func TestNewContentUseCase_DefaultPlaceholder(t *testing.T) {
	useCase := NewContentUseCase(
		passthroughTxManager{},
		newMemoryPayloadRepository(),
		nil,
		nil,
		cryptoService.NewSHA256Hasher(),
		&fakeRecorder{},
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		"",
	)

	got, err := useCase.ReadDecrypted(
		context.Background(),
		contentDomain.ContentRef{Type: contentDomain.ContentPost, ID: uuid.New()},
		uuid.New(),
	)
	require.NoError(t, err)
	assert.Equal(t, contentDomain.DefaultPlaceholderText, got)
}
