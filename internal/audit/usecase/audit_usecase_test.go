package usecase

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	auditDomain "github.com/allisson/sealfeed/internal/audit/domain"
	auditService "github.com/allisson/sealfeed/internal/audit/service"
)

// mockAuditEventRepository is a mock implementation of AuditEventRepository
type mockAuditEventRepository struct {
	mock.Mock
}

func (m *mockAuditEventRepository) Create(ctx context.Context, event *auditDomain.AuditEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *mockAuditEventRepository) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	offset, limit int,
) ([]*auditDomain.AuditEvent, error) {
	args := m.Called(ctx, userID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*auditDomain.AuditEvent), args.Error(1)
}

// mockBusinessMetrics is a mock implementation of metrics.BusinessMetrics for testing.
type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

func newTestLogger() (*slog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return slog.New(slog.NewJSONHandler(buf, nil)), buf
}

func newTestSigner(t *testing.T) auditService.AuditSigner {
	t.Helper()
	signer, err := auditService.NewAuditSigner([]byte("audit-signing-secret"))
	require.NoError(t, err)
	return signer
}

func TestAuditUseCase_Record(t *testing.T) {
	actor := auditDomain.Actor{UserID: uuid.New(), IPAddress: "198.51.100.4", UserAgent: "ios-app/2.1"}
	resource := auditDomain.Resource{Type: auditDomain.ResourceComment, ID: uuid.New()}

	t.Run("Success_SignedEventFromActor", func(t *testing.T) {
		repo := &mockAuditEventRepository{}
		m := &mockBusinessMetrics{}
		logger, _ := newTestLogger()
		signer := newTestSigner(t)
		uc := NewAuditUseCase(repo, signer, m, logger, time.Second)

		var stored *auditDomain.AuditEvent
		repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.AuditEvent")).
			Run(func(args mock.Arguments) {
				stored = args.Get(1).(*auditDomain.AuditEvent)
			}).
			Return(nil).Once()
		m.On("RecordOperation", mock.Anything, "audit", "audit_write", "success").Once()

		ctx := auditDomain.WithActor(context.Background(), actor)
		uc.Record(ctx, auditDomain.ActionDecrypt, resource, auditDomain.StatusFailure)

		require.NotNil(t, stored)
		assert.Equal(t, actor.UserID, stored.UserID)
		assert.Equal(t, actor.IPAddress, stored.IPAddress)
		assert.Equal(t, actor.UserAgent, stored.UserAgent)
		assert.Equal(t, auditDomain.ActionDecrypt, stored.Action)
		assert.Equal(t, resource.Type, stored.ResourceType)
		assert.Equal(t, resource.ID, stored.ResourceID)
		assert.Equal(t, auditDomain.StatusFailure, stored.EncryptionStatus)
		assert.Equal(t, uuid.Version(7), stored.ID.Version())
		assert.NoError(t, signer.Verify(stored))
		repo.AssertExpectations(t)
		m.AssertExpectations(t)
	})

	t.Run("Success_Unsigned", func(t *testing.T) {
		repo := &mockAuditEventRepository{}
		m := &mockBusinessMetrics{}
		logger, _ := newTestLogger()
		uc := NewAuditUseCase(repo, nil, m, logger, 0)

		repo.On("Create", mock.Anything, mock.MatchedBy(func(e *auditDomain.AuditEvent) bool {
			return e.Signature == nil
		})).Return(nil).Once()
		m.On("RecordOperation", mock.Anything, "audit", "audit_write", "success").Once()

		uc.Record(context.Background(), auditDomain.ActionEncrypt, resource, auditDomain.StatusSuccess)
		repo.AssertExpectations(t)
	})

	t.Run("Failure_IsSwallowedLoggedAndCounted", func(t *testing.T) {
		repo := &mockAuditEventRepository{}
		m := &mockBusinessMetrics{}
		logger, buf := newTestLogger()
		uc := NewAuditUseCase(repo, newTestSigner(t), m, logger, time.Second)

		repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("connection refused")).Once()
		m.On("RecordOperation", mock.Anything, "audit", "audit_write", "error").Once()

		assert.NotPanics(t, func() {
			uc.Record(context.Background(), auditDomain.ActionEncrypt, resource, auditDomain.StatusSuccess)
		})

		assert.Contains(t, buf.String(), "failed to write audit event")
		assert.Contains(t, buf.String(), "connection refused")
		m.AssertExpectations(t)
	})

	t.Run("Success_DetachedFromCallerCancellation", func(t *testing.T) {
		repo := &mockAuditEventRepository{}
		m := &mockBusinessMetrics{}
		logger, _ := newTestLogger()
		uc := NewAuditUseCase(repo, nil, m, logger, time.Second)

		repo.On("Create", mock.MatchedBy(func(ctx context.Context) bool {
			_, hasDeadline := ctx.Deadline()
			return ctx.Err() == nil && hasDeadline
		}), mock.Anything).Return(nil).Once()
		m.On("RecordOperation", mock.Anything, "audit", "audit_write", "success").Once()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		uc.Record(ctx, auditDomain.ActionDecrypt, resource, auditDomain.StatusSuccess)
		repo.AssertExpectations(t)
	})

	t.Run("Failure_BoundedByWriteTimeout", func(t *testing.T) {
		repo := &mockAuditEventRepository{}
		m := &mockBusinessMetrics{}
		logger, _ := newTestLogger()
		uc := NewAuditUseCase(repo, nil, m, logger, 20*time.Millisecond)

		repo.On("Create", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				<-args.Get(0).(context.Context).Done()
			}).
			Return(context.DeadlineExceeded).Once()
		m.On("RecordOperation", mock.Anything, "audit", "audit_write", "error").Once()

		start := time.Now()
		uc.Record(context.Background(), auditDomain.ActionEncrypt, resource, auditDomain.StatusSuccess)
		assert.Less(t, time.Since(start), time.Second)
		m.AssertExpectations(t)
	})
}

func TestAuditUseCase_List(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		repo := &mockAuditEventRepository{}
		logger, _ := newTestLogger()
		uc := NewAuditUseCase(repo, nil, &mockBusinessMetrics{}, logger, 0)
		events := []*auditDomain.AuditEvent{{ID: uuid.New(), UserID: userID}}

		repo.On("ListByUser", ctx, userID, 0, 50).Return(events, nil).Once()

		got, err := uc.List(ctx, userID, 0, 50)
		require.NoError(t, err)
		assert.Equal(t, events, got)
	})

	t.Run("Error", func(t *testing.T) {
		repo := &mockAuditEventRepository{}
		logger, _ := newTestLogger()
		uc := NewAuditUseCase(repo, nil, &mockBusinessMetrics{}, logger, 0)

		repo.On("ListByUser", ctx, userID, 0, 50).Return(nil, errors.New("db down")).Once()

		_, err := uc.List(ctx, userID, 0, 50)
		assert.ErrorContains(t, err, "failed to list audit events")
	})
}

func TestAuditUseCase_Verify(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	signer := newTestSigner(t)

	signed := func() *auditDomain.AuditEvent {
		e := &auditDomain.AuditEvent{
			ID:               uuid.Must(uuid.NewV7()),
			UserID:           userID,
			Action:           auditDomain.ActionEncrypt,
			ResourceType:     auditDomain.ResourcePost,
			ResourceID:       uuid.New(),
			EncryptionStatus: auditDomain.StatusSuccess,
			CreatedAt:        time.Now().UTC().Truncate(time.Microsecond),
		}
		sig, err := signer.Sign(e)
		require.NoError(t, err)
		e.Signature = sig
		return e
	}

	t.Run("Success_ReportsEachKind", func(t *testing.T) {
		repo := &mockAuditEventRepository{}
		logger, _ := newTestLogger()
		uc := NewAuditUseCase(repo, signer, &mockBusinessMetrics{}, logger, 0)

		tampered := signed()
		tampered.EncryptionStatus = auditDomain.StatusPartial
		unsigned := signed()
		unsigned.Signature = nil

		repo.On("ListByUser", ctx, userID, 0, verifyBatchSize).
			Return([]*auditDomain.AuditEvent{signed(), tampered, unsigned, signed()}, nil).Once()

		result, err := uc.Verify(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, 4, result.Total)
		assert.Equal(t, 2, result.Valid)
		assert.Equal(t, 1, result.Unsigned)
		assert.Equal(t, []uuid.UUID{tampered.ID}, result.Invalid)
		assert.False(t, result.Intact())
	})

	t.Run("Success_Paginates", func(t *testing.T) {
		repo := &mockAuditEventRepository{}
		logger, _ := newTestLogger()
		uc := NewAuditUseCase(repo, signer, &mockBusinessMetrics{}, logger, 0)

		full := make([]*auditDomain.AuditEvent, verifyBatchSize)
		for i := range full {
			full[i] = signed()
		}
		repo.On("ListByUser", ctx, userID, 0, verifyBatchSize).Return(full, nil).Once()
		repo.On("ListByUser", ctx, userID, verifyBatchSize, verifyBatchSize).
			Return([]*auditDomain.AuditEvent{signed()}, nil).Once()

		result, err := uc.Verify(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, verifyBatchSize+1, result.Total)
		assert.True(t, result.Intact())
		repo.AssertExpectations(t)
	})

	t.Run("Error_SigningDisabled", func(t *testing.T) {
		logger, _ := newTestLogger()
		uc := NewAuditUseCase(&mockAuditEventRepository{}, nil, &mockBusinessMetrics{}, logger, 0)

		_, err := uc.Verify(ctx, userID)
		assert.ErrorIs(t, err, auditDomain.ErrSigningDisabled)
	})
}
