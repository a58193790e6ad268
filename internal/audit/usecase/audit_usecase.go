package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	auditDomain "github.com/allisson/sealfeed/internal/audit/domain"
	auditService "github.com/allisson/sealfeed/internal/audit/service"
	apperrors "github.com/allisson/sealfeed/internal/errors"
	"github.com/allisson/sealfeed/internal/metrics"
)

// DefaultWriteTimeout bounds a single audit insert.
const DefaultWriteTimeout = 2 * time.Second

const verifyBatchSize = 500

type auditUseCase struct {
	repo         AuditEventRepository
	signer       auditService.AuditSigner
	metrics      metrics.BusinessMetrics
	logger       *slog.Logger
	writeTimeout time.Duration
}

// NewAuditUseCase creates a new AuditUseCase. signer may be nil, in which case events
// are stored unsigned and Verify reports ErrSigningDisabled.
func NewAuditUseCase(
	repo AuditEventRepository,
	signer auditService.AuditSigner,
	businessMetrics metrics.BusinessMetrics,
	logger *slog.Logger,
	writeTimeout time.Duration,
) AuditUseCase {
	if writeTimeout <= 0 {
		writeTimeout = DefaultWriteTimeout
	}
	return &auditUseCase{
		repo:         repo,
		signer:       signer,
		metrics:      businessMetrics,
		logger:       logger,
		writeTimeout: writeTimeout,
	}
}

// Record builds, signs and stores one event. The insert runs detached from the
// caller's cancellation and bounded by the write timeout; failures are logged and
// counted, never returned.
func (a *auditUseCase) Record(
	ctx context.Context,
	action auditDomain.Action,
	resource auditDomain.Resource,
	status auditDomain.EncryptionStatus,
) {
	actor, _ := auditDomain.ActorFromContext(ctx)

	event := &auditDomain.AuditEvent{
		ID:               uuid.Must(uuid.NewV7()),
		UserID:           actor.UserID,
		Action:           action,
		ResourceType:     resource.Type,
		ResourceID:       resource.ID,
		EncryptionStatus: status,
		IPAddress:        actor.IPAddress,
		UserAgent:        actor.UserAgent,
		CreatedAt:        time.Now().UTC().Truncate(time.Microsecond),
	}

	if a.signer != nil {
		signature, err := a.signer.Sign(event)
		if err != nil {
			a.logger.Warn("failed to sign audit event", slog.Any("error", err))
		}
		event.Signature = signature
	}

	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.writeTimeout)
	defer cancel()

	if err := a.repo.Create(writeCtx, event); err != nil {
		a.logger.Error("failed to write audit event",
			slog.Any("error", apperrors.Join(auditDomain.ErrAuditWrite, err)),
			slog.String("audit_event_id", event.ID.String()),
			slog.String("user_id", event.UserID.String()),
			slog.String("action", string(action)),
			slog.String("resource_type", string(resource.Type)),
			slog.String("resource_id", resource.ID.String()),
			slog.String("encryption_status", string(status)),
		)
		a.metrics.RecordOperation(ctx, "audit", "audit_write", metrics.StatusError)
		return
	}
	a.metrics.RecordOperation(ctx, "audit", "audit_write", metrics.StatusSuccess)
}

// List returns the events of userID, newest first.
func (a *auditUseCase) List(
	ctx context.Context,
	userID uuid.UUID,
	offset, limit int,
) ([]*auditDomain.AuditEvent, error) {
	events, err := a.repo.ListByUser(ctx, userID, offset, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list audit events")
	}
	return events, nil
}

// Verify walks the whole trail of userID in batches and checks each signature.
func (a *auditUseCase) Verify(ctx context.Context, userID uuid.UUID) (*auditDomain.VerificationResult, error) {
	if a.signer == nil {
		return nil, auditDomain.ErrSigningDisabled
	}

	result := &auditDomain.VerificationResult{}
	for offset := 0; ; offset += verifyBatchSize {
		events, err := a.repo.ListByUser(ctx, userID, offset, verifyBatchSize)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to list audit events")
		}

		for _, event := range events {
			result.Total++
			switch err := a.signer.Verify(event); {
			case err == nil:
				result.Valid++
			case apperrors.Is(err, auditDomain.ErrSignatureMissing):
				result.Unsigned++
			default:
				result.Invalid = append(result.Invalid, event.ID)
			}
		}

		if len(events) < verifyBatchSize {
			return result, nil
		}
	}
}
