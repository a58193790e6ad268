// Package usecase records and reads the audit trail of cryptographic operations.
package usecase

import (
	"context"

	"github.com/google/uuid"

	auditDomain "github.com/allisson/sealfeed/internal/audit/domain"
)

// AuditEventRepository appends and lists audit events.
type AuditEventRepository interface {
	Create(ctx context.Context, event *auditDomain.AuditEvent) error
	ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*auditDomain.AuditEvent, error)
}

// AuditUseCase is the audit logger. Record never returns an error so it can be called
// from any cryptographic path without changing that path's outcome.
type AuditUseCase interface {
	// Record appends one event for the actor stored in ctx.
	Record(
		ctx context.Context,
		action auditDomain.Action,
		resource auditDomain.Resource,
		status auditDomain.EncryptionStatus,
	)

	// List returns the events of userID, newest first.
	List(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*auditDomain.AuditEvent, error)

	// Verify checks the signature of every event of userID.
	Verify(ctx context.Context, userID uuid.UUID) (*auditDomain.VerificationResult, error)
}
