// Package repository persists the append-only audit trail.
package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	auditDomain "github.com/allisson/sealfeed/internal/audit/domain"
	"github.com/allisson/sealfeed/internal/database"
	apperrors "github.com/allisson/sealfeed/internal/errors"
)

// PostgreSQLAuditEventRepository implements AuditEvent persistence for PostgreSQL.
// Uses native UUID types with transaction support via database.GetTx().
type PostgreSQLAuditEventRepository struct {
	db *sql.DB
}

// NewPostgreSQLAuditEventRepository creates a new PostgreSQL AuditEvent repository.
func NewPostgreSQLAuditEventRepository(db *sql.DB) *PostgreSQLAuditEventRepository {
	return &PostgreSQLAuditEventRepository{db: db}
}

// Create appends an event. There is no update or delete counterpart.
func (p *PostgreSQLAuditEventRepository) Create(ctx context.Context, event *auditDomain.AuditEvent) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO audit_events (id, user_id, action, resource_type, resource_id,
			  encryption_status, ip_address, user_agent, signature, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := querier.ExecContext(
		ctx,
		query,
		event.ID,
		event.UserID,
		string(event.Action),
		string(event.ResourceType),
		event.ResourceID,
		string(event.EncryptionStatus),
		event.IPAddress,
		event.UserAgent,
		event.Signature,
		event.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create audit event")
	}
	return nil
}

// ListByUser retrieves the events of userID ordered by ID descending (newest first)
// with pagination. Returns an empty slice if none are found.
func (p *PostgreSQLAuditEventRepository) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	offset, limit int,
) ([]*auditDomain.AuditEvent, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, user_id, action, resource_type, resource_id, encryption_status,
			  ip_address, user_agent, signature, created_at
			  FROM audit_events
			  WHERE user_id = $1
			  ORDER BY id DESC
			  LIMIT $2 OFFSET $3`

	rows, err := querier.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list audit events")
	}
	defer func() {
		_ = rows.Close()
	}()

	events := make([]*auditDomain.AuditEvent, 0)
	for rows.Next() {
		var event auditDomain.AuditEvent
		var action, resourceType, status string

		err := rows.Scan(
			&event.ID,
			&event.UserID,
			&action,
			&resourceType,
			&event.ResourceID,
			&status,
			&event.IPAddress,
			&event.UserAgent,
			&event.Signature,
			&event.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan audit event")
		}

		event.Action = auditDomain.Action(action)
		event.ResourceType = auditDomain.ResourceType(resourceType)
		event.EncryptionStatus = auditDomain.EncryptionStatus(status)
		event.CreatedAt = event.CreatedAt.UTC()

		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate audit events")
	}

	return events, nil
}
