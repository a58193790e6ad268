package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	auditDomain "github.com/allisson/sealfeed/internal/audit/domain"
	"github.com/allisson/sealfeed/internal/database"
	apperrors "github.com/allisson/sealfeed/internal/errors"
)

// MySQLAuditEventRepository implements AuditEvent persistence for MySQL.
// UUIDs are stored as BINARY(16).
type MySQLAuditEventRepository struct {
	db *sql.DB
}

// NewMySQLAuditEventRepository creates a new MySQL AuditEvent repository.
func NewMySQLAuditEventRepository(db *sql.DB) *MySQLAuditEventRepository {
	return &MySQLAuditEventRepository{db: db}
}

// Create appends an event. There is no update or delete counterpart.
func (m *MySQLAuditEventRepository) Create(ctx context.Context, event *auditDomain.AuditEvent) error {
	querier := database.GetTx(ctx, m.db)

	id, err := event.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal audit event id")
	}
	userID, err := event.UserID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal user id")
	}
	resourceID, err := event.ResourceID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal resource id")
	}

	query := `INSERT INTO audit_events (id, user_id, action, resource_type, resource_id,
			  encryption_status, ip_address, user_agent, signature, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		userID,
		string(event.Action),
		string(event.ResourceType),
		resourceID,
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
func (m *MySQLAuditEventRepository) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	offset, limit int,
) ([]*auditDomain.AuditEvent, error) {
	querier := database.GetTx(ctx, m.db)

	user, err := userID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal user id")
	}

	query := `SELECT id, user_id, action, resource_type, resource_id, encryption_status,
			  ip_address, user_agent, signature, created_at
			  FROM audit_events
			  WHERE user_id = ?
			  ORDER BY id DESC
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, user, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list audit events")
	}
	defer func() {
		_ = rows.Close()
	}()

	events := make([]*auditDomain.AuditEvent, 0)
	for rows.Next() {
		var event auditDomain.AuditEvent
		var idBytes, userBytes, resourceBytes []byte
		var action, resourceType, status string

		err := rows.Scan(
			&idBytes,
			&userBytes,
			&action,
			&resourceType,
			&resourceBytes,
			&status,
			&event.IPAddress,
			&event.UserAgent,
			&event.Signature,
			&event.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan audit event")
		}

		if err := event.ID.UnmarshalBinary(idBytes); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal audit event id")
		}
		if err := event.UserID.UnmarshalBinary(userBytes); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal user id")
		}
		if err := event.ResourceID.UnmarshalBinary(resourceBytes); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal resource id")
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
