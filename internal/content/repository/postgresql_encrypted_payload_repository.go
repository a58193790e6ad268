// Package repository persists EncryptedPayload rows, one per content and recipient.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	contentDomain "github.com/allisson/sealfeed/internal/content/domain"
	"github.com/allisson/sealfeed/internal/database"
	apperrors "github.com/allisson/sealfeed/internal/errors"
)

// PostgreSQLEncryptedPayloadRepository implements payload persistence for PostgreSQL.
type PostgreSQLEncryptedPayloadRepository struct {
	db *sql.DB
}

// NewPostgreSQLEncryptedPayloadRepository creates a new PostgreSQL payload repository.
func NewPostgreSQLEncryptedPayloadRepository(db *sql.DB) *PostgreSQLEncryptedPayloadRepository {
	return &PostgreSQLEncryptedPayloadRepository{db: db}
}

// Create inserts one payload row. Returns ErrPayloadAlreadyExists when the recipient
// already has a payload for the content.
func (p *PostgreSQLEncryptedPayloadRepository) Create(
	ctx context.Context,
	payload *contentDomain.StoredPayload,
) error {
	querier := database.GetTx(ctx, p.db)

	recipientID, err := uuid.Parse(payload.Payload.RecipientID)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "invalid recipient id")
	}
	if _, err := parseWrapMethod(string(payload.Payload.WrapMethod)); err != nil {
		return err
	}

	query := `INSERT INTO encrypted_payloads (id, content_type, content_id, owner_id, recipient_id,
			  ciphertext, nonce, auth_tag, wrapped_key, wrap_method, is_encrypted, content_hash, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err = querier.ExecContext(
		ctx,
		query,
		payload.ID,
		string(payload.Ref.Type),
		payload.Ref.ID,
		payload.OwnerID,
		recipientID,
		payload.Payload.Ciphertext,
		payload.Payload.Nonce,
		payload.Payload.AuthTag,
		payload.Payload.WrappedKey,
		string(payload.Payload.WrapMethod),
		payload.Payload.IsEncrypted,
		payload.ContentHash,
		payload.CreatedAt,
	)
	if err != nil {
		if database.IsPostgresUniqueViolation(err) {
			return contentDomain.ErrPayloadAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create encrypted payload")
	}
	return nil
}

// GetByContentAndRecipient returns the payload addressed to recipientID. Returns
// ErrPayloadNotFound when the recipient has none.
func (p *PostgreSQLEncryptedPayloadRepository) GetByContentAndRecipient(
	ctx context.Context,
	ref contentDomain.ContentRef,
	recipientID uuid.UUID,
) (*contentDomain.StoredPayload, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, content_type, content_id, owner_id, recipient_id, ciphertext, nonce,
			  auth_tag, wrapped_key, wrap_method, is_encrypted, content_hash, created_at
			  FROM encrypted_payloads
			  WHERE content_type = $1 AND content_id = $2 AND recipient_id = $3`

	var payload contentDomain.StoredPayload
	var contentType, wrapMethod string
	var recipient uuid.UUID

	err := querier.QueryRowContext(ctx, query, string(ref.Type), ref.ID, recipientID).Scan(
		&payload.ID,
		&contentType,
		&payload.Ref.ID,
		&payload.OwnerID,
		&recipient,
		&payload.Payload.Ciphertext,
		&payload.Payload.Nonce,
		&payload.Payload.AuthTag,
		&payload.Payload.WrappedKey,
		&wrapMethod,
		&payload.Payload.IsEncrypted,
		&payload.ContentHash,
		&payload.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, contentDomain.ErrPayloadNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get encrypted payload")
	}

	payload.Ref.Type = contentDomain.ContentType(contentType)
	payload.Payload.RecipientID = recipient.String()
	if payload.Payload.WrapMethod, err = parseWrapMethod(wrapMethod); err != nil {
		return nil, err
	}
	payload.CreatedAt = payload.CreatedAt.UTC()
	return &payload, nil
}

// GetOwnerID returns the owner of the content. Returns ErrPayloadNotFound when no
// payload exists for it.
func (p *PostgreSQLEncryptedPayloadRepository) GetOwnerID(
	ctx context.Context,
	ref contentDomain.ContentRef,
) (uuid.UUID, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT owner_id FROM encrypted_payloads
			  WHERE content_type = $1 AND content_id = $2
			  LIMIT 1`

	var ownerID uuid.UUID
	err := querier.QueryRowContext(ctx, query, string(ref.Type), ref.ID).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return uuid.Nil, contentDomain.ErrPayloadNotFound
		}
		return uuid.Nil, apperrors.Wrap(err, "failed to get content owner")
	}
	return ownerID, nil
}

// DeleteByContent removes every payload of the content and returns the number of rows
// deleted.
func (p *PostgreSQLEncryptedPayloadRepository) DeleteByContent(
	ctx context.Context,
	ref contentDomain.ContentRef,
) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM encrypted_payloads WHERE content_type = $1 AND content_id = $2`

	result, err := querier.ExecContext(ctx, query, string(ref.Type), ref.ID)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete encrypted payloads")
	}

	count, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to get rows affected")
	}
	return count, nil
}
