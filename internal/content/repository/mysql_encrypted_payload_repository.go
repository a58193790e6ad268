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

// MySQLEncryptedPayloadRepository implements payload persistence for MySQL.
// UUIDs are stored as BINARY(16).
type MySQLEncryptedPayloadRepository struct {
	db *sql.DB
}

// NewMySQLEncryptedPayloadRepository creates a new MySQL payload repository.
func NewMySQLEncryptedPayloadRepository(db *sql.DB) *MySQLEncryptedPayloadRepository {
	return &MySQLEncryptedPayloadRepository{db: db}
}

// Create inserts one payload row. Returns ErrPayloadAlreadyExists when the recipient
// already has a payload for the content.
func (m *MySQLEncryptedPayloadRepository) Create(
	ctx context.Context,
	payload *contentDomain.StoredPayload,
) error {
	querier := database.GetTx(ctx, m.db)

	recipientID, err := uuid.Parse(payload.Payload.RecipientID)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "invalid recipient id")
	}
	if _, err := parseWrapMethod(string(payload.Payload.WrapMethod)); err != nil {
		return err
	}

	id, err := payload.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal payload id")
	}
	contentID, err := payload.Ref.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal content id")
	}
	ownerID, err := payload.OwnerID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal owner id")
	}
	recipient, err := recipientID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal recipient id")
	}

	query := `INSERT INTO encrypted_payloads (id, content_type, content_id, owner_id, recipient_id,
			  ciphertext, nonce, auth_tag, wrapped_key, wrap_method, is_encrypted, content_hash, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		string(payload.Ref.Type),
		contentID,
		ownerID,
		recipient,
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
		if database.IsMySQLUniqueViolation(err) {
			return contentDomain.ErrPayloadAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create encrypted payload")
	}
	return nil
}

// GetByContentAndRecipient returns the payload addressed to recipientID. Returns
// ErrPayloadNotFound when the recipient has none.
func (m *MySQLEncryptedPayloadRepository) GetByContentAndRecipient(
	ctx context.Context,
	ref contentDomain.ContentRef,
	recipientID uuid.UUID,
) (*contentDomain.StoredPayload, error) {
	querier := database.GetTx(ctx, m.db)

	contentID, err := ref.ID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal content id")
	}
	recipient, err := recipientID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal recipient id")
	}

	query := `SELECT id, content_type, content_id, owner_id, recipient_id, ciphertext, nonce,
			  auth_tag, wrapped_key, wrap_method, is_encrypted, content_hash, created_at
			  FROM encrypted_payloads
			  WHERE content_type = ? AND content_id = ? AND recipient_id = ?`

	var payload contentDomain.StoredPayload
	var id, scannedContentID, owner, scannedRecipient []byte
	var contentType, wrapMethod string

	err = querier.QueryRowContext(ctx, query, string(ref.Type), contentID, recipient).Scan(
		&id,
		&contentType,
		&scannedContentID,
		&owner,
		&scannedRecipient,
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

	if err := payload.ID.UnmarshalBinary(id); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal payload id")
	}
	if err := payload.Ref.ID.UnmarshalBinary(scannedContentID); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal content id")
	}
	if err := payload.OwnerID.UnmarshalBinary(owner); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal owner id")
	}
	var recipientUUID uuid.UUID
	if err := recipientUUID.UnmarshalBinary(scannedRecipient); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal recipient id")
	}

	payload.Ref.Type = contentDomain.ContentType(contentType)
	payload.Payload.RecipientID = recipientUUID.String()
	if payload.Payload.WrapMethod, err = parseWrapMethod(wrapMethod); err != nil {
		return nil, err
	}
	payload.CreatedAt = payload.CreatedAt.UTC()
	return &payload, nil
}

// GetOwnerID returns the owner of the content. Returns ErrPayloadNotFound when no
// payload exists for it.
func (m *MySQLEncryptedPayloadRepository) GetOwnerID(
	ctx context.Context,
	ref contentDomain.ContentRef,
) (uuid.UUID, error) {
	querier := database.GetTx(ctx, m.db)

	contentID, err := ref.ID.MarshalBinary()
	if err != nil {
		return uuid.Nil, apperrors.Wrap(err, "failed to marshal content id")
	}

	query := `SELECT owner_id FROM encrypted_payloads
			  WHERE content_type = ? AND content_id = ?
			  LIMIT 1`

	var owner []byte
	err = querier.QueryRowContext(ctx, query, string(ref.Type), contentID).Scan(&owner)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return uuid.Nil, contentDomain.ErrPayloadNotFound
		}
		return uuid.Nil, apperrors.Wrap(err, "failed to get content owner")
	}

	var ownerID uuid.UUID
	if err := ownerID.UnmarshalBinary(owner); err != nil {
		return uuid.Nil, apperrors.Wrap(err, "failed to unmarshal owner id")
	}
	return ownerID, nil
}

// DeleteByContent removes every payload of the content and returns the number of rows
// deleted.
func (m *MySQLEncryptedPayloadRepository) DeleteByContent(
	ctx context.Context,
	ref contentDomain.ContentRef,
) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	contentID, err := ref.ID.MarshalBinary()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to marshal content id")
	}

	query := `DELETE FROM encrypted_payloads WHERE content_type = ? AND content_id = ?`

	result, err := querier.ExecContext(ctx, query, string(ref.Type), contentID)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete encrypted payloads")
	}

	count, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to get rows affected")
	}
	return count, nil
}
