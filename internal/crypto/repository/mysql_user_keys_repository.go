package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	cryptoDomain "github.com/allisson/sealfeed/internal/crypto/domain"
	"github.com/allisson/sealfeed/internal/database"
	apperrors "github.com/allisson/sealfeed/internal/errors"
)

// MySQLUserKeysRepository implements user key persistence for MySQL databases.
type MySQLUserKeysRepository struct {
	db *sql.DB
}

// NewMySQLUserKeysRepository creates a new MySQL user keys repository instance.
func NewMySQLUserKeysRepository(db *sql.DB) *MySQLUserKeysRepository {
	return &MySQLUserKeysRepository{db: db}
}

// Create inserts the key record. Returns ErrUserKeysAlreadyExist when the user already
// has keys.
func (m *MySQLUserKeysRepository) Create(ctx context.Context, keys *cryptoDomain.StoredUserKeys) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO user_keys (user_id, public_key, private_key, symmetric_key, created_at)
			  VALUES (?, ?, ?, ?, ?)`

	// Convert UUID to bytes for MySQL BINARY(16)
	id, err := keys.UserID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		keys.PublicKey,
		keys.SealedPrivateKey,
		keys.SealedSymmetricKey,
		keys.CreatedAt,
	)
	if err != nil {
		if database.IsMySQLUniqueViolation(err) {
			return cryptoDomain.ErrUserKeysAlreadyExist
		}
		return apperrors.Wrap(err, "failed to create user keys")
	}
	return nil
}

// GetByUserID retrieves the key record of userID. Returns ErrUserKeysNotFound when
// none has been persisted yet.
func (m *MySQLUserKeysRepository) GetByUserID(
	ctx context.Context,
	userID uuid.UUID,
) (*cryptoDomain.StoredUserKeys, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT user_id, public_key, private_key, symmetric_key, created_at
			  FROM user_keys WHERE user_id = ?`

	id, err := userID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}

	var keys cryptoDomain.StoredUserKeys
	var idBytes []byte
	err = querier.QueryRowContext(ctx, query, id).Scan(
		&idBytes,
		&keys.PublicKey,
		&keys.SealedPrivateKey,
		&keys.SealedSymmetricKey,
		&keys.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, cryptoDomain.ErrUserKeysNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get user keys")
	}

	if err := keys.UserID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
	}
	return &keys, nil
}
