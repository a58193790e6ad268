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

// PostgreSQLUserKeysRepository implements user key persistence for PostgreSQL databases.
type PostgreSQLUserKeysRepository struct {
	db *sql.DB
}

// NewPostgreSQLUserKeysRepository creates a new PostgreSQL user keys repository instance.
func NewPostgreSQLUserKeysRepository(db *sql.DB) *PostgreSQLUserKeysRepository {
	return &PostgreSQLUserKeysRepository{db: db}
}

// Create inserts the key record. Returns ErrUserKeysAlreadyExist when the user already
// has keys.
func (p *PostgreSQLUserKeysRepository) Create(ctx context.Context, keys *cryptoDomain.StoredUserKeys) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO user_keys (user_id, public_key, private_key, symmetric_key, created_at)
			  VALUES ($1, $2, $3, $4, $5)`

	_, err := querier.ExecContext(
		ctx,
		query,
		keys.UserID,
		keys.PublicKey,
		keys.SealedPrivateKey,
		keys.SealedSymmetricKey,
		keys.CreatedAt,
	)
	if err != nil {
		if database.IsPostgresUniqueViolation(err) {
			return cryptoDomain.ErrUserKeysAlreadyExist
		}
		return apperrors.Wrap(err, "failed to create user keys")
	}
	return nil
}

// GetByUserID retrieves the key record of userID. Returns ErrUserKeysNotFound when
// none has been persisted yet.
func (p *PostgreSQLUserKeysRepository) GetByUserID(
	ctx context.Context,
	userID uuid.UUID,
) (*cryptoDomain.StoredUserKeys, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT user_id, public_key, private_key, symmetric_key, created_at
			  FROM user_keys WHERE user_id = $1`

	var keys cryptoDomain.StoredUserKeys
	err := querier.QueryRowContext(ctx, query, userID).Scan(
		&keys.UserID,
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
	return &keys, nil
}
