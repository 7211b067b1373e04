package repository

import (
    "context"
    "database/sql"
    "errors"
    "time"

    "github.com/iliyamo/cinema-ticketing/internal/model"
)

// TokenRepo stores refresh tokens.  Only the SHA-256 hash of a token is
// persisted; the raw value never reaches the database.
type TokenRepo struct {
    db *sql.DB
}

// NewTokenRepo constructs a TokenRepo with the given DB handle.
func NewTokenRepo(db *sql.DB) *TokenRepo { return &TokenRepo{db: db} }

// Store inserts a refresh token hash for a user.
func (r *TokenRepo) Store(ctx context.Context, userID uint64, tokenHash string, expiresAt time.Time) error {
    const q = `INSERT INTO refresh_tokens (user_id, token_hash, expires_at) VALUES (?, ?, ?)`
    _, err := r.db.ExecContext(ctx, q, userID, tokenHash, expiresAt.UTC())
    return err
}

// Find returns the active (not revoked, not expired) token row matching
// the given hash, or sql.ErrNoRows.
func (r *TokenRepo) Find(ctx context.Context, tokenHash string) (*model.RefreshToken, error) {
    const q = `SELECT id, user_id, token_hash, expires_at, revoked_at, created_at
	           FROM refresh_tokens
	           WHERE token_hash = ? AND revoked_at IS NULL AND expires_at > UTC_TIMESTAMP()`
    var t model.RefreshToken
    var revoked sql.NullTime
    err := r.db.QueryRowContext(ctx, q, tokenHash).
        Scan(&t.ID, &t.UserID, &t.TokenHash, &t.ExpiresAt, &revoked, &t.CreatedAt)
    if err != nil {
        return nil, err
    }
    if revoked.Valid {
        rv := revoked.Time
        t.RevokedAt = &rv
    }
    return &t, nil
}

// Revoke marks a refresh token as revoked.  Revoking an unknown or
// already revoked token is not an error.
func (r *TokenRepo) Revoke(ctx context.Context, tokenHash string) error {
    const q = `UPDATE refresh_tokens SET revoked_at = UTC_TIMESTAMP()
	           WHERE token_hash = ? AND revoked_at IS NULL`
    _, err := r.db.ExecContext(ctx, q, tokenHash)
    if err != nil && !errors.Is(err, sql.ErrNoRows) {
        return err
    }
    return nil
}
