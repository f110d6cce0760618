package sqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/wellnest/api/internal/core/domain"
)

type authRepository struct{ s *Store }

func (r *authRepository) StoreRefreshToken(ctx context.Context, token *domain.RefreshToken) error {
	return r.s.insert(ctx, "refresh token", `
		INSERT INTO refresh_tokens (token_hash, user_id, expires_at, created_at)
		VALUES (:token_hash, :user_id, :expires_at, :created_at)
	`, token)
}

// ConsumeRefreshToken is a single DELETE ... RETURNING, so two concurrent
// callers presenting the same token cannot both observe the row.
func (r *authRepository) ConsumeRefreshToken(ctx context.Context, tokenHash string, now time.Time) (*domain.RefreshToken, error) {
	var token domain.RefreshToken
	err := r.s.get(ctx, &token, `
		DELETE FROM refresh_tokens
		WHERE token_hash = ? AND expires_at > ?
		RETURNING token_hash, user_id, expires_at, created_at
	`, tokenHash, now.UTC())
	if err != nil {
		return nil, notFound(err, "refresh token")
	}
	return &token, nil
}

func (r *authRepository) DeleteRefreshToken(ctx context.Context, tokenHash string) error {
	if _, err := r.s.exec(ctx, `DELETE FROM refresh_tokens WHERE token_hash = ?`, tokenHash); err != nil {
		return fmt.Errorf("failed to delete refresh token: %w", err)
	}
	return nil
}

func (r *authRepository) DeleteExpiredRefreshTokens(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.s.exec(ctx, `DELETE FROM refresh_tokens WHERE expires_at <= ?`, now.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired refresh tokens: %w", err)
	}
	return res.RowsAffected()
}
