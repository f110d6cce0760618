package ports

import (
	"context"
	"time"

	"github.com/wellnest/api/internal/core/domain"
)

type AuthRepository interface {
	StoreRefreshToken(ctx context.Context, token *domain.RefreshToken) error
	// ConsumeRefreshToken deletes the unexpired token with the given hash and
	// returns it. Only one caller can consume a token; every other caller gets
	// domain.ErrNotFound.
	ConsumeRefreshToken(ctx context.Context, tokenHash string, now time.Time) (*domain.RefreshToken, error)
	DeleteRefreshToken(ctx context.Context, tokenHash string) error
	DeleteExpiredRefreshTokens(ctx context.Context, now time.Time) (int64, error)
}

type RegisterInput struct {
	Email       string
	Password    string
	DisplayName string
	Role        domain.Role
	OrgCode     string
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, *domain.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	Authenticate(ctx context.Context, accessToken string) (*domain.User, error)
}
