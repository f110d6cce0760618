package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/wellnest/api/internal/core/domain"
	"github.com/wellnest/api/internal/core/ports"
)

type AuthConfig struct {
	JWTSecret       []byte
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	// Now defaults to time.Now.
	Now func() time.Time
	// BcryptCost defaults to bcrypt.DefaultCost.
	BcryptCost int
}

type authService struct {
	users  ports.UserRepository
	orgs   ports.OrganizationRepository
	tokens ports.AuthRepository
	cfg    AuthConfig
	logger *zap.Logger
}

type accessClaims struct {
	Role domain.Role `json:"role"`
	jwt.RegisteredClaims
}

func NewAuthService(users ports.UserRepository, orgs ports.OrganizationRepository, tokens ports.AuthRepository, cfg AuthConfig, logger *zap.Logger) ports.AuthService {
	cfg.Now = clockOrDefault(cfg.Now)
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	return &authService{
		users:  users,
		orgs:   orgs,
		tokens: tokens,
		cfg:    cfg,
		logger: logger.Named("auth"),
	}
}

func (s *authService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	email := normalizeEmail(input.Email)
	if err := checkEmail(email); err != nil {
		return nil, err
	}
	if len(input.Password) < domain.MinPasswordLength {
		return nil, domain.Validation("password must be at least %d characters", domain.MinPasswordLength)
	}
	if len(input.Password) > domain.MaxPasswordLength {
		return nil, domain.Validation("password must be at most %d bytes", domain.MaxPasswordLength)
	}
	displayName := strings.TrimSpace(input.DisplayName)
	if err := checkLength("display name", displayName, 1, domain.MaxDisplayNameLength); err != nil {
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = domain.RoleIndividual
	}
	if !role.Valid() {
		return nil, domain.Validation("role must be one of individual, manager, admin")
	}

	orgID, err := s.resolveOrganization(ctx, role, strings.TrimSpace(input.OrgCode))
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.cfg.Now().UTC()
	user := &domain.User{
		ID:             uuid.New(),
		Email:          email,
		PasswordHash:   string(hash),
		DisplayName:    displayName,
		Role:           role,
		OrganizationID: orgID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user registered", zap.Stringer("user_id", user.ID), zap.String("role", string(role)))
	return user, nil
}

// resolveOrganization maps an organization code to its id. Managers and
// admins cannot register without one.
func (s *authService) resolveOrganization(ctx context.Context, role domain.Role, code string) (*uuid.UUID, error) {
	if code == "" {
		if role != domain.RoleIndividual {
			return nil, domain.Validation("an organization code is required for role %s", role)
		}
		return nil, nil
	}

	org, err := s.orgs.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.Validation("unknown organization code")
		}
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}
	return &org.ID, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*domain.User, *domain.TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Burn comparable time so unknown emails are not distinguishable.
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, nil, domain.ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, domain.ErrInvalidCredentials
	}
	if user.Disabled {
		return nil, nil, domain.ErrInvalidCredentials
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	if refreshToken == "" {
		return nil, domain.ErrInvalidRefreshToken
	}

	now := s.cfg.Now().UTC()
	stored, err := s.tokens.ConsumeRefreshToken(ctx, hashToken(refreshToken), now)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidRefreshToken
		}
		return nil, fmt.Errorf("failed to consume refresh token: %w", err)
	}

	user, err := s.users.GetByID(ctx, stored.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidRefreshToken
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user.Disabled {
		return nil, domain.ErrInvalidRefreshToken
	}

	return s.issueTokens(ctx, user)
}

func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	if err := s.tokens.DeleteRefreshToken(ctx, hashToken(refreshToken)); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}

func (s *authService) Authenticate(ctx context.Context, accessToken string) (*domain.User, error) {
	claims := &accessClaims{}
	_, err := jwt.ParseWithClaims(accessToken, claims, func(*jwt.Token) (any, error) {
		return s.cfg.JWTSecret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.cfg.Now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user.Disabled {
		return nil, domain.ErrInvalidToken
	}
	return user, nil
}

func (s *authService) issueTokens(ctx context.Context, user *domain.User) (*domain.TokenPair, error) {
	now := s.cfg.Now().UTC()

	accessExpiresAt := now.Add(s.cfg.AccessTokenTTL)
	accessToken, err := s.generateAccessToken(user, now, accessExpiresAt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := generateRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	refreshExpiresAt := now.Add(s.cfg.RefreshTokenTTL)
	err = s.tokens.StoreRefreshToken(ctx, &domain.RefreshToken{
		TokenHash: hashToken(refreshToken),
		UserID:    user.ID,
		ExpiresAt: refreshExpiresAt,
		CreatedAt: now,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &domain.TokenPair{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		AccessTokenExpiresAt:  accessExpiresAt,
		RefreshTokenExpiresAt: refreshExpiresAt,
	}, nil
}

func (s *authService) generateAccessToken(user *domain.User, now, expiresAt time.Time) (string, error) {
	claims := accessClaims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.cfg.JWTSecret)
}

func generateRefreshToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func hashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("wellnest-dummy-password"), bcrypt.DefaultCost)
