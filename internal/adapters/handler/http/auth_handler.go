package http

import (
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/wellnest/api/internal/core/domain"
	"github.com/wellnest/api/internal/core/ports"
	"github.com/wellnest/api/internal/metrics"
)

type AuthHandler struct {
	authService ports.AuthService
	cookies     *Cookies
	metrics     *metrics.Metrics
	logger      *zap.Logger
}

// NewAuthHandler accepts a nil metrics when monitoring is disabled.
func NewAuthHandler(authService ports.AuthService, cookies *Cookies, m *metrics.Metrics, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cookies:     cookies,
		metrics:     m,
		logger:      logger,
	}
}

type registerRequest struct {
	Email       string `json:"email" validate:"required,email,max=254"`
	Password    string `json:"password" validate:"required,min=8,max=72"`
	DisplayName string `json:"displayName" validate:"required,max=100"`
	Role        string `json:"role" validate:"omitempty,oneof=individual manager admin"`
	OrgCode     string `json:"orgCode" validate:"max=64"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type sessionResponse struct {
	User                  *domain.User `json:"user,omitempty"`
	AccessToken           string       `json:"accessToken"`
	RefreshToken          string       `json:"refreshToken"`
	AccessTokenExpiresAt  time.Time    `json:"accessTokenExpiresAt"`
	RefreshTokenExpiresAt time.Time    `json:"refreshTokenExpiresAt"`
}

type statusResponse struct {
	Status string `json:"status"`
}

// Register godoc
// @Summary      Creates an account
// @Tags         auth
// @Accept       json
// @Success      201
// @Failure      400,409
// @Router       /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	user, err := h.authService.Register(r.Context(), ports.RegisterInput{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
		Role:        domain.Role(req.Role),
		OrgCode:     req.OrgCode,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// Login godoc
// @Summary      Logs a user in
// @Description  Sets the access and refresh token cookies and returns both tokens for bearer clients.
// @Tags         auth
// @Accept       json
// @Success      200
// @Failure      401
// @Router       /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	user, pair, err := h.authService.Login(r.Context(), req.Email, req.Password)
	h.metrics.AuthEvent("login", err == nil)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	h.writeSession(w, r, user, pair)
}

// Refresh godoc
// @Summary      Rotates the session
// @Description  Exchanges the refresh token cookie (or body token) for a new token pair. The presented refresh token stops working.
// @Tags         auth
// @Accept       json
// @Success      200
// @Failure      401
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	pair, err := h.authService.Refresh(r.Context(), h.refreshToken(r))
	h.metrics.AuthEvent("refresh", err == nil)
	if err != nil {
		if domain.KindOf(err) == domain.KindUnauthorized {
			h.cookies.Expire(w)
		}
		writeError(w, r, h.logger, err)
		return
	}

	h.writeSession(w, r, nil, pair)
}

// Logout godoc
// @Summary      Logs the autheticated user out
// @Description  Revokes the refresh token and clears the session cookies. Always succeeds.
// @Tags         auth
// @Accept       json
// @Success      200
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if token := h.refreshToken(r); token != "" {
		if err := h.authService.Logout(r.Context(), token); err != nil {
			h.logger.Error("failed to revoke refresh token", zap.Error(err), zap.String("request_id", requestID(r)))
		}
	}
	h.metrics.AuthEvent("logout", true)

	h.cookies.Expire(w)
	writeJSON(w, http.StatusOK, statusResponse{Status: "ok"})
}

// refreshToken prefers the signed cookie and falls back to the JSON body. A
// body that cannot be decoded carries no usable token.
func (h *AuthHandler) refreshToken(r *http.Request) string {
	if token, ok := h.cookies.Read(r, refreshTokenCookie); ok {
		return token
	}

	var req refreshRequest
	if err := decodeJSON(r, &req); err != nil {
		if !errors.Is(err, errEmptyBody) {
			h.logger.Debug("unreadable refresh body", zap.Error(err), zap.String("request_id", requestID(r)))
		}
		return ""
	}
	return req.RefreshToken
}

func (h *AuthHandler) writeSession(w http.ResponseWriter, r *http.Request, user *domain.User, pair *domain.TokenPair) {
	if err := h.cookies.SetTokens(w, pair); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{
		User:                  user,
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
	})
}
