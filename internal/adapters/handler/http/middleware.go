package http

import (
	"context"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/wellnest/api/internal/core/domain"
	"github.com/wellnest/api/internal/core/ports"
)

type contextKey string

const userKey contextKey = "user"

func withUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// currentUser is only valid behind AuthMiddleware.Authenticate.
func currentUser(r *http.Request) *domain.User {
	user, _ := r.Context().Value(userKey).(*domain.User)
	return user
}

func requestID(r *http.Request) string {
	return middleware.GetReqID(r.Context())
}

// BypassConfig lets local development run without logging in. Every
// unauthenticated request acts as the user with Email.
type BypassConfig struct {
	Enabled bool
	Email   string
}

type AuthMiddleware struct {
	auth    ports.AuthService
	users   ports.UserService
	cookies *Cookies
	bypass  BypassConfig
	policy  domain.Policy
	logger  *zap.Logger
}

func NewAuthMiddleware(auth ports.AuthService, users ports.UserService, cookies *Cookies, bypass BypassConfig, logger *zap.Logger) *AuthMiddleware {
	if bypass.Enabled {
		logger.Warn("authentication bypass enabled", zap.String("dev_user", bypass.Email))
	}
	return &AuthMiddleware{
		auth:    auth,
		users:   users,
		cookies: cookies,
		bypass:  bypass,
		logger:  logger,
	}
}

// Authenticate resolves the caller from a bearer token or the access token
// cookie and stores it in the request context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			token, _ = m.cookies.Read(r, accessTokenCookie)
		}

		var (
			user *domain.User
			err  error
		)
		switch {
		case token != "":
			user, err = m.auth.Authenticate(r.Context(), token)
		case m.bypass.Enabled:
			user, err = m.users.GetByEmail(r.Context(), m.bypass.Email)
			if domain.KindOf(err) == domain.KindNotFound {
				err = &domain.Error{Kind: domain.KindUnauthorized, Message: "development user does not exist", Err: err}
			}
		default:
			err = &domain.Error{Kind: domain.KindUnauthorized, Message: "authentication required"}
		}
		if err != nil {
			writeError(w, r, m.logger, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(withUser(r.Context(), user)))
	})
}

// Require admits callers whose role satisfies one of roles. It must run after
// Authenticate.
func (m *AuthMiddleware) Require(roles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := currentUser(r)
			if user == nil {
				writeError(w, r, m.logger, domain.ErrInvalidToken)
				return
			}
			if !m.policy.Allows(user.Role, roles...) {
				writeError(w, r, m.logger, domain.ErrInsufficientRole)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			logger.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", status),
				zap.Duration("duration", time.Since(start)),
				zap.Int("bytes", ww.BytesWritten()),
				zap.String("request_id", requestID(r)),
			)
		})
	}
}

// recoverer turns panics into the standard JSON 500.
func recoverer(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.Error("panic recovered",
					zap.Any("panic", rec),
					zap.String("path", r.URL.Path),
					zap.String("request_id", requestID(r)),
					zap.Stack("stack"),
				)
				writeJSON(w, http.StatusInternalServerError, errorResponse{Message: domain.ErrInternal.Error()})
			}()
			next.ServeHTTP(w, r)
		})
	}
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter limits requests per client IP.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
	logger   *zap.Logger
}

func NewRateLimiter(perMinute int, logger *zap.Logger) *RateLimiter {
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    perMinute,
		logger:   logger,
	}
}

func (rl *RateLimiter) allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, ok := rl.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.visitors[key] = v
	}
	v.lastSeen = time.Now()
	return v.limiter.Allow()
}

func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := clientIP(r)
		if !rl.allow(key) {
			rl.logger.Warn("rate limit exceeded", zap.String("ip", key), zap.String("path", r.URL.Path))
			w.Header().Set("Retry-After", "60")
			writeJSON(w, http.StatusTooManyRequests, errorResponse{Message: "too many requests"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Cleanup forgets clients idle for longer than idle.
func (rl *RateLimiter) Cleanup(idle time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-idle)
	for key, v := range rl.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(rl.visitors, key)
		}
	}
}

// StartCleanup runs Cleanup every interval until ctx is done.
func (rl *RateLimiter) StartCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				rl.Cleanup(interval)
			}
		}
	}()
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
