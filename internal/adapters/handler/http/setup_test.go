package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	handler "github.com/wellnest/api/internal/adapters/handler/http"
	"github.com/wellnest/api/internal/adapters/repository/sqlite"
	"github.com/wellnest/api/internal/adapters/repository/sqlstore"
	"github.com/wellnest/api/internal/core/sentiment"
	"github.com/wellnest/api/internal/core/services"
	"github.com/wellnest/api/internal/metrics"
)

type TestApp struct {
	Store  *sqlstore.Store
	Server *httptest.Server
	// Client keeps cookies between requests.
	Client *http.Client
}

type appOptions struct {
	bypass      handler.BypassConfig
	metrics     bool
	ratePerMin  int
	accessTTL   time.Duration
	environment string
	trustProxy  bool
}

func setupTestApp(t *testing.T, opts ...func(*appOptions)) *TestApp {
	t.Helper()

	o := appOptions{ratePerMin: 1000, accessTTL: 15 * time.Minute, environment: "test"}
	for _, opt := range opts {
		opt(&o)
	}

	store, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)

	logger := zap.NewNop()
	var m *metrics.Metrics
	if o.metrics {
		m = metrics.New()
	}

	authSvc := services.NewAuthService(store.Users(), store.Organizations(), store.Auth(), services.AuthConfig{
		JWTSecret:       []byte("http-test-secret-with-at-least-32-chars"),
		AccessTokenTTL:  o.accessTTL,
		RefreshTokenTTL: 24 * time.Hour,
		BcryptCost:      bcrypt.MinCost,
	}, logger)
	userSvc := services.NewUserService(store.Users())

	cookies := handler.NewCookies(handler.CookieConfig{
		Secret:     []byte("cookie-test-secret-with-at-least-32-chars"),
		Secure:     false,
		AccessTTL:  o.accessTTL,
		RefreshTTL: 24 * time.Hour,
	})

	router := handler.NewHandler(handler.Handlers{
		Auth:     handler.NewAuthHandler(authSvc, cookies, m, logger),
		Users:    handler.NewUserHandler(userSvc, services.NewOrganizationService(store.Organizations(), nil), logger),
		Journals: handler.NewJournalHandler(services.NewJournalService(store.Journals(), nil), services.NewMoodService(store.Moods(), nil), logger),
		Rants:    handler.NewRantHandler(services.NewRantService(store.Rants(), sentiment.Scorer{}, nil), logger),
		Care: handler.NewCareHandler(
			services.NewTherapistService(store.Therapists(), nil),
			services.NewAppointmentService(store.Appointments(), store.Therapists(), nil, logger),
			services.NewCourseService(store.Courses(), nil),
			logger,
		),
		Assessments: handler.NewAssessmentHandler(services.NewAssessmentService(store.Assessments(), nil), logger),
		Manager:     handler.NewManagerHandler(services.NewManagerService(store.Users(), store.Surveys(), store.Metrics(), nil), logger),
		Health:      handler.NewHealthHandler(store, o.environment, "test-version", logger),
	}, handler.NewAuthMiddleware(authSvc, userSvc, cookies, o.bypass, logger), handler.RouterConfig{
		CORSOrigin:  "http://localhost:5173",
		TrustProxy:  o.trustProxy,
		Metrics:     m,
		AuthLimiter: handler.NewRateLimiter(o.ratePerMin, logger),
		Logger:      logger,
	})

	server := httptest.NewServer(router)
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := server.Client()
	client.Jar = jar

	t.Cleanup(func() {
		server.Close()
		store.Close()
	})

	return &TestApp{Store: store, Server: server, Client: client}
}

// do sends body as JSON. A non-empty bearer token is sent in the
// Authorization header.
func (a *TestApp) do(t *testing.T, client *http.Client, method, path, bearer string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, a.Server.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := client.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

type session struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	User         struct {
		ID   string `json:"id"`
		Role string `json:"role"`
	} `json:"user"`
}

type apiError struct {
	Message string `json:"message"`
}

func (a *TestApp) register(t *testing.T, email, role, orgCode string) {
	t.Helper()
	resp := a.do(t, http.DefaultClient, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":       email,
		"password":    "s3cure-password",
		"displayName": "Someone",
		"role":        role,
		"orgCode":     orgCode,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
}

// login returns the session without touching the shared cookie jar.
func (a *TestApp) login(t *testing.T, email string) session {
	t.Helper()
	resp := a.do(t, http.DefaultClient, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    email,
		"password": "s3cure-password",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return decode[session](t, resp)
}
