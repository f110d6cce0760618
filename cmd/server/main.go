package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/wellnest/api/internal/adapters/handler/http"
	"github.com/wellnest/api/internal/adapters/repository/postgres"
	"github.com/wellnest/api/internal/adapters/repository/sqlite"
	"github.com/wellnest/api/internal/adapters/repository/sqlstore"
	"github.com/wellnest/api/internal/config"
	"github.com/wellnest/api/internal/core/sentiment"
	"github.com/wellnest/api/internal/core/services"
	"github.com/wellnest/api/internal/logger"
	"github.com/wellnest/api/internal/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	zlog, err := logger.New(cfg.LogLevel, cfg.Environment)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := serve(ctx, cfg, zlog)
	stop()
	_ = zlog.Sync()
	os.Exit(code)
}

// serve runs the server and returns the process exit code. Exiting is left
// to main so buffered log entries are flushed first.
func serve(ctx context.Context, cfg *config.Config, zlog *zap.Logger) int {
	if err := run(ctx, cfg, zlog); err != nil {
		zlog.Error("server stopped", zap.Error(err))
		return 1
	}
	return 0
}

func run(ctx context.Context, cfg *config.Config, zlog *zap.Logger) error {
	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	zlog.Info("store ready", zap.String("kind", store.Kind()))

	var m *metrics.Metrics
	if cfg.PerformanceMonitoring {
		m = metrics.New()
	}

	authService := services.NewAuthService(store.Users(), store.Organizations(), store.Auth(), services.AuthConfig{
		JWTSecret:       []byte(cfg.JWTSecret),
		AccessTokenTTL:  cfg.AccessTokenTTL,
		RefreshTokenTTL: cfg.RefreshTokenTTL,
	}, zlog)
	userService := services.NewUserService(store.Users())
	orgService := services.NewOrganizationService(store.Organizations(), nil)
	journalService := services.NewJournalService(store.Journals(), nil)
	moodService := services.NewMoodService(store.Moods(), nil)
	rantService := services.NewRantService(store.Rants(), sentiment.Scorer{}, nil)
	therapistService := services.NewTherapistService(store.Therapists(), nil)
	appointmentService := services.NewAppointmentService(store.Appointments(), store.Therapists(), nil, zlog)
	courseService := services.NewCourseService(store.Courses(), nil)
	assessmentService := services.NewAssessmentService(store.Assessments(), nil)
	managerService := services.NewManagerService(store.Users(), store.Surveys(), store.Metrics(), nil)

	httpLog := logger.WithComponent(zlog, "http")
	cookies := http.NewCookies(http.CookieConfig{
		Secret:     []byte(cfg.CookieSecret),
		Secure:     cfg.CookieSecure,
		Domain:     cfg.CookieDomain,
		AccessTTL:  cfg.AccessTokenTTL,
		RefreshTTL: cfg.RefreshTokenTTL,
	})
	authMiddleware := http.NewAuthMiddleware(authService, userService, cookies, http.BypassConfig{
		Enabled: cfg.AuthBypass,
		Email:   cfg.DevUserEmail,
	}, httpLog)

	limiter := http.NewRateLimiter(cfg.LoginRatePerMinute, httpLog)
	limiter.StartCleanup(ctx, 5*time.Minute)

	go purgeExpiredTokens(ctx, store, zlog)

	handler := http.NewHandler(http.Handlers{
		Auth:        http.NewAuthHandler(authService, cookies, m, httpLog),
		Users:       http.NewUserHandler(userService, orgService, httpLog),
		Journals:    http.NewJournalHandler(journalService, moodService, httpLog),
		Rants:       http.NewRantHandler(rantService, httpLog),
		Care:        http.NewCareHandler(therapistService, appointmentService, courseService, httpLog),
		Assessments: http.NewAssessmentHandler(assessmentService, httpLog),
		Manager:     http.NewManagerHandler(managerService, httpLog),
		Health:      http.NewHealthHandler(store, cfg.Environment, cfg.Version, httpLog),
	}, authMiddleware, http.RouterConfig{
		CORSOrigin:  cfg.CORSOrigin,
		TrustProxy:  cfg.TrustProxy,
		Metrics:     m,
		AuthLimiter: limiter,
		Logger:      httpLog,
	})

	server := &stdhttp.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zlog.Info("listening", zap.String("addr", server.Addr), zap.String("environment", cfg.Environment))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	zlog.Info("gracefully shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}

func openStore(ctx context.Context, cfg *config.Config) (*sqlstore.Store, error) {
	switch cfg.DatabaseKind() {
	case config.DatabasePostgres:
		return postgres.Open(ctx, cfg.DatabaseURL)
	case config.DatabaseSQLite:
		return sqlite.Open(ctx, cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unsupported database kind %q", cfg.DatabaseKind())
	}
}

// purgeExpiredTokens keeps the refresh token table from growing without bound.
func purgeExpiredTokens(ctx context.Context, store *sqlstore.Store, zlog *zap.Logger) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := store.Auth().DeleteExpiredRefreshTokens(ctx, time.Now())
			if err != nil {
				zlog.Warn("failed to purge expired refresh tokens", zap.Error(err))
				continue
			}
			if n > 0 {
				zlog.Info("purged expired refresh tokens", zap.Int64("count", n))
			}
		}
	}
}
