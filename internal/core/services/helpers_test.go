package services_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/wellnest/api/internal/adapters/repository/sqlite"
	"github.com/wellnest/api/internal/adapters/repository/sqlstore"
	"github.com/wellnest/api/internal/core/domain"
	"github.com/wellnest/api/internal/core/ports"
	"github.com/wellnest/api/internal/core/services"
)

const testSecret = "test-secret-that-is-at-least-32-characters"

func newTestStore(t *testing.T) *sqlstore.Store {
	t.Helper()
	store, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

// fakeClock is a settable time source.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newAuthService(store *sqlstore.Store, clock *fakeClock) ports.AuthService {
	return services.NewAuthService(store.Users(), store.Organizations(), store.Auth(), services.AuthConfig{
		JWTSecret:       []byte(testSecret),
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
		Now:             clock.Now,
		BcryptCost:      bcrypt.MinCost,
	}, zap.NewNop())
}

func createOrganization(t *testing.T, store *sqlstore.Store, code string) *domain.Organization {
	t.Helper()
	org, err := services.NewOrganizationService(store.Organizations(), nil).Create(context.Background(), ports.CreateOrganizationInput{
		Name: "Org " + code,
		Code: code,
	})
	require.NoError(t, err)
	return org
}

func registerUser(t *testing.T, auth ports.AuthService, email string, role domain.Role, orgCode string) *domain.User {
	t.Helper()
	user, err := auth.Register(context.Background(), ports.RegisterInput{
		Email:       email,
		Password:    "correct-horse",
		DisplayName: "Test User",
		Role:        role,
		OrgCode:     orgCode,
	})
	require.NoError(t, err)
	return user
}
