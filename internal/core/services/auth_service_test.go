package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/wellnest/api/internal/core/domain"
	"github.com/wellnest/api/internal/core/ports"
	"github.com/wellnest/api/internal/core/services"
)

func TestRegister(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	auth := newAuthService(store, newFakeClock())
	createOrganization(t, store, "ACME-2026")

	t.Run("defaults to individual and hides the hash", func(t *testing.T) {
		user := registerUser(t, auth, "  Alice@Example.com ", "", "")
		assert.Equal(t, "alice@example.com", user.Email)
		assert.Equal(t, domain.RoleIndividual, user.Role)
		assert.Nil(t, user.OrganizationID)
		assert.NotEqual(t, "correct-horse", user.PasswordHash)
	})

	t.Run("duplicate email is a conflict", func(t *testing.T) {
		_, err := auth.Register(ctx, ports.RegisterInput{
			Email: "ALICE@example.com", Password: "another-pass", DisplayName: "Alice 2",
		})
		require.Error(t, err)
		assert.Equal(t, domain.KindConflict, domain.KindOf(err))
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("manager joins organization by code", func(t *testing.T) {
		user := registerUser(t, auth, "manager@example.com", domain.RoleManager, "ACME-2026")
		require.NotNil(t, user.OrganizationID)
	})

	cases := []struct {
		name  string
		input ports.RegisterInput
	}{
		{"malformed email", ports.RegisterInput{Email: "not-an-email", Password: "long-enough", DisplayName: "x"}},
		{"short password", ports.RegisterInput{Email: "short@example.com", Password: "short", DisplayName: "x"}},
		{"missing display name", ports.RegisterInput{Email: "noname@example.com", Password: "long-enough"}},
		{"unknown role", ports.RegisterInput{Email: "role@example.com", Password: "long-enough", DisplayName: "x", Role: "root"}},
		{"manager without code", ports.RegisterInput{Email: "m2@example.com", Password: "long-enough", DisplayName: "x", Role: domain.RoleManager}},
		{"unknown code", ports.RegisterInput{Email: "m3@example.com", Password: "long-enough", DisplayName: "x", OrgCode: "NOPE-NOPE"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := auth.Register(ctx, tc.input)
			require.Error(t, err)
			assert.Equal(t, domain.KindValidation, domain.KindOf(err))
		})
	}
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	auth := newAuthService(store, newFakeClock())
	registered := registerUser(t, auth, "bob@example.com", "", "")

	user, pair, err := auth.Login(ctx, "BOB@example.com", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.True(t, pair.RefreshTokenExpiresAt.After(pair.AccessTokenExpiresAt))

	_, _, errWrongPassword := auth.Login(ctx, "bob@example.com", "wrong-password")
	_, _, errUnknownEmail := auth.Login(ctx, "nobody@example.com", "correct-horse")
	for _, err := range []error{errWrongPassword, errUnknownEmail} {
		require.Error(t, err)
		assert.Equal(t, domain.KindUnauthorized, domain.KindOf(err))
	}
	assert.Equal(t, domain.PublicMessage(errWrongPassword), domain.PublicMessage(errUnknownEmail))
}

func TestRefreshRotatesAndIsSingleUse(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	auth := newAuthService(store, newFakeClock())
	registerUser(t, auth, "carol@example.com", "", "")

	_, pair, err := auth.Login(ctx, "carol@example.com", "correct-horse")
	require.NoError(t, err)

	rotated, err := auth.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, pair.RefreshToken, rotated.RefreshToken)

	_, err = auth.Refresh(ctx, pair.RefreshToken)
	assert.Equal(t, domain.KindUnauthorized, domain.KindOf(err))

	_, err = auth.Refresh(ctx, "garbage")
	assert.Equal(t, domain.KindUnauthorized, domain.KindOf(err))
}

func TestConcurrentRefreshHasOneWinner(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	auth := newAuthService(store, newFakeClock())
	registerUser(t, auth, "dave@example.com", "", "")

	_, pair, err := auth.Login(ctx, "dave@example.com", "correct-horse")
	require.NoError(t, err)

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := auth.Refresh(ctx, pair.RefreshToken); err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, wins)
}

func TestRefreshTokenExpires(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	clock := newFakeClock()
	auth := newAuthService(store, clock)
	registerUser(t, auth, "erin@example.com", "", "")

	_, pair, err := auth.Login(ctx, "erin@example.com", "correct-horse")
	require.NoError(t, err)

	clock.Advance(7*24*time.Hour + time.Second)
	_, err = auth.Refresh(ctx, pair.RefreshToken)
	assert.Equal(t, domain.KindUnauthorized, domain.KindOf(err))
}

func TestAuthenticateHonoursAccessTokenExpiry(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	clock := newFakeClock()
	auth := newAuthService(store, clock)
	registered := registerUser(t, auth, "frank@example.com", "", "")

	_, pair, err := auth.Login(ctx, "frank@example.com", "correct-horse")
	require.NoError(t, err)

	user, err := auth.Authenticate(ctx, pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	clock.Advance(14 * time.Minute)
	_, err = auth.Authenticate(ctx, pair.AccessToken)
	require.NoError(t, err)

	clock.Advance(2 * time.Minute)
	_, err = auth.Authenticate(ctx, pair.AccessToken)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	_, err = auth.Authenticate(ctx, "not.a.jwt")
	assert.Equal(t, domain.KindUnauthorized, domain.KindOf(err))
}

func TestAuthenticateRejectsForeignSignature(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	clock := newFakeClock()
	auth := newAuthService(store, clock)
	registerUser(t, auth, "gina@example.com", "", "")

	other := services.NewAuthService(store.Users(), store.Organizations(), store.Auth(), services.AuthConfig{
		JWTSecret:       []byte("another-secret-that-is-32-characters-long"),
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: time.Hour,
		Now:             clock.Now,
		BcryptCost:      bcrypt.MinCost,
	}, zap.NewNop())

	_, pair, err := other.Login(ctx, "gina@example.com", "correct-horse")
	require.NoError(t, err)

	_, err = auth.Authenticate(ctx, pair.AccessToken)
	assert.Equal(t, domain.KindUnauthorized, domain.KindOf(err))
}

func TestLogoutIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	auth := newAuthService(store, newFakeClock())
	registerUser(t, auth, "hank@example.com", "", "")

	_, pair, err := auth.Login(ctx, "hank@example.com", "correct-horse")
	require.NoError(t, err)

	require.NoError(t, auth.Logout(ctx, pair.RefreshToken))
	require.NoError(t, auth.Logout(ctx, pair.RefreshToken))
	require.NoError(t, auth.Logout(ctx, ""))

	_, err = auth.Refresh(ctx, pair.RefreshToken)
	assert.Equal(t, domain.KindUnauthorized, domain.KindOf(err))
}
