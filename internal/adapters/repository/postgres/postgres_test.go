package postgres_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/wellnest/api/internal/adapters/repository/postgres"
	"github.com/wellnest/api/internal/core/domain"
)

func setupPostgresContainer(ctx context.Context) (testcontainers.Container, string, error) {
	pgContainer, err := tcpostgres.Run(ctx, "postgres:15-alpine",
		tcpostgres.WithDatabase("wellnest"),
		tcpostgres.WithUsername("user"),
		tcpostgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, "", fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", err
	}

	return pgContainer, connStr, nil
}

func TestPostgresStore(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	container, connStr, err := setupPostgresContainer(ctx)
	require.NoError(t, err)
	defer func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}()

	store, err := postgres.Open(ctx, connStr)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, "postgres", store.Kind())
	require.NoError(t, store.Ping(ctx))

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.New(),
		Email:        "pg@example.com",
		PasswordHash: "hash",
		DisplayName:  "Pg",
		Role:         domain.RoleIndividual,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	t.Run("duplicate email is a conflict", func(t *testing.T) {
		require.NoError(t, store.Users().Create(ctx, user))
		dup := *user
		dup.ID = uuid.New()
		assert.ErrorIs(t, store.Users().Create(ctx, &dup), domain.ErrConflict)
	})

	t.Run("refresh token is consumed once", func(t *testing.T) {
		require.NoError(t, store.Auth().StoreRefreshToken(ctx, &domain.RefreshToken{
			TokenHash: "hash-1", UserID: user.ID, ExpiresAt: now.Add(time.Hour), CreatedAt: now,
		}))

		_, err := store.Auth().ConsumeRefreshToken(ctx, "hash-1", now)
		require.NoError(t, err)
		_, err = store.Auth().ConsumeRefreshToken(ctx, "hash-1", now)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("journal tags round trip through jsonb", func(t *testing.T) {
		j := &domain.Journal{
			ID: uuid.New(), UserID: user.ID, Content: "hello",
			Tags: domain.NormalizeTags([]string{"b", "A"}), CreatedAt: now,
		}
		require.NoError(t, store.Journals().Create(ctx, j))

		journals, err := store.Journals().ListByUser(ctx, user.ID, 10, 0)
		require.NoError(t, err)
		require.Len(t, journals, 1)
		assert.Equal(t, domain.Tags{"a", "b"}, journals[0].Tags)
		assert.Nil(t, journals[0].MoodScore)
	})

	t.Run("org activity averages mood", func(t *testing.T) {
		org := &domain.Organization{ID: uuid.New(), Name: "Acme", Code: "ACME", CreatedAt: now}
		require.NoError(t, store.Organizations().Create(ctx, org))

		member := *user
		member.ID = uuid.New()
		member.Email = "member@example.com"
		member.OrganizationID = &org.ID
		require.NoError(t, store.Users().Create(ctx, &member))

		for _, score := range []int{3, 6} {
			require.NoError(t, store.Moods().Create(ctx, &domain.MoodEntry{
				ID: uuid.New(), UserID: member.ID, Score: score, CreatedAt: now,
			}))
		}

		activity, err := store.Metrics().OrgActivity(ctx, org.ID, now.Add(-time.Hour))
		require.NoError(t, err)
		assert.Equal(t, 2, activity.MoodEntries)
		assert.InDelta(t, 4.5, activity.AverageMood, 1e-9)
	})

	require.NoError(t, postgres.Down(connStr))
}
