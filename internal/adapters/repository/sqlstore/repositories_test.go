package sqlstore_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wellnest/api/internal/adapters/repository/sqlite"
	"github.com/wellnest/api/internal/adapters/repository/sqlstore"
	"github.com/wellnest/api/internal/core/domain"
)

func openStore(t *testing.T) *sqlstore.Store {
	t.Helper()
	store, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "wellnest.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func createUser(t *testing.T, store *sqlstore.Store, orgID *uuid.UUID) *domain.User {
	t.Helper()
	now := time.Now().UTC()
	id := uuid.New()
	u := &domain.User{
		ID:             id,
		Email:          id.String() + "@example.com",
		PasswordHash:   "hash",
		DisplayName:    "User " + id.String()[:8],
		Role:           domain.RoleIndividual,
		OrganizationID: orgID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	require.NoError(t, store.Users().Create(context.Background(), u))
	return u
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)

	u := createUser(t, store, nil)

	got, err := store.Users().GetByEmail(ctx, u.Email)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Nil(t, got.OrganizationID)
	assert.False(t, got.Disabled)

	dup := *u
	dup.ID = uuid.New()
	err = store.Users().Create(ctx, &dup)
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = store.Users().GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserEmailIsCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)

	now := time.Now().UTC()
	require.NoError(t, store.Users().Create(ctx, &domain.User{
		ID: uuid.New(), Email: "Mixed@Example.com", PasswordHash: "h",
		DisplayName: "Mixed", Role: domain.RoleIndividual, CreatedAt: now, UpdatedAt: now,
	}))

	got, err := store.Users().GetByEmail(ctx, "MIXED@example.COM")
	require.NoError(t, err)
	assert.Equal(t, "mixed@example.com", got.Email)
}

func TestOrganizationMembers(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)

	org := &domain.Organization{ID: uuid.New(), Name: "Acme", Code: "ACME", CreatedAt: time.Now().UTC()}
	require.NoError(t, store.Organizations().Create(ctx, org))

	dup := *org
	dup.ID = uuid.New()
	assert.ErrorIs(t, store.Organizations().Create(ctx, &dup), domain.ErrConflict)

	byCode, err := store.Organizations().GetByCode(ctx, "ACME")
	require.NoError(t, err)
	assert.Equal(t, org.ID, byCode.ID)

	member := createUser(t, store, &org.ID)
	createUser(t, store, nil)

	employees, err := store.Users().ListByOrganization(ctx, org.ID)
	require.NoError(t, err)
	require.Len(t, employees, 1)
	assert.Equal(t, member.ID, employees[0].ID)
}

func TestRefreshTokenConsumedOnce(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	u := createUser(t, store, nil)
	now := time.Now().UTC()

	token := &domain.RefreshToken{TokenHash: "abc", UserID: u.ID, ExpiresAt: now.Add(time.Hour), CreatedAt: now}
	require.NoError(t, store.Auth().StoreRefreshToken(ctx, token))

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		winner int
	)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := store.Auth().ConsumeRefreshToken(ctx, "abc", now); err == nil {
				mu.Lock()
				winner++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, winner)

	_, err := store.Auth().ConsumeRefreshToken(ctx, "abc", now)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, store.Auth().DeleteRefreshToken(ctx, "abc"))
}

func TestExpiredRefreshTokenCannotBeConsumed(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	u := createUser(t, store, nil)
	now := time.Now().UTC()

	require.NoError(t, store.Auth().StoreRefreshToken(ctx, &domain.RefreshToken{
		TokenHash: "old", UserID: u.ID, ExpiresAt: now.Add(time.Minute), CreatedAt: now,
	}))

	_, err := store.Auth().ConsumeRefreshToken(ctx, "old", now.Add(2*time.Minute))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	n, err := store.Auth().DeleteExpiredRefreshTokens(ctx, now.Add(2*time.Minute))
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestJournalRepository(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	owner := createUser(t, store, nil)
	other := createUser(t, store, nil)

	score := 7
	base := time.Now().UTC()
	for i := 0; i < 3; i++ {
		require.NoError(t, store.Journals().Create(ctx, &domain.Journal{
			ID:        uuid.New(),
			UserID:    owner.ID,
			Content:   "entry",
			MoodScore: &score,
			Tags:      domain.NormalizeTags([]string{"Work", "sleep"}),
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}))
	}

	journals, err := store.Journals().ListByUser(ctx, owner.ID, 2, 0)
	require.NoError(t, err)
	require.Len(t, journals, 2)
	assert.True(t, journals[0].CreatedAt.After(journals[1].CreatedAt))
	assert.Equal(t, domain.Tags{"sleep", "work"}, journals[0].Tags)
	require.NotNil(t, journals[0].MoodScore)
	assert.Equal(t, 7, *journals[0].MoodScore)

	assert.ErrorIs(t, store.Journals().Delete(ctx, journals[0].ID, other.ID), domain.ErrNotFound)
	assert.NoError(t, store.Journals().Delete(ctx, journals[0].ID, owner.ID))

	empty, err := store.Journals().ListByUser(ctx, other.ID, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestMoodListSince(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	u := createUser(t, store, nil)
	now := time.Now().UTC()

	for i, age := range []time.Duration{40 * 24 * time.Hour, 2 * time.Hour, time.Hour} {
		require.NoError(t, store.Moods().Create(ctx, &domain.MoodEntry{
			ID: uuid.New(), UserID: u.ID, Score: i + 3, CreatedAt: now.Add(-age),
		}))
	}

	recent, err := store.Moods().ListSince(ctx, u.ID, now.AddDate(0, 0, -30))
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, 4, recent[0].Score)
	assert.Equal(t, 5, recent[1].Score)

	latest, err := store.Moods().ListByUser(ctx, u.ID, 1)
	require.NoError(t, err)
	require.Len(t, latest, 1)
	assert.Equal(t, 5, latest[0].Score)
}

func TestRantSupport(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)

	rant := &domain.Rant{ID: uuid.New(), Content: "deadline again", Sentiment: -0.4, CreatedAt: time.Now().UTC()}
	require.NoError(t, store.Rants().Create(ctx, rant))
	other := &domain.Rant{ID: uuid.New(), Content: "quiet day", CreatedAt: time.Now().UTC()}
	require.NoError(t, store.Rants().Create(ctx, other))

	for i := 0; i < 2; i++ {
		_, err := store.Rants().IncrementSupport(ctx, rant.ID)
		require.NoError(t, err)
	}

	got, err := store.Rants().GetByID(ctx, rant.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, got.SupportCount)
	assert.InDelta(t, -0.4, got.Sentiment, 1e-9)

	untouched, err := store.Rants().GetByID(ctx, other.ID)
	require.NoError(t, err)
	assert.Zero(t, untouched.SupportCount)

	_, err = store.Rants().IncrementSupport(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAppointmentLifecycle(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	u := createUser(t, store, nil)
	now := time.Now().UTC()

	therapist := &domain.Therapist{ID: uuid.New(), Name: "Dr. Lee", Specialty: "anxiety", Available: true, CreatedAt: now}
	require.NoError(t, store.Therapists().Create(ctx, therapist))

	available, err := store.Therapists().List(ctx, true)
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.True(t, available[0].Available)

	appt := &domain.Appointment{
		ID: uuid.New(), UserID: u.ID, TherapistID: therapist.ID,
		ScheduledAt: now.Add(48 * time.Hour), Status: domain.AppointmentScheduled,
		CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, store.Appointments().Create(ctx, appt))
	require.NoError(t, store.Appointments().UpdateStatus(ctx, appt.ID, domain.AppointmentCancelled, now))

	got, err := store.Appointments().GetByID(ctx, appt.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.AppointmentCancelled, got.Status)

	assert.ErrorIs(t, store.Appointments().UpdateStatus(ctx, uuid.New(), domain.AppointmentCancelled, now), domain.ErrNotFound)
}

func TestAppointmentRequiresExistingTherapist(t *testing.T) {
	store := openStore(t)
	u := createUser(t, store, nil)
	now := time.Now().UTC()

	err := store.Appointments().Create(context.Background(), &domain.Appointment{
		ID: uuid.New(), UserID: u.ID, TherapistID: uuid.New(),
		ScheduledAt: now, Status: domain.AppointmentScheduled, CreatedAt: now, UpdatedAt: now,
	})
	assert.Error(t, err)
}

func TestCourseCategoryFilter(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	now := time.Now().UTC()

	for _, c := range []struct{ title, category string }{{"Breathing", "stress"}, {"Sleep hygiene", "sleep"}} {
		require.NoError(t, store.Courses().Create(ctx, &domain.Course{
			ID: uuid.New(), Title: c.title, Category: c.category, DurationMinutes: 10, CreatedAt: now,
		}))
	}

	all, err := store.Courses().List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	sleep, err := store.Courses().List(ctx, "sleep")
	require.NoError(t, err)
	require.Len(t, sleep, 1)
	assert.Equal(t, "Sleep hygiene", sleep[0].Title)
}

func TestAssessmentsAndOrgActivity(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	now := time.Now().UTC()

	org := &domain.Organization{ID: uuid.New(), Name: "Acme", Code: "ACME", CreatedAt: now}
	require.NoError(t, store.Organizations().Create(ctx, org))
	member := createUser(t, store, &org.ID)
	outsider := createUser(t, store, nil)

	global := &domain.Assessment{ID: uuid.New(), Title: "PHQ", Questions: domain.Questions{"a", "b"}, CreatedBy: member.ID, CreatedAt: now}
	scoped := &domain.Assessment{ID: uuid.New(), Title: "Pulse", Questions: domain.Questions{"c"}, OrganizationID: &org.ID, CreatedBy: member.ID, CreatedAt: now}
	require.NoError(t, store.Assessments().Create(ctx, global))
	require.NoError(t, store.Assessments().Create(ctx, scoped))

	visible, err := store.Assessments().ListVisible(ctx, nil)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, domain.Questions{"a", "b"}, visible[0].Questions)

	visible, err = store.Assessments().ListVisible(ctx, &org.ID)
	require.NoError(t, err)
	assert.Len(t, visible, 2)

	for _, u := range []*domain.User{member, outsider} {
		require.NoError(t, store.Assessments().CreateResponse(ctx, &domain.AssessmentResponse{
			ID: uuid.New(), AssessmentID: global.ID, UserID: u.ID, Answers: domain.Answers{3, 4}, Score: 7, CreatedAt: now,
		}))
	}

	orgResponses, err := store.Assessments().ListResponsesByOrganization(ctx, global.ID, org.ID)
	require.NoError(t, err)
	require.Len(t, orgResponses, 1)
	assert.Equal(t, domain.Answers{3, 4}, orgResponses[0].Answers)

	for _, score := range []int{4, 8} {
		require.NoError(t, store.Moods().Create(ctx, &domain.MoodEntry{ID: uuid.New(), UserID: member.ID, Score: score, CreatedAt: now}))
	}
	require.NoError(t, store.Moods().Create(ctx, &domain.MoodEntry{ID: uuid.New(), UserID: outsider.ID, Score: 1, CreatedAt: now}))

	activity, err := store.Metrics().OrgActivity(ctx, org.ID, now.Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, activity.ActiveUsers)
	assert.Equal(t, 2, activity.MoodEntries)
	assert.InDelta(t, 6.0, activity.AverageMood, 1e-9)
	assert.Equal(t, 1, activity.AssessmentAnswers)

	require.NoError(t, store.Surveys().Create(ctx, &domain.Survey{
		ID: uuid.New(), OrganizationID: org.ID, Title: "Q3", Questions: domain.Questions{"How are you?"}, CreatedBy: member.ID, CreatedAt: now,
	}))
	surveys, err := store.Surveys().ListByOrganization(ctx, org.ID)
	require.NoError(t, err)
	assert.Len(t, surveys, 1)
}
