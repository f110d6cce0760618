package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/wellnest/api/internal/core/domain"
)

type JournalRepository interface {
	Create(ctx context.Context, j *domain.Journal) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Journal, error)
	// Delete removes the entry only when it belongs to userID.
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

type MoodRepository interface {
	Create(ctx context.Context, m *domain.MoodEntry) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.MoodEntry, error)
	ListSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]*domain.MoodEntry, error)
}

type CreateJournalInput struct {
	UserID    uuid.UUID
	Content   string
	MoodScore *int
	Tags      []string
}

type JournalService interface {
	Create(ctx context.Context, input CreateJournalInput) (*domain.Journal, error)
	List(ctx context.Context, userID uuid.UUID, page Page) ([]*domain.Journal, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

type CreateMoodInput struct {
	UserID uuid.UUID
	Score  int
	Note   string
}

type MoodService interface {
	Create(ctx context.Context, input CreateMoodInput) (*domain.MoodEntry, error)
	List(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.MoodEntry, error)
	Stats(ctx context.Context, userID uuid.UUID, days int) (*domain.MoodStats, error)
}

type Page struct {
	Limit  int
	Offset int
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Normalize clamps the page to sane bounds.
func (p Page) Normalize() Page {
	if p.Limit <= 0 {
		p.Limit = DefaultPageSize
	}
	if p.Limit > MaxPageSize {
		p.Limit = MaxPageSize
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}
