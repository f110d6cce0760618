package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/wellnest/api/internal/core/domain"
)

type RantRepository interface {
	Create(ctx context.Context, r *domain.Rant) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Rant, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Rant, error)
	// IncrementSupport atomically adds one to the support count.
	IncrementSupport(ctx context.Context, id uuid.UUID) (*domain.Rant, error)
}

type ContentScorer interface {
	Score(text string) float64
}

type RantService interface {
	Create(ctx context.Context, content string) (*domain.Rant, error)
	List(ctx context.Context, page Page) ([]*domain.Rant, error)
	Support(ctx context.Context, id uuid.UUID) (*domain.Rant, error)
}
