package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/wellnest/api/internal/core/domain"
)

type UserService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type CreateOrganizationInput struct {
	Name string
	Code string
}

type OrganizationService interface {
	Create(ctx context.Context, input CreateOrganizationInput) (*domain.Organization, error)
}
