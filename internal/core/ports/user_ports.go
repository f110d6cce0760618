package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/wellnest/api/internal/core/domain"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]*domain.Employee, error)
}

type OrganizationRepository interface {
	Create(ctx context.Context, org *domain.Organization) error
	GetByCode(ctx context.Context, code string) (*domain.Organization, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Organization, error)
}
