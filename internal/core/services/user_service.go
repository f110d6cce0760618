package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/wellnest/api/internal/core/domain"
	"github.com/wellnest/api/internal/core/ports"
)

type userService struct {
	repo ports.UserRepository
}

func NewUserService(repo ports.UserRepository) ports.UserService {
	return &userService{
		repo: repo,
	}
}

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("user")
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *userService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("user")
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

const (
	minOrgCodeLength = 4
	maxOrgCodeLength = 64
)

type organizationService struct {
	repo ports.OrganizationRepository
	now  func() time.Time
}

func NewOrganizationService(repo ports.OrganizationRepository, now func() time.Time) ports.OrganizationService {
	return &organizationService{repo: repo, now: clockOrDefault(now)}
}

func (s *organizationService) Create(ctx context.Context, input ports.CreateOrganizationInput) (*domain.Organization, error) {
	name := strings.TrimSpace(input.Name)
	if err := checkLength("name", name, 1, 100); err != nil {
		return nil, err
	}
	code := strings.TrimSpace(input.Code)
	if err := checkLength("code", code, minOrgCodeLength, maxOrgCodeLength); err != nil {
		return nil, err
	}
	if err := validate.Var(code, "printascii"); err != nil || strings.ContainsAny(code, " \t") {
		return nil, domain.Validation("code must be printable ASCII without spaces")
	}

	org := &domain.Organization{
		ID:        uuid.New(),
		Name:      name,
		Code:      code,
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.Create(ctx, org); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, &domain.Error{Kind: domain.KindConflict, Message: "organization code already in use", Err: err}
		}
		return nil, fmt.Errorf("failed to create organization: %w", err)
	}
	return org, nil
}
