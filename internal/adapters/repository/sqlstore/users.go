package sqlstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/wellnest/api/internal/core/domain"
)

const userColumns = `id, email, password_hash, display_name, role, organization_id, disabled, created_at, updated_at`

type userRepository struct{ s *Store }

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := r.s.get(ctx, &u, `SELECT `+userColumns+` FROM users WHERE email = ?`, strings.ToLower(email))
	if err != nil {
		return nil, notFound(err, "user")
	}
	return &u, nil
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var u domain.User
	if err := r.s.get(ctx, &u, `SELECT `+userColumns+` FROM users WHERE id = ?`, id); err != nil {
		return nil, notFound(err, "user")
	}
	return &u, nil
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	user.Email = strings.ToLower(user.Email)
	return r.s.insert(ctx, "user", `
		INSERT INTO users (`+userColumns+`)
		VALUES (:id, :email, :password_hash, :display_name, :role, :organization_id, :disabled, :created_at, :updated_at)
	`, user)
}

func (r *userRepository) ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]*domain.Employee, error) {
	employees := []*domain.Employee{}
	err := r.s.selectAll(ctx, &employees, `
		SELECT id, email, display_name, role, created_at
		FROM users
		WHERE organization_id = ? AND disabled = ?
		ORDER BY display_name ASC
	`, orgID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return employees, nil
}

type organizationRepository struct{ s *Store }

func (r *organizationRepository) Create(ctx context.Context, org *domain.Organization) error {
	return r.s.insert(ctx, "organization", `
		INSERT INTO organizations (id, name, code, created_at)
		VALUES (:id, :name, :code, :created_at)
	`, org)
}

func (r *organizationRepository) GetByCode(ctx context.Context, code string) (*domain.Organization, error) {
	var org domain.Organization
	if err := r.s.get(ctx, &org, `SELECT id, name, code, created_at FROM organizations WHERE code = ?`, code); err != nil {
		return nil, notFound(err, "organization")
	}
	return &org, nil
}

func (r *organizationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Organization, error) {
	var org domain.Organization
	if err := r.s.get(ctx, &org, `SELECT id, name, code, created_at FROM organizations WHERE id = ?`, id); err != nil {
		return nil, notFound(err, "organization")
	}
	return &org, nil
}
