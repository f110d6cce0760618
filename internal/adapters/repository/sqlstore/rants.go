package sqlstore

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/wellnest/api/internal/core/domain"
)

const rantColumns = `id, content, sentiment, support_count, created_at`

type rantRepository struct{ s *Store }

func (r *rantRepository) Create(ctx context.Context, rant *domain.Rant) error {
	return r.s.insert(ctx, "rant", `
		INSERT INTO rants (`+rantColumns+`)
		VALUES (:id, :content, :sentiment, :support_count, :created_at)
	`, rant)
}

func (r *rantRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Rant, error) {
	var rant domain.Rant
	if err := r.s.get(ctx, &rant, `SELECT `+rantColumns+` FROM rants WHERE id = ?`, id); err != nil {
		return nil, notFound(err, "rant")
	}
	return &rant, nil
}

func (r *rantRepository) List(ctx context.Context, limit, offset int) ([]*domain.Rant, error) {
	rants := []*domain.Rant{}
	err := r.s.selectAll(ctx, &rants, `
		SELECT `+rantColumns+`
		FROM rants
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list rants: %w", err)
	}
	return rants, nil
}

func (r *rantRepository) IncrementSupport(ctx context.Context, id uuid.UUID) (*domain.Rant, error) {
	var rant domain.Rant
	err := r.s.get(ctx, &rant, `
		UPDATE rants SET support_count = support_count + 1
		WHERE id = ?
		RETURNING `+rantColumns, id)
	if err != nil {
		return nil, notFound(err, "rant")
	}
	return &rant, nil
}
