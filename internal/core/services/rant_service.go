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
	"github.com/wellnest/api/internal/core/sentiment"
)

type rantService struct {
	repo   ports.RantRepository
	scorer ports.ContentScorer
	now    func() time.Time
}

func NewRantService(repo ports.RantRepository, scorer ports.ContentScorer, now func() time.Time) ports.RantService {
	return &rantService{repo: repo, scorer: scorer, now: clockOrDefault(now)}
}

// Create stores an anonymous rant. The caller's identity never reaches this
// layer.
func (s *rantService) Create(ctx context.Context, content string) (*domain.Rant, error) {
	content = strings.TrimSpace(content)
	if err := checkLength("content", content, 1, domain.MaxRantLength); err != nil {
		return nil, err
	}

	rant := &domain.Rant{
		ID:        uuid.New(),
		Content:   content,
		Sentiment: s.scorer.Score(content),
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.Create(ctx, rant); err != nil {
		return nil, fmt.Errorf("failed to create rant: %w", err)
	}
	return withMood(rant), nil
}

func (s *rantService) List(ctx context.Context, page ports.Page) ([]*domain.Rant, error) {
	page = page.Normalize()
	rants, err := s.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	for _, r := range rants {
		withMood(r)
	}
	return rants, nil
}

func (s *rantService) Support(ctx context.Context, id uuid.UUID) (*domain.Rant, error) {
	rant, err := s.repo.IncrementSupport(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("rant")
		}
		return nil, err
	}
	return withMood(rant), nil
}

func withMood(r *domain.Rant) *domain.Rant {
	r.Mood = sentiment.Label(r.Sentiment)
	return r
}
