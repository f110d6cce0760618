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

type assessmentService struct {
	repo ports.AssessmentRepository
	now  func() time.Time
}

func NewAssessmentService(repo ports.AssessmentRepository, now func() time.Time) ports.AssessmentService {
	return &assessmentService{repo: repo, now: clockOrDefault(now)}
}

// Create scopes a manager's assessment to their organization. Admins author
// global assessments.
func (s *assessmentService) Create(ctx context.Context, actor *domain.User, input ports.CreateAssessmentInput) (*domain.Assessment, error) {
	title := strings.TrimSpace(input.Title)
	if err := checkLength("title", title, 1, maxTitleLength); err != nil {
		return nil, err
	}
	questions, err := checkQuestions(input.Questions, maxQuestions)
	if err != nil {
		return nil, err
	}

	var orgID *uuid.UUID
	if actor.Role != domain.RoleAdmin {
		if actor.OrganizationID == nil {
			return nil, domain.ErrNoOrganization
		}
		orgID = actor.OrganizationID
	}

	assessment := &domain.Assessment{
		ID:             uuid.New(),
		Title:          title,
		Description:    strings.TrimSpace(input.Description),
		Questions:      questions,
		OrganizationID: orgID,
		CreatedBy:      actor.ID,
		CreatedAt:      s.now().UTC(),
	}
	if err := s.repo.Create(ctx, assessment); err != nil {
		return nil, fmt.Errorf("failed to create assessment: %w", err)
	}
	return assessment, nil
}

func (s *assessmentService) List(ctx context.Context, actor *domain.User) ([]*domain.Assessment, error) {
	return s.repo.ListVisible(ctx, actor.OrganizationID)
}

func (s *assessmentService) Respond(ctx context.Context, actor *domain.User, assessmentID uuid.UUID, answers []int) (*domain.AssessmentResponse, error) {
	assessment, err := s.visible(ctx, actor, assessmentID)
	if err != nil {
		return nil, err
	}

	if len(answers) != len(assessment.Questions) {
		return nil, domain.Validation("expected %d answers, got %d", len(assessment.Questions), len(answers))
	}
	score := 0
	for _, a := range answers {
		if err := checkRange("answer", a, domain.MinAnswerValue, domain.MaxAnswerValue); err != nil {
			return nil, err
		}
		score += a
	}

	resp := &domain.AssessmentResponse{
		ID:           uuid.New(),
		AssessmentID: assessment.ID,
		UserID:       actor.ID,
		Answers:      answers,
		Score:        score,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.repo.CreateResponse(ctx, resp); err != nil {
		return nil, fmt.Errorf("failed to store assessment response: %w", err)
	}
	return resp, nil
}

// Responses returns the caller's own responses. Managers and admins that
// belong to an organization see the responses of all its members instead.
func (s *assessmentService) Responses(ctx context.Context, actor *domain.User, assessmentID uuid.UUID) ([]*domain.AssessmentResponse, error) {
	assessment, err := s.visible(ctx, actor, assessmentID)
	if err != nil {
		return nil, err
	}

	if actor.Role != domain.RoleIndividual && actor.OrganizationID != nil {
		return s.repo.ListResponsesByOrganization(ctx, assessment.ID, *actor.OrganizationID)
	}
	return s.repo.ListResponsesByUser(ctx, assessment.ID, actor.ID)
}

func (s *assessmentService) visible(ctx context.Context, actor *domain.User, id uuid.UUID) (*domain.Assessment, error) {
	assessment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("assessment")
		}
		return nil, err
	}
	if !assessment.VisibleTo(actor) {
		return nil, domain.NotFound("assessment")
	}
	return assessment, nil
}
