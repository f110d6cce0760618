package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/wellnest/api/internal/core/domain"
)

type AssessmentRepository interface {
	Create(ctx context.Context, a *domain.Assessment) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Assessment, error)
	// ListVisible returns global assessments plus those of orgID, if set.
	ListVisible(ctx context.Context, orgID *uuid.UUID) ([]*domain.Assessment, error)
	CreateResponse(ctx context.Context, r *domain.AssessmentResponse) error
	ListResponsesByUser(ctx context.Context, assessmentID, userID uuid.UUID) ([]*domain.AssessmentResponse, error)
	ListResponsesByOrganization(ctx context.Context, assessmentID, orgID uuid.UUID) ([]*domain.AssessmentResponse, error)
}

type SurveyRepository interface {
	Create(ctx context.Context, s *domain.Survey) error
	ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]*domain.Survey, error)
}

type MetricsRepository interface {
	OrgActivity(ctx context.Context, orgID uuid.UUID, since time.Time) (*domain.OrgActivity, error)
}

type CreateAssessmentInput struct {
	Title       string
	Description string
	Questions   []string
}

type AssessmentService interface {
	Create(ctx context.Context, actor *domain.User, input CreateAssessmentInput) (*domain.Assessment, error)
	List(ctx context.Context, actor *domain.User) ([]*domain.Assessment, error)
	Respond(ctx context.Context, actor *domain.User, assessmentID uuid.UUID, answers []int) (*domain.AssessmentResponse, error)
	Responses(ctx context.Context, actor *domain.User, assessmentID uuid.UUID) ([]*domain.AssessmentResponse, error)
}

type CreateSurveyInput struct {
	Title     string
	Questions []string
}

type ManagerService interface {
	Metrics(ctx context.Context, manager *domain.User, days int) (*domain.OrgMetrics, error)
	Employees(ctx context.Context, manager *domain.User) ([]*domain.Employee, error)
	Surveys(ctx context.Context, manager *domain.User) ([]*domain.Survey, error)
	CreateSurvey(ctx context.Context, manager *domain.User, input CreateSurveyInput) (*domain.Survey, error)
}
