package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/wellnest/api/internal/core/domain"
	"github.com/wellnest/api/internal/core/ports"
)

type managerService struct {
	users   ports.UserRepository
	surveys ports.SurveyRepository
	metrics ports.MetricsRepository
	now     func() time.Time
}

func NewManagerService(users ports.UserRepository, surveys ports.SurveyRepository, metrics ports.MetricsRepository, now func() time.Time) ports.ManagerService {
	return &managerService{
		users:   users,
		surveys: surveys,
		metrics: metrics,
		now:     clockOrDefault(now),
	}
}

// Metrics reports aggregates only; no per-employee rows leave this method.
func (s *managerService) Metrics(ctx context.Context, manager *domain.User, days int) (*domain.OrgMetrics, error) {
	orgID, err := organizationOf(manager)
	if err != nil {
		return nil, err
	}
	if days == 0 {
		days = DefaultStatsDays
	}
	if err := checkRange("days", days, 1, MaxStatsDays); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	since := now.Truncate(24*time.Hour).AddDate(0, 0, -(days - 1))

	employees, err := s.users.ListByOrganization(ctx, orgID)
	if err != nil {
		return nil, err
	}
	activity, err := s.metrics.OrgActivity(ctx, orgID, since)
	if err != nil {
		return nil, err
	}

	return &domain.OrgMetrics{
		OrganizationID:     orgID,
		Days:               days,
		Employees:          len(employees),
		ActiveEmployees:    activity.ActiveUsers,
		MoodEntries:        activity.MoodEntries,
		AverageMood:        round2(activity.AverageMood),
		JournalEntries:     activity.JournalEntries,
		AppointmentsBooked: activity.AppointmentsBooked,
		AssessmentAnswers:  activity.AssessmentAnswers,
		GeneratedAt:        now,
	}, nil
}

func (s *managerService) Employees(ctx context.Context, manager *domain.User) ([]*domain.Employee, error) {
	orgID, err := organizationOf(manager)
	if err != nil {
		return nil, err
	}
	return s.users.ListByOrganization(ctx, orgID)
}

func (s *managerService) Surveys(ctx context.Context, manager *domain.User) ([]*domain.Survey, error) {
	orgID, err := organizationOf(manager)
	if err != nil {
		return nil, err
	}
	return s.surveys.ListByOrganization(ctx, orgID)
}

func (s *managerService) CreateSurvey(ctx context.Context, manager *domain.User, input ports.CreateSurveyInput) (*domain.Survey, error) {
	orgID, err := organizationOf(manager)
	if err != nil {
		return nil, err
	}
	title := strings.TrimSpace(input.Title)
	if err := checkLength("title", title, 1, maxTitleLength); err != nil {
		return nil, err
	}
	questions, err := checkQuestions(input.Questions, maxQuestions)
	if err != nil {
		return nil, err
	}

	survey := &domain.Survey{
		ID:             uuid.New(),
		OrganizationID: orgID,
		Title:          title,
		Questions:      questions,
		CreatedBy:      manager.ID,
		CreatedAt:      s.now().UTC(),
	}
	if err := s.surveys.Create(ctx, survey); err != nil {
		return nil, fmt.Errorf("failed to create survey: %w", err)
	}
	return survey, nil
}

func organizationOf(u *domain.User) (uuid.UUID, error) {
	if u.OrganizationID == nil {
		return uuid.Nil, domain.ErrNoOrganization
	}
	return *u.OrganizationID, nil
}
