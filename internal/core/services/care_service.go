package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wellnest/api/internal/core/domain"
	"github.com/wellnest/api/internal/core/ports"
)

const (
	maxNameLength     = 100
	maxBioLength      = 2000
	maxNotesLength    = 1000
	maxCategoryLength = 50
	maxCourseMinutes  = 24 * 60
)

type therapistService struct {
	repo ports.TherapistRepository
	now  func() time.Time
}

func NewTherapistService(repo ports.TherapistRepository, now func() time.Time) ports.TherapistService {
	return &therapistService{repo: repo, now: clockOrDefault(now)}
}

func (s *therapistService) Create(ctx context.Context, input ports.CreateTherapistInput) (*domain.Therapist, error) {
	name := strings.TrimSpace(input.Name)
	if err := checkLength("name", name, 1, maxNameLength); err != nil {
		return nil, err
	}
	specialty := strings.TrimSpace(input.Specialty)
	if err := checkLength("specialty", specialty, 1, maxNameLength); err != nil {
		return nil, err
	}
	bio := strings.TrimSpace(input.Bio)
	if err := checkLength("bio", bio, 0, maxBioLength); err != nil {
		return nil, err
	}
	email := normalizeEmail(input.Email)
	if email != "" {
		if err := checkEmail(email); err != nil {
			return nil, err
		}
	}

	therapist := &domain.Therapist{
		ID:        uuid.New(),
		Name:      name,
		Specialty: specialty,
		Bio:       bio,
		Email:     email,
		Available: input.Available,
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.Create(ctx, therapist); err != nil {
		return nil, fmt.Errorf("failed to create therapist: %w", err)
	}
	return therapist, nil
}

func (s *therapistService) Get(ctx context.Context, id uuid.UUID) (*domain.Therapist, error) {
	therapist, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("therapist")
		}
		return nil, err
	}
	return therapist, nil
}

func (s *therapistService) List(ctx context.Context, onlyAvailable bool) ([]*domain.Therapist, error) {
	return s.repo.List(ctx, onlyAvailable)
}

type appointmentService struct {
	repo       ports.AppointmentRepository
	therapists ports.TherapistRepository
	now        func() time.Time
	logger     *zap.Logger
}

func NewAppointmentService(repo ports.AppointmentRepository, therapists ports.TherapistRepository, now func() time.Time, logger *zap.Logger) ports.AppointmentService {
	return &appointmentService{
		repo:       repo,
		therapists: therapists,
		now:        clockOrDefault(now),
		logger:     logger.Named("appointments"),
	}
}

func (s *appointmentService) Create(ctx context.Context, input ports.CreateAppointmentInput) (*domain.Appointment, error) {
	now := s.now().UTC()
	if !input.ScheduledAt.After(now) {
		return nil, domain.Validation("scheduledAt must be in the future")
	}
	notes := strings.TrimSpace(input.Notes)
	if err := checkLength("notes", notes, 0, maxNotesLength); err != nil {
		return nil, err
	}

	therapist, err := s.therapists.GetByID(ctx, input.TherapistID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("therapist")
		}
		return nil, err
	}
	if !therapist.Available {
		return nil, domain.Validation("therapist is not accepting appointments")
	}

	appt := &domain.Appointment{
		ID:          uuid.New(),
		UserID:      input.UserID,
		TherapistID: therapist.ID,
		ScheduledAt: input.ScheduledAt.UTC(),
		Status:      domain.AppointmentScheduled,
		Notes:       notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, appt); err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}
	return appt, nil
}

func (s *appointmentService) List(ctx context.Context, userID uuid.UUID) ([]*domain.Appointment, error) {
	return s.repo.ListByUser(ctx, userID)
}

// UpdateStatus lets owners cancel their own appointments. Admins may set any
// status. Appointments of other users look missing to non-admins.
func (s *appointmentService) UpdateStatus(ctx context.Context, actor *domain.User, id uuid.UUID, status domain.AppointmentStatus) (*domain.Appointment, error) {
	if !status.Valid() {
		return nil, domain.Validation("status must be one of scheduled, completed, cancelled")
	}

	appt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("appointment")
		}
		return nil, err
	}

	if actor.Role != domain.RoleAdmin {
		if appt.UserID != actor.ID {
			return nil, domain.NotFound("appointment")
		}
		if status != domain.AppointmentCancelled {
			return nil, domain.Forbidden("only cancellation is allowed")
		}
		if appt.Status == domain.AppointmentCompleted {
			return nil, domain.Validation("completed appointments cannot be cancelled")
		}
	}

	if appt.Status == status {
		return appt, nil
	}

	now := s.now().UTC()
	if err := s.repo.UpdateStatus(ctx, appt.ID, status, now); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("appointment")
		}
		return nil, err
	}

	s.logger.Info("appointment status changed",
		zap.Stringer("appointment_id", appt.ID),
		zap.String("from", string(appt.Status)),
		zap.String("to", string(status)),
	)
	appt.Status = status
	appt.UpdatedAt = now
	return appt, nil
}

type courseService struct {
	repo ports.CourseRepository
	now  func() time.Time
}

func NewCourseService(repo ports.CourseRepository, now func() time.Time) ports.CourseService {
	return &courseService{repo: repo, now: clockOrDefault(now)}
}

func (s *courseService) Create(ctx context.Context, input ports.CreateCourseInput) (*domain.Course, error) {
	title := strings.TrimSpace(input.Title)
	if err := checkLength("title", title, 1, maxTitleLength); err != nil {
		return nil, err
	}
	category := strings.ToLower(strings.TrimSpace(input.Category))
	if err := checkLength("category", category, 0, maxCategoryLength); err != nil {
		return nil, err
	}
	if err := checkRange("durationMinutes", input.DurationMinutes, 0, maxCourseMinutes); err != nil {
		return nil, err
	}
	contentURL := strings.TrimSpace(input.ContentURL)
	if err := checkURL("contentUrl", contentURL); err != nil {
		return nil, err
	}

	course := &domain.Course{
		ID:              uuid.New(),
		Title:           title,
		Description:     strings.TrimSpace(input.Description),
		Category:        category,
		DurationMinutes: input.DurationMinutes,
		ContentURL:      contentURL,
		CreatedAt:       s.now().UTC(),
	}
	if err := s.repo.Create(ctx, course); err != nil {
		return nil, fmt.Errorf("failed to create course: %w", err)
	}
	return course, nil
}

func (s *courseService) Get(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	course, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("course")
		}
		return nil, err
	}
	return course, nil
}

func (s *courseService) List(ctx context.Context, category string) ([]*domain.Course, error) {
	return s.repo.List(ctx, strings.ToLower(strings.TrimSpace(category)))
}
