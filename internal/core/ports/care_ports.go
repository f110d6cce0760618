package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/wellnest/api/internal/core/domain"
)

type TherapistRepository interface {
	Create(ctx context.Context, t *domain.Therapist) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Therapist, error)
	List(ctx context.Context, onlyAvailable bool) ([]*domain.Therapist, error)
}

type AppointmentRepository interface {
	Create(ctx context.Context, a *domain.Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.AppointmentStatus, updatedAt time.Time) error
}

type CourseRepository interface {
	Create(ctx context.Context, c *domain.Course) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Course, error)
	List(ctx context.Context, category string) ([]*domain.Course, error)
}

type CreateTherapistInput struct {
	Name      string
	Specialty string
	Bio       string
	Email     string
	Available bool
}

type TherapistService interface {
	Create(ctx context.Context, input CreateTherapistInput) (*domain.Therapist, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Therapist, error)
	List(ctx context.Context, onlyAvailable bool) ([]*domain.Therapist, error)
}

type CreateAppointmentInput struct {
	UserID      uuid.UUID
	TherapistID uuid.UUID
	ScheduledAt time.Time
	Notes       string
}

type AppointmentService interface {
	Create(ctx context.Context, input CreateAppointmentInput) (*domain.Appointment, error)
	List(ctx context.Context, userID uuid.UUID) ([]*domain.Appointment, error)
	UpdateStatus(ctx context.Context, actor *domain.User, id uuid.UUID, status domain.AppointmentStatus) (*domain.Appointment, error)
}

type CreateCourseInput struct {
	Title           string
	Description     string
	Category        string
	DurationMinutes int
	ContentURL      string
}

type CourseService interface {
	Create(ctx context.Context, input CreateCourseInput) (*domain.Course, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Course, error)
	List(ctx context.Context, category string) ([]*domain.Course, error)
}
