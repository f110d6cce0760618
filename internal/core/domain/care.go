package domain

import (
	"time"

	"github.com/google/uuid"
)

type Therapist struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Specialty string    `json:"specialty" db:"specialty"`
	Bio       string    `json:"bio,omitempty" db:"bio"`
	Email     string    `json:"email,omitempty" db:"email"`
	Available bool      `json:"available" db:"available"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "scheduled"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentScheduled, AppointmentCompleted, AppointmentCancelled:
		return true
	}
	return false
}

type Appointment struct {
	ID          uuid.UUID         `json:"id" db:"id"`
	UserID      uuid.UUID         `json:"userId" db:"user_id"`
	TherapistID uuid.UUID         `json:"therapistId" db:"therapist_id"`
	ScheduledAt time.Time         `json:"scheduledAt" db:"scheduled_at"`
	Status      AppointmentStatus `json:"status" db:"status"`
	Notes       string            `json:"notes,omitempty" db:"notes"`
	CreatedAt   time.Time         `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time         `json:"updatedAt" db:"updated_at"`
}

type Course struct {
	ID              uuid.UUID `json:"id" db:"id"`
	Title           string    `json:"title" db:"title"`
	Description     string    `json:"description" db:"description"`
	Category        string    `json:"category" db:"category"`
	DurationMinutes int       `json:"durationMinutes" db:"duration_minutes"`
	ContentURL      string    `json:"contentUrl,omitempty" db:"content_url"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
}
