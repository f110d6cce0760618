package sqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wellnest/api/internal/core/domain"
)

const (
	therapistColumns   = `id, name, specialty, bio, email, available, created_at`
	appointmentColumns = `id, user_id, therapist_id, scheduled_at, status, notes, created_at, updated_at`
	courseColumns      = `id, title, description, category, duration_minutes, content_url, created_at`
)

type therapistRepository struct{ s *Store }

func (r *therapistRepository) Create(ctx context.Context, t *domain.Therapist) error {
	return r.s.insert(ctx, "therapist", `
		INSERT INTO therapists (`+therapistColumns+`)
		VALUES (:id, :name, :specialty, :bio, :email, :available, :created_at)
	`, t)
}

func (r *therapistRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Therapist, error) {
	var t domain.Therapist
	if err := r.s.get(ctx, &t, `SELECT `+therapistColumns+` FROM therapists WHERE id = ?`, id); err != nil {
		return nil, notFound(err, "therapist")
	}
	return &t, nil
}

func (r *therapistRepository) List(ctx context.Context, onlyAvailable bool) ([]*domain.Therapist, error) {
	query := `SELECT ` + therapistColumns + ` FROM therapists`
	var args []any
	if onlyAvailable {
		query += ` WHERE available = ?`
		args = append(args, true)
	}
	query += ` ORDER BY name ASC`

	therapists := []*domain.Therapist{}
	if err := r.s.selectAll(ctx, &therapists, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list therapists: %w", err)
	}
	return therapists, nil
}

type appointmentRepository struct{ s *Store }

func (r *appointmentRepository) Create(ctx context.Context, a *domain.Appointment) error {
	return r.s.insert(ctx, "appointment", `
		INSERT INTO appointments (`+appointmentColumns+`)
		VALUES (:id, :user_id, :therapist_id, :scheduled_at, :status, :notes, :created_at, :updated_at)
	`, a)
}

func (r *appointmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error) {
	var a domain.Appointment
	if err := r.s.get(ctx, &a, `SELECT `+appointmentColumns+` FROM appointments WHERE id = ?`, id); err != nil {
		return nil, notFound(err, "appointment")
	}
	return &a, nil
}

func (r *appointmentRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Appointment, error) {
	appointments := []*domain.Appointment{}
	err := r.s.selectAll(ctx, &appointments, `
		SELECT `+appointmentColumns+`
		FROM appointments
		WHERE user_id = ?
		ORDER BY scheduled_at ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.AppointmentStatus, updatedAt time.Time) error {
	res, err := r.s.exec(ctx, `UPDATE appointments SET status = ?, updated_at = ? WHERE id = ?`, status, updatedAt.UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to update appointment: %w", err)
	}
	return affected(res, "appointment")
}

type courseRepository struct{ s *Store }

func (r *courseRepository) Create(ctx context.Context, c *domain.Course) error {
	return r.s.insert(ctx, "course", `
		INSERT INTO courses (`+courseColumns+`)
		VALUES (:id, :title, :description, :category, :duration_minutes, :content_url, :created_at)
	`, c)
}

func (r *courseRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	var c domain.Course
	if err := r.s.get(ctx, &c, `SELECT `+courseColumns+` FROM courses WHERE id = ?`, id); err != nil {
		return nil, notFound(err, "course")
	}
	return &c, nil
}

func (r *courseRepository) List(ctx context.Context, category string) ([]*domain.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses`
	var args []any
	if category != "" {
		query += ` WHERE category = ?`
		args = append(args, category)
	}
	query += ` ORDER BY title ASC`

	courses := []*domain.Course{}
	if err := r.s.selectAll(ctx, &courses, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	return courses, nil
}
