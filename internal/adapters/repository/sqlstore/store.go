// Package sqlstore implements ports.Store on top of sqlx. Queries are written
// with '?' placeholders and rebound for the driver, so the same repositories
// serve both the postgres and the sqlite backed stores.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/wellnest/api/internal/core/domain"
	"github.com/wellnest/api/internal/core/ports"
)

// Dialect carries what differs between backing stores.
type Dialect struct {
	Name string
	// IsUniqueViolation reports whether err was caused by a unique or primary
	// key constraint.
	IsUniqueViolation func(err error) bool
}

type Store struct {
	db      *sqlx.DB
	dialect Dialect
}

var _ ports.Store = (*Store)(nil)

func New(db *sqlx.DB, dialect Dialect) *Store {
	return &Store{db: db, dialect: dialect}
}

func (s *Store) Kind() string { return s.dialect.Name }

func (s *Store) DB() *sqlx.DB { return s.db }

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Users() ports.UserRepository                 { return &userRepository{s} }
func (s *Store) Organizations() ports.OrganizationRepository { return &organizationRepository{s} }
func (s *Store) Auth() ports.AuthRepository                  { return &authRepository{s} }
func (s *Store) Journals() ports.JournalRepository           { return &journalRepository{s} }
func (s *Store) Moods() ports.MoodRepository                 { return &moodRepository{s} }
func (s *Store) Rants() ports.RantRepository                 { return &rantRepository{s} }
func (s *Store) Therapists() ports.TherapistRepository       { return &therapistRepository{s} }
func (s *Store) Appointments() ports.AppointmentRepository   { return &appointmentRepository{s} }
func (s *Store) Courses() ports.CourseRepository             { return &courseRepository{s} }
func (s *Store) Assessments() ports.AssessmentRepository     { return &assessmentRepository{s} }
func (s *Store) Surveys() ports.SurveyRepository             { return &surveyRepository{s} }
func (s *Store) Metrics() ports.MetricsRepository            { return &metricsRepository{s} }

func (s *Store) get(ctx context.Context, dest any, query string, args ...any) error {
	return s.db.GetContext(ctx, dest, s.db.Rebind(query), args...)
}

func (s *Store) selectAll(ctx context.Context, dest any, query string, args ...any) error {
	return s.db.SelectContext(ctx, dest, s.db.Rebind(query), args...)
}

func (s *Store) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return s.db.ExecContext(ctx, s.db.Rebind(query), args...)
}

// insert runs a named INSERT and maps unique violations to domain.ErrConflict.
func (s *Store) insert(ctx context.Context, what string, query string, arg any) error {
	if _, err := s.db.NamedExecContext(ctx, query, arg); err != nil {
		if s.dialect.IsUniqueViolation != nil && s.dialect.IsUniqueViolation(err) {
			return fmt.Errorf("failed to insert %s: %w", what, domain.ErrConflict)
		}
		return fmt.Errorf("failed to insert %s: %w", what, err)
	}
	return nil
}

// notFound maps sql.ErrNoRows to domain.ErrNotFound and wraps anything else.
func notFound(err error, what string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", what, domain.ErrNotFound)
	}
	return fmt.Errorf("failed to get %s: %w", what, err)
}

// affected turns a zero-row UPDATE/DELETE into domain.ErrNotFound.
func affected(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected for %s: %w", what, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, domain.ErrNotFound)
	}
	return nil
}
