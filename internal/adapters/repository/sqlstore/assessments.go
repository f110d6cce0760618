package sqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wellnest/api/internal/core/domain"
)

const (
	assessmentColumns = `id, title, description, questions, organization_id, created_by, created_at`
	responseColumns   = `id, assessment_id, user_id, answers, score, created_at`
)

type assessmentRepository struct{ s *Store }

func (r *assessmentRepository) Create(ctx context.Context, a *domain.Assessment) error {
	return r.s.insert(ctx, "assessment", `
		INSERT INTO assessments (`+assessmentColumns+`)
		VALUES (:id, :title, :description, :questions, :organization_id, :created_by, :created_at)
	`, a)
}

func (r *assessmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Assessment, error) {
	var a domain.Assessment
	if err := r.s.get(ctx, &a, `SELECT `+assessmentColumns+` FROM assessments WHERE id = ?`, id); err != nil {
		return nil, notFound(err, "assessment")
	}
	return &a, nil
}

func (r *assessmentRepository) ListVisible(ctx context.Context, orgID *uuid.UUID) ([]*domain.Assessment, error) {
	query := `SELECT ` + assessmentColumns + ` FROM assessments WHERE organization_id IS NULL`
	var args []any
	if orgID != nil {
		query += ` OR organization_id = ?`
		args = append(args, *orgID)
	}
	query += ` ORDER BY created_at DESC`

	assessments := []*domain.Assessment{}
	if err := r.s.selectAll(ctx, &assessments, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}
	return assessments, nil
}

func (r *assessmentRepository) CreateResponse(ctx context.Context, resp *domain.AssessmentResponse) error {
	return r.s.insert(ctx, "assessment response", `
		INSERT INTO assessment_responses (`+responseColumns+`)
		VALUES (:id, :assessment_id, :user_id, :answers, :score, :created_at)
	`, resp)
}

func (r *assessmentRepository) ListResponsesByUser(ctx context.Context, assessmentID, userID uuid.UUID) ([]*domain.AssessmentResponse, error) {
	responses := []*domain.AssessmentResponse{}
	err := r.s.selectAll(ctx, &responses, `
		SELECT `+responseColumns+`
		FROM assessment_responses
		WHERE assessment_id = ? AND user_id = ?
		ORDER BY created_at DESC
	`, assessmentID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assessment responses: %w", err)
	}
	return responses, nil
}

func (r *assessmentRepository) ListResponsesByOrganization(ctx context.Context, assessmentID, orgID uuid.UUID) ([]*domain.AssessmentResponse, error) {
	responses := []*domain.AssessmentResponse{}
	err := r.s.selectAll(ctx, &responses, `
		SELECT r.id, r.assessment_id, r.user_id, r.answers, r.score, r.created_at
		FROM assessment_responses r
		JOIN users u ON u.id = r.user_id
		WHERE r.assessment_id = ? AND u.organization_id = ?
		ORDER BY r.created_at DESC
	`, assessmentID, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assessment responses: %w", err)
	}
	return responses, nil
}

type surveyRepository struct{ s *Store }

func (r *surveyRepository) Create(ctx context.Context, sv *domain.Survey) error {
	return r.s.insert(ctx, "survey", `
		INSERT INTO surveys (id, organization_id, title, questions, created_by, created_at)
		VALUES (:id, :organization_id, :title, :questions, :created_by, :created_at)
	`, sv)
}

func (r *surveyRepository) ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]*domain.Survey, error) {
	surveys := []*domain.Survey{}
	err := r.s.selectAll(ctx, &surveys, `
		SELECT id, organization_id, title, questions, created_by, created_at
		FROM surveys
		WHERE organization_id = ?
		ORDER BY created_at DESC
	`, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list surveys: %w", err)
	}
	return surveys, nil
}

type metricsRepository struct{ s *Store }

// OrgActivity aggregates activity of an organization's members since the
// given time. Only counts and averages leave the store.
func (r *metricsRepository) OrgActivity(ctx context.Context, orgID uuid.UUID, since time.Time) (*domain.OrgActivity, error) {
	since = since.UTC()
	var a domain.OrgActivity
	err := r.s.get(ctx, &a, `
		SELECT
			(SELECT COUNT(DISTINCT m.user_id) FROM mood_entries m JOIN users u ON u.id = m.user_id
				WHERE u.organization_id = ? AND m.created_at >= ?) AS active_users,
			(SELECT COUNT(*) FROM mood_entries m JOIN users u ON u.id = m.user_id
				WHERE u.organization_id = ? AND m.created_at >= ?) AS mood_entries,
			(SELECT COALESCE(AVG(m.score), 0) FROM mood_entries m JOIN users u ON u.id = m.user_id
				WHERE u.organization_id = ? AND m.created_at >= ?) AS average_mood,
			(SELECT COUNT(*) FROM journals j JOIN users u ON u.id = j.user_id
				WHERE u.organization_id = ? AND j.created_at >= ?) AS journal_entries,
			(SELECT COUNT(*) FROM appointments a JOIN users u ON u.id = a.user_id
				WHERE u.organization_id = ? AND a.created_at >= ?) AS appointments,
			(SELECT COUNT(*) FROM assessment_responses ar JOIN users u ON u.id = ar.user_id
				WHERE u.organization_id = ? AND ar.created_at >= ?) AS assessment_responses
	`, orgID, since, orgID, since, orgID, since, orgID, since, orgID, since, orgID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate organization activity: %w", err)
	}
	return &a, nil
}
