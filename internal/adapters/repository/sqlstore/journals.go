package sqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wellnest/api/internal/core/domain"
)

type journalRepository struct{ s *Store }

func (r *journalRepository) Create(ctx context.Context, j *domain.Journal) error {
	return r.s.insert(ctx, "journal", `
		INSERT INTO journals (id, user_id, content, mood_score, tags, created_at)
		VALUES (:id, :user_id, :content, :mood_score, :tags, :created_at)
	`, j)
}

func (r *journalRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Journal, error) {
	journals := []*domain.Journal{}
	err := r.s.selectAll(ctx, &journals, `
		SELECT id, user_id, content, mood_score, tags, created_at
		FROM journals
		WHERE user_id = ?
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?
	`, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list journals: %w", err)
	}
	return journals, nil
}

func (r *journalRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	res, err := r.s.exec(ctx, `DELETE FROM journals WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete journal: %w", err)
	}
	return affected(res, "journal")
}

type moodRepository struct{ s *Store }

func (r *moodRepository) Create(ctx context.Context, m *domain.MoodEntry) error {
	return r.s.insert(ctx, "mood entry", `
		INSERT INTO mood_entries (id, user_id, score, note, created_at)
		VALUES (:id, :user_id, :score, :note, :created_at)
	`, m)
}

func (r *moodRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.MoodEntry, error) {
	entries := []*domain.MoodEntry{}
	err := r.s.selectAll(ctx, &entries, `
		SELECT id, user_id, score, note, created_at
		FROM mood_entries
		WHERE user_id = ?
		ORDER BY created_at DESC
		LIMIT ?
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list mood entries: %w", err)
	}
	return entries, nil
}

func (r *moodRepository) ListSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]*domain.MoodEntry, error) {
	entries := []*domain.MoodEntry{}
	err := r.s.selectAll(ctx, &entries, `
		SELECT id, user_id, score, note, created_at
		FROM mood_entries
		WHERE user_id = ? AND created_at >= ?
		ORDER BY created_at ASC
	`, userID, since.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to list mood entries: %w", err)
	}
	return entries, nil
}
