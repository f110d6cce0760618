package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/wellnest/api/internal/core/domain"
	"github.com/wellnest/api/internal/core/ports"
)

type journalService struct {
	repo ports.JournalRepository
	now  func() time.Time
}

func NewJournalService(repo ports.JournalRepository, now func() time.Time) ports.JournalService {
	return &journalService{repo: repo, now: clockOrDefault(now)}
}

func (s *journalService) Create(ctx context.Context, input ports.CreateJournalInput) (*domain.Journal, error) {
	content := strings.TrimSpace(input.Content)
	if err := checkLength("content", content, 1, domain.MaxJournalLength); err != nil {
		return nil, err
	}
	if input.MoodScore != nil {
		if err := checkRange("moodScore", *input.MoodScore, domain.MinMoodScore, domain.MaxMoodScore); err != nil {
			return nil, err
		}
	}

	tags := domain.NormalizeTags(input.Tags)
	if len(tags) > domain.MaxJournalTags {
		return nil, domain.Validation("at most %d tags are allowed", domain.MaxJournalTags)
	}
	for _, tag := range tags {
		if err := checkLength("tag", tag, 1, domain.MaxJournalTagLength); err != nil {
			return nil, err
		}
	}

	journal := &domain.Journal{
		ID:        uuid.New(),
		UserID:    input.UserID,
		Content:   content,
		MoodScore: input.MoodScore,
		Tags:      tags,
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.Create(ctx, journal); err != nil {
		return nil, fmt.Errorf("failed to create journal: %w", err)
	}
	return journal, nil
}

func (s *journalService) List(ctx context.Context, userID uuid.UUID, page ports.Page) ([]*domain.Journal, error) {
	page = page.Normalize()
	return s.repo.ListByUser(ctx, userID, page.Limit, page.Offset)
}

// Delete reports NotFound both for missing entries and for entries owned by
// someone else.
func (s *journalService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if err := s.repo.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NotFound("journal")
		}
		return err
	}
	return nil
}

const (
	DefaultStatsDays = 30
	MaxStatsDays     = 365
)

type moodService struct {
	repo ports.MoodRepository
	now  func() time.Time
}

func NewMoodService(repo ports.MoodRepository, now func() time.Time) ports.MoodService {
	return &moodService{repo: repo, now: clockOrDefault(now)}
}

func (s *moodService) Create(ctx context.Context, input ports.CreateMoodInput) (*domain.MoodEntry, error) {
	if err := checkRange("score", input.Score, domain.MinMoodScore, domain.MaxMoodScore); err != nil {
		return nil, err
	}
	note := strings.TrimSpace(input.Note)
	if err := checkLength("note", note, 0, domain.MaxMoodNoteLength); err != nil {
		return nil, err
	}

	entry := &domain.MoodEntry{
		ID:        uuid.New(),
		UserID:    input.UserID,
		Score:     input.Score,
		Note:      note,
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to create mood entry: %w", err)
	}
	return entry, nil
}

func (s *moodService) List(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.MoodEntry, error) {
	return s.repo.ListByUser(ctx, userID, ports.Page{Limit: limit}.Normalize().Limit)
}

// Stats summarises the last days calendar days (UTC), today included.
func (s *moodService) Stats(ctx context.Context, userID uuid.UUID, days int) (*domain.MoodStats, error) {
	if days == 0 {
		days = DefaultStatsDays
	}
	if err := checkRange("days", days, 1, MaxStatsDays); err != nil {
		return nil, err
	}

	today := s.now().UTC().Truncate(24 * time.Hour)
	since := today.AddDate(0, 0, -(days - 1))

	entries, err := s.repo.ListSince(ctx, userID, since)
	if err != nil {
		return nil, err
	}

	stats := &domain.MoodStats{Days: days, Daily: []domain.MoodDay{}}
	if len(entries) == 0 {
		return stats, nil
	}

	stats.Min, stats.Max = entries[0].Score, entries[0].Score
	sum := 0
	daySums := map[string]int{}
	for _, e := range entries {
		sum += e.Score
		stats.Min = min(stats.Min, e.Score)
		stats.Max = max(stats.Max, e.Score)

		day := e.CreatedAt.UTC().Format(time.DateOnly)
		if n := len(stats.Daily); n == 0 || stats.Daily[n-1].Day != day {
			stats.Daily = append(stats.Daily, domain.MoodDay{Day: day})
		}
		stats.Daily[len(stats.Daily)-1].Count++
		daySums[day] += e.Score
	}
	for i := range stats.Daily {
		d := &stats.Daily[i]
		d.Average = round2(float64(daySums[d.Day]) / float64(d.Count))
	}

	stats.Count = len(entries)
	stats.Average = round2(float64(sum) / float64(stats.Count))
	latest := entries[len(entries)-1].Score
	stats.Latest = &latest
	return stats, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
