package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	MinMoodScore        = 1
	MaxMoodScore        = 10
	MaxJournalLength    = 10000
	MaxJournalTags      = 10
	MaxJournalTagLength = 32
	MaxMoodNoteLength   = 500
)

type Journal struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"userId" db:"user_id"`
	Content   string    `json:"content" db:"content"`
	MoodScore *int      `json:"moodScore,omitempty" db:"mood_score"`
	Tags      Tags      `json:"tags" db:"tags"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type MoodEntry struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"userId" db:"user_id"`
	Score     int       `json:"score" db:"score"`
	Note      string    `json:"note,omitempty" db:"note"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type MoodDay struct {
	Day     string  `json:"day"`
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

type MoodStats struct {
	Days    int       `json:"days"`
	Count   int       `json:"count"`
	Average float64   `json:"average"`
	Min     int       `json:"min"`
	Max     int       `json:"max"`
	Latest  *int      `json:"latest,omitempty"`
	Daily   []MoodDay `json:"daily"`
}
