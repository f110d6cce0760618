package domain

import (
	"time"

	"github.com/google/uuid"
)

const MaxRantLength = 2000

// Rant is an anonymous post. There is intentionally no author field: the
// author is never persisted or serialized.
type Rant struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Content      string    `json:"content" db:"content"`
	Sentiment    float64   `json:"sentiment" db:"sentiment"`
	Mood         string    `json:"mood" db:"-"`
	SupportCount int64     `json:"supportCount" db:"support_count"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}
