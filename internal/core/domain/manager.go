package domain

import (
	"time"

	"github.com/google/uuid"
)

// OrgMetrics are aggregates over an organization's members. Individual
// entries are never exposed to managers.
type OrgMetrics struct {
	OrganizationID     uuid.UUID `json:"organizationId"`
	Days               int       `json:"days"`
	Employees          int       `json:"employees"`
	ActiveEmployees    int       `json:"activeEmployees"`
	MoodEntries        int       `json:"moodEntries"`
	AverageMood        float64   `json:"averageMood"`
	JournalEntries     int       `json:"journalEntries"`
	AppointmentsBooked int       `json:"appointmentsBooked"`
	AssessmentAnswers  int       `json:"assessmentResponses"`
	GeneratedAt        time.Time `json:"generatedAt"`
}

type OrgActivity struct {
	ActiveUsers        int     `db:"active_users"`
	MoodEntries        int     `db:"mood_entries"`
	AverageMood        float64 `db:"average_mood"`
	JournalEntries     int     `db:"journal_entries"`
	AppointmentsBooked int     `db:"appointments"`
	AssessmentAnswers  int     `db:"assessment_responses"`
}

type Employee struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Email       string    `json:"email" db:"email"`
	DisplayName string    `json:"displayName" db:"display_name"`
	Role        Role      `json:"role" db:"role"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}
