package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	MinAnswerValue = 0
	MaxAnswerValue = 10
)

type Assessment struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	Title          string     `json:"title" db:"title"`
	Description    string     `json:"description,omitempty" db:"description"`
	Questions      Questions  `json:"questions" db:"questions"`
	OrganizationID *uuid.UUID `json:"organizationId,omitempty" db:"organization_id"`
	CreatedBy      uuid.UUID  `json:"createdBy" db:"created_by"`
	CreatedAt      time.Time  `json:"createdAt" db:"created_at"`
}

// VisibleTo reports whether u may see and answer the assessment: global
// assessments are visible to everyone, org ones only to members.
func (a *Assessment) VisibleTo(u *User) bool {
	if a.OrganizationID == nil || u.Role == RoleAdmin {
		return true
	}
	return u.InOrganization(*a.OrganizationID)
}

type AssessmentResponse struct {
	ID           uuid.UUID `json:"id" db:"id"`
	AssessmentID uuid.UUID `json:"assessmentId" db:"assessment_id"`
	UserID       uuid.UUID `json:"userId" db:"user_id"`
	Answers      Answers   `json:"answers" db:"answers"`
	Score        int       `json:"score" db:"score"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

type Survey struct {
	ID             uuid.UUID `json:"id" db:"id"`
	OrganizationID uuid.UUID `json:"organizationId" db:"organization_id"`
	Title          string    `json:"title" db:"title"`
	Questions      Questions `json:"questions" db:"questions"`
	CreatedBy      uuid.UUID `json:"createdBy" db:"created_by"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
}

// Questions and Answers are persisted as JSON text columns so both stores
// share one schema shape.
type Questions []string

func (q Questions) Value() (driver.Value, error) { return jsonValue([]string(q)) }
func (q *Questions) Scan(src any) error {
	var out []string
	if err := jsonScan(src, &out); err != nil {
		return fmt.Errorf("questions: %w", err)
	}
	*q = out
	return nil
}

type Answers []int

func (a Answers) Value() (driver.Value, error) { return jsonValue([]int(a)) }
func (a *Answers) Scan(src any) error {
	var out []int
	if err := jsonScan(src, &out); err != nil {
		return fmt.Errorf("answers: %w", err)
	}
	*a = out
	return nil
}

func jsonValue(v any) (driver.Value, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func jsonScan(src any, dst any) error {
	switch v := src.(type) {
	case nil:
		return nil
	case string:
		return json.Unmarshal([]byte(v), dst)
	case []byte:
		return json.Unmarshal(v, dst)
	default:
		return fmt.Errorf("unsupported type %T", src)
	}
}
