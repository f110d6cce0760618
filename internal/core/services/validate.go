package services

import (
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/wellnest/api/internal/core/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func checkEmail(email string) error {
	if err := validate.Var(email, "required,email,max=254"); err != nil {
		return domain.Validation("a valid email is required")
	}
	return nil
}

func checkURL(field, value string) error {
	if value == "" {
		return nil
	}
	if err := validate.Var(value, "url,max=2048"); err != nil {
		return domain.Validation("%s must be a valid URL", field)
	}
	return nil
}

// checkLength counts runes, not bytes.
func checkLength(field, value string, min, max int) error {
	n := utf8.RuneCountInString(value)
	if n == 0 && min > 0 {
		return domain.Validation("%s is required", field)
	}
	if n < min || n > max {
		return domain.Validation("%s must be between %d and %d characters", field, min, max)
	}
	return nil
}

func checkRange(field string, value, min, max int) error {
	if value < min || value > max {
		return domain.Validation("%s must be between %d and %d", field, min, max)
	}
	return nil
}

// checkQuestions trims every question in place.
func checkQuestions(questions []string, max int) ([]string, error) {
	if len(questions) == 0 {
		return nil, domain.Validation("at least one question is required")
	}
	if len(questions) > max {
		return nil, domain.Validation("at most %d questions are allowed", max)
	}
	out := make([]string, len(questions))
	for i, q := range questions {
		q = strings.TrimSpace(q)
		if err := checkLength("question", q, 1, maxQuestionLength); err != nil {
			return nil, err
		}
		out[i] = q
	}
	return out, nil
}

const (
	maxTitleLength    = 200
	maxQuestionLength = 500
	maxQuestions      = 50
)
