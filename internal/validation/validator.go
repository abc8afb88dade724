package validation

import (
	"strings"

	"trivia-api/internal/domain"
)

// maxTextBytes is measured in bytes, which is how Oracle sizes VARCHAR2(1000)
const maxTextBytes = 1000

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateNewQuestion checks the fields of a question about to be created.
// Whether the category exists is left to the caller.
func (v *Validator) ValidateNewQuestion(question, answer string, categoryID int64, difficulty int) domain.ValidationErrors {
	var errors domain.ValidationErrors

	errors = append(errors, validateText("question", question)...)
	errors = append(errors, validateText("answer", answer)...)

	if categoryID <= 0 {
		errors = append(errors, domain.NewMissingFieldError("category"))
	}

	if difficulty < domain.MinDifficulty || difficulty > domain.MaxDifficulty {
		errors = append(errors, domain.NewOutOfRangeError("difficulty", difficulty, domain.MinDifficulty, domain.MaxDifficulty))
	}

	return errors
}

func validateText(field, value string) domain.ValidationErrors {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return domain.ValidationErrors{domain.NewMissingFieldError(field)}
	}
	if len(trimmed) > maxTextBytes {
		return domain.ValidationErrors{domain.NewOutOfRangeError(field+" bytes", len(trimmed), 1, maxTextBytes)}
	}
	return nil
}
