package validator

import (
	"fmt"

	apperrors "github.com/skillup-edu/school-service/internal/errors"
	"github.com/skillup-edu/school-service/internal/models"
)

// AssignmentValidator checks the invariants the store does not: question ids
// unique within the assignment, answer-key keys a subset of the question
// ids, and per-type question shape.
type AssignmentValidator struct{}

func NewAssignmentValidator() *AssignmentValidator {
	return &AssignmentValidator{}
}

// Validate returns every violation found; an empty result means the
// assignment is consistent.
func (v *AssignmentValidator) Validate(a *models.Assignment) apperrors.ValidationErrors {
	var errs apperrors.ValidationErrors

	seen := make(map[string]bool, len(a.Questions))
	for i, q := range a.Questions {
		if q.ID == "" {
			errs = append(errs, *apperrors.NewValidationError(
				fmt.Sprintf("questions[%d].id", i), "is required", q.ID))
			continue
		}
		if seen[q.ID] {
			errs = append(errs, *apperrors.NewValidationError(
				fmt.Sprintf("questions[%d].id", i), "duplicates another question id", q.ID))
		}
		seen[q.ID] = true

		errs = append(errs, v.validateShape(i, q)...)
	}

	for key := range a.AnswerKey {
		if !seen[key] {
			errs = append(errs, *apperrors.NewValidationError(
				"answerKey", fmt.Sprintf("references unknown question id %q", key), key))
		}
	}

	return errs
}

func (v *AssignmentValidator) validateShape(index int, q models.Question) apperrors.ValidationErrors {
	var errs apperrors.ValidationErrors
	field := func(name string) string {
		return fmt.Sprintf("questions[%d].%s", index, name)
	}

	switch q.Type {
	case models.QuestionMCQ:
		if len(q.Options) < 2 {
			errs = append(errs, *apperrors.NewValidationError(
				field("options"), "mcq questions need at least two options", q.Options))
		}
	case models.QuestionMatch:
		if len(q.Pairs) == 0 {
			errs = append(errs, *apperrors.NewValidationError(
				field("pairs"), "match questions need at least one pair", q.Pairs))
		}
	case models.QuestionFill, models.QuestionEssay:
		// No extra shape requirements.
	default:
		errs = append(errs, *apperrors.NewValidationError(
			field("type"), "must be a valid question type (mcq, fill, match, essay)", string(q.Type)))
	}

	if q.Points < 0 {
		errs = append(errs, *apperrors.NewValidationError(
			field("points"), "must not be negative", q.Points))
	}
	return errs
}
