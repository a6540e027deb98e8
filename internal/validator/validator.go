package validator

import (
	"github.com/go-playground/validator/v10"

	apperrors "github.com/skillup-edu/school-service/internal/errors"
	"github.com/skillup-edu/school-service/internal/models"
)

// Validator combines struct-tag validation with the assignment-specific
// checks the store cannot perform.
type Validator struct {
	structValidator     *validator.Validate
	assignmentValidator *AssignmentValidator
}

// New creates a new centralized validator instance
func New() *Validator {
	structValidator := validator.New()
	registerCustomValidators(structValidator)

	return &Validator{
		structValidator:     structValidator,
		assignmentValidator: NewAssignmentValidator(),
	}
}

// ValidateStruct validates struct tags and reports failures as
// ValidationErrors so every layer maps them to the same response shape.
func (v *Validator) ValidateStruct(s interface{}) error {
	err := v.structValidator.Struct(s)
	if err == nil {
		return nil
	}
	if errs := apperrors.ToValidationErrors(err); len(errs) > 0 {
		return errs
	}
	return err
}

// ValidateAssignment performs complete validation of an assignment: struct
// tags plus question/answer-key consistency.
func (v *Validator) ValidateAssignment(a *models.Assignment) error {
	if err := v.ValidateStruct(a); err != nil {
		return err
	}
	if errs := v.assignmentValidator.Validate(a); len(errs) > 0 {
		return errs
	}
	return nil
}

// Assignment returns the assignment validator
func (v *Validator) Assignment() *AssignmentValidator {
	return v.assignmentValidator
}

func registerCustomValidators(v *validator.Validate) {
	v.RegisterValidation("question_type", func(fl validator.FieldLevel) bool {
		switch models.QuestionType(fl.Field().String()) {
		case models.QuestionMCQ, models.QuestionFill, models.QuestionMatch, models.QuestionEssay:
			return true
		}
		return false
	})

	v.RegisterValidation("user_role", func(fl validator.FieldLevel) bool {
		switch models.UserRole(fl.Field().String()) {
		case models.RoleStudent, models.RoleTeacher, models.RoleAdmin, models.RoleStaff:
			return true
		}
		return false
	})

	v.RegisterValidation("submission_status", func(fl validator.FieldLevel) bool {
		switch models.SubmissionStatus(fl.Field().String()) {
		case models.SubmissionSubmitted, models.SubmissionGraded, models.SubmissionLate:
			return true
		}
		return false
	})
}
