package services

import (
	"errors"

	apperrors "github.com/skillup-edu/school-service/internal/errors"
	"github.com/skillup-edu/school-service/internal/repositories"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Generic errors
	ErrNotFound         = errors.New("resource not found")
	ErrValidationFailed = errors.New("validation failed")
	ErrConflict         = errors.New("resource conflict")

	// Assignment/submission specific errors
	ErrAssignmentNotFound = errors.New("assignment not found")
	ErrAssignmentInactive = errors.New("assignment is not active")
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrAlreadyGraded      = errors.New("submission already graded")
	ErrScoreOutOfRange    = errors.New("score exceeds the assignment's max score")

	// Enrollment specific errors
	ErrProspectNotFound        = errors.New("potential student not found")
	ErrProspectAlreadyEnrolled = errors.New("potential student already enrolled")
	ErrClassNotFound           = errors.New("class not found")
	ErrStudentNotFound         = errors.New("student not found")
)

// ===== CUSTOM ERROR TYPES =====

type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

// ===== ERROR HELPERS =====

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrAssignmentNotFound) ||
		errors.Is(err, ErrSubmissionNotFound) ||
		errors.Is(err, ErrProspectNotFound) ||
		errors.Is(err, ErrClassNotFound) ||
		errors.Is(err, ErrStudentNotFound)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) || errors.Is(err, ErrScoreOutOfRange) {
		return true
	}
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return true
	}
	var re *repositories.ReferenceError
	return errors.As(err, &re)
}

// IsConflict checks if error represents a resource conflict
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrAlreadyGraded) ||
		errors.Is(err, ErrProspectAlreadyEnrolled) ||
		errors.Is(err, ErrAssignmentInactive)
}
