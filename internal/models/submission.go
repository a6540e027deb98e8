package models

import "time"

type SubmissionStatus string

const (
	SubmissionSubmitted SubmissionStatus = "submitted"
	SubmissionGraded    SubmissionStatus = "graded"
	SubmissionLate      SubmissionStatus = "late"
)

// Submission is a student's answer to an assignment. Score and Feedback are
// set by grading; score present only when status is graded (convention, not
// enforced by storage).
type Submission struct {
	ID           string           `json:"id"`
	AssignmentID string           `json:"assignmentId" validate:"required"`
	StudentID    string           `json:"studentId" validate:"required"`
	ClassID      string           `json:"classId" validate:"required"`
	Content      string           `json:"content,omitempty"`
	FileURL      string           `json:"fileUrl,omitempty"`
	Score        *float64         `json:"score,omitempty"`
	Feedback     *string          `json:"feedback,omitempty"`
	Status       SubmissionStatus `json:"status" validate:"required,oneof=submitted graded late"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Submission) Collection() string {
	return "submissions"
}
