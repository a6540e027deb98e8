package events

import (
	"time"
)

// EventType represents different types of notification events
type EventType string

const (
	// Submission events
	EventSubmissionReceived EventType = "submission.received"
	EventSubmissionGraded   EventType = "submission.graded"

	// Enrollment events
	EventProspectEnrolled EventType = "prospect.enrolled"
	EventStudentAssigned  EventType = "student.assigned"

	// System events
	EventBulkNotification EventType = "system.bulk_notification"
)

// NotificationEvent is the base event structure for all notification events
type NotificationEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// Submission notification event payloads

type SubmissionReceivedEvent struct {
	SubmissionID    string    `json:"submission_id"`
	AssignmentID    string    `json:"assignment_id"`
	AssignmentTitle string    `json:"assignment_title"`
	StudentID       string    `json:"student_id"`
	ClassID         string    `json:"class_id"`
	SubmittedAt     time.Time `json:"submitted_at"`
	Late            bool      `json:"late"`
}

type SubmissionGradedEvent struct {
	SubmissionID    string    `json:"submission_id"`
	AssignmentID    string    `json:"assignment_id"`
	AssignmentTitle string    `json:"assignment_title"`
	StudentID       string    `json:"student_id"`
	GradedAt        time.Time `json:"graded_at"`
	Score           float64   `json:"score"`
	MaxScore        float64   `json:"max_score"`
	GraderID        string    `json:"grader_id"`
}

// Enrollment notification event payloads

type ProspectEnrolledEvent struct {
	ProspectID string    `json:"prospect_id"`
	UserID     string    `json:"user_id"`
	ClassID    string    `json:"class_id,omitempty"`
	Email      string    `json:"email"`
	EnrolledAt time.Time `json:"enrolled_at"`
	EnrolledBy string    `json:"enrolled_by"`
}

type StudentAssignedEvent struct {
	StudentID  string    `json:"student_id"`
	ClassID    string    `json:"class_id"`
	ClassCode  string    `json:"class_code"`
	AssignedAt time.Time `json:"assigned_at"`
	AssignedBy string    `json:"assigned_by"`
}

// System notification event payloads

type BulkNotificationEvent struct {
	RecipientIDs []string `json:"recipient_ids"`
	Title        string   `json:"title"`
	Message      string   `json:"message"`
	Priority     string   `json:"priority"`
}
