package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/skillup-edu/school-service/internal/audit"
	"github.com/skillup-edu/school-service/internal/events"
	"github.com/skillup-edu/school-service/internal/models"
	"github.com/skillup-edu/school-service/internal/repositories"
	"github.com/skillup-edu/school-service/internal/validator"
)

// GradingService owns the submission lifecycle: receiving work and grading
// it. Late detection compares the submission time against the assignment's
// due date.
type GradingService interface {
	SubmitWork(ctx context.Context, submission *models.Submission, actor Actor) (string, error)
	GradeSubmission(ctx context.Context, submissionID string, score float64, feedback string, actor Actor) error
}

type gradingService struct {
	repos     repositories.Manager
	auditor   *audit.Logger
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
	now       func() time.Time
}

func NewGradingService(
	repos repositories.Manager,
	auditor *audit.Logger,
	publisher events.EventPublisher,
	logger *slog.Logger,
	v *validator.Validator,
) GradingService {
	return &gradingService{
		repos:     repos,
		auditor:   auditor,
		publisher: publisher,
		logger:    logger,
		validator: v,
		now:       time.Now,
	}
}

func (s *gradingService) SubmitWork(ctx context.Context, submission *models.Submission, actor Actor) (string, error) {
	assignment, err := s.repos.Assignments().GetByID(ctx, submission.AssignmentID)
	if err != nil {
		return "", fmt.Errorf("failed to load assignment: %w", err)
	}
	if assignment == nil {
		return "", ErrAssignmentNotFound
	}
	if !assignment.IsActive {
		return "", ErrAssignmentInactive
	}

	now := s.now()
	late := assignment.DueDate != nil && now.After(*assignment.DueDate)
	if late {
		submission.Status = models.SubmissionLate
	} else {
		submission.Status = models.SubmissionSubmitted
	}

	if err := s.validator.ValidateStruct(submission); err != nil {
		return "", err
	}

	id, err := s.repos.Submissions().Create(ctx, submission)
	if err != nil {
		return "", fmt.Errorf("failed to create submission: %w", err)
	}

	s.logAction(ctx, models.ActionCreate, models.Submission{}.Collection(), id, actor, map[string]any{
		"assignmentId": submission.AssignmentID,
		"status":       string(submission.Status),
	})

	s.publish(ctx, events.EventSubmissionReceived, events.SubmissionReceivedEvent{
		SubmissionID:    id,
		AssignmentID:    assignment.ID,
		AssignmentTitle: assignment.Title,
		StudentID:       submission.StudentID,
		ClassID:         submission.ClassID,
		SubmittedAt:     now,
		Late:            late,
	})

	return id, nil
}

func (s *gradingService) GradeSubmission(ctx context.Context, submissionID string, score float64, feedback string, actor Actor) error {
	submission, err := s.repos.Submissions().GetByID(ctx, submissionID)
	if err != nil {
		return fmt.Errorf("failed to load submission: %w", err)
	}
	if submission == nil {
		return ErrSubmissionNotFound
	}
	if submission.Status == models.SubmissionGraded {
		return ErrAlreadyGraded
	}

	assignment, err := s.repos.Assignments().GetByID(ctx, submission.AssignmentID)
	if err != nil {
		return fmt.Errorf("failed to load assignment: %w", err)
	}
	if assignment == nil {
		return ErrAssignmentNotFound
	}
	if score < 0 || score > assignment.MaxScore {
		return ErrScoreOutOfRange
	}

	updates := map[string]any{
		"score":    score,
		"feedback": feedback,
		"status":   string(models.SubmissionGraded),
	}
	if err := s.repos.Submissions().Update(ctx, submissionID, updates); err != nil {
		return fmt.Errorf("failed to grade submission: %w", err)
	}

	s.logAction(ctx, models.ActionUpdate, models.Submission{}.Collection(), submissionID, actor, updates)

	s.publish(ctx, events.EventSubmissionGraded, events.SubmissionGradedEvent{
		SubmissionID:    submissionID,
		AssignmentID:    assignment.ID,
		AssignmentTitle: assignment.Title,
		StudentID:       submission.StudentID,
		GradedAt:        s.now(),
		Score:           score,
		MaxScore:        assignment.MaxScore,
		GraderID:        actor.ID,
	})

	return nil
}

// logAction records the audit entry; a failed audit write is logged, not
// returned, so it never rolls back the operation it describes.
func (s *gradingService) logAction(ctx context.Context, action models.ChangeAction, collection, id string, actor Actor, changes map[string]any) {
	_, err := s.auditor.LogAction(ctx, audit.Entry{
		Action:     action,
		Collection: collection,
		DocumentID: id,
		ActorID:    actor.ID,
		ActorName:  actor.Name,
		Changes:    changes,
	})
	if err != nil {
		s.logger.Error("failed to write audit entry",
			"action", string(action),
			"collection", collection,
			"document_id", id,
			"error", err)
	}
}

func (s *gradingService) publish(ctx context.Context, eventType events.EventType, data any) {
	event := &events.NotificationEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: s.now(),
		Source:    "school-service",
		Version:   "1.0",
		Data:      data,
	}
	if err := s.publisher.PublishNotificationEvent(ctx, event); err != nil {
		s.logger.Error("failed to publish event", "event_type", string(eventType), "error", err)
	}
}
