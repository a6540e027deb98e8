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
	"github.com/skillup-edu/school-service/internal/store"
	"github.com/skillup-edu/school-service/internal/validator"
)

// EnrollmentService covers the path from lead to enrolled student. Promotion
// of a prospect to a user account is always an explicit admin action.
type EnrollmentService interface {
	// PromoteProspect creates a User from a pending prospect and marks the
	// prospect enrolled.
	PromoteProspect(ctx context.Context, prospectID, username, externalUID string, actor Actor) (*models.User, error)

	// AssignStudentToClass adds the student to the class roster and the
	// class to the student's class list. The two writes hit different
	// collections, so they are not atomic; last-write-wins applies to each.
	AssignStudentToClass(ctx context.Context, studentID, classID string, actor Actor) error

	// ImportProspects creates many prospects in one all-or-nothing batch.
	ImportProspects(ctx context.Context, prospects []models.PotentialStudent, actor Actor) ([]string, error)
}

type enrollmentService struct {
	repos     repositories.Manager
	store     store.Store
	auditor   *audit.Logger
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
	now       func() time.Time
}

func NewEnrollmentService(
	repos repositories.Manager,
	s store.Store,
	auditor *audit.Logger,
	publisher events.EventPublisher,
	logger *slog.Logger,
	v *validator.Validator,
) EnrollmentService {
	return &enrollmentService{
		repos:     repos,
		store:     s,
		auditor:   auditor,
		publisher: publisher,
		logger:    logger,
		validator: v,
		now:       time.Now,
	}
}

func (s *enrollmentService) PromoteProspect(ctx context.Context, prospectID, username, externalUID string, actor Actor) (*models.User, error) {
	prospect, err := s.repos.Prospects().GetByID(ctx, prospectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load prospect: %w", err)
	}
	if prospect == nil {
		return nil, ErrProspectNotFound
	}
	if prospect.Status == models.ProspectEnrolled {
		return nil, ErrProspectAlreadyEnrolled
	}

	user := &models.User{
		ExternalUID: externalUID,
		Username:    username,
		Email:       prospect.Email,
		Role:        models.RoleStudent,
		Status:      models.UserActive,
		ClassIDs:    []string{},
	}
	if err := s.validator.ValidateStruct(user); err != nil {
		return nil, err
	}

	userID, err := s.repos.Users().Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	user.ID = userID

	err = s.repos.Prospects().Update(ctx, prospectID, map[string]any{
		"status": string(models.ProspectEnrolled),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to mark prospect enrolled: %w", err)
	}

	s.logAction(ctx, models.ActionCreate, models.User{}.Collection(), userID, actor, map[string]any{
		"email":      user.Email,
		"prospectId": prospectID,
	})
	s.logAction(ctx, models.ActionUpdate, models.PotentialStudent{}.Collection(), prospectID, actor, map[string]any{
		"status": string(models.ProspectEnrolled),
	})

	s.publish(ctx, events.EventProspectEnrolled, events.ProspectEnrolledEvent{
		ProspectID: prospectID,
		UserID:     userID,
		Email:      user.Email,
		EnrolledAt: s.now(),
		EnrolledBy: actor.ID,
	})

	return user, nil
}

func (s *enrollmentService) AssignStudentToClass(ctx context.Context, studentID, classID string, actor Actor) error {
	student, err := s.repos.Users().GetByID(ctx, studentID)
	if err != nil {
		return fmt.Errorf("failed to load student: %w", err)
	}
	if student == nil {
		return ErrStudentNotFound
	}

	class, err := s.repos.Classes().GetByID(ctx, classID)
	if err != nil {
		return fmt.Errorf("failed to load class: %w", err)
	}
	if class == nil {
		return ErrClassNotFound
	}

	if err := s.repos.Users().Update(ctx, studentID, map[string]any{
		"classIds": appendUnique(student.ClassIDs, classID),
	}); err != nil {
		return fmt.Errorf("failed to update student classes: %w", err)
	}

	if err := s.repos.Classes().Update(ctx, classID, map[string]any{
		"studentIds": appendUnique(class.StudentIDs, studentID),
	}); err != nil {
		return fmt.Errorf("failed to update class roster: %w", err)
	}

	s.logAction(ctx, models.ActionUpdate, models.Class{}.Collection(), classID, actor, map[string]any{
		"studentId": studentID,
	})

	s.publish(ctx, events.EventStudentAssigned, events.StudentAssignedEvent{
		StudentID:  studentID,
		ClassID:    classID,
		ClassCode:  class.ClassCode,
		AssignedAt: s.now(),
		AssignedBy: actor.ID,
	})

	return nil
}

func (s *enrollmentService) ImportProspects(ctx context.Context, prospects []models.PotentialStudent, actor Actor) ([]string, error) {
	docs := make([]map[string]any, 0, len(prospects))
	for i := range prospects {
		p := &prospects[i]
		if p.Status == "" {
			p.Status = models.ProspectPending
		}
		if err := s.validator.ValidateStruct(p); err != nil {
			return nil, err
		}
		docs = append(docs, map[string]any{
			"name":       p.Name,
			"email":      p.Email,
			"source":     string(p.Source),
			"status":     string(p.Status),
			"assignedTo": p.AssignedTo,
		})
	}

	ids, err := s.store.BatchCreate(ctx, models.PotentialStudent{}.Collection(), docs)
	if err != nil {
		return nil, fmt.Errorf("failed to import prospects: %w", err)
	}

	for _, id := range ids {
		s.logAction(ctx, models.ActionCreate, models.PotentialStudent{}.Collection(), id, actor, nil)
	}
	return ids, nil
}

func (s *enrollmentService) logAction(ctx context.Context, action models.ChangeAction, collection, id string, actor Actor, changes map[string]any) {
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

func (s *enrollmentService) publish(ctx context.Context, eventType events.EventType, data any) {
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

func appendUnique(list []string, value string) []string {
	for _, v := range list {
		if v == value {
			return list
		}
	}
	return append(list, value)
}
