package repositories

import (
	"context"
	"fmt"

	"github.com/skillup-edu/school-service/internal/models"
)

// ReferenceError reports a foreign-key style reference to a document that
// does not exist.
type ReferenceError struct {
	Collection string
	ID         string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("broken reference: no %s document with id %q", e.Collection, e.ID)
}

// NewIntegrityManager decorates a Manager with opt-in referential checks on
// create. The base store has no foreign-key concept; environments that want
// the checks wrap their manager here, everyone else keeps the raw facade and
// its caller-owned integrity contract.
func NewIntegrityManager(inner Manager) Manager {
	return &integrityManager{inner: inner}
}

type integrityManager struct {
	inner Manager
}

func (m *integrityManager) Users() UserRepository             { return &integrityUsers{m.inner.Users(), m} }
func (m *integrityManager) Classes() ClassRepository          { return &integrityClasses{m.inner.Classes(), m} }
func (m *integrityManager) Levels() LevelRepository           { return m.inner.Levels() }
func (m *integrityManager) Assignments() AssignmentRepository { return &integrityAssignments{m.inner.Assignments(), m} }
func (m *integrityManager) Submissions() SubmissionRepository { return &integritySubmissions{m.inner.Submissions(), m} }
func (m *integrityManager) Prospects() ProspectRepository     { return &integrityProspects{m.inner.Prospects(), m} }
func (m *integrityManager) Records() RecordRepository         { return &integrityRecords{m.inner.Records(), m} }

func (m *integrityManager) requireUser(ctx context.Context, id string) error {
	user, err := m.inner.Users().GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return &ReferenceError{Collection: models.User{}.Collection(), ID: id}
	}
	return nil
}

func (m *integrityManager) requireClass(ctx context.Context, id string) error {
	class, err := m.inner.Classes().GetByID(ctx, id)
	if err != nil {
		return err
	}
	if class == nil {
		return &ReferenceError{Collection: models.Class{}.Collection(), ID: id}
	}
	return nil
}

func (m *integrityManager) requireLevel(ctx context.Context, id string) error {
	level, err := m.inner.Levels().GetByID(ctx, id)
	if err != nil {
		return err
	}
	if level == nil {
		return &ReferenceError{Collection: models.Level{}.Collection(), ID: id}
	}
	return nil
}

func (m *integrityManager) requireAssignment(ctx context.Context, id string) error {
	assignment, err := m.inner.Assignments().GetByID(ctx, id)
	if err != nil {
		return err
	}
	if assignment == nil {
		return &ReferenceError{Collection: models.Assignment{}.Collection(), ID: id}
	}
	return nil
}

type integrityUsers struct {
	UserRepository
	m *integrityManager
}

func (r *integrityUsers) Create(ctx context.Context, user *models.User) (string, error) {
	for _, classID := range user.ClassIDs {
		if err := r.m.requireClass(ctx, classID); err != nil {
			return "", err
		}
	}
	return r.UserRepository.Create(ctx, user)
}

type integrityClasses struct {
	ClassRepository
	m *integrityManager
}

func (r *integrityClasses) Create(ctx context.Context, class *models.Class) (string, error) {
	if err := r.m.requireLevel(ctx, class.LevelID); err != nil {
		return "", err
	}
	if class.TeacherID != "" {
		if err := r.m.requireUser(ctx, class.TeacherID); err != nil {
			return "", err
		}
	}
	return r.ClassRepository.Create(ctx, class)
}

type integrityAssignments struct {
	AssignmentRepository
	m *integrityManager
}

func (r *integrityAssignments) Create(ctx context.Context, assignment *models.Assignment) (string, error) {
	if err := r.m.requireClass(ctx, assignment.ClassID); err != nil {
		return "", err
	}
	if assignment.LevelID != "" {
		if err := r.m.requireLevel(ctx, assignment.LevelID); err != nil {
			return "", err
		}
	}
	return r.AssignmentRepository.Create(ctx, assignment)
}

type integritySubmissions struct {
	SubmissionRepository
	m *integrityManager
}

func (r *integritySubmissions) Create(ctx context.Context, submission *models.Submission) (string, error) {
	if err := r.m.requireAssignment(ctx, submission.AssignmentID); err != nil {
		return "", err
	}
	if err := r.m.requireUser(ctx, submission.StudentID); err != nil {
		return "", err
	}
	if err := r.m.requireClass(ctx, submission.ClassID); err != nil {
		return "", err
	}
	return r.SubmissionRepository.Create(ctx, submission)
}

type integrityProspects struct {
	ProspectRepository
	m *integrityManager
}

func (r *integrityProspects) Create(ctx context.Context, prospect *models.PotentialStudent) (string, error) {
	if prospect.AssignedTo != "" {
		if err := r.m.requireUser(ctx, prospect.AssignedTo); err != nil {
			return "", err
		}
	}
	return r.ProspectRepository.Create(ctx, prospect)
}

type integrityRecords struct {
	RecordRepository
	m *integrityManager
}

func (r *integrityRecords) Create(ctx context.Context, record *models.StudentRecord) (string, error) {
	if err := r.m.requireUser(ctx, record.StudentID); err != nil {
		return "", err
	}
	if err := r.m.requireClass(ctx, record.ClassID); err != nil {
		return "", err
	}
	if record.LevelID != "" {
		if err := r.m.requireLevel(ctx, record.LevelID); err != nil {
			return "", err
		}
	}
	return r.RecordRepository.Create(ctx, record)
}
