package repositories

import (
	"context"

	"github.com/skillup-edu/school-service/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

// Nil filter fields are simply not added to the query constraints.

type UserFilters struct {
	Role   *models.UserRole   `json:"role"`
	Status *models.UserStatus `json:"status"`
}

type ClassFilters struct {
	TeacherID *string `json:"teacher_id"`
	IsActive  *bool   `json:"is_active"`
}

type ProspectFilters struct {
	Status *models.ProspectStatus `json:"status"`
}

type RecordFilters struct {
	ClassID  *string `json:"class_id"`
	Semester *string `json:"semester"`
	Year     *int    `json:"year"`
}

// ===== REPOSITORY INTERFACES =====

// Updates are partial merges keyed by the JSON field names of the entity;
// those names are the schema contract shared with every other consumer of
// the collections. No repository validates enums or foreign keys - that
// belongs to the caller (or the integrity decorator).

type UserRepository interface {
	Create(ctx context.Context, user *models.User) (string, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	Update(ctx context.Context, id string, updates map[string]any) error
	Delete(ctx context.Context, id string) error

	// Uniqueness lookups: first match or nil. Uniqueness itself is a
	// data-entry convention, not enforced here.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByExternalUID(ctx context.Context, uid string) (*models.User, error)

	List(ctx context.Context, filters UserFilters) ([]*models.User, error)
}

type ClassRepository interface {
	Create(ctx context.Context, class *models.Class) (string, error)
	GetByID(ctx context.Context, id string) (*models.Class, error)
	Update(ctx context.Context, id string, updates map[string]any) error
	Delete(ctx context.Context, id string) error

	GetByCode(ctx context.Context, code string) (*models.Class, error)
	List(ctx context.Context, filters ClassFilters) ([]*models.Class, error)
}

type LevelRepository interface {
	Create(ctx context.Context, level *models.Level) (string, error)
	GetByID(ctx context.Context, id string) (*models.Level, error)
	Update(ctx context.Context, id string, updates map[string]any) error
	Delete(ctx context.Context, id string) error

	// List returns levels ordered ascending by their display order.
	List(ctx context.Context) ([]*models.Level, error)
}

type AssignmentRepository interface {
	Create(ctx context.Context, assignment *models.Assignment) (string, error)
	GetByID(ctx context.Context, id string) (*models.Assignment, error)
	Update(ctx context.Context, id string, updates map[string]any) error
	Delete(ctx context.Context, id string) error

	// GetByClass returns active assignments for a class, newest first.
	GetByClass(ctx context.Context, classID string) ([]*models.Assignment, error)
}

type SubmissionRepository interface {
	Create(ctx context.Context, submission *models.Submission) (string, error)
	GetByID(ctx context.Context, id string) (*models.Submission, error)
	Update(ctx context.Context, id string, updates map[string]any) error
	Delete(ctx context.Context, id string) error

	GetByAssignment(ctx context.Context, assignmentID string) ([]*models.Submission, error)
	GetByStudent(ctx context.Context, studentID string) ([]*models.Submission, error)
}

type ProspectRepository interface {
	Create(ctx context.Context, prospect *models.PotentialStudent) (string, error)
	GetByID(ctx context.Context, id string) (*models.PotentialStudent, error)
	Update(ctx context.Context, id string, updates map[string]any) error
	Delete(ctx context.Context, id string) error

	List(ctx context.Context, filters ProspectFilters) ([]*models.PotentialStudent, error)
}

type RecordRepository interface {
	Create(ctx context.Context, record *models.StudentRecord) (string, error)
	GetByID(ctx context.Context, id string) (*models.StudentRecord, error)
	Update(ctx context.Context, id string, updates map[string]any) error
	Delete(ctx context.Context, id string) error

	GetByStudent(ctx context.Context, studentID string) ([]*models.StudentRecord, error)
	List(ctx context.Context, filters RecordFilters) ([]*models.StudentRecord, error)
}

// Manager bundles one repository per entity over a shared store client.
type Manager interface {
	Users() UserRepository
	Classes() ClassRepository
	Levels() LevelRepository
	Assignments() AssignmentRepository
	Submissions() SubmissionRepository
	Prospects() ProspectRepository
	Records() RecordRepository
}
