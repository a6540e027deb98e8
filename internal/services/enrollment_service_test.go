package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillup-edu/school-service/internal/audit"
	"github.com/skillup-edu/school-service/internal/events"
	"github.com/skillup-edu/school-service/internal/models"
	"github.com/skillup-edu/school-service/internal/repositories"
	"github.com/skillup-edu/school-service/internal/repositories/document"
	"github.com/skillup-edu/school-service/internal/store"
	"github.com/skillup-edu/school-service/internal/validator"
)

type enrollmentFixture struct {
	service   *enrollmentService
	repos     repositories.Manager
	store     *store.MemoryStore
	auditor   *audit.Logger
	publisher *events.MockEventPublisher
}

func newEnrollmentFixture(t *testing.T) *enrollmentFixture {
	t.Helper()

	memStore := store.NewMemoryStore()
	repos := document.NewManager(memStore)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	publisher := events.NewMockEventPublisher(logger)
	auditor := audit.NewLogger(memStore)

	return &enrollmentFixture{
		service: &enrollmentService{
			repos:     repos,
			store:     memStore,
			auditor:   auditor,
			publisher: publisher,
			logger:    logger,
			validator: validator.New(),
			now:       time.Now,
		},
		repos:     repos,
		store:     memStore,
		auditor:   auditor,
		publisher: publisher,
	}
}

func TestPromoteProspect(t *testing.T) {
	f := newEnrollmentFixture(t)
	ctx := context.Background()

	prospectID, err := f.repos.Prospects().Create(ctx, &models.PotentialStudent{
		Name:   "Dana Lead",
		Email:  "dana@example.com",
		Source: models.SourceWebsite,
		Status: models.ProspectContacted,
	})
	require.NoError(t, err)

	user, err := f.service.PromoteProspect(ctx, prospectID, "dana", "ext-dana", Actor{ID: "admin-1", Name: "Admin"})
	require.NoError(t, err)
	require.NotNil(t, user)

	assert.Equal(t, models.RoleStudent, user.Role)
	assert.Equal(t, models.UserActive, user.Status)
	assert.Equal(t, "dana@example.com", user.Email)
	assert.NotEmpty(t, user.ID)

	// The prospect is marked enrolled, not deleted.
	prospect, err := f.repos.Prospects().GetByID(ctx, prospectID)
	require.NoError(t, err)
	assert.Equal(t, models.ProspectEnrolled, prospect.Status)

	// Two audit entries: the user create and the prospect update.
	logs, err := f.auditor.GetAuditLogs(ctx, audit.LogQuery{ActorID: "admin-1"})
	require.NoError(t, err)
	assert.Len(t, logs, 2)

	published := f.publisher.GetPublishedEvents()
	require.Len(t, published, 1)
	assert.Equal(t, events.EventProspectEnrolled, published[0].Type)
	payload := published[0].Data.(events.ProspectEnrolledEvent)
	assert.Equal(t, prospectID, payload.ProspectID)
	assert.Equal(t, user.ID, payload.UserID)
}

func TestPromoteProspectGuards(t *testing.T) {
	f := newEnrollmentFixture(t)
	ctx := context.Background()

	t.Run("unknown prospect", func(t *testing.T) {
		_, err := f.service.PromoteProspect(ctx, "no-such-id", "x", "ext-x", Actor{})
		assert.ErrorIs(t, err, ErrProspectNotFound)
	})

	t.Run("already enrolled", func(t *testing.T) {
		prospectID, err := f.repos.Prospects().Create(ctx, &models.PotentialStudent{
			Name:   "Done Deal",
			Email:  "done@example.com",
			Source: models.SourceReferral,
			Status: models.ProspectEnrolled,
		})
		require.NoError(t, err)

		_, err = f.service.PromoteProspect(ctx, prospectID, "done", "ext-done", Actor{})
		assert.ErrorIs(t, err, ErrProspectAlreadyEnrolled)
	})
}

func TestAssignStudentToClass(t *testing.T) {
	f := newEnrollmentFixture(t)
	ctx := context.Background()

	studentID, err := f.repos.Users().Create(ctx, &models.User{
		Username: "student",
		Email:    "student@example.com",
		Role:     models.RoleStudent,
		Status:   models.UserActive,
		ClassIDs: []string{"class-old"},
	})
	require.NoError(t, err)

	classID, err := f.repos.Classes().Create(ctx, &models.Class{
		Name:       "Beginner A",
		ClassCode:  "BEG-A",
		LevelID:    "level-1",
		StudentIDs: []string{},
		IsActive:   true,
	})
	require.NoError(t, err)

	err = f.service.AssignStudentToClass(ctx, studentID, classID, Actor{ID: "admin-1"})
	require.NoError(t, err)

	student, err := f.repos.Users().GetByID(ctx, studentID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"class-old", classID}, student.ClassIDs)

	class, err := f.repos.Classes().GetByID(ctx, classID)
	require.NoError(t, err)
	assert.Equal(t, []string{studentID}, class.StudentIDs)

	// Assigning twice must not duplicate either side.
	require.NoError(t, f.service.AssignStudentToClass(ctx, studentID, classID, Actor{ID: "admin-1"}))

	student, err = f.repos.Users().GetByID(ctx, studentID)
	require.NoError(t, err)
	assert.Len(t, student.ClassIDs, 2)

	class, err = f.repos.Classes().GetByID(ctx, classID)
	require.NoError(t, err)
	assert.Len(t, class.StudentIDs, 1)

	published := f.publisher.GetPublishedEvents()
	require.NotEmpty(t, published)
	assert.Equal(t, events.EventStudentAssigned, published[0].Type)
	payload := published[0].Data.(events.StudentAssignedEvent)
	assert.Equal(t, "BEG-A", payload.ClassCode)
}

func TestAssignStudentToClassGuards(t *testing.T) {
	f := newEnrollmentFixture(t)
	ctx := context.Background()

	classID, err := f.repos.Classes().Create(ctx, &models.Class{
		Name:      "Beginner A",
		ClassCode: "BEG-A",
		LevelID:   "level-1",
	})
	require.NoError(t, err)

	err = f.service.AssignStudentToClass(ctx, "no-such-student", classID, Actor{})
	assert.ErrorIs(t, err, ErrStudentNotFound)

	studentID, err := f.repos.Users().Create(ctx, &models.User{
		Username: "student",
		Email:    "student@example.com",
		Role:     models.RoleStudent,
		Status:   models.UserActive,
	})
	require.NoError(t, err)

	err = f.service.AssignStudentToClass(ctx, studentID, "no-such-class", Actor{})
	assert.ErrorIs(t, err, ErrClassNotFound)
}

func TestImportProspects(t *testing.T) {
	f := newEnrollmentFixture(t)
	ctx := context.Background()

	ids, err := f.service.ImportProspects(ctx, []models.PotentialStudent{
		{Name: "One", Email: "one@example.com", Source: models.SourceWebsite},
		{Name: "Two", Email: "two@example.com", Source: models.SourceReferral, Status: models.ProspectContacted},
	}, Actor{ID: "admin-1"})
	require.NoError(t, err)
	require.Len(t, ids, 2)

	first, err := f.repos.Prospects().GetByID(ctx, ids[0])
	require.NoError(t, err)
	assert.Equal(t, models.ProspectPending, first.Status, "missing status defaults to pending")

	second, err := f.repos.Prospects().GetByID(ctx, ids[1])
	require.NoError(t, err)
	assert.Equal(t, models.ProspectContacted, second.Status)

	logs, err := f.auditor.GetAuditLogs(ctx, audit.LogQuery{ActorID: "admin-1"})
	require.NoError(t, err)
	assert.Len(t, logs, 2)
}

func TestImportProspectsAllOrNothing(t *testing.T) {
	f := newEnrollmentFixture(t)
	ctx := context.Background()

	calls := 0
	f.store.WriteHook = func(collection, id string) error {
		calls++
		if calls == 2 {
			return errors.New("write failed")
		}
		return nil
	}

	_, err := f.service.ImportProspects(ctx, []models.PotentialStudent{
		{Name: "One", Email: "one@example.com", Source: models.SourceWebsite},
		{Name: "Two", Email: "two@example.com", Source: models.SourceWebsite},
	}, Actor{ID: "admin-1"})
	require.Error(t, err)

	f.store.WriteHook = nil
	prospects, err := f.repos.Prospects().List(ctx, repositories.ProspectFilters{})
	require.NoError(t, err)
	assert.Empty(t, prospects, "a failed import must leave no partial rows")
}

func TestImportProspectsValidation(t *testing.T) {
	f := newEnrollmentFixture(t)

	_, err := f.service.ImportProspects(context.Background(), []models.PotentialStudent{
		{Name: "Bad", Email: "not-an-email", Source: models.SourceWebsite},
	}, Actor{})
	assert.Error(t, err)
}
