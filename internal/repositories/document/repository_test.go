package document

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillup-edu/school-service/internal/models"
	"github.com/skillup-edu/school-service/internal/repositories"
	"github.com/skillup-edu/school-service/internal/store"
)

func TestUserRoundTrip(t *testing.T) {
	repos := NewManager(store.NewMemoryStore())
	ctx := context.Background()

	id, err := repos.Users().Create(ctx, &models.User{
		ExternalUID: "ext-1",
		Username:    "alice",
		Email:       "alice@example.com",
		Role:        models.RoleStudent,
		Status:      models.UserActive,
		ClassIDs:    []string{"class-1"},
	})
	require.NoError(t, err)

	user, err := repos.Users().GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, user)

	assert.Equal(t, id, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, models.RoleStudent, user.Role)
	assert.Equal(t, []string{"class-1"}, user.ClassIDs)
	assert.False(t, user.CreatedAt.IsZero())
}

func TestUserGetByIDAbsent(t *testing.T) {
	repos := NewManager(store.NewMemoryStore())

	user, err := repos.Users().GetByID(context.Background(), "no-such-id")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestUserLookups(t *testing.T) {
	repos := NewManager(store.NewMemoryStore())
	ctx := context.Background()

	_, err := repos.Users().Create(ctx, &models.User{
		ExternalUID: "ext-42",
		Username:    "bob",
		Email:       "bob@example.com",
		Role:        models.RoleTeacher,
		Status:      models.UserActive,
	})
	require.NoError(t, err)

	t.Run("by email", func(t *testing.T) {
		user, err := repos.Users().GetByEmail(ctx, "bob@example.com")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "bob", user.Username)
	})

	t.Run("by username", func(t *testing.T) {
		user, err := repos.Users().GetByUsername(ctx, "bob")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "bob@example.com", user.Email)
	})

	t.Run("by external uid", func(t *testing.T) {
		user, err := repos.Users().GetByExternalUID(ctx, "ext-42")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "bob", user.Username)
	})

	t.Run("absence is nil, not an error", func(t *testing.T) {
		user, err := repos.Users().GetByEmail(ctx, "nobody@example.com")
		require.NoError(t, err)
		assert.Nil(t, user)
	})
}

func TestDuplicateEmailIsNotRejected(t *testing.T) {
	repos := NewManager(store.NewMemoryStore())
	ctx := context.Background()

	// The store enforces no uniqueness; a second user with the same email
	// is stored alongside the first. Callers guard with a lookup first.
	id1, err := repos.Users().Create(ctx, &models.User{
		Username: "carol",
		Email:    "carol@example.com",
		Role:     models.RoleStudent,
		Status:   models.UserActive,
	})
	require.NoError(t, err)

	id2, err := repos.Users().Create(ctx, &models.User{
		Username: "carol2",
		Email:    "carol@example.com",
		Role:     models.RoleStudent,
		Status:   models.UserActive,
	})
	require.NoError(t, err)
	assert.NotEqual(t, id1, id2)

	user, err := repos.Users().GetByEmail(ctx, "carol@example.com")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Contains(t, []string{id1, id2}, user.ID)
}

func TestUserListFilters(t *testing.T) {
	repos := NewManager(store.NewMemoryStore())
	ctx := context.Background()

	seed := []models.User{
		{Username: "s1", Email: "s1@example.com", Role: models.RoleStudent, Status: models.UserActive},
		{Username: "s2", Email: "s2@example.com", Role: models.RoleStudent, Status: models.UserOff},
		{Username: "t1", Email: "t1@example.com", Role: models.RoleTeacher, Status: models.UserActive},
	}
	for i := range seed {
		_, err := repos.Users().Create(ctx, &seed[i])
		require.NoError(t, err)
	}

	role := models.RoleStudent
	status := models.UserActive
	users, err := repos.Users().List(ctx, repositories.UserFilters{Role: &role, Status: &status})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "s1", users[0].Username)
}

func TestUserUpdateMergesFields(t *testing.T) {
	repos := NewManager(store.NewMemoryStore())
	ctx := context.Background()

	id, err := repos.Users().Create(ctx, &models.User{
		Username: "carol",
		Email:    "carol@example.com",
		Role:     models.RoleStudent,
		Status:   models.UserPotential,
	})
	require.NoError(t, err)

	err = repos.Users().Update(ctx, id, map[string]any{"status": "studying"})
	require.NoError(t, err)

	user, err := repos.Users().GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.UserStudying, user.Status)
	assert.Equal(t, "carol@example.com", user.Email, "untouched fields must survive")
}

func TestLevelsSortedByOrder(t *testing.T) {
	repos := NewManager(store.NewMemoryStore())
	ctx := context.Background()

	fee := 120.0
	for _, l := range []models.Level{
		{Name: "Advanced", Order: 10, IsActive: true},
		{Name: "Beginner", Order: 1, IsActive: true, MonthlyFee: &fee},
		{Name: "Intermediate", Order: 2, IsActive: true},
	} {
		level := l
		_, err := repos.Levels().Create(ctx, &level)
		require.NoError(t, err)
	}

	levels, err := repos.Levels().List(ctx)
	require.NoError(t, err)
	require.Len(t, levels, 3)

	var names []string
	for _, l := range levels {
		names = append(names, l.Name)
	}
	assert.Equal(t, []string{"Beginner", "Intermediate", "Advanced"}, names)
	require.NotNil(t, levels[0].MonthlyFee)
	assert.Equal(t, 120.0, *levels[0].MonthlyFee)
}

func TestClassGetByCode(t *testing.T) {
	repos := NewManager(store.NewMemoryStore())
	ctx := context.Background()

	_, err := repos.Classes().Create(ctx, &models.Class{
		Name:      "English A1",
		ClassCode: "ENG-A1",
		LevelID:   "level-1",
		IsActive:  true,
	})
	require.NoError(t, err)

	class, err := repos.Classes().GetByCode(ctx, "ENG-A1")
	require.NoError(t, err)
	require.NotNil(t, class)
	assert.Equal(t, "English A1", class.Name)

	class, err = repos.Classes().GetByCode(ctx, "NOPE")
	require.NoError(t, err)
	assert.Nil(t, class)
}

func TestAssignmentsByClassExcludesInactive(t *testing.T) {
	repos := NewManager(store.NewMemoryStore())
	ctx := context.Background()

	due := time.Now().Add(24 * time.Hour)
	seed := []models.Assignment{
		{Title: "Old homework", ClassID: "class-1", MaxScore: 10, IsActive: false},
		{Title: "First homework", ClassID: "class-1", MaxScore: 10, IsActive: true, DueDate: &due},
		{Title: "Second homework", ClassID: "class-1", MaxScore: 20, IsActive: true},
		{Title: "Other class", ClassID: "class-2", MaxScore: 10, IsActive: true},
	}
	for i := range seed {
		_, err := repos.Assignments().Create(ctx, &seed[i])
		require.NoError(t, err)
	}

	assignments, err := repos.Assignments().GetByClass(ctx, "class-1")
	require.NoError(t, err)
	require.Len(t, assignments, 2)

	// Newest first.
	assert.Equal(t, "Second homework", assignments[0].Title)
	assert.Equal(t, "First homework", assignments[1].Title)
}

func TestAssignmentQuestionsRoundTrip(t *testing.T) {
	repos := NewManager(store.NewMemoryStore())
	ctx := context.Background()

	id, err := repos.Assignments().Create(ctx, &models.Assignment{
		Title:    "Grammar quiz",
		ClassID:  "class-1",
		MaxScore: 10,
		IsActive: true,
		Questions: []models.Question{
			{ID: "q1", Type: models.QuestionMCQ, Prompt: "Pick one", Options: []string{"a", "b"}, Points: 5},
			{ID: "q2", Type: models.QuestionMatch, Pairs: []models.MatchPair{{Left: "cat", Right: "chat"}}, Points: 5},
		},
		AnswerKey: map[string]any{"q1": "a"},
	})
	require.NoError(t, err)

	assignment, err := repos.Assignments().GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, assignment)

	require.Len(t, assignment.Questions, 2)
	assert.Equal(t, models.QuestionMCQ, assignment.Questions[0].Type)
	assert.Equal(t, []string{"a", "b"}, assignment.Questions[0].Options)
	assert.Equal(t, "chat", assignment.Questions[1].Pairs[0].Right)
	assert.Equal(t, "a", assignment.AnswerKey["q1"])
	assert.Equal(t, []string{"q1", "q2"}, assignment.QuestionIDs())
}

func TestEnrollmentChain(t *testing.T) {
	repos := NewManager(store.NewMemoryStore())
	ctx := context.Background()

	levelID, err := repos.Levels().Create(ctx, &models.Level{
		Name:     "Beginner",
		Order:    1,
		IsActive: true,
	})
	require.NoError(t, err)

	classID, err := repos.Classes().Create(ctx, &models.Class{
		Name:      "Morning Batch",
		ClassCode: "BEG-01",
		LevelID:   levelID,
		IsActive:  true,
	})
	require.NoError(t, err)

	userID, err := repos.Users().Create(ctx, &models.User{
		Username: "a",
		Email:    "a@x.com",
		Role:     models.RoleStudent,
		Status:   models.UserActive,
		ClassIDs: []string{classID},
	})
	require.NoError(t, err)

	class, err := repos.Classes().GetByCode(ctx, "BEG-01")
	require.NoError(t, err)
	require.NotNil(t, class)
	assert.Equal(t, classID, class.ID)

	role := models.RoleStudent
	students, err := repos.Users().List(ctx, repositories.UserFilters{Role: &role})
	require.NoError(t, err)

	var ids []string
	for _, u := range students {
		ids = append(ids, u.ID)
	}
	assert.Contains(t, ids, userID)
}

// The store accepts an answer key that references no question; catching that
// is the validator's job, not the repository's.
func TestStoreAcceptsDanglingAnswerKey(t *testing.T) {
	repos := NewManager(store.NewMemoryStore())
	ctx := context.Background()

	id, err := repos.Assignments().Create(ctx, &models.Assignment{
		Title:    "Unchecked",
		ClassID:  "class-1",
		MaxScore: 10,
		IsActive: true,
		Questions: []models.Question{
			{ID: "q1", Type: models.QuestionMCQ, Options: []string{"A", "B"}},
			{ID: "q2", Type: models.QuestionFill},
		},
		AnswerKey: map[string]any{"q1": "B", "q2": "Paris", "q9": "dangling"},
	})
	require.NoError(t, err)

	assignment, err := repos.Assignments().GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "dangling", assignment.AnswerKey["q9"])
}

func TestSubmissionLookups(t *testing.T) {
	repos := NewManager(store.NewMemoryStore())
	ctx := context.Background()

	seed := []models.Submission{
		{AssignmentID: "hw-1", StudentID: "stu-1", ClassID: "class-1", Status: models.SubmissionSubmitted},
		{AssignmentID: "hw-1", StudentID: "stu-2", ClassID: "class-1", Status: models.SubmissionLate},
		{AssignmentID: "hw-2", StudentID: "stu-1", ClassID: "class-1", Status: models.SubmissionSubmitted},
	}
	for i := range seed {
		_, err := repos.Submissions().Create(ctx, &seed[i])
		require.NoError(t, err)
	}

	byAssignment, err := repos.Submissions().GetByAssignment(ctx, "hw-1")
	require.NoError(t, err)
	assert.Len(t, byAssignment, 2)

	byStudent, err := repos.Submissions().GetByStudent(ctx, "stu-1")
	require.NoError(t, err)
	assert.Len(t, byStudent, 2)
}

func TestRecordFilters(t *testing.T) {
	repos := NewManager(store.NewMemoryStore())
	ctx := context.Background()

	seed := []models.StudentRecord{
		{StudentID: "stu-1", ClassID: "class-1", Semester: "spring", Year: 2026, FinalGrade: 88},
		{StudentID: "stu-2", ClassID: "class-1", Semester: "fall", Year: 2025, FinalGrade: 75},
		{StudentID: "stu-1", ClassID: "class-2", Semester: "spring", Year: 2026, FinalGrade: 91},
	}
	for i := range seed {
		_, err := repos.Records().Create(ctx, &seed[i])
		require.NoError(t, err)
	}

	classID := "class-1"
	semester := "spring"
	year := 2026
	records, err := repos.Records().List(ctx, repositories.RecordFilters{
		ClassID:  &classID,
		Semester: &semester,
		Year:     &year,
	})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "stu-1", records[0].StudentID)
	assert.Equal(t, 88.0, records[0].FinalGrade)

	byStudent, err := repos.Records().GetByStudent(ctx, "stu-1")
	require.NoError(t, err)
	assert.Len(t, byStudent, 2)
}
