package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/skillup-edu/school-service/internal/errors"
	"github.com/skillup-edu/school-service/internal/models"
)

func validAssignment() *models.Assignment {
	return &models.Assignment{
		Title:    "Grammar quiz",
		ClassID:  "class-1",
		MaxScore: 10,
		IsActive: true,
		Questions: []models.Question{
			{ID: "q1", Type: models.QuestionMCQ, Prompt: "Pick one", Options: []string{"a", "b"}, Points: 5},
			{ID: "q2", Type: models.QuestionEssay, Prompt: "Write", Points: 5},
		},
		AnswerKey: map[string]any{"q1": "a"},
	}
}

func TestValidateAssignmentAccepted(t *testing.T) {
	v := New()
	assert.NoError(t, v.ValidateAssignment(validAssignment()))
}

func TestValidateAssignmentRejections(t *testing.T) {
	v := New()

	tests := []struct {
		name    string
		mutate  func(a *models.Assignment)
		field   string
		message string
	}{
		{
			name: "dangling answer key",
			mutate: func(a *models.Assignment) {
				a.AnswerKey["q9"] = "x"
			},
			field:   "answerKey",
			message: `references unknown question id "q9"`,
		},
		{
			name: "duplicate question ids",
			mutate: func(a *models.Assignment) {
				a.Questions[1].ID = "q1"
				// The key still resolves, only the duplicate id is flagged.
			},
			field:   "questions[1].id",
			message: "duplicates another question id",
		},
		{
			name: "mcq with one option",
			mutate: func(a *models.Assignment) {
				a.Questions[0].Options = []string{"only"}
			},
			field:   "questions[0].options",
			message: "mcq questions need at least two options",
		},
		{
			name: "match without pairs",
			mutate: func(a *models.Assignment) {
				a.Questions[1] = models.Question{ID: "q2", Type: models.QuestionMatch, Points: 5}
			},
			field:   "questions[1].pairs",
			message: "match questions need at least one pair",
		},
		{
			name: "negative points",
			mutate: func(a *models.Assignment) {
				a.Questions[1].Points = -1
			},
			field:   "questions[1].points",
			message: "must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := validAssignment()
			tt.mutate(a)

			err := v.ValidateAssignment(a)
			require.Error(t, err)

			errs, ok := err.(apperrors.ValidationErrors)
			require.True(t, ok, "expected ValidationErrors, got %T", err)

			found := false
			for _, ve := range errs {
				if ve.Field == tt.field {
					found = true
					assert.Contains(t, ve.Message, tt.message)
				}
			}
			assert.True(t, found, "no violation reported for %s in %v", tt.field, errs)
		})
	}
}

func TestValidateAssignmentStructTags(t *testing.T) {
	v := New()

	a := validAssignment()
	a.Title = ""
	assert.Error(t, v.ValidateAssignment(a))

	a = validAssignment()
	a.MaxScore = -1
	assert.Error(t, v.ValidateAssignment(a))
}

func TestValidateUserStruct(t *testing.T) {
	v := New()

	user := &models.User{
		Username: "alice",
		Email:    "alice@example.com",
		Role:     models.RoleStudent,
		Status:   models.UserActive,
	}
	assert.NoError(t, v.ValidateStruct(user))

	user.Email = "not-an-email"
	assert.Error(t, v.ValidateStruct(user))

	user.Email = "alice@example.com"
	user.Role = "principal"
	assert.Error(t, v.ValidateStruct(user))
}

func TestValidateProspectStruct(t *testing.T) {
	v := New()

	prospect := &models.PotentialStudent{
		Name:   "Lead",
		Email:  "lead@example.com",
		Source: models.SourceWebsite,
		Status: models.ProspectPending,
	}
	assert.NoError(t, v.ValidateStruct(prospect))

	prospect.Source = "billboard"
	assert.Error(t, v.ValidateStruct(prospect))
}
