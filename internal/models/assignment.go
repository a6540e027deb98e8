package models

import "time"

type QuestionType string

const (
	QuestionMCQ   QuestionType = "mcq"
	QuestionFill  QuestionType = "fill"
	QuestionMatch QuestionType = "match"
	QuestionEssay QuestionType = "essay"
)

// MatchPair is one left/right pairing in a match question.
type MatchPair struct {
	Left  string `json:"left"`
	Right string `json:"right"`
}

// Question is one item inside an assignment. IDs must be unique within the
// assignment; Options applies to mcq, Pairs to match.
type Question struct {
	ID      string       `json:"id" validate:"required"`
	Type    QuestionType `json:"type" validate:"required,oneof=mcq fill match essay"`
	Prompt  string       `json:"prompt"`
	Options []string     `json:"options,omitempty"`
	Pairs   []MatchPair  `json:"pairs,omitempty"`
	Points  int          `json:"points"`
}

// Assignment belongs to one class. AnswerKey maps question id to the expected
// answer(s); keeping its keys inside the question-id set is the application's
// responsibility, the store accepts anything.
type Assignment struct {
	ID        string         `json:"id"`
	Title     string         `json:"title" validate:"required,min=1,max=200"`
	ClassID   string         `json:"classId" validate:"required"`
	LevelID   string         `json:"levelId,omitempty"`
	DueDate   *time.Time     `json:"dueDate,omitempty"`
	MaxScore  float64        `json:"maxScore" validate:"min=0"`
	IsActive  bool           `json:"isActive"`
	Questions []Question     `json:"questions" validate:"dive"`
	AnswerKey map[string]any `json:"answerKey,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Assignment) Collection() string {
	return "assignments"
}

// QuestionIDs returns the ids of all questions in declaration order.
func (a *Assignment) QuestionIDs() []string {
	ids := make([]string, 0, len(a.Questions))
	for _, q := range a.Questions {
		ids = append(ids, q.ID)
	}
	return ids
}
