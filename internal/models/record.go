package models

import "time"

// StudentRecord holds one semester's scores for a student in a class.
// FinalGrade is computed by the caller before saving, never derived here.
type StudentRecord struct {
	ID            string  `json:"id"`
	StudentID     string  `json:"studentId" validate:"required"`
	ClassID       string  `json:"classId" validate:"required"`
	LevelID       string  `json:"levelId"`
	Attendance    float64 `json:"attendance" validate:"min=0,max=100"`
	Participation float64 `json:"participation" validate:"min=0,max=100"`
	Homework      float64 `json:"homework" validate:"min=0,max=100"`
	Exam          float64 `json:"exam" validate:"min=0,max=100"`
	FinalGrade    float64 `json:"finalGrade" validate:"min=0,max=100"`
	Semester      string  `json:"semester" validate:"required"`
	Year          int     `json:"year" validate:"required,min=2000,max=2100"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (StudentRecord) Collection() string {
	return "studentRecords"
}
