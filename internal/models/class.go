package models

import "time"

// Class groups students under one teacher at one level. ClassCode is the
// human-readable identifier shown in rosters and exports.
type Class struct {
	ID         string   `json:"id"`
	Name       string   `json:"name" validate:"required,min=1,max=100"`
	ClassCode  string   `json:"classCode" validate:"required,min=2,max=20"`
	LevelID    string   `json:"levelId" validate:"required"`
	TeacherID  string   `json:"teacherId"`
	StudentIDs []string `json:"studentIds"`
	IsActive   bool     `json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Class) Collection() string {
	return "classes"
}
