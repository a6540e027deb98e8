package models

import "time"

type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleTeacher UserRole = "teacher"
	RoleAdmin   UserRole = "admin"
	RoleStaff   UserRole = "staff"
)

type UserStatus string

const (
	UserActive    UserStatus = "active"
	UserPotential UserStatus = "potential"
	UserContacted UserStatus = "contacted"
	UserStudying  UserStatus = "studying"
	UserPostponed UserStatus = "postponed"
	UserOff       UserStatus = "off"
	UserAlumni    UserStatus = "alumni"
)

// User is an account in the school platform. ExternalUID links it to the
// identity provider; email uniqueness is a data-entry convention, the store
// does not enforce it.
type User struct {
	ID          string     `json:"id"`
	ExternalUID string     `json:"externalUid"`
	Username    string     `json:"username" validate:"required,min=2,max=50"`
	Email       string     `json:"email" validate:"required,email"`
	Role        UserRole   `json:"role" validate:"required,oneof=student teacher admin staff"`
	Status      UserStatus `json:"status" validate:"required,oneof=active potential contacted studying postponed off alumni"`
	ClassIDs    []string   `json:"classIds"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (User) Collection() string {
	return "users"
}
