package models

import "time"

type ProspectSource string

const (
	SourceAdminRegistration ProspectSource = "admin_registration"
	SourceWebsite           ProspectSource = "website"
	SourceReferral          ProspectSource = "referral"
	SourceOther             ProspectSource = "other"
)

type ProspectStatus string

const (
	ProspectPending       ProspectStatus = "pending"
	ProspectContacted     ProspectStatus = "contacted"
	ProspectEnrolled      ProspectStatus = "enrolled"
	ProspectNotInterested ProspectStatus = "not_interested"
)

// PotentialStudent is a lead that may later be promoted to a User. Promotion
// is an explicit admin action, never automatic.
type PotentialStudent struct {
	ID         string         `json:"id"`
	Name       string         `json:"name" validate:"required,min=1,max=100"`
	Email      string         `json:"email" validate:"required,email"`
	Source     ProspectSource `json:"source" validate:"required,oneof=admin_registration website referral other"`
	Status     ProspectStatus `json:"status" validate:"required,oneof=pending contacted enrolled not_interested"`
	AssignedTo string         `json:"assignedTo,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (PotentialStudent) Collection() string {
	return "potentialStudents"
}
