package models

import "time"

type ChangeAction string

const (
	ActionCreate ChangeAction = "create"
	ActionUpdate ChangeAction = "update"
	ActionDelete ChangeAction = "delete"
)

// ChangeLog is one append-only audit record. Timestamp is the caller's
// wall-clock time as an ISO-8601 string, unlike the store's own
// server-assigned createdAt/updatedAt; the two must not be compared without
// normalization. Date is the UTC day derived from Timestamp so day filtering
// stays an equality query.
type ChangeLog struct {
	ID               string         `json:"id"`
	Action           ChangeAction   `json:"action" validate:"required,oneof=create update delete"`
	TargetCollection string         `json:"collection" validate:"required"`
	TargetID         string         `json:"documentId"`
	ActorID          string         `json:"actorId" validate:"required"`
	ActorName        string         `json:"actorName"`
	Changes          map[string]any `json:"changes,omitempty"`
	Timestamp        string         `json:"timestamp"`
	Date             string         `json:"date"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (ChangeLog) Collection() string {
	return "changeLogs"
}
