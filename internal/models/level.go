package models

import "time"

// Level is a curriculum tier. Order drives display sorting and need not be
// contiguous across levels.
type Level struct {
	ID         string   `json:"id"`
	Name       string   `json:"name" validate:"required,min=1,max=100"`
	Order      int      `json:"order" validate:"min=0"`
	IsActive   bool     `json:"isActive"`
	MonthlyFee *float64 `json:"monthlyFee,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Level) Collection() string {
	return "levels"
}
