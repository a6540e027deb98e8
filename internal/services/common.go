package services

// Actor identifies who performed an operation, for audit entries and events.
type Actor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
