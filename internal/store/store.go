package store

import (
	"context"
	"time"
)

// Document is one record in a named collection. ID, CreatedAt and UpdatedAt
// are assigned by the store; Data holds every other field.
type Document struct {
	ID         string         `json:"id"`
	Collection string         `json:"collection"`
	Data       map[string]any `json:"data"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// Patch is one partial update inside a batch.
type Patch struct {
	ID   string         `json:"id"`
	Data map[string]any `json:"data"`
}

type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// Filter is a single equality constraint on a document field.
type Filter struct {
	Field string `json:"field"`
	Value any    `json:"value"`
}

// Sort orders results on one field. The fields "createdAt" and "updatedAt"
// refer to the store-assigned timestamps.
type Sort struct {
	Field     string    `json:"field"`
	Direction Direction `json:"direction"`
}

// Constraints is an ordered set of equality filters plus at most one sort.
// There is no pagination or cursor support.
type Constraints struct {
	Filters []Filter `json:"filters"`
	Sort    *Sort    `json:"sort,omitempty"`
}

// Where starts a constraint chain with one equality filter.
func Where(field string, value any) Constraints {
	return Constraints{}.Where(field, value)
}

// All is the empty constraint set.
func All() Constraints {
	return Constraints{}
}

func (c Constraints) Where(field string, value any) Constraints {
	c.Filters = append(c.Filters, Filter{Field: field, Value: value})
	return c
}

func (c Constraints) OrderBy(field string, dir Direction) Constraints {
	c.Sort = &Sort{Field: field, Direction: dir}
	return c
}

// Store is a uniform surface over a document database's primitives,
// independent of entity shape. Implementations never retry; every underlying
// failure is wrapped into *Error and returned. Point lookups signal absence
// with a nil document, not an error.
type Store interface {
	// Create inserts data under a store-assigned id and stamps
	// createdAt/updatedAt.
	Create(ctx context.Context, collection string, data map[string]any) (string, error)

	// GetByID returns the document or nil when absent.
	GetByID(ctx context.Context, collection, id string) (*Document, error)

	// Update merges partial fields into an existing document and re-stamps
	// updatedAt. Updating a missing document is a write error.
	Update(ctx context.Context, collection, id string, partial map[string]any) error

	// Delete removes a document. Deleting an absent id is not an error.
	Delete(ctx context.Context, collection, id string) error

	// Query runs the equality filters and optional sort against one
	// collection.
	Query(ctx context.Context, collection string, constraints Constraints) ([]Document, error)

	// BatchCreate inserts all documents in one transaction; all succeed or
	// none do.
	BatchCreate(ctx context.Context, collection string, docs []map[string]any) ([]string, error)

	// BatchUpdate applies all patches in one transaction.
	BatchUpdate(ctx context.Context, collection string, patches []Patch) error

	// BatchDelete removes all ids in one transaction.
	BatchDelete(ctx context.Context, collection string, ids []string) error
}
