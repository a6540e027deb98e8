package document

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/skillup-edu/school-service/internal/store"
)

// The codec maps typed entities onto schema-flexible documents through their
// JSON form. The id and timestamp fields belong to the store, never to the
// payload.

func encode(entity any) (map[string]any, error) {
	raw, err := json.Marshal(entity)
	if err != nil {
		return nil, fmt.Errorf("failed to encode entity: %w", err)
	}
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to encode entity: %w", err)
	}
	delete(data, "id")
	delete(data, "createdAt")
	delete(data, "updatedAt")
	return data, nil
}

func decode[T any](doc store.Document) (*T, error) {
	data := make(map[string]any, len(doc.Data)+3)
	for k, v := range doc.Data {
		data[k] = v
	}
	data["id"] = doc.ID
	data["createdAt"] = doc.CreatedAt.UTC().Format(time.RFC3339Nano)
	data["updatedAt"] = doc.UpdatedAt.UTC().Format(time.RFC3339Nano)

	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s document: %w", doc.Collection, err)
	}
	var entity T
	if err := json.Unmarshal(raw, &entity); err != nil {
		return nil, fmt.Errorf("failed to decode %s document: %w", doc.Collection, err)
	}
	return &entity, nil
}

func decodeAll[T any](docs []store.Document) ([]*T, error) {
	entities := make([]*T, 0, len(docs))
	for _, doc := range docs {
		entity, err := decode[T](doc)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}

// firstOrNil implements the 0-or-1 lookup convention: first match or nil,
// never an error for absence.
func firstOrNil[T any](docs []store.Document) (*T, error) {
	if len(docs) == 0 {
		return nil, nil
	}
	return decode[T](docs[0])
}
