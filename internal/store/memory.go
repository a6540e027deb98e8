package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is a map-backed Store with the same contract as PostgresStore.
// It backs tests and test-isolated environments; payloads are JSON-normalized
// so field values carry the same types a JSONB read would produce.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]Document
	lastStamp   time.Time

	// WriteHook, when set, runs before every staged write. Returning an
	// error aborts the whole operation, leaving batches untouched. Tests use
	// it to simulate mid-batch failures.
	WriteHook func(collection, id string) error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections: make(map[string]map[string]Document),
	}
}

func (s *MemoryStore) Create(ctx context.Context, collection string, data map[string]any) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", newWriteError("create", collection, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	if err := s.hook(collection, id); err != nil {
		return "", newWriteError("create", collection, err)
	}

	now := s.stamp()
	s.bucket(collection)[id] = Document{
		ID:         id,
		Collection: collection,
		Data:       normalizeData(data),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	return id, nil
}

func (s *MemoryStore) GetByID(ctx context.Context, collection, id string) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, newReadError("get", collection, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.bucketRead(collection)[id]
	if !ok {
		return nil, nil
	}
	copied := copyDocument(doc)
	return &copied, nil
}

func (s *MemoryStore) Update(ctx context.Context, collection, id string, partial map[string]any) error {
	if err := ctx.Err(); err != nil {
		return newWriteError("update", collection, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.merge(collection, id, partial)
}

func (s *MemoryStore) Delete(ctx context.Context, collection, id string) error {
	if err := ctx.Err(); err != nil {
		return newWriteError("delete", collection, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.hook(collection, id); err != nil {
		return newWriteError("delete", collection, err)
	}
	delete(s.bucket(collection), id)
	return nil
}

func (s *MemoryStore) Query(ctx context.Context, collection string, constraints Constraints) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, newReadError("query", collection, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var docs []Document
	for _, doc := range s.bucketRead(collection) {
		if matchesFilters(doc, constraints.Filters) {
			docs = append(docs, copyDocument(doc))
		}
	}

	if srt := constraints.Sort; srt != nil {
		sort.SliceStable(docs, func(i, j int) bool {
			cmp := compareDocuments(docs[i], docs[j], srt.Field)
			if srt.Direction == Descending {
				return cmp > 0
			}
			return cmp < 0
		})
	}
	return docs, nil
}

func (s *MemoryStore) BatchCreate(ctx context.Context, collection string, docs []map[string]any) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, newWriteError("batch_create", collection, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Stage everything first so a failure leaves the store untouched.
	now := s.stamp()
	staged := make([]Document, 0, len(docs))
	for _, data := range docs {
		id := uuid.NewString()
		if err := s.hook(collection, id); err != nil {
			return nil, newWriteError("batch_create", collection, err)
		}
		staged = append(staged, Document{
			ID:         id,
			Collection: collection,
			Data:       normalizeData(data),
			CreatedAt:  now,
			UpdatedAt:  now,
		})
	}

	ids := make([]string, 0, len(staged))
	bucket := s.bucket(collection)
	for _, doc := range staged {
		bucket[doc.ID] = doc
		ids = append(ids, doc.ID)
	}
	return ids, nil
}

func (s *MemoryStore) BatchUpdate(ctx context.Context, collection string, patches []Patch) error {
	if err := ctx.Err(); err != nil {
		return newWriteError("batch_update", collection, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Stage merged copies first so a failure leaves the store untouched.
	bucket := s.bucket(collection)
	staged := make([]Document, 0, len(patches))
	for _, patch := range patches {
		if err := s.hook(collection, patch.ID); err != nil {
			return newWriteError("batch_update", collection, err)
		}
		doc, ok := bucket[patch.ID]
		if !ok {
			err := fmt.Errorf("%w: %s/%s", ErrMissingDocument, collection, patch.ID)
			return newWriteError("batch_update", collection, err)
		}
		merged := copyDocument(doc)
		if merged.Data == nil {
			merged.Data = map[string]any{}
		}
		for k, v := range normalizeData(patch.Data) {
			merged.Data[k] = v
		}
		staged = append(staged, merged)
	}

	now := s.stamp()
	for _, doc := range staged {
		doc.UpdatedAt = now
		bucket[doc.ID] = doc
	}
	return nil
}

func (s *MemoryStore) BatchDelete(ctx context.Context, collection string, ids []string) error {
	if err := ctx.Err(); err != nil {
		return newWriteError("batch_delete", collection, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range ids {
		if err := s.hook(collection, id); err != nil {
			return newWriteError("batch_delete", collection, err)
		}
	}
	bucket := s.bucket(collection)
	for _, id := range ids {
		delete(bucket, id)
	}
	return nil
}

// merge requires s.mu to be held for writing.
func (s *MemoryStore) merge(collection, id string, partial map[string]any) error {
	if err := s.hook(collection, id); err != nil {
		return newWriteError("update", collection, err)
	}

	bucket := s.bucket(collection)
	doc, ok := bucket[id]
	if !ok {
		err := fmt.Errorf("%w: %s/%s", ErrMissingDocument, collection, id)
		return newWriteError("update", collection, err)
	}

	if doc.Data == nil {
		doc.Data = map[string]any{}
	}
	for k, v := range normalizeData(partial) {
		doc.Data[k] = v
	}
	doc.UpdatedAt = s.stamp()
	bucket[id] = doc
	return nil
}

func (s *MemoryStore) hook(collection, id string) error {
	if s.WriteHook == nil {
		return nil
	}
	return s.WriteHook(collection, id)
}

func (s *MemoryStore) bucket(collection string) map[string]Document {
	b, ok := s.collections[collection]
	if !ok {
		b = make(map[string]Document)
		s.collections[collection] = b
	}
	return b
}

func (s *MemoryStore) bucketRead(collection string) map[string]Document {
	return s.collections[collection]
}

// stamp returns a strictly increasing time so updatedAt comparisons hold
// even for back-to-back writes.
func (s *MemoryStore) stamp() time.Time {
	now := time.Now().UTC()
	if !now.After(s.lastStamp) {
		now = s.lastStamp.Add(time.Microsecond)
	}
	s.lastStamp = now
	return now
}

func copyDocument(doc Document) Document {
	doc.Data = normalizeData(doc.Data)
	return doc
}

func matchesFilters(doc Document, filters []Filter) bool {
	for _, f := range filters {
		var got any
		switch f.Field {
		case "createdAt":
			got = doc.CreatedAt
		case "updatedAt":
			got = doc.UpdatedAt
		default:
			got = doc.Data[f.Field]
		}
		if jsonValueText(got) != jsonValueText(normalizeValue(f.Value)) {
			return false
		}
	}
	return true
}

// compareDocuments orders two documents on one field the way JSONB value
// ordering would: numbers numerically, everything else by text.
func compareDocuments(a, b Document, field string) int {
	switch field {
	case "createdAt":
		return a.CreatedAt.Compare(b.CreatedAt)
	case "updatedAt":
		return a.UpdatedAt.Compare(b.UpdatedAt)
	}

	av, bv := a.Data[field], b.Data[field]
	an, aok := av.(float64)
	bn, bok := bv.(float64)
	if aok && bok {
		switch {
		case an < bn:
			return -1
		case an > bn:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(jsonValueText(av), jsonValueText(bv))
}

func normalizeValue(value any) any {
	raw, err := json.Marshal(value)
	if err != nil {
		return value
	}
	var normalized any
	if err := json.Unmarshal(raw, &normalized); err != nil {
		return value
	}
	return normalized
}

func jsonValueText(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case time.Time:
		return v.UTC().Format(time.RFC3339Nano)
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(raw)
	}
}
