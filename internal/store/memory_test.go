package store

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndGetByID(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	id, err := s.Create(ctx, "users", map[string]any{
		"email": "alice@example.com",
		"age":   30,
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	doc, err := s.GetByID(ctx, "users", id)
	require.NoError(t, err)
	require.NotNil(t, doc)

	assert.Equal(t, id, doc.ID)
	assert.Equal(t, "users", doc.Collection)
	assert.Equal(t, "alice@example.com", doc.Data["email"])
	// Numbers come back as float64, the same type a JSON read produces.
	assert.Equal(t, float64(30), doc.Data["age"])
	assert.False(t, doc.CreatedAt.IsZero())
	assert.Equal(t, doc.CreatedAt, doc.UpdatedAt)
}

func TestGetByIDAbsentReturnsNil(t *testing.T) {
	s := NewMemoryStore()

	doc, err := s.GetByID(context.Background(), "users", "no-such-id")
	require.NoError(t, err)
	assert.Nil(t, doc)
}

func TestUpdateMergesAndRestamps(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	id, err := s.Create(ctx, "users", map[string]any{
		"email":  "bob@example.com",
		"status": "potential",
	})
	require.NoError(t, err)

	before, err := s.GetByID(ctx, "users", id)
	require.NoError(t, err)

	err = s.Update(ctx, "users", id, map[string]any{"status": "active"})
	require.NoError(t, err)

	after, err := s.GetByID(ctx, "users", id)
	require.NoError(t, err)

	// Untouched fields survive the merge.
	assert.Equal(t, "bob@example.com", after.Data["email"])
	assert.Equal(t, "active", after.Data["status"])
	assert.Equal(t, before.CreatedAt, after.CreatedAt)
	assert.True(t, after.UpdatedAt.After(before.UpdatedAt),
		"updatedAt must be strictly greater after an update")
}

func TestUpdateMissingDocument(t *testing.T) {
	s := NewMemoryStore()

	err := s.Update(context.Background(), "users", "no-such-id", map[string]any{"x": 1})
	require.Error(t, err)

	assert.True(t, IsWriteError(err))
	assert.True(t, errors.Is(err, ErrMissingDocument))

	var storeErr *Error
	require.True(t, errors.As(err, &storeErr))
	assert.Equal(t, "users", storeErr.Collection)
	assert.Equal(t, KindWrite, storeErr.Kind)
}

func TestDeleteIsIdempotent(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	id, err := s.Create(ctx, "users", map[string]any{"email": "x@example.com"})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, "users", id))
	require.NoError(t, s.Delete(ctx, "users", id))

	doc, err := s.GetByID(ctx, "users", id)
	require.NoError(t, err)
	assert.Nil(t, doc)
}

func TestQueryEqualityFilters(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	for _, u := range []map[string]any{
		{"email": "a@example.com", "role": "student", "status": "active"},
		{"email": "b@example.com", "role": "student", "status": "off"},
		{"email": "c@example.com", "role": "teacher", "status": "active"},
	} {
		_, err := s.Create(ctx, "users", u)
		require.NoError(t, err)
	}

	docs, err := s.Query(ctx, "users", Where("role", "student").Where("status", "active"))
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "a@example.com", docs[0].Data["email"])

	docs, err = s.Query(ctx, "users", Where("role", "nobody"))
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestQuerySortsNumbersNumerically(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	// Inserted out of order; 10 must sort after 2, not before it.
	for _, order := range []int{10, 1, 2} {
		_, err := s.Create(ctx, "levels", map[string]any{
			"name":  fmt.Sprintf("Level %d", order),
			"order": order,
		})
		require.NoError(t, err)
	}

	docs, err := s.Query(ctx, "levels", All().OrderBy("order", Ascending))
	require.NoError(t, err)
	require.Len(t, docs, 3)

	var got []float64
	for _, doc := range docs {
		got = append(got, doc.Data["order"].(float64))
	}
	assert.Equal(t, []float64{1, 2, 10}, got)
}

func TestQuerySortsByCreatedAtDescending(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	var ids []string
	for i := 0; i < 3; i++ {
		id, err := s.Create(ctx, "assignments", map[string]any{"title": fmt.Sprintf("hw-%d", i)})
		require.NoError(t, err)
		ids = append(ids, id)
	}

	docs, err := s.Query(ctx, "assignments", All().OrderBy("createdAt", Descending))
	require.NoError(t, err)
	require.Len(t, docs, 3)
	assert.Equal(t, ids[2], docs[0].ID)
	assert.Equal(t, ids[0], docs[2].ID)
}

func TestBatchCreateAllOrNothing(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	calls := 0
	s.WriteHook = func(collection, id string) error {
		calls++
		if calls == 2 {
			return errors.New("disk full")
		}
		return nil
	}

	ids, err := s.BatchCreate(ctx, "potentialStudents", []map[string]any{
		{"name": "one"},
		{"name": "two"},
		{"name": "three"},
	})
	require.Error(t, err)
	assert.Nil(t, ids)
	assert.True(t, IsWriteError(err))

	s.WriteHook = nil
	docs, err := s.Query(ctx, "potentialStudents", All())
	require.NoError(t, err)
	assert.Empty(t, docs, "a failed batch must leave nothing behind")
}

func TestBatchUpdateMissingIDLeavesStoreUntouched(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	id, err := s.Create(ctx, "users", map[string]any{"status": "active"})
	require.NoError(t, err)

	err = s.BatchUpdate(ctx, "users", []Patch{
		{ID: id, Data: map[string]any{"status": "off"}},
		{ID: "no-such-id", Data: map[string]any{"status": "off"}},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingDocument))

	doc, err := s.GetByID(ctx, "users", id)
	require.NoError(t, err)
	assert.Equal(t, "active", doc.Data["status"])
}

func TestBatchUpdateFailureLeavesEarlierPatchesUnapplied(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	id1, err := s.Create(ctx, "users", map[string]any{"status": "active"})
	require.NoError(t, err)
	id2, err := s.Create(ctx, "users", map[string]any{"status": "active"})
	require.NoError(t, err)

	// Fail on the second patch, after the first has been staged.
	calls := 0
	s.WriteHook = func(collection, id string) error {
		calls++
		if calls == 2 {
			return errors.New("disk full")
		}
		return nil
	}

	err = s.BatchUpdate(ctx, "users", []Patch{
		{ID: id1, Data: map[string]any{"status": "off"}},
		{ID: id2, Data: map[string]any{"status": "off"}},
	})
	require.Error(t, err)
	assert.True(t, IsWriteError(err))

	var storeErr *Error
	require.True(t, errors.As(err, &storeErr))
	assert.Equal(t, "batch_update", storeErr.Op)

	s.WriteHook = nil
	for _, id := range []string{id1, id2} {
		doc, err := s.GetByID(ctx, "users", id)
		require.NoError(t, err)
		assert.Equal(t, "active", doc.Data["status"],
			"a failed batch must leave every document untouched")
	}
}

func TestBatchDelete(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	var ids []string
	for i := 0; i < 3; i++ {
		id, err := s.Create(ctx, "submissions", map[string]any{"n": i})
		require.NoError(t, err)
		ids = append(ids, id)
	}

	require.NoError(t, s.BatchDelete(ctx, "submissions", ids[:2]))

	docs, err := s.Query(ctx, "submissions", All())
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, ids[2], docs[0].ID)
}

func TestCancelledContextIsRejected(t *testing.T) {
	s := NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Create(ctx, "users", map[string]any{"x": 1})
	assert.True(t, IsWriteError(err))

	_, err = s.Query(ctx, "users", All())
	assert.True(t, IsReadError(err))
}
