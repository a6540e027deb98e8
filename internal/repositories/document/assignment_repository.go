package document

import (
	"context"

	"github.com/skillup-edu/school-service/internal/models"
	"github.com/skillup-edu/school-service/internal/repositories"
	"github.com/skillup-edu/school-service/internal/store"
)

type AssignmentDocument struct {
	store store.Store
}

func NewAssignmentRepository(s store.Store) repositories.AssignmentRepository {
	return &AssignmentDocument{store: s}
}

func (r *AssignmentDocument) Create(ctx context.Context, assignment *models.Assignment) (string, error) {
	data, err := encode(assignment)
	if err != nil {
		return "", err
	}
	return r.store.Create(ctx, models.Assignment{}.Collection(), data)
}

func (r *AssignmentDocument) GetByID(ctx context.Context, id string) (*models.Assignment, error) {
	doc, err := r.store.GetByID(ctx, models.Assignment{}.Collection(), id)
	if err != nil || doc == nil {
		return nil, err
	}
	return decode[models.Assignment](*doc)
}

func (r *AssignmentDocument) Update(ctx context.Context, id string, updates map[string]any) error {
	return r.store.Update(ctx, models.Assignment{}.Collection(), id, updates)
}

func (r *AssignmentDocument) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, models.Assignment{}.Collection(), id)
}

// GetByClass lists only active assignments; deactivated ones stay stored but
// drop out of class views.
func (r *AssignmentDocument) GetByClass(ctx context.Context, classID string) ([]*models.Assignment, error) {
	docs, err := r.store.Query(ctx, models.Assignment{}.Collection(),
		store.Where("classId", classID).
			Where("isActive", true).
			OrderBy("createdAt", store.Descending))
	if err != nil {
		return nil, err
	}
	return decodeAll[models.Assignment](docs)
}
