package document

import (
	"context"

	"github.com/skillup-edu/school-service/internal/models"
	"github.com/skillup-edu/school-service/internal/repositories"
	"github.com/skillup-edu/school-service/internal/store"
)

type ClassDocument struct {
	store store.Store
}

func NewClassRepository(s store.Store) repositories.ClassRepository {
	return &ClassDocument{store: s}
}

func (r *ClassDocument) Create(ctx context.Context, class *models.Class) (string, error) {
	data, err := encode(class)
	if err != nil {
		return "", err
	}
	return r.store.Create(ctx, models.Class{}.Collection(), data)
}

func (r *ClassDocument) GetByID(ctx context.Context, id string) (*models.Class, error) {
	doc, err := r.store.GetByID(ctx, models.Class{}.Collection(), id)
	if err != nil || doc == nil {
		return nil, err
	}
	return decode[models.Class](*doc)
}

func (r *ClassDocument) Update(ctx context.Context, id string, updates map[string]any) error {
	return r.store.Update(ctx, models.Class{}.Collection(), id, updates)
}

func (r *ClassDocument) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, models.Class{}.Collection(), id)
}

func (r *ClassDocument) GetByCode(ctx context.Context, code string) (*models.Class, error) {
	docs, err := r.store.Query(ctx, models.Class{}.Collection(), store.Where("classCode", code))
	if err != nil {
		return nil, err
	}
	return firstOrNil[models.Class](docs)
}

func (r *ClassDocument) List(ctx context.Context, filters repositories.ClassFilters) ([]*models.Class, error) {
	constraints := store.All()
	if filters.TeacherID != nil {
		constraints = constraints.Where("teacherId", *filters.TeacherID)
	}
	if filters.IsActive != nil {
		constraints = constraints.Where("isActive", *filters.IsActive)
	}
	constraints = constraints.OrderBy("createdAt", store.Descending)

	docs, err := r.store.Query(ctx, models.Class{}.Collection(), constraints)
	if err != nil {
		return nil, err
	}
	return decodeAll[models.Class](docs)
}
