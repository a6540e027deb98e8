package document

import (
	"context"

	"github.com/skillup-edu/school-service/internal/models"
	"github.com/skillup-edu/school-service/internal/repositories"
	"github.com/skillup-edu/school-service/internal/store"
)

type ProspectDocument struct {
	store store.Store
}

func NewProspectRepository(s store.Store) repositories.ProspectRepository {
	return &ProspectDocument{store: s}
}

func (r *ProspectDocument) Create(ctx context.Context, prospect *models.PotentialStudent) (string, error) {
	data, err := encode(prospect)
	if err != nil {
		return "", err
	}
	return r.store.Create(ctx, models.PotentialStudent{}.Collection(), data)
}

func (r *ProspectDocument) GetByID(ctx context.Context, id string) (*models.PotentialStudent, error) {
	doc, err := r.store.GetByID(ctx, models.PotentialStudent{}.Collection(), id)
	if err != nil || doc == nil {
		return nil, err
	}
	return decode[models.PotentialStudent](*doc)
}

func (r *ProspectDocument) Update(ctx context.Context, id string, updates map[string]any) error {
	return r.store.Update(ctx, models.PotentialStudent{}.Collection(), id, updates)
}

func (r *ProspectDocument) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, models.PotentialStudent{}.Collection(), id)
}

func (r *ProspectDocument) List(ctx context.Context, filters repositories.ProspectFilters) ([]*models.PotentialStudent, error) {
	constraints := store.All()
	if filters.Status != nil {
		constraints = constraints.Where("status", string(*filters.Status))
	}
	constraints = constraints.OrderBy("createdAt", store.Descending)

	docs, err := r.store.Query(ctx, models.PotentialStudent{}.Collection(), constraints)
	if err != nil {
		return nil, err
	}
	return decodeAll[models.PotentialStudent](docs)
}
