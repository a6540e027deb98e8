package document

import (
	"context"

	"github.com/skillup-edu/school-service/internal/models"
	"github.com/skillup-edu/school-service/internal/repositories"
	"github.com/skillup-edu/school-service/internal/store"
)

type LevelDocument struct {
	store store.Store
}

func NewLevelRepository(s store.Store) repositories.LevelRepository {
	return &LevelDocument{store: s}
}

func (r *LevelDocument) Create(ctx context.Context, level *models.Level) (string, error) {
	data, err := encode(level)
	if err != nil {
		return "", err
	}
	return r.store.Create(ctx, models.Level{}.Collection(), data)
}

func (r *LevelDocument) GetByID(ctx context.Context, id string) (*models.Level, error) {
	doc, err := r.store.GetByID(ctx, models.Level{}.Collection(), id)
	if err != nil || doc == nil {
		return nil, err
	}
	return decode[models.Level](*doc)
}

func (r *LevelDocument) Update(ctx context.Context, id string, updates map[string]any) error {
	return r.store.Update(ctx, models.Level{}.Collection(), id, updates)
}

func (r *LevelDocument) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, models.Level{}.Collection(), id)
}

// List orders by the display order field, not creation time, so the
// curriculum reads in its intended sequence regardless of entry order.
func (r *LevelDocument) List(ctx context.Context) ([]*models.Level, error) {
	docs, err := r.store.Query(ctx, models.Level{}.Collection(),
		store.All().OrderBy("order", store.Ascending))
	if err != nil {
		return nil, err
	}
	return decodeAll[models.Level](docs)
}
