package document

import (
	"context"

	"github.com/skillup-edu/school-service/internal/models"
	"github.com/skillup-edu/school-service/internal/repositories"
	"github.com/skillup-edu/school-service/internal/store"
)

type UserDocument struct {
	store store.Store
}

func NewUserRepository(s store.Store) repositories.UserRepository {
	return &UserDocument{store: s}
}

func (r *UserDocument) Create(ctx context.Context, user *models.User) (string, error) {
	data, err := encode(user)
	if err != nil {
		return "", err
	}
	return r.store.Create(ctx, models.User{}.Collection(), data)
}

func (r *UserDocument) GetByID(ctx context.Context, id string) (*models.User, error) {
	doc, err := r.store.GetByID(ctx, models.User{}.Collection(), id)
	if err != nil || doc == nil {
		return nil, err
	}
	return decode[models.User](*doc)
}

func (r *UserDocument) Update(ctx context.Context, id string, updates map[string]any) error {
	return r.store.Update(ctx, models.User{}.Collection(), id, updates)
}

func (r *UserDocument) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, models.User{}.Collection(), id)
}

func (r *UserDocument) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	docs, err := r.store.Query(ctx, models.User{}.Collection(), store.Where("email", email))
	if err != nil {
		return nil, err
	}
	return firstOrNil[models.User](docs)
}

func (r *UserDocument) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	docs, err := r.store.Query(ctx, models.User{}.Collection(), store.Where("username", username))
	if err != nil {
		return nil, err
	}
	return firstOrNil[models.User](docs)
}

func (r *UserDocument) GetByExternalUID(ctx context.Context, uid string) (*models.User, error) {
	docs, err := r.store.Query(ctx, models.User{}.Collection(), store.Where("externalUid", uid))
	if err != nil {
		return nil, err
	}
	return firstOrNil[models.User](docs)
}

func (r *UserDocument) List(ctx context.Context, filters repositories.UserFilters) ([]*models.User, error) {
	constraints := store.All()
	if filters.Role != nil {
		constraints = constraints.Where("role", string(*filters.Role))
	}
	if filters.Status != nil {
		constraints = constraints.Where("status", string(*filters.Status))
	}
	constraints = constraints.OrderBy("createdAt", store.Descending)

	docs, err := r.store.Query(ctx, models.User{}.Collection(), constraints)
	if err != nil {
		return nil, err
	}
	return decodeAll[models.User](docs)
}
