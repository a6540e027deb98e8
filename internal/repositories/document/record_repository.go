package document

import (
	"context"

	"github.com/skillup-edu/school-service/internal/models"
	"github.com/skillup-edu/school-service/internal/repositories"
	"github.com/skillup-edu/school-service/internal/store"
)

type RecordDocument struct {
	store store.Store
}

func NewRecordRepository(s store.Store) repositories.RecordRepository {
	return &RecordDocument{store: s}
}

func (r *RecordDocument) Create(ctx context.Context, record *models.StudentRecord) (string, error) {
	data, err := encode(record)
	if err != nil {
		return "", err
	}
	return r.store.Create(ctx, models.StudentRecord{}.Collection(), data)
}

func (r *RecordDocument) GetByID(ctx context.Context, id string) (*models.StudentRecord, error) {
	doc, err := r.store.GetByID(ctx, models.StudentRecord{}.Collection(), id)
	if err != nil || doc == nil {
		return nil, err
	}
	return decode[models.StudentRecord](*doc)
}

func (r *RecordDocument) Update(ctx context.Context, id string, updates map[string]any) error {
	return r.store.Update(ctx, models.StudentRecord{}.Collection(), id, updates)
}

func (r *RecordDocument) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, models.StudentRecord{}.Collection(), id)
}

func (r *RecordDocument) GetByStudent(ctx context.Context, studentID string) ([]*models.StudentRecord, error) {
	docs, err := r.store.Query(ctx, models.StudentRecord{}.Collection(),
		store.Where("studentId", studentID).
			OrderBy("createdAt", store.Descending))
	if err != nil {
		return nil, err
	}
	return decodeAll[models.StudentRecord](docs)
}

func (r *RecordDocument) List(ctx context.Context, filters repositories.RecordFilters) ([]*models.StudentRecord, error) {
	constraints := store.All()
	if filters.ClassID != nil {
		constraints = constraints.Where("classId", *filters.ClassID)
	}
	if filters.Semester != nil {
		constraints = constraints.Where("semester", *filters.Semester)
	}
	if filters.Year != nil {
		constraints = constraints.Where("year", *filters.Year)
	}
	constraints = constraints.OrderBy("createdAt", store.Descending)

	docs, err := r.store.Query(ctx, models.StudentRecord{}.Collection(), constraints)
	if err != nil {
		return nil, err
	}
	return decodeAll[models.StudentRecord](docs)
}
