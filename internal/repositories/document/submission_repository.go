package document

import (
	"context"

	"github.com/skillup-edu/school-service/internal/models"
	"github.com/skillup-edu/school-service/internal/repositories"
	"github.com/skillup-edu/school-service/internal/store"
)

type SubmissionDocument struct {
	store store.Store
}

func NewSubmissionRepository(s store.Store) repositories.SubmissionRepository {
	return &SubmissionDocument{store: s}
}

func (r *SubmissionDocument) Create(ctx context.Context, submission *models.Submission) (string, error) {
	data, err := encode(submission)
	if err != nil {
		return "", err
	}
	return r.store.Create(ctx, models.Submission{}.Collection(), data)
}

func (r *SubmissionDocument) GetByID(ctx context.Context, id string) (*models.Submission, error) {
	doc, err := r.store.GetByID(ctx, models.Submission{}.Collection(), id)
	if err != nil || doc == nil {
		return nil, err
	}
	return decode[models.Submission](*doc)
}

func (r *SubmissionDocument) Update(ctx context.Context, id string, updates map[string]any) error {
	return r.store.Update(ctx, models.Submission{}.Collection(), id, updates)
}

func (r *SubmissionDocument) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, models.Submission{}.Collection(), id)
}

func (r *SubmissionDocument) GetByAssignment(ctx context.Context, assignmentID string) ([]*models.Submission, error) {
	docs, err := r.store.Query(ctx, models.Submission{}.Collection(),
		store.Where("assignmentId", assignmentID).
			OrderBy("createdAt", store.Descending))
	if err != nil {
		return nil, err
	}
	return decodeAll[models.Submission](docs)
}

func (r *SubmissionDocument) GetByStudent(ctx context.Context, studentID string) ([]*models.Submission, error) {
	docs, err := r.store.Query(ctx, models.Submission{}.Collection(),
		store.Where("studentId", studentID).
			OrderBy("createdAt", store.Descending))
	if err != nil {
		return nil, err
	}
	return decodeAll[models.Submission](docs)
}
