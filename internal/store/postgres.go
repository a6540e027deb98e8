package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// documentRow is the single table backing every collection. Data is the
// schema-flexible payload; collection + id identify a document.
type documentRow struct {
	ID         string            `gorm:"primaryKey;size:36"`
	Collection string            `gorm:"primaryKey;size:64;index:idx_documents_collection"`
	Data       datatypes.JSONMap `gorm:"type:jsonb"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (documentRow) TableName() string {
	return "documents"
}

// PostgresStore implements Store on a Postgres documents table with a JSONB
// payload column. Equality filters compare the text form of a field; sorting
// on payload fields uses JSONB value ordering, so numeric fields order
// numerically.
type PostgresStore struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewPostgresStore(db *gorm.DB, logger *slog.Logger) *PostgresStore {
	return &PostgresStore{db: db, logger: logger}
}

// Migrate creates the documents table.
func (s *PostgresStore) Migrate() error {
	return s.db.AutoMigrate(&documentRow{})
}

func (s *PostgresStore) Create(ctx context.Context, collection string, data map[string]any) (string, error) {
	row := documentRow{
		ID:         uuid.NewString(),
		Collection: collection,
		Data:       datatypes.JSONMap(normalizeData(data)),
	}

	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return "", s.fail(newWriteError("create", collection, err))
	}
	return row.ID, nil
}

func (s *PostgresStore) GetByID(ctx context.Context, collection, id string) (*Document, error) {
	var row documentRow
	err := s.db.WithContext(ctx).
		Where("collection = ? AND id = ?", collection, id).
		First(&row).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, s.fail(newReadError("get", collection, err))
	}

	doc := rowToDocument(row)
	return &doc, nil
}

func (s *PostgresStore) Update(ctx context.Context, collection, id string, partial map[string]any) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return mergeRow(tx, collection, id, partial)
	})
	if err != nil {
		return s.fail(newWriteError("update", collection, err))
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, collection, id string) error {
	// RowsAffected == 0 is fine, delete is idempotent.
	err := s.db.WithContext(ctx).
		Where("collection = ? AND id = ?", collection, id).
		Delete(&documentRow{}).Error
	if err != nil {
		return s.fail(newWriteError("delete", collection, err))
	}
	return nil
}

func (s *PostgresStore) Query(ctx context.Context, collection string, constraints Constraints) ([]Document, error) {
	q := s.db.WithContext(ctx).Model(&documentRow{}).Where("collection = ?", collection)

	for _, f := range constraints.Filters {
		switch f.Field {
		case "createdAt":
			q = q.Where("created_at = ?", f.Value)
		case "updatedAt":
			q = q.Where("updated_at = ?", f.Value)
		default:
			q = q.Where("data->>? = ?", f.Field, jsonText(f.Value))
		}
	}

	if sort := constraints.Sort; sort != nil {
		dir := "ASC"
		if sort.Direction == Descending {
			dir = "DESC"
		}
		switch sort.Field {
		case "createdAt":
			q = q.Order("created_at " + dir)
		case "updatedAt":
			q = q.Order("updated_at " + dir)
		default:
			if !validFieldName(sort.Field) {
				err := fmt.Errorf("invalid sort field %q", sort.Field)
				return nil, s.fail(newReadError("query", collection, err))
			}
			q = q.Order(fmt.Sprintf("data->'%s' %s", sort.Field, dir))
		}
	}

	var rows []documentRow
	if err := q.Find(&rows).Error; err != nil {
		return nil, s.fail(newReadError("query", collection, err))
	}

	docs := make([]Document, 0, len(rows))
	for _, row := range rows {
		docs = append(docs, rowToDocument(row))
	}
	return docs, nil
}

func (s *PostgresStore) BatchCreate(ctx context.Context, collection string, docs []map[string]any) ([]string, error) {
	ids := make([]string, 0, len(docs))

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, data := range docs {
			row := documentRow{
				ID:         uuid.NewString(),
				Collection: collection,
				Data:       datatypes.JSONMap(normalizeData(data)),
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
			ids = append(ids, row.ID)
		}
		return nil
	})
	if err != nil {
		return nil, s.fail(newWriteError("batch_create", collection, err))
	}
	return ids, nil
}

func (s *PostgresStore) BatchUpdate(ctx context.Context, collection string, patches []Patch) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, patch := range patches {
			if err := mergeRow(tx, collection, patch.ID, patch.Data); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return s.fail(newWriteError("batch_update", collection, err))
	}
	return nil
}

func (s *PostgresStore) BatchDelete(ctx context.Context, collection string, ids []string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Where("collection = ? AND id IN ?", collection, ids).
			Delete(&documentRow{}).Error
	})
	if err != nil {
		return s.fail(newWriteError("batch_delete", collection, err))
	}
	return nil
}

// mergeRow loads, merges and saves one document inside tx. Missing documents
// are a caller error surfaced as ErrMissingDocument.
func mergeRow(tx *gorm.DB, collection, id string, partial map[string]any) error {
	var row documentRow
	err := tx.Where("collection = ? AND id = ?", collection, id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s/%s", ErrMissingDocument, collection, id)
	}
	if err != nil {
		return err
	}

	if row.Data == nil {
		row.Data = datatypes.JSONMap{}
	}
	for k, v := range normalizeData(partial) {
		row.Data[k] = v
	}
	return tx.Save(&row).Error
}

// fail logs the wrapped error before handing it to the caller; the adapter
// never retries.
func (s *PostgresStore) fail(err *Error) error {
	s.logger.Error("document store operation failed",
		"op", err.Op,
		"collection", err.Collection,
		"kind", string(err.Kind),
		"error", err.Err)
	return err
}

func rowToDocument(row documentRow) Document {
	return Document{
		ID:         row.ID,
		Collection: row.Collection,
		Data:       map[string]any(row.Data),
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
}

// normalizeData round-trips data through JSON so payload values carry the
// same types they would after a read (numbers as float64, times as RFC3339
// strings).
func normalizeData(data map[string]any) map[string]any {
	raw, err := json.Marshal(data)
	if err != nil {
		// Non-serializable values cannot be stored in JSONB anyway; let the
		// insert surface the failure.
		return data
	}
	var normalized map[string]any
	if err := json.Unmarshal(raw, &normalized); err != nil {
		return data
	}
	if normalized == nil {
		normalized = map[string]any{}
	}
	return normalized
}

// jsonText renders a filter value the way Postgres' ->> operator renders the
// stored field: strings bare, everything else in JSON form.
func jsonText(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(raw)
	}
}

func validFieldName(field string) bool {
	if field == "" {
		return false
	}
	for _, r := range field {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') && (r < '0' || r > '9') && r != '_' {
			return false
		}
	}
	return true
}
