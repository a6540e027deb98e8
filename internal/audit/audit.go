// Package audit appends immutable action records to the changeLogs
// collection. The logger exposes no update or delete surface; append-only is
// a contract of this API, not something the store enforces.
package audit

import (
	"context"
	"time"

	"github.com/skillup-edu/school-service/internal/models"
	"github.com/skillup-edu/school-service/internal/store"
)

// Entry is one action to record. The logger assigns the timestamp.
type Entry struct {
	Action     models.ChangeAction `json:"action"`
	Collection string              `json:"collection"`
	DocumentID string              `json:"documentId"`
	ActorID    string              `json:"actorId"`
	ActorName  string              `json:"actorName"`
	Changes    map[string]any      `json:"changes,omitempty"`
}

// LogQuery filters audit reads. Date is a UTC day in YYYY-MM-DD form; empty
// fields are not filtered on.
type LogQuery struct {
	Date    string `json:"date"`
	ActorID string `json:"actorId"`
}

type Logger struct {
	store store.Store
	now   func() time.Time
}

func NewLogger(s store.Store) *Logger {
	return &Logger{store: s, now: time.Now}
}

// LogAction appends one record stamped with the caller's wall-clock time as
// an ISO-8601 string. This is intentionally not the store's server-assigned
// timestamp; the two representations are not interchangeable.
func (l *Logger) LogAction(ctx context.Context, entry Entry) (string, error) {
	now := l.now().UTC()

	record := models.ChangeLog{
		Action:           entry.Action,
		TargetCollection: entry.Collection,
		TargetID:         entry.DocumentID,
		ActorID:          entry.ActorID,
		ActorName:        entry.ActorName,
		Changes:          entry.Changes,
		Timestamp:        now.Format(time.RFC3339),
		Date:             now.Format(time.DateOnly),
	}

	data := map[string]any{
		"action":     string(record.Action),
		"collection": record.TargetCollection,
		"documentId": record.TargetID,
		"actorId":    record.ActorID,
		"actorName":  record.ActorName,
		"changes":    record.Changes,
		"timestamp":  record.Timestamp,
		"date":       record.Date,
	}
	return l.store.Create(ctx, models.ChangeLog{}.Collection(), data)
}

// GetAuditLogs returns entries matching the query, newest first. ISO-8601
// strings order chronologically under the string sort used here.
func (l *Logger) GetAuditLogs(ctx context.Context, query LogQuery) ([]*models.ChangeLog, error) {
	constraints := store.All()
	if query.Date != "" {
		constraints = constraints.Where("date", query.Date)
	}
	if query.ActorID != "" {
		constraints = constraints.Where("actorId", query.ActorID)
	}
	constraints = constraints.OrderBy("timestamp", store.Descending)

	docs, err := l.store.Query(ctx, models.ChangeLog{}.Collection(), constraints)
	if err != nil {
		return nil, err
	}

	logs := make([]*models.ChangeLog, 0, len(docs))
	for _, doc := range docs {
		logs = append(logs, docToChangeLog(doc))
	}
	return logs, nil
}

func docToChangeLog(doc store.Document) *models.ChangeLog {
	log := &models.ChangeLog{
		ID:        doc.ID,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
	if v, ok := doc.Data["action"].(string); ok {
		log.Action = models.ChangeAction(v)
	}
	if v, ok := doc.Data["collection"].(string); ok {
		log.TargetCollection = v
	}
	if v, ok := doc.Data["documentId"].(string); ok {
		log.TargetID = v
	}
	if v, ok := doc.Data["actorId"].(string); ok {
		log.ActorID = v
	}
	if v, ok := doc.Data["actorName"].(string); ok {
		log.ActorName = v
	}
	if v, ok := doc.Data["changes"].(map[string]any); ok {
		log.Changes = v
	}
	if v, ok := doc.Data["timestamp"].(string); ok {
		log.Timestamp = v
	}
	if v, ok := doc.Data["date"].(string); ok {
		log.Date = v
	}
	return log
}
