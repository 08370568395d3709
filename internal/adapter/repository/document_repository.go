package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/johnquangdev/scrum-assistant/internal/domain/repositories"
	"github.com/johnquangdev/scrum-assistant/internal/infrastructure/storage"
)

// documentRecord is one row of the documents table
type documentRecord struct {
	Seq        int64          `gorm:"column:seq;primaryKey;autoIncrement"`
	Collection string         `gorm:"column:collection;not null;index"`
	DocID      string         `gorm:"column:doc_id;not null;uniqueIndex"`
	Body       datatypes.JSON `gorm:"column:body;not null"`
	CreatedAt  time.Time      `gorm:"column:created_at"`
}

// TableName specifies the table name
func (documentRecord) TableName() string {
	return "documents"
}

// documentRepository is a DocumentStore backed by PostgreSQL
type documentRepository struct {
	db     *gorm.DB
	logger *zap.Logger
	newID  storage.IDGenerator
}

// NewDocumentRepository creates a new PostgreSQL document store
func NewDocumentRepository(db *gorm.DB, logger *zap.Logger) repositories.DocumentStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &documentRepository{db: db, logger: logger, newID: storage.NewUUIDv7}
}

// List retrieves the collection in insertion order
func (r *documentRepository) List(ctx context.Context, collection string) ([]repositories.Document, error) {
	if err := repositories.ValidateCollection(collection); err != nil {
		return nil, err
	}

	var rows []documentRecord
	err := r.db.WithContext(ctx).
		Where("collection = ?", collection).
		Order("seq ASC").
		Find(&rows).Error
	if err != nil {
		r.logger.Warn("storage.read.degraded",
			zap.String("collection", collection),
			zap.Error(err),
		)
		return []repositories.Document{}, nil
	}

	docs := make([]repositories.Document, 0, len(rows))
	for _, row := range rows {
		doc, err := repositories.NewDocument(row.DocID, json.RawMessage(row.Body))
		if err != nil {
			r.logger.Warn("storage.read.degraded",
				zap.String("collection", collection),
				zap.String("id", row.DocID),
				zap.Error(err),
			)
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// Append inserts record under a new id. A transaction-scoped advisory lock
// on the collection keeps appends to one collection strictly ordered.
func (r *documentRepository) Append(ctx context.Context, collection string, record any) (repositories.Document, error) {
	if err := repositories.ValidateCollection(collection); err != nil {
		return repositories.Document{}, err
	}
	doc, err := repositories.NewDocument("", record)
	if err != nil {
		return repositories.Document{}, err
	}
	id, err := r.newID()
	if err != nil {
		return repositories.Document{}, fmt.Errorf("%w: %s: %v", repositories.ErrWriteFailed, collection, err)
	}
	doc.ID = id

	body, err := json.Marshal(doc.Fields)
	if err != nil {
		return repositories.Document{}, fmt.Errorf("%w: %v", repositories.ErrInvalidRecord, err)
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", collection).Error; err != nil {
			return err
		}
		return tx.Create(&documentRecord{
			Collection: collection,
			DocID:      id,
			Body:       datatypes.JSON(body),
		}).Error
	})
	if err != nil {
		return repositories.Document{}, fmt.Errorf("%w: %s: %v", repositories.ErrWriteFailed, collection, err)
	}
	return doc, nil
}
