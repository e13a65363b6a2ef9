package historyrepo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"colloquy/dialogue-api/internal/domain/history"
	"colloquy/dialogue-api/internal/domain/query"
	"colloquy/dialogue-api/internal/infrastructure/database/dbschema"
	"colloquy/dialogue-api/internal/infrastructure/database/transaction"
	"colloquy/dialogue-api/internal/utils/platformerrors"
)

// HistoryGormRepository implements history.Repository using GORM
type HistoryGormRepository struct {
	db *transaction.Database
}

var _ history.Repository = (*HistoryGormRepository)(nil)

// NewHistoryGormRepository creates a new GORM-based history repository
func NewHistoryGormRepository(db *transaction.Database) history.Repository {
	return &HistoryGormRepository{db: db}
}

// Create persists a new history record
func (r *HistoryGormRepository) Create(ctx context.Context, record *history.Record) error {
	schema := dbschema.NewSchemaHistory(record)
	if schema.CreatedAt.IsZero() {
		schema.CreatedAt = time.Now()
	}

	tx := r.db.GetTx(ctx)
	if err := tx.Create(schema).Error; err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to create history record", err, "6b1e9f42-d73a-4c05-8e6b-2f9d5a0c7e31")
	}

	record.CreatedAt = schema.CreatedAt

	return nil
}

// FindByFilter finds history records matching the given filter, newest first
func (r *HistoryGormRepository) FindByFilter(ctx context.Context, filter history.Filter, p *query.Pagination) ([]*history.Record, error) {
	tx := r.db.GetTx(ctx)
	q := applyFilter(tx.Model(&dbschema.History{}), filter)

	if p != nil {
		if p.Limit != nil && *p.Limit > 0 {
			q = q.Limit(*p.Limit)
		}
		if p.Offset != nil && *p.Offset > 0 {
			q = q.Offset(*p.Offset)
		}
	}

	q = q.Order("created_at DESC")

	var schemas []dbschema.History
	if err := q.Find(&schemas).Error; err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to find history records", err, "e02d7c58-49af-4b13-a8d6-5c3e9f1b0a74")
	}

	records := make([]*history.Record, 0, len(schemas))
	for i := range schemas {
		records = append(records, schemas[i].ToDomain())
	}

	return records, nil
}

// Count returns the count of history records matching the given filter
func (r *HistoryGormRepository) Count(ctx context.Context, filter history.Filter) (int64, error) {
	tx := r.db.GetTx(ctx)
	q := applyFilter(tx.Model(&dbschema.History{}), filter)

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return 0, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to count history records", err, "9f4a2d81-5e7c-406b-b3f9-d1c8e6a05b27")
	}

	return count, nil
}

// DeleteAll removes every history record, returning the number removed
func (r *HistoryGormRepository) DeleteAll(ctx context.Context) (int64, error) {
	tx := r.db.GetTx(ctx)
	result := tx.Where("1 = 1").Delete(&dbschema.History{})
	if result.Error != nil {
		return 0, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to delete history records", result.Error, "38c6e0b5-a12f-4d79-9e04-7b5f2c8d1a96")
	}

	return result.RowsAffected, nil
}

func applyFilter(q *gorm.DB, filter history.Filter) *gorm.DB {
	if filter.Username != nil && *filter.Username != "" {
		q = q.Where("username = ?", *filter.Username)
	}
	if filter.RoleName != nil && *filter.RoleName != "" {
		q = q.Where("role_name = ?", *filter.RoleName)
	}
	return q
}
