package userrepo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"colloquy/dialogue-api/internal/domain/user"
	"colloquy/dialogue-api/internal/infrastructure/database/dbschema"
	"colloquy/dialogue-api/internal/infrastructure/database/transaction"
	"colloquy/dialogue-api/internal/utils/idgen"
	"colloquy/dialogue-api/internal/utils/platformerrors"
)

// UserGormRepository implements user.Repository using GORM
type UserGormRepository struct {
	db *transaction.Database
}

var _ user.Repository = (*UserGormRepository)(nil)

// NewUserGormRepository creates a new GORM-based user repository
func NewUserGormRepository(db *transaction.Database) user.Repository {
	return &UserGormRepository{db: db}
}

// FindByUsername finds a user by username
func (r *UserGormRepository) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	var schema dbschema.User
	tx := r.db.GetTx(ctx)
	if err := tx.Where("username = ?", username).First(&schema).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, "user not found", err, "c71d4e92-0b8a-4f36-95c7-e3a6d2f80b15")
		}
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to find user", err, "2a8f6c03-d95e-4b70-81d2-f4c7b9e31a58")
	}

	return schema.ToDomain(), nil
}

// Upsert inserts the user keyed by username, updating email on conflict
func (r *UserGormRepository) Upsert(ctx context.Context, u *user.User) (*user.User, error) {
	schema := dbschema.NewSchemaUser(u)
	if schema.ID == "" {
		id, err := idgen.GenerateSecureID("user", 16)
		if err != nil {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeInternal, "failed to generate user id", err, "b50e9a27-6f3d-4c18-a7e5-09d4c2f6b831")
		}
		schema.ID = id
	}
	now := time.Now()
	if schema.CreatedAt.IsZero() {
		schema.CreatedAt = now
	}
	schema.UpdatedAt = now

	tx := r.db.GetTx(ctx)
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "username"}},
		DoUpdates: clause.AssignmentColumns([]string{"email", "updated_at"}),
	}).Create(schema).Error
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to upsert user", err, "74c2e8f1-3a9d-4065-b8c4-6e1f0d5a297b")
	}

	return r.FindByUsername(ctx, schema.Username)
}
