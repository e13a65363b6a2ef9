package rolerepo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"colloquy/dialogue-api/internal/domain/query"
	"colloquy/dialogue-api/internal/domain/role"
	"colloquy/dialogue-api/internal/infrastructure/database/dbschema"
	"colloquy/dialogue-api/internal/infrastructure/database/transaction"
	"colloquy/dialogue-api/internal/utils/platformerrors"
)

// RoleGormRepository implements role.Repository using GORM
type RoleGormRepository struct {
	db *transaction.Database
}

var _ role.Repository = (*RoleGormRepository)(nil)

// NewRoleGormRepository creates a new GORM-based role repository
func NewRoleGormRepository(db *transaction.Database) role.Repository {
	return &RoleGormRepository{db: db}
}

// Create creates a new role
func (r *RoleGormRepository) Create(ctx context.Context, domainRole *role.Role) error {
	schema := dbschema.NewSchemaRole(domainRole)
	if schema.CreatedAt.IsZero() {
		schema.CreatedAt = time.Now()
	}
	if schema.UpdatedAt.IsZero() {
		schema.UpdatedAt = schema.CreatedAt
	}

	tx := r.db.GetTx(ctx)
	if err := tx.Create(schema).Error; err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to create role", err, "3f8a1c52-6e0d-4b7a-9c31-8d2e5f4a0b16")
	}

	domainRole.CreatedAt = schema.CreatedAt
	domainRole.UpdatedAt = schema.UpdatedAt

	return nil
}

// Update updates an existing role
func (r *RoleGormRepository) Update(ctx context.Context, domainRole *role.Role) error {
	schema := dbschema.NewSchemaRole(domainRole)
	schema.UpdatedAt = time.Now()

	tx := r.db.GetTx(ctx)
	result := tx.Model(&dbschema.Role{}).
		Where("id = ?", schema.ID).
		Updates(map[string]interface{}{
			"name":                   schema.Name,
			"description":            schema.Description,
			"prompt_template":        schema.PromptTemplate,
			"model_name":             schema.ModelName,
			"max_tokens":             schema.MaxTokens,
			"temperature":            schema.Temperature,
			"collaboration_triggers": schema.CollaborationTriggers,
			"position":               schema.Position,
			"updated_at":             schema.UpdatedAt,
		})

	if result.Error != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to update role", result.Error, "7b2d9e04-1f6c-48a3-b5d7-c90e3a6f2d48")
	}

	domainRole.UpdatedAt = schema.UpdatedAt

	return nil
}

// Delete deletes a role and its collaborator edges by ID
func (r *RoleGormRepository) Delete(ctx context.Context, id string) error {
	tx := r.db.GetTx(ctx)
	if err := tx.Where("role_id = ? OR collaborator_id = ?", id, id).Delete(&dbschema.RoleCollaborator{}).Error; err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to delete role collaborators", err, "e64c8b17-0a3f-42d9-8e51-b7f2c4d90a63")
	}
	if err := tx.Delete(&dbschema.Role{}, "id = ?", id).Error; err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to delete role", err, "91d5f2a8-7c4e-4f60-a2b9-3e8d1c5b7f04")
	}
	return nil
}

// FindByID finds a role by its ID, collaborators included
func (r *RoleGormRepository) FindByID(ctx context.Context, id string) (*role.Role, error) {
	var schema dbschema.Role
	tx := r.db.GetTx(ctx)
	if err := tx.Where("id = ?", id).First(&schema).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, "role not found", err, "b03e7d91-4a2c-4856-9f1e-d6c8a5b20e37")
		}
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to find role", err, "4c9a2f68-e1d5-470b-8a3c-f52b7e09d814")
	}

	domainRole := schema.ToDomain()
	if err := r.attachCollaborators(ctx, domainRole); err != nil {
		return nil, err
	}

	return domainRole, nil
}

// FindByName finds a role by its unique name, collaborators included
func (r *RoleGormRepository) FindByName(ctx context.Context, name string) (*role.Role, error) {
	var schema dbschema.Role
	tx := r.db.GetTx(ctx)
	if err := tx.Where("name = ?", name).First(&schema).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, "role not found", err, "d81f3c40-9b6e-4a27-b05d-2e7c4f9a1d58")
		}
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to find role", err, "0a6e5d23-c7f1-4b98-a4e0-6d3b8c1f5a72")
	}

	domainRole := schema.ToDomain()
	if err := r.attachCollaborators(ctx, domainRole); err != nil {
		return nil, err
	}

	return domainRole, nil
}

// FindByFilter finds roles matching the given filter in registration order,
// collaborators included
func (r *RoleGormRepository) FindByFilter(ctx context.Context, filter role.Filter, p *query.Pagination) ([]*role.Role, error) {
	tx := r.db.GetTx(ctx)
	q := applyFilter(tx.Model(&dbschema.Role{}), filter)

	if p != nil {
		if p.Limit != nil && *p.Limit > 0 {
			q = q.Limit(*p.Limit)
		}
		if p.Offset != nil && *p.Offset > 0 {
			q = q.Offset(*p.Offset)
		}
	}

	q = q.Order("position ASC")

	var schemas []dbschema.Role
	if err := q.Find(&schemas).Error; err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to find roles", err, "f27b9e51-3d0a-4c86-91f4-a8e5d2c70b39")
	}

	roles := make([]*role.Role, 0, len(schemas))
	for i := range schemas {
		domainRole := schemas[i].ToDomain()
		if err := r.attachCollaborators(ctx, domainRole); err != nil {
			return nil, err
		}
		roles = append(roles, domainRole)
	}

	return roles, nil
}

// Count returns the count of roles matching the given filter
func (r *RoleGormRepository) Count(ctx context.Context, filter role.Filter) (int64, error) {
	tx := r.db.GetTx(ctx)
	q := applyFilter(tx.Model(&dbschema.Role{}), filter)

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return 0, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to count roles", err, "68d4a1f9-b52e-4073-8c6a-1f9e3b7d5c20")
	}

	return count, nil
}

// ReplaceCollaborators replaces a role's outgoing collaborator edges with the
// given ordered list
func (r *RoleGormRepository) ReplaceCollaborators(ctx context.Context, roleID string, collaboratorIDs []string) error {
	tx := r.db.GetTx(ctx)
	if err := tx.Where("role_id = ?", roleID).Delete(&dbschema.RoleCollaborator{}).Error; err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to clear role collaborators", err, "2e7c5b80-f94d-4a16-b38e-7d0a6c2f9e51")
	}

	if len(collaboratorIDs) == 0 {
		return nil
	}

	edges := make([]dbschema.RoleCollaborator, 0, len(collaboratorIDs))
	for i, collaboratorID := range collaboratorIDs {
		edges = append(edges, dbschema.RoleCollaborator{
			RoleID:         roleID,
			CollaboratorID: collaboratorID,
			Position:       i + 1,
		})
	}

	if err := tx.Create(&edges).Error; err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to create role collaborators", err, "a95f0d37-6c1b-4e82-90d5-4b8e2a7f1c63")
	}

	return nil
}

// DeleteAll removes every role and collaborator edge, returning the number of
// roles removed
func (r *RoleGormRepository) DeleteAll(ctx context.Context) (int64, error) {
	tx := r.db.GetTx(ctx)
	if err := tx.Where("1 = 1").Delete(&dbschema.RoleCollaborator{}).Error; err != nil {
		return 0, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to delete role collaborators", err, "c48b2e79-0d5a-4f31-a67c-9e1f5d3b8a04")
	}

	result := tx.Where("1 = 1").Delete(&dbschema.Role{})
	if result.Error != nil {
		return 0, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to delete roles", result.Error, "5d0f8a36-e2c7-4b94-bf18-3a6d9c5e2f70")
	}

	return result.RowsAffected, nil
}

// attachCollaborators loads the role's outgoing edges in stored order and
// attaches the referenced roles without their own collaborators.
func (r *RoleGormRepository) attachCollaborators(ctx context.Context, domainRole *role.Role) error {
	tx := r.db.GetTx(ctx)

	var edges []dbschema.RoleCollaborator
	if err := tx.Where("role_id = ?", domainRole.ID).Order("position ASC").Find(&edges).Error; err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to load role collaborators", err, "17e9c4b2-8f5d-40a6-93e1-b2d7f0a5c839")
	}

	if len(edges) == 0 {
		return nil
	}

	ids := make([]string, 0, len(edges))
	for _, edge := range edges {
		ids = append(ids, edge.CollaboratorID)
	}

	var schemas []dbschema.Role
	if err := tx.Where("id IN ?", ids).Find(&schemas).Error; err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to load collaborator roles", err, "83a6f1d0-2b9e-4c57-8d04-f6e3a9b21c75")
	}

	byID := make(map[string]*role.Role, len(schemas))
	for i := range schemas {
		byID[schemas[i].ID] = schemas[i].ToDomain()
	}

	collaborators := make([]*role.Role, 0, len(edges))
	for _, edge := range edges {
		if collaborator, ok := byID[edge.CollaboratorID]; ok {
			collaborators = append(collaborators, collaborator)
		}
	}
	domainRole.Collaborators = collaborators

	return nil
}

func applyFilter(q *gorm.DB, filter role.Filter) *gorm.DB {
	if filter.ID != nil {
		q = q.Where("id = ?", *filter.ID)
	}
	if filter.Name != nil {
		q = q.Where("name = ?", *filter.Name)
	}
	if filter.Search != nil && *filter.Search != "" {
		searchPattern := "%" + *filter.Search + "%"
		q = q.Where("name ILIKE ? OR description ILIKE ?", searchPattern, searchPattern)
	}
	return q
}
