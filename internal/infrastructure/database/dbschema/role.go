package dbschema

import (
	"time"

	"colloquy/dialogue-api/internal/domain/role"
	"colloquy/dialogue-api/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(Role{}, RoleCollaborator{})
}

// Role represents the database schema for dialogue personas. Position
// records registration order, which fixes the speaking order in full
// dialogues.
type Role struct {
	ID                    string    `gorm:"column:id;size:64;primaryKey"`
	Name                  string    `gorm:"column:name;size:255;not null;uniqueIndex"`
	Description           string    `gorm:"column:description;type:text;not null"`
	PromptTemplate        string    `gorm:"column:prompt_template;type:text;not null"`
	ModelName             string    `gorm:"column:model_name;size:255;not null"`
	MaxTokens             int       `gorm:"column:max_tokens;not null"`
	Temperature           float32   `gorm:"column:temperature;not null"`
	CollaborationTriggers string    `gorm:"column:collaboration_triggers;type:text"`
	Position              int       `gorm:"column:position;not null;index"`
	CreatedAt             time.Time `gorm:"column:created_at;not null;default:now()"`
	UpdatedAt             time.Time `gorm:"column:updated_at;not null;default:now()"`
}

// TableName returns the table name for GORM
func (Role) TableName() string {
	return "dialogue_api.roles"
}

// RoleCollaborator is one directed collaborator edge. Position fixes the
// order collaborators are offered to the resolver.
type RoleCollaborator struct {
	RoleID         string `gorm:"column:role_id;size:64;primaryKey"`
	CollaboratorID string `gorm:"column:collaborator_id;size:64;primaryKey"`
	Position       int    `gorm:"column:position;not null"`
}

// TableName returns the table name for GORM
func (RoleCollaborator) TableName() string {
	return "dialogue_api.role_collaborators"
}

// NewSchemaRole converts a domain Role to a database schema. Collaborator
// edges are persisted separately.
func NewSchemaRole(r *role.Role) *Role {
	if r == nil {
		return nil
	}

	return &Role{
		ID:                    r.ID,
		Name:                  r.Name,
		Description:           r.Description,
		PromptTemplate:        r.PromptTemplate,
		ModelName:             r.ModelName,
		MaxTokens:             r.MaxTokens,
		Temperature:           r.Temperature,
		CollaborationTriggers: r.CollaborationTriggers,
		Position:              r.Position,
		CreatedAt:             r.CreatedAt,
		UpdatedAt:             r.UpdatedAt,
	}
}

// ToDomain converts a database schema Role to a domain model without
// collaborators.
func (r *Role) ToDomain() *role.Role {
	if r == nil {
		return nil
	}

	return &role.Role{
		ID:                    r.ID,
		Name:                  r.Name,
		Description:           r.Description,
		PromptTemplate:        r.PromptTemplate,
		ModelName:             r.ModelName,
		MaxTokens:             r.MaxTokens,
		Temperature:           r.Temperature,
		CollaborationTriggers: r.CollaborationTriggers,
		Position:              r.Position,
		CreatedAt:             r.CreatedAt,
		UpdatedAt:             r.UpdatedAt,
	}
}
