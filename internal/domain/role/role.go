// Package role provides the persona registry consulted by every dialogue run.
package role

import (
	"context"
	"time"

	"colloquy/dialogue-api/internal/domain/query"
)

// Role is a named persona with its own prompt template and generation
// parameters. Collaborators is the ordered list of roles this role may
// delegate to; the relation is directed, A listing B does not imply B
// lists A.
type Role struct {
	ID                    string    `json:"id"`
	Name                  string    `json:"name"`
	Description           string    `json:"description"`
	PromptTemplate        string    `json:"prompt_template"`
	ModelName             string    `json:"model_name"`
	MaxTokens             int       `json:"max_tokens"`
	Temperature           float32   `json:"temperature"`
	CollaborationTriggers string    `json:"collaboration_triggers,omitempty"`
	Collaborators         []*Role   `json:"collaborators,omitempty"`
	Position              int       `json:"-"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// Filter contains filter options for querying roles.
type Filter struct {
	ID     *string
	Name   *string
	Search *string
}

// Repository defines storage operations for roles. FindByName and FindAll
// load each role's collaborator list in its stored order; FindAll returns
// roles in registration order, which is the speaking order for dialogues.
type Repository interface {
	Create(ctx context.Context, role *Role) error
	Update(ctx context.Context, role *Role) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Role, error)
	FindByName(ctx context.Context, name string) (*Role, error)
	FindByFilter(ctx context.Context, filter Filter, p *query.Pagination) ([]*Role, error)
	Count(ctx context.Context, filter Filter) (int64, error)
	ReplaceCollaborators(ctx context.Context, roleID string, collaboratorIDs []string) error
	DeleteAll(ctx context.Context) (int64, error)
}
