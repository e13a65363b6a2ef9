package role

import (
	"context"

	"colloquy/dialogue-api/internal/domain/query"
	"colloquy/dialogue-api/internal/infrastructure/logger"
	"colloquy/dialogue-api/internal/utils/idgen"
	"colloquy/dialogue-api/internal/utils/platformerrors"
)

// Service provides business logic for role registry operations.
type Service struct {
	repo Repository
}

// NewService creates a new role service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// GetByName retrieves a role by its unique name, collaborators included.
func (s *Service) GetByName(ctx context.Context, name string) (*Role, error) {
	if name == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "role name is required", nil, "7f2c1a40-9b3e-4d15-8a6f-0c2d4e6f8a10")
	}

	r, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}

	return r, nil
}

// List retrieves roles in registration order, which is also the speaking
// order used by full dialogues.
func (s *Service) List(ctx context.Context, p *query.Pagination) ([]*Role, error) {
	return s.repo.FindByFilter(ctx, Filter{}, p)
}

// SeedDefinition describes one role to register, with collaborators
// referenced by name. Seeding resolves names after all roles exist so the
// directed edges can point forward in the list.
type SeedDefinition struct {
	Name                  string   `yaml:"name" json:"name"`
	Description           string   `yaml:"description" json:"description"`
	PromptTemplate        string   `yaml:"prompt_template" json:"prompt_template"`
	ModelName             string   `yaml:"model_name" json:"model_name"`
	MaxTokens             int      `yaml:"max_tokens" json:"max_tokens"`
	Temperature           float32  `yaml:"temperature" json:"temperature"`
	CollaborationTriggers string   `yaml:"collaboration_triggers" json:"collaboration_triggers"`
	Collaborators         []string `yaml:"collaborators" json:"collaborators"`
}

// Seed replaces the registry contents with the given definitions. Roles are
// created first in definition order, then collaborator edges are resolved by
// name; an edge naming an unknown role is skipped rather than failing the
// whole seed.
func (s *Service) Seed(ctx context.Context, defs []SeedDefinition) error {
	if _, err := s.repo.DeleteAll(ctx); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to clear role registry")
	}

	byName := make(map[string]*Role, len(defs))
	for i, def := range defs {
		id, err := idgen.GenerateSecureID("role", 16)
		if err != nil {
			return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal, "failed to generate role ID", err, "3b8e5d72-4c1f-4a9e-b6d0-1e3f5a7c9b21")
		}

		r := &Role{
			ID:                    id,
			Name:                  def.Name,
			Description:           def.Description,
			PromptTemplate:        def.PromptTemplate,
			ModelName:             def.ModelName,
			MaxTokens:             def.MaxTokens,
			Temperature:           def.Temperature,
			CollaborationTriggers: def.CollaborationTriggers,
			Position:              i + 1,
		}
		if r.ModelName == "" {
			r.ModelName = "gpt-4o-mini"
		}
		if r.MaxTokens <= 0 {
			r.MaxTokens = 500
		}
		if r.Temperature <= 0 {
			r.Temperature = 0.7
		}

		if err := s.repo.Create(ctx, r); err != nil {
			return err
		}
		byName[r.Name] = r
	}

	for _, def := range defs {
		owner := byName[def.Name]
		ids := make([]string, 0, len(def.Collaborators))
		for _, name := range def.Collaborators {
			collab, ok := byName[name]
			if !ok {
				log := logger.GetLogger()
				log.Warn().
					Str("role", def.Name).
					Str("collaborator", name).
					Msg("skipping collaborator edge to unknown role")
				continue
			}
			ids = append(ids, collab.ID)
		}
		if err := s.repo.ReplaceCollaborators(ctx, owner.ID, ids); err != nil {
			return err
		}
	}

	return nil
}

// Count returns the number of registered roles.
func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx, Filter{})
}
