package history

import (
	"context"

	"colloquy/dialogue-api/internal/domain/query"
	"colloquy/dialogue-api/internal/infrastructure/logger"
	"colloquy/dialogue-api/internal/utils/idgen"
	"colloquy/dialogue-api/internal/utils/platformerrors"
)

// Service provides business logic for history recording.
type Service struct {
	repo Repository
}

// NewService creates a new history service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Record appends one exchange. It is best-effort: a storage failure is
// logged and swallowed so a dialogue result already computed is never lost
// to an auditing write. Callers that were canceled should not call Record
// at all.
func (s *Service) Record(ctx context.Context, username, roleName, prompt, response string) {
	log := logger.GetLogger()

	id, err := idgen.GenerateSecureID("hist", 16)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate history ID")
		return
	}

	rec := &Record{
		ID:       id,
		Username: username,
		RoleName: roleName,
		Prompt:   prompt,
		Response: response,
	}

	if err := s.repo.Create(ctx, rec); err != nil {
		log.Error().
			Err(err).
			Str("role", roleName).
			Msg("failed to record history entry")
	}
}

// List retrieves history records newest-first.
func (s *Service) List(ctx context.Context, filter Filter, p *query.Pagination) ([]*Record, error) {
	records, err := s.repo.FindByFilter(ctx, filter, p)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to list history")
	}
	return records, nil
}

// Reset removes every history record and returns how many were deleted.
func (s *Service) Reset(ctx context.Context) (int64, error) {
	count, err := s.repo.DeleteAll(ctx)
	if err != nil {
		return 0, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to reset history")
	}
	return count, nil
}
