package dialogue

import (
	"context"
	"sync"

	"colloquy/dialogue-api/internal/domain/history"
	"colloquy/dialogue-api/internal/domain/query"
	"colloquy/dialogue-api/internal/domain/role"
	"colloquy/dialogue-api/internal/utils/platformerrors"
)

type gwCall struct {
	messages []Message
	params   Params
}

// fakeGateway scripts completion responses by call index and records every
// call for assertions on prompt construction.
type fakeGateway struct {
	mu        sync.Mutex
	calls     []gwCall
	responder func(call int, messages []Message) (string, error)
}

func (g *fakeGateway) Complete(_ context.Context, messages []Message, params Params) (string, error) {
	g.mu.Lock()
	n := len(g.calls)
	g.calls = append(g.calls, gwCall{messages: messages, params: params})
	g.mu.Unlock()
	return g.responder(n, messages)
}

func (g *fakeGateway) CompleteStream(ctx context.Context, messages []Message, params Params) (<-chan string, <-chan error) {
	data := make(chan string, 1)
	errs := make(chan error, 1)
	text, err := g.Complete(ctx, messages, params)
	if err != nil {
		errs <- err
	} else {
		data <- text
	}
	close(data)
	close(errs)
	return data, errs
}

func (g *fakeGateway) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.calls)
}

func (g *fakeGateway) call(i int) gwCall {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls[i]
}

// fakeRoleRepo is an in-memory role.Repository preserving insertion order.
type fakeRoleRepo struct {
	mu    sync.Mutex
	roles []*role.Role
}

func (f *fakeRoleRepo) Create(_ context.Context, r *role.Role) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.roles = append(f.roles, r)
	return nil
}

func (f *fakeRoleRepo) Update(_ context.Context, _ *role.Role) error { return nil }

func (f *fakeRoleRepo) Delete(_ context.Context, _ string) error { return nil }

func (f *fakeRoleRepo) FindByID(ctx context.Context, id string) (*role.Role, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.roles {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, "role not found", nil, "")
}

func (f *fakeRoleRepo) FindByName(ctx context.Context, name string) (*role.Role, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.roles {
		if r.Name == name {
			return r, nil
		}
	}
	return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, "role not found", nil, "")
}

func (f *fakeRoleRepo) FindByFilter(_ context.Context, _ role.Filter, _ *query.Pagination) ([]*role.Role, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*role.Role, len(f.roles))
	copy(out, f.roles)
	return out, nil
}

func (f *fakeRoleRepo) Count(_ context.Context, _ role.Filter) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.roles)), nil
}

func (f *fakeRoleRepo) ReplaceCollaborators(_ context.Context, _ string, _ []string) error {
	return nil
}

func (f *fakeRoleRepo) DeleteAll(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := int64(len(f.roles))
	f.roles = nil
	return n, nil
}

// fakeHistoryRepo is an in-memory history.Repository.
type fakeHistoryRepo struct {
	mu      sync.Mutex
	records []*history.Record
}

func (f *fakeHistoryRepo) Create(_ context.Context, rec *history.Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, rec)
	return nil
}

func (f *fakeHistoryRepo) FindByFilter(_ context.Context, _ history.Filter, _ *query.Pagination) ([]*history.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*history.Record, 0, len(f.records))
	for i := len(f.records) - 1; i >= 0; i-- {
		out = append(out, f.records[i])
	}
	return out, nil
}

func (f *fakeHistoryRepo) Count(_ context.Context, _ history.Filter) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.records)), nil
}

func (f *fakeHistoryRepo) DeleteAll(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := int64(len(f.records))
	f.records = nil
	return n, nil
}

func (f *fakeHistoryRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.records)
}

func newTestRole(name, description, promptTemplate string, collaborators ...*role.Role) *role.Role {
	return &role.Role{
		ID:             "role_" + name,
		Name:           name,
		Description:    description,
		PromptTemplate: promptTemplate,
		ModelName:      "gpt-4o-mini",
		MaxTokens:      500,
		Temperature:    0.7,
		Collaborators:  collaborators,
	}
}

func newTestOrchestrator(roles []*role.Role, gw *fakeGateway) (*Orchestrator, *fakeHistoryRepo) {
	roleRepo := &fakeRoleRepo{roles: roles}
	histRepo := &fakeHistoryRepo{}
	roleSvc := role.NewService(roleRepo)
	histSvc := history.NewService(histRepo)
	return NewOrchestrator(roleSvc, histSvc, gw, NewResolver(gw)), histRepo
}
