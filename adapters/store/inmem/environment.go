package inmem

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/devharbor/devharbor/domain"
	"github.com/devharbor/devharbor/domain/model"
)

// EnvironmentRepository is a thread-safe in-memory implementation.
type EnvironmentRepository struct {
	mu           sync.RWMutex
	environments map[string]*model.Environment

	// workspaces, when set by the store, receives link cleanup on delete
	// the way the rdb adapter's delete transaction does.
	workspaces *WorkspaceRepository
}

func NewEnvironmentRepository() *EnvironmentRepository {
	return &EnvironmentRepository{
		environments: make(map[string]*model.Environment),
	}
}

func copyEnvironment(e *model.Environment) *model.Environment {
	cp := *e
	if e.Variables != nil {
		cp.Variables = make(map[string]string, len(e.Variables))
		for k, v := range e.Variables {
			cp.Variables[k] = v
		}
	}
	return &cp
}

func (r *EnvironmentRepository) Create(_ context.Context, e *model.Environment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e.ID == "" {
		e.ID = "env-" + uuid.NewString()
	}
	r.environments[e.ID] = copyEnvironment(e)
	return nil
}

func (r *EnvironmentRepository) Get(_ context.Context, id string) (*model.Environment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.environments[id]
	if !ok {
		return nil, model.ErrEnvironmentNotFound
	}
	return copyEnvironment(e), nil
}

func (r *EnvironmentRepository) List(_ context.Context) ([]*model.Environment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.Environment, 0, len(r.environments))
	for _, v := range r.environments {
		out = append(out, copyEnvironment(v))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *EnvironmentRepository) Update(_ context.Context, e *model.Environment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.environments[e.ID]; !ok {
		return model.ErrEnvironmentNotFound
	}
	r.environments[e.ID] = copyEnvironment(e)
	return nil
}

func (r *EnvironmentRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	if _, ok := r.environments[id]; !ok {
		r.mu.Unlock()
		return model.ErrEnvironmentNotFound
	}
	delete(r.environments, id)
	r.mu.Unlock()
	if r.workspaces != nil {
		r.workspaces.unlinkEnvironment(id)
	}
	return nil
}

var _ domain.EnvironmentRepository = (*EnvironmentRepository)(nil)
