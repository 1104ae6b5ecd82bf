package inmem

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/devharbor/devharbor/domain"
	"github.com/devharbor/devharbor/domain/model"
)

// WorkspaceRepository is a thread-safe in-memory implementation.
type WorkspaceRepository struct {
	mu         sync.RWMutex
	workspaces map[string]*model.Workspace
	links      map[string][]string // workspace id -> ordered environment ids
}

func NewWorkspaceRepository() *WorkspaceRepository {
	return &WorkspaceRepository{
		workspaces: make(map[string]*model.Workspace),
		links:      make(map[string][]string),
	}
}

func (r *WorkspaceRepository) Create(_ context.Context, w *model.Workspace) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if w.ID == "" {
		w.ID = "ws-" + uuid.NewString()
	}
	// Copy to avoid external mutation.
	cp := *w
	r.workspaces[w.ID] = &cp
	return nil
}

func (r *WorkspaceRepository) Get(_ context.Context, id string) (*model.Workspace, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.workspaces[id]
	if !ok {
		return nil, model.ErrWorkspaceNotFound
	}
	cp := *w
	return &cp, nil
}

func (r *WorkspaceRepository) List(_ context.Context) ([]*model.Workspace, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.Workspace, 0, len(r.workspaces))
	for _, v := range r.workspaces {
		cp := *v
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *WorkspaceRepository) Update(_ context.Context, w *model.Workspace) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.workspaces[w.ID]; !ok {
		return model.ErrWorkspaceNotFound
	}
	cp := *w
	r.workspaces[w.ID] = &cp
	return nil
}

func (r *WorkspaceRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.workspaces[id]; !ok {
		return model.ErrWorkspaceNotFound
	}
	delete(r.workspaces, id)
	delete(r.links, id)
	return nil
}

func (r *WorkspaceRepository) ReplaceEnvironmentLinks(_ context.Context, workspaceID string, environmentIDs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := make([]string, len(environmentIDs))
	copy(cp, environmentIDs)
	r.links[workspaceID] = cp
	return nil
}

// unlinkEnvironment drops an environment id from every workspace's link
// list, mirroring the rdb adapter's transactional link cleanup on
// environment delete. Remaining links keep their order.
func (r *WorkspaceRepository) unlinkEnvironment(environmentID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for wsID, ids := range r.links {
		kept := make([]string, 0, len(ids))
		for _, id := range ids {
			if id != environmentID {
				kept = append(kept, id)
			}
		}
		r.links[wsID] = kept
	}
}

func (r *WorkspaceRepository) LinkedEnvironmentIDs(_ context.Context, workspaceID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := r.links[workspaceID]
	cp := make([]string, len(ids))
	copy(cp, ids)
	return cp, nil
}

var _ domain.WorkspaceRepository = (*WorkspaceRepository)(nil)
