package domain

import (
	"context"

	"github.com/devharbor/devharbor/domain/model"
)

// WorkspaceRepository stores and retrieves Workspace aggregates together
// with their ordered environment links.
type WorkspaceRepository interface {
	Create(ctx context.Context, w *model.Workspace) error
	Get(ctx context.Context, id string) (*model.Workspace, error)
	List(ctx context.Context) ([]*model.Workspace, error)
	Update(ctx context.Context, w *model.Workspace) error
	Delete(ctx context.Context, id string) error

	// ReplaceEnvironmentLinks replaces the workspace's environment links
	// wholesale. Slice order is the variable merge-priority order and is
	// preserved on read-back. Links are never partially patched.
	ReplaceEnvironmentLinks(ctx context.Context, workspaceID string, environmentIDs []string) error
	// LinkedEnvironmentIDs returns the linked environment ids in their
	// stored order.
	LinkedEnvironmentIDs(ctx context.Context, workspaceID string) ([]string, error)
}

// EnvironmentRepository stores and retrieves Environment aggregates.
type EnvironmentRepository interface {
	Create(ctx context.Context, e *model.Environment) error
	Get(ctx context.Context, id string) (*model.Environment, error)
	List(ctx context.Context) ([]*model.Environment, error)
	Update(ctx context.Context, e *model.Environment) error
	Delete(ctx context.Context, id string) error
}

// Repositories groups repository interfaces for injection into use cases.
type Repositories struct {
	Workspace   WorkspaceRepository
	Environment EnvironmentRepository
}
