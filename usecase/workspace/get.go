package workspace

import (
	"context"

	"github.com/devharbor/devharbor/domain/model"
)

// GetInput identifies the workspace to fetch.
type GetInput struct {
	WorkspaceID string `json:"workspace_id"`
}

// GetOutput carries the workspace, its ordered environment links, and the
// derived routing descriptor.
type GetOutput struct {
	Workspace      *model.Workspace         `json:"workspace"`
	EnvironmentIDs []string                 `json:"environment_ids"`
	Routing        *model.RoutingDescriptor `json:"routing"`
}

// Get fetches a workspace by id.
func (u *UseCase) Get(ctx context.Context, in *GetInput) (*GetOutput, error) {
	if in == nil || in.WorkspaceID == "" {
		return nil, model.ErrWorkspaceInvalid
	}
	ws, err := u.Repos.Workspace.Get(ctx, in.WorkspaceID)
	if err != nil {
		return nil, err
	}
	ids, err := u.Repos.Workspace.LinkedEnvironmentIDs(ctx, ws.ID)
	if err != nil {
		return nil, err
	}
	desc, err := u.routing(ws)
	if err != nil {
		return nil, err
	}
	return &GetOutput{Workspace: ws, EnvironmentIDs: ids, Routing: desc}, nil
}
