package workspace

import (
	"context"

	"github.com/devharbor/devharbor/domain/model"
	"github.com/devharbor/devharbor/internal/envmerge"
)

// ConfigureEnvironmentsInput replaces a workspace's environment selection.
type ConfigureEnvironmentsInput struct {
	WorkspaceID string `json:"workspace_id"`
	// EnvironmentIDs is the new selection; request order is the variable
	// merge-priority order.
	EnvironmentIDs []string `json:"environment_ids"`
}

// ConfigureEnvironmentsOutput reports the new selection and the
// best-effort sync disposition.
type ConfigureEnvironmentsOutput struct {
	Workspace *model.Workspace `json:"workspace"`
	Sync      *SyncResult      `json:"sync"`
}

// ConfigureEnvironments replaces the linked environments wholesale. An id
// not owned by the workspace owner rejects the whole update with nothing
// linked. After the links are persisted the new merge is pushed into the
// running containers best-effort; a failed push never fails the update.
func (u *UseCase) ConfigureEnvironments(ctx context.Context, in *ConfigureEnvironmentsInput) (*ConfigureEnvironmentsOutput, error) {
	if in == nil || in.WorkspaceID == "" {
		return nil, model.ErrWorkspaceInvalid
	}
	unlock := u.lock(in.WorkspaceID)
	defer unlock()

	ws, err := u.Repos.Workspace.Get(ctx, in.WorkspaceID)
	if err != nil {
		return nil, err
	}
	if ws.Status == model.WorkspaceStatusDeleted {
		return nil, model.ErrWorkspaceNotFound
	}

	envs, err := u.resolveSelection(ctx, ws.OwnerID, in.EnvironmentIDs)
	if err != nil {
		return nil, err
	}
	if err := u.Repos.Workspace.ReplaceEnvironmentLinks(ctx, ws.ID, in.EnvironmentIDs); err != nil {
		return nil, err
	}

	result := u.pushVariables(ctx, ws, envmerge.Merge(envs))
	return &ConfigureEnvironmentsOutput{Workspace: ws, Sync: result}, nil
}
