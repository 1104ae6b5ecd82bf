package workspace

import (
	"context"
	"fmt"

	"github.com/devharbor/devharbor/domain/model"
)

// StopInput identifies the workspace to stop.
type StopInput struct {
	WorkspaceID string `json:"workspace_id"`
}

// StopOutput wraps the stopped workspace.
type StopOutput struct {
	Workspace *model.Workspace `json:"workspace"`
}

// Stop halts both containers with the configured grace period before
// forced termination. Stopping an already-stopped workspace is a no-op
// success. On engine failure the prior status is kept so a retry is safe;
// status=stopped is persisted only after the engine confirms both
// containers are down.
func (u *UseCase) Stop(ctx context.Context, in *StopInput) (*StopOutput, error) {
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
	if ws.Status == model.WorkspaceStatusStopped {
		return &StopOutput{Workspace: ws}, nil
	}

	if err := u.stopPair(ctx, ws); err != nil {
		return nil, fmt.Errorf("stop workspace %s: %w", ws.ID, err)
	}
	if err := u.persistStatus(ctx, ws, model.WorkspaceStatusStopped, ""); err != nil {
		return nil, err
	}
	return &StopOutput{Workspace: ws}, nil
}
