package workspace

import (
	"context"
	"fmt"

	"github.com/devharbor/devharbor/domain/model"
	"github.com/devharbor/devharbor/internal/logging"
)

// RecreateInput identifies the workspace to recreate.
type RecreateInput struct {
	WorkspaceID string `json:"workspace_id"`
}

// RecreateOutput wraps the recreated workspace.
type RecreateOutput struct {
	Workspace *model.Workspace `json:"workspace"`
}

// Recreate retries provisioning for a workspace left in error status by a
// failed create or start: any leftover containers are torn down and the
// pair is rebuilt from the persisted desired state. It also serves as a
// forced rebuild for running workspaces.
func (u *UseCase) Recreate(ctx context.Context, in *RecreateInput) (*RecreateOutput, error) {
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

	vars, err := u.mergedVariables(ctx, ws)
	if err != nil {
		return nil, err
	}
	desc, err := u.routing(ws)
	if err != nil {
		return nil, err
	}

	if err := u.removePair(ctx, ws); err != nil {
		return nil, fmt.Errorf("recreate workspace %s: teardown: %w", ws.ID, err)
	}

	if err := u.provisionPair(ctx, ws, desc, vars); err != nil {
		log := logging.FromContext(ctx)
		if rmErr := u.removePair(ctx, ws); rmErr != nil {
			log.Warn(ctx, "cleanup after failed recreate incomplete", "workspace", ws.ID, "err", rmErr.Error())
		}
		if upErr := u.persistStatus(ctx, ws, model.WorkspaceStatusError, err.Error()); upErr != nil {
			log.Error(ctx, "persist error status failed", "workspace", ws.ID, "err", upErr.Error())
		}
		return nil, fmt.Errorf("recreate workspace %s: %w", ws.ID, err)
	}

	if err := u.persistStatus(ctx, ws, model.WorkspaceStatusRunning, ""); err != nil {
		return nil, err
	}
	return &RecreateOutput{Workspace: ws}, nil
}
