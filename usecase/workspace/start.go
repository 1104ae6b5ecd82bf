package workspace

import (
	"context"
	"fmt"

	"github.com/devharbor/devharbor/domain/model"
	"github.com/devharbor/devharbor/internal/logging"
)

// StartInput identifies the workspace to start.
type StartInput struct {
	WorkspaceID string `json:"workspace_id"`
}

// StartOutput wraps the started workspace.
type StartOutput struct {
	Workspace *model.Workspace `json:"workspace"`
}

// Start brings a stopped workspace back up. The engine cannot mutate the
// environment of an existing container, so the pair is recreated from the
// persisted desired state; the current linked-environment merge therefore
// takes effect here. Starting a running workspace is a no-op success.
func (u *UseCase) Start(ctx context.Context, in *StartInput) (*StartOutput, error) {
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
	if ws.Running() {
		return &StartOutput{Workspace: ws}, nil
	}

	vars, err := u.mergedVariables(ctx, ws)
	if err != nil {
		return nil, err
	}
	desc, err := u.routing(ws)
	if err != nil {
		return nil, err
	}

	// Clear leftovers from the previous run; absent containers are fine.
	if err := u.removePair(ctx, ws); err != nil {
		logging.FromContext(ctx).Warn(ctx, "stale container removal incomplete", "workspace", ws.ID, "err", err.Error())
	}

	if err := u.provisionPair(ctx, ws, desc, vars); err != nil {
		if rmErr := u.removePair(ctx, ws); rmErr != nil {
			logging.FromContext(ctx).Warn(ctx, "cleanup after failed start incomplete", "workspace", ws.ID, "err", rmErr.Error())
		}
		if upErr := u.persistStatus(ctx, ws, model.WorkspaceStatusError, err.Error()); upErr != nil {
			logging.FromContext(ctx).Error(ctx, "persist error status failed", "workspace", ws.ID, "err", upErr.Error())
		}
		return nil, fmt.Errorf("start workspace %s: %w", ws.ID, err)
	}

	if err := u.persistStatus(ctx, ws, model.WorkspaceStatusRunning, ""); err != nil {
		return nil, err
	}
	return &StartOutput{Workspace: ws}, nil
}
