package workspace

import (
	"context"
	"fmt"

	"github.com/devharbor/devharbor/domain/model"
)

// DeleteInput identifies the workspace to delete.
type DeleteInput struct {
	WorkspaceID string `json:"workspace_id"`
	// KeepRecord retains the workspace record in deleted status instead of
	// removing it.
	KeepRecord bool `json:"keep_record"`
}

// DeleteOutput is empty because delete has no return entity.
type DeleteOutput struct{}

// Delete force-removes both containers and then deletes the workspace.
// Containers already absent from the engine are tolerated: the desired end
// state holds. On a real engine failure the prior status is kept so a
// retry is safe.
func (u *UseCase) Delete(ctx context.Context, in *DeleteInput) (*DeleteOutput, error) {
	if in == nil || in.WorkspaceID == "" {
		return nil, model.ErrWorkspaceInvalid
	}
	unlock := u.lock(in.WorkspaceID)
	defer unlock()

	ws, err := u.Repos.Workspace.Get(ctx, in.WorkspaceID)
	if err != nil {
		return nil, err
	}

	if err := u.removePair(ctx, ws); err != nil {
		return nil, fmt.Errorf("delete workspace %s: %w", ws.ID, err)
	}

	if in.KeepRecord {
		if err := u.persistStatus(ctx, ws, model.WorkspaceStatusDeleted, ""); err != nil {
			return nil, err
		}
		return &DeleteOutput{}, nil
	}
	if err := u.Repos.Workspace.Delete(ctx, ws.ID); err != nil {
		return nil, err
	}
	return &DeleteOutput{}, nil
}
