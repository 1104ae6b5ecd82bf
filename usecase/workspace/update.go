package workspace

import (
	"context"
	"time"

	"github.com/devharbor/devharbor/domain/model"
)

// UpdateInput carries mutable workspace fields; empty fields are unchanged.
type UpdateInput struct {
	WorkspaceID string `json:"workspace_id"`
	Name        string `json:"name,omitempty"`
	RepoURL     string `json:"repo_url,omitempty"`
	RepoBranch  string `json:"repo_branch,omitempty"`
}

// UpdateOutput wraps the updated workspace.
type UpdateOutput struct {
	Workspace *model.Workspace `json:"workspace"`
}

// Update changes workspace metadata. Repository changes take effect on
// the next start, when the container pair is rebuilt.
func (u *UseCase) Update(ctx context.Context, in *UpdateInput) (*UpdateOutput, error) {
	if in == nil || in.WorkspaceID == "" {
		return nil, model.ErrWorkspaceInvalid
	}
	unlock := u.lock(in.WorkspaceID)
	defer unlock()

	ws, err := u.Repos.Workspace.Get(ctx, in.WorkspaceID)
	if err != nil {
		return nil, err
	}
	if in.Name != "" {
		ws.Name = in.Name
	}
	if in.RepoURL != "" {
		ws.RepoURL = in.RepoURL
	}
	if in.RepoBranch != "" {
		ws.RepoBranch = in.RepoBranch
	}
	ws.UpdatedAt = time.Now().UTC()
	if err := u.Repos.Workspace.Update(ctx, ws); err != nil {
		return nil, err
	}
	return &UpdateOutput{Workspace: ws}, nil
}
