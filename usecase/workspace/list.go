package workspace

import (
	"context"

	"github.com/devharbor/devharbor/domain/model"
)

// ListInput optionally scopes the listing to one owner.
type ListInput struct {
	OwnerID string `json:"owner_id,omitempty"`
}

// ListOutput carries the matching workspaces.
type ListOutput struct {
	Workspaces []*model.Workspace `json:"workspaces"`
}

// List returns workspaces, scoped to the owner when given.
func (u *UseCase) List(ctx context.Context, in *ListInput) (*ListOutput, error) {
	all, err := u.Repos.Workspace.List(ctx)
	if err != nil {
		return nil, err
	}
	if in == nil || in.OwnerID == "" {
		return &ListOutput{Workspaces: all}, nil
	}
	out := make([]*model.Workspace, 0, len(all))
	for _, w := range all {
		if w.OwnerID == in.OwnerID {
			out = append(out, w)
		}
	}
	return &ListOutput{Workspaces: out}, nil
}
