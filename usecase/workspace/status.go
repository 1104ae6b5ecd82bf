package workspace

import (
	"context"
	"errors"

	"github.com/devharbor/devharbor/domain/model"
	"github.com/devharbor/devharbor/internal/naming"
)

// StatusInput identifies the workspace to inspect.
type StatusInput struct {
	WorkspaceID string `json:"workspace_id"`
}

// StatusOutput reports the persisted desired state next to the live engine
// state of both containers, making store/engine divergence visible. A nil
// container state means the engine has no such container.
type StatusOutput struct {
	Workspace *model.Workspace      `json:"workspace"`
	Agent     *model.ContainerState `json:"agent,omitempty"`
	Editor    *model.ContainerState `json:"editor,omitempty"`
}

// Status inspects the live state of the workspace's container pair.
func (u *UseCase) Status(ctx context.Context, in *StatusInput) (*StatusOutput, error) {
	if in == nil || in.WorkspaceID == "" {
		return nil, model.ErrWorkspaceInvalid
	}
	ws, err := u.Repos.Workspace.Get(ctx, in.WorkspaceID)
	if err != nil {
		return nil, err
	}
	out := &StatusOutput{Workspace: ws}
	if out.Agent, err = u.inspect(ctx, naming.AgentContainerName(ws.ID)); err != nil {
		return nil, err
	}
	if out.Editor, err = u.inspect(ctx, naming.EditorContainerName(ws.ID)); err != nil {
		return nil, err
	}
	return out, nil
}

func (u *UseCase) inspect(ctx context.Context, name string) (*model.ContainerState, error) {
	state, err := u.Engine.InspectContainer(ctx, name)
	if errors.Is(err, model.ErrContainerNotFound) {
		return nil, nil
	}
	return state, err
}
