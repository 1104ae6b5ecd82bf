package workspace

import (
	"context"

	"github.com/devharbor/devharbor/domain/model"
	"github.com/devharbor/devharbor/internal/naming"
	"github.com/devharbor/devharbor/internal/sessionprobe"
)

// SessionInput identifies the workspace to probe.
type SessionInput struct {
	WorkspaceID string `json:"workspace_id"`
}

// SessionOutput carries the recovered session id, if any. Found false is
// a normal state for a fresh workspace, not a failure.
type SessionOutput struct {
	SessionID string `json:"session_id,omitempty"`
	Found     bool   `json:"found"`
}

// Session probes the agent container for the runtime's most recent session
// id. The probe is best effort: transport failures and an absent session
// both report Found false.
func (u *UseCase) Session(ctx context.Context, in *SessionInput) (*SessionOutput, error) {
	if in == nil || in.WorkspaceID == "" {
		return nil, model.ErrWorkspaceInvalid
	}
	ws, err := u.Repos.Workspace.Get(ctx, in.WorkspaceID)
	if err != nil {
		return nil, err
	}
	if ws.Status == model.WorkspaceStatusDeleted {
		return nil, model.ErrWorkspaceNotFound
	}

	prober := &sessionprobe.Prober{Engine: u.Engine, Timeout: u.Settings.ExecTimeout}
	id, found := prober.Probe(ctx, naming.AgentContainerName(ws.ID))
	return &SessionOutput{SessionID: id, Found: found}, nil
}
