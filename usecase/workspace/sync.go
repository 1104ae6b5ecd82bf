package workspace

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/devharbor/devharbor/domain/model"
	"github.com/devharbor/devharbor/internal/envmerge"
	"github.com/devharbor/devharbor/internal/logging"
	"github.com/devharbor/devharbor/internal/naming"
	"github.com/devharbor/devharbor/internal/streammux"
)

// SyncOutcome classifies a best-effort environment sync.
type SyncOutcome string

const (
	// SyncApplied: the agent runtime received the new variables live.
	SyncApplied SyncOutcome = "applied"
	// SyncDeferred: the desired state is persisted; the new values take
	// effect on the workspace's next start.
	SyncDeferred SyncOutcome = "deferred"
	// SyncFailed: the live push errored; the desired state is persisted
	// and workspace availability is unaffected.
	SyncFailed SyncOutcome = "failed"
)

// SyncResult reports the sync disposition to the caller.
type SyncResult struct {
	Outcome SyncOutcome `json:"outcome"`
	Detail  string      `json:"detail,omitempty"`
}

// SyncInput identifies the workspace to sync.
type SyncInput struct {
	WorkspaceID string `json:"workspace_id"`
}

// SyncOutput wraps the sync result.
type SyncOutput struct {
	Result *SyncResult `json:"result"`
}

// agentEnvFile is the path the agent runtime re-reads for live variable
// updates. The editor container has no such channel; its variables apply
// on the next start.
const agentEnvFile = "/home/agent/.agentd/env"

// Sync recomputes the merged variable mapping from the current linked
// environment order and pushes it into the running agent container. The
// operation never fails workspace availability: a stopped workspace or a
// failed push degrades to a deferred or failed-non-fatal result, and the
// persisted desired state already carries the new values either way.
func (u *UseCase) Sync(ctx context.Context, in *SyncInput) (*SyncOutput, error) {
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
	return &SyncOutput{Result: u.pushVariables(ctx, ws, vars)}, nil
}

// pushVariables performs the live push and classifies the outcome. Engine
// errors are logged and swallowed into a non-fatal result.
func (u *UseCase) pushVariables(ctx context.Context, ws *model.Workspace, vars map[string]string) *SyncResult {
	if !ws.Running() {
		return &SyncResult{
			Outcome: SyncDeferred,
			Detail:  "workspace is not running; variables apply on next start",
		}
	}

	// Values are opaque user data; base64 keeps them out of shell syntax
	// entirely, so no value can terminate or escape the write.
	content := strings.Join(envmerge.Slice(vars), "\n")
	encoded := base64.StdEncoding.EncodeToString([]byte(content))
	cmd := []string{"sh", "-c", fmt.Sprintf("umask 077 && echo %s | base64 -d > %s", encoded, agentEnvFile)}

	execCtx, cancel := context.WithTimeout(ctx, u.Settings.ExecTimeout)
	defer cancel()
	stream, err := u.Engine.Exec(execCtx, naming.AgentContainerName(ws.ID), cmd)
	if err != nil {
		logging.FromContext(ctx).Warn(ctx, "live variable push failed", "workspace", ws.ID, "err", err.Error())
		return &SyncResult{
			Outcome: SyncFailed,
			Detail:  "live push failed; variables apply on next restart",
		}
	}
	defer stream.Close()
	if _, err := streammux.Demux(stream, streammux.Stdout, streammux.Stderr); err != nil {
		logging.FromContext(ctx).Warn(ctx, "live variable push stream error", "workspace", ws.ID, "err", err.Error())
		return &SyncResult{
			Outcome: SyncFailed,
			Detail:  "live push failed; variables apply on next restart",
		}
	}
	return &SyncResult{
		Outcome: SyncApplied,
		Detail:  "editor container variables apply on next start",
	}
}
