package workspace

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/devharbor/devharbor/adapters/proxy/traefik"
	"github.com/devharbor/devharbor/domain/model"
	"github.com/devharbor/devharbor/internal/envmerge"
	"github.com/devharbor/devharbor/internal/logging"
	"github.com/devharbor/devharbor/internal/naming"
)

// Identity labels attached to every managed container, so the pair can be
// re-resolved from the engine without a side table.
const (
	labelWorkspaceID = "devharbor.workspace.id"
	labelRole        = "devharbor.role"
)

const readyPollInterval = 500 * time.Millisecond

// routing derives the workspace's routing descriptor from settings.
func (u *UseCase) routing(ws *model.Workspace) (*model.RoutingDescriptor, error) {
	return traefik.Descriptor(ws.ID, u.Settings.BaseDomain, ws.AgentPort, ws.EditorPort)
}

// resolveSelection resolves an explicit environment selection strictly:
// a missing environment or one owned by another user rejects the whole
// selection, never a part of it.
func (u *UseCase) resolveSelection(ctx context.Context, ownerID string, environmentIDs []string) ([]*model.Environment, error) {
	envs := make([]*model.Environment, 0, len(environmentIDs))
	for _, id := range environmentIDs {
		e, err := u.Repos.Environment.Get(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("resolve environment %s: %w", id, err)
		}
		if e.OwnerID != ownerID {
			return nil, fmt.Errorf("environment %s: %w", id, model.ErrOwnerMismatch)
		}
		envs = append(envs, e)
	}
	return envs, nil
}

// linkedEnvironments loads the workspace's linked environments in stored
// order. A link whose environment has vanished contributes nothing, like a
// malformed variable payload: one bad record never aborts a merge.
func (u *UseCase) linkedEnvironments(ctx context.Context, ws *model.Workspace) ([]*model.Environment, error) {
	ids, err := u.Repos.Workspace.LinkedEnvironmentIDs(ctx, ws.ID)
	if err != nil {
		return nil, err
	}
	envs := make([]*model.Environment, 0, len(ids))
	for _, id := range ids {
		e, err := u.Repos.Environment.Get(ctx, id)
		if err != nil {
			if errors.Is(err, model.ErrEnvironmentNotFound) {
				logging.FromContext(ctx).Warn(ctx, "linked environment missing, skipped", "workspace", ws.ID, "environment", id)
				continue
			}
			return nil, err
		}
		envs = append(envs, e)
	}
	return envs, nil
}

// containerSpecs builds the container pair specs: merged user variables,
// routing labels for the proxy, and identity labels for re-resolution.
func (u *UseCase) containerSpecs(ws *model.Workspace, desc *model.RoutingDescriptor, vars map[string]string) []*model.ContainerSpec {
	agentEnv := make(map[string]string, len(vars)+3)
	editorEnv := make(map[string]string, len(vars)+1)
	for k, v := range vars {
		agentEnv[k] = v
		editorEnv[k] = v
	}
	// System variables win over user-provided ones.
	agentEnv["HARBOR_WORKSPACE_ID"] = ws.ID
	agentEnv["HARBOR_REPO_URL"] = ws.RepoURL
	agentEnv["HARBOR_REPO_BRANCH"] = ws.RepoBranch
	editorEnv["HARBOR_WORKSPACE_ID"] = ws.ID

	specs := []*model.ContainerSpec{
		{
			Name:         naming.AgentContainerName(ws.ID),
			Image:        u.Settings.AgentImage,
			Env:          agentEnv,
			Labels:       traefik.Labels(ws.ID, desc.Rule(model.RoleAgent)),
			InternalPort: ws.AgentPort,
		},
		{
			Name:         naming.EditorContainerName(ws.ID),
			Image:        u.Settings.EditorImage,
			Env:          editorEnv,
			Labels:       traefik.Labels(ws.ID, desc.Rule(model.RoleEditor)),
			InternalPort: ws.EditorPort,
		},
	}
	for i, role := range []model.ContainerRole{model.RoleAgent, model.RoleEditor} {
		specs[i].Labels[labelWorkspaceID] = ws.ID
		specs[i].Labels[labelRole] = string(role)
	}
	return specs
}

// provisionPair creates and starts both containers and waits until the
// engine reports each running. It returns on first failure; the caller owns
// cleanup of whatever was created.
func (u *UseCase) provisionPair(ctx context.Context, ws *model.Workspace, desc *model.RoutingDescriptor, vars map[string]string) error {
	specs := u.containerSpecs(ws, desc, vars)
	refs := make([]string, len(specs))
	for i, spec := range specs {
		ref, err := u.Engine.CreateContainer(ctx, spec)
		if err != nil {
			return err
		}
		refs[i] = ref
	}
	g, gctx := errgroup.WithContext(ctx)
	for _, ref := range refs {
		g.Go(func() error {
			if err := u.Engine.StartContainer(gctx, ref); err != nil {
				return err
			}
			return u.waitReady(gctx, ref)
		})
	}
	return g.Wait()
}

// waitReady polls the engine until the container reports running or the
// ready timeout elapses. A fixed post-start delay is not a readiness
// signal; the engine's own state is.
func (u *UseCase) waitReady(ctx context.Context, ref string) error {
	ctx, cancel := context.WithTimeout(ctx, u.Settings.ReadyTimeout)
	defer cancel()
	ticker := time.NewTicker(readyPollInterval)
	defer ticker.Stop()
	for {
		state, err := u.Engine.InspectContainer(ctx, ref)
		if err != nil {
			return fmt.Errorf("readiness check %s: %w", ref, err)
		}
		if state.Running {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("container %s not running after %s", ref, u.Settings.ReadyTimeout)
		case <-ticker.C:
		}
	}
}

// stopPair stops both containers with the configured grace period. Missing
// containers already satisfy the desired end state.
func (u *UseCase) stopPair(ctx context.Context, ws *model.Workspace) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, name := range []string{naming.AgentContainerName(ws.ID), naming.EditorContainerName(ws.ID)} {
		g.Go(func() error {
			err := u.Engine.StopContainer(gctx, name, u.Settings.StopGrace)
			if err != nil && !errors.Is(err, model.ErrContainerNotFound) {
				return err
			}
			return nil
		})
	}
	return g.Wait()
}

// removePair force-removes both containers. "Not found" means the desired
// end state already holds and is treated as success.
func (u *UseCase) removePair(ctx context.Context, ws *model.Workspace) error {
	var firstErr error
	for _, name := range []string{naming.AgentContainerName(ws.ID), naming.EditorContainerName(ws.ID)} {
		err := u.Engine.RemoveContainer(ctx, name, true)
		if err != nil && !errors.Is(err, model.ErrContainerNotFound) && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// persistStatus updates the workspace status after an engine outcome is
// known. It is never called speculatively before the outcome.
func (u *UseCase) persistStatus(ctx context.Context, ws *model.Workspace, status model.WorkspaceStatus, detail string) error {
	ws.Status = status
	ws.StatusDetail = detail
	ws.UpdatedAt = time.Now().UTC()
	return u.Repos.Workspace.Update(ctx, ws)
}

// mergedVariables computes the current desired variable mapping for the
// workspace from its linked environments in stored order.
func (u *UseCase) mergedVariables(ctx context.Context, ws *model.Workspace) (map[string]string, error) {
	envs, err := u.linkedEnvironments(ctx, ws)
	if err != nil {
		return nil, err
	}
	return envmerge.Merge(envs), nil
}
