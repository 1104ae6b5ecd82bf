package workspace

import (
	"context"
	"fmt"
	"time"

	"github.com/devharbor/devharbor/domain/model"
	"github.com/devharbor/devharbor/internal/envmerge"
	"github.com/devharbor/devharbor/internal/logging"
)

// CreateInput contains data to provision a workspace.
type CreateInput struct {
	// OwnerID is the caller identity provisioning the workspace.
	OwnerID string `json:"owner_id"`
	// Name is the display name.
	Name string `json:"name"`
	// RepoURL and RepoBranch reference the source repository.
	RepoURL    string `json:"repo_url"`
	RepoBranch string `json:"repo_branch"`
	// EnvironmentIDs are the environments to link, in merge-priority order.
	EnvironmentIDs []string `json:"environment_ids"`
}

// CreateOutput wraps the provisioned workspace and its derived routing.
type CreateOutput struct {
	Workspace *model.Workspace         `json:"workspace"`
	Routing   *model.RoutingDescriptor `json:"routing"`
}

// Create provisions the workspace: persists the record, links the selected
// environments, creates and starts the container pair with merged variables
// and routing labels attached, and persists status=running only after both
// containers are confirmed up. On failure it best-effort removes partially
// created containers and leaves the record in error status with the
// failure detail retained.
func (u *UseCase) Create(ctx context.Context, in *CreateInput) (*CreateOutput, error) {
	if in == nil || in.OwnerID == "" || in.Name == "" {
		return nil, model.ErrWorkspaceInvalid
	}

	// Ownership is validated before any external call; a single foreign
	// environment rejects the whole selection.
	envs, err := u.resolveSelection(ctx, in.OwnerID, in.EnvironmentIDs)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	ws := &model.Workspace{
		OwnerID:    in.OwnerID,
		Name:       in.Name,
		RepoURL:    in.RepoURL,
		RepoBranch: in.RepoBranch,
		Status:     model.WorkspaceStatusCreating,
		AgentPort:  u.Settings.AgentPort,
		EditorPort: u.Settings.EditorPort,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := u.Repos.Workspace.Create(ctx, ws); err != nil {
		return nil, err
	}
	// From here the record exists; any failure must leave it in error
	// status with the cause retained, never stuck in creating.
	if err := u.Repos.Workspace.ReplaceEnvironmentLinks(ctx, ws.ID, in.EnvironmentIDs); err != nil {
		return nil, u.failCreate(ctx, ws, err)
	}

	unlock := u.lock(ws.ID)
	defer unlock()

	desc, err := u.routing(ws)
	if err != nil {
		return nil, u.failCreate(ctx, ws, err)
	}

	if err := u.provisionPair(ctx, ws, desc, envmerge.Merge(envs)); err != nil {
		if rmErr := u.removePair(ctx, ws); rmErr != nil {
			logging.FromContext(ctx).Warn(ctx, "cleanup after failed create incomplete", "workspace", ws.ID, "err", rmErr.Error())
		}
		return nil, u.failCreate(ctx, ws, err)
	}

	if err := u.persistStatus(ctx, ws, model.WorkspaceStatusRunning, ""); err != nil {
		return nil, err
	}
	return &CreateOutput{Workspace: ws, Routing: desc}, nil
}

// failCreate records the failure on the workspace and returns the wrapped
// error. The record never stays in creating status once a cause is known.
func (u *UseCase) failCreate(ctx context.Context, ws *model.Workspace, cause error) error {
	if upErr := u.persistStatus(ctx, ws, model.WorkspaceStatusError, cause.Error()); upErr != nil {
		logging.FromContext(ctx).Error(ctx, "persist error status failed", "workspace", ws.ID, "err", upErr.Error())
	}
	return fmt.Errorf("create workspace %s: %w", ws.ID, cause)
}
