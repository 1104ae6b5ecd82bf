package model

import "time"

// WorkspaceStatus is the persisted lifecycle state of a workspace.
type WorkspaceStatus string

const (
	WorkspaceStatusCreating WorkspaceStatus = "creating"
	WorkspaceStatusRunning  WorkspaceStatus = "running"
	WorkspaceStatusStopped  WorkspaceStatus = "stopped"
	WorkspaceStatusError    WorkspaceStatus = "error"
	WorkspaceStatusDeleted  WorkspaceStatus = "deleted"
)

// Workspace represents a user's provisioned development environment,
// backed by an agent runtime container and an editor container.
type Workspace struct {
	ID           string
	OwnerID      string // references the owning user identity
	Name         string
	RepoURL      string
	RepoBranch   string
	Status       WorkspaceStatus
	StatusDetail string // failure detail when Status is error
	AgentPort    int    // internal port of the agent container
	EditorPort   int    // internal port of the editor container
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Running reports whether the persisted desired state is running.
func (w *Workspace) Running() bool {
	return w.Status == WorkspaceStatusRunning
}
