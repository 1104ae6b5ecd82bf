package naming

// Package naming centralizes derivation of container names and virtual
// hosts from workspace identifiers. Both surfaces share the same alphabet
// constraints, so validation lives here as well.

import "fmt"

const containerNamePrefix = "harbor"

// AgentContainerName returns the deterministic container name for the
// agent runtime container of a workspace.
func AgentContainerName(workspaceID string) string {
	return fmt.Sprintf("%s-agent-%s", containerNamePrefix, workspaceID)
}

// EditorContainerName returns the deterministic container name for the
// editor container of a workspace.
func EditorContainerName(workspaceID string) string {
	return fmt.Sprintf("%s-editor-%s", containerNamePrefix, workspaceID)
}

// AgentHost returns the virtual host routing to the agent container.
func AgentHost(workspaceID, baseDomain string) string {
	return fmt.Sprintf("agent-%s.%s", workspaceID, baseDomain)
}

// EditorHost returns the virtual host routing to the editor container.
func EditorHost(workspaceID, baseDomain string) string {
	return fmt.Sprintf("editor-%s.%s", workspaceID, baseDomain)
}
