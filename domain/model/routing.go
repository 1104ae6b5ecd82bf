package model

// ContainerRole identifies one half of a workspace's container pair.
type ContainerRole string

const (
	RoleAgent  ContainerRole = "agent"
	RoleEditor ContainerRole = "editor"
)

// RoutingRule is one virtual-host rule consumed by the reverse proxy.
type RoutingRule struct {
	Role    ContainerRole `json:"role"`
	Host    string        `json:"host"`
	Port    int           `json:"port"` // internal container port the host maps to
	Enabled bool          `json:"enabled"`
}

// RoutingDescriptor is derived from (workspace id, base domain) with no
// additional state; it is never persisted.
type RoutingDescriptor struct {
	WorkspaceID string        `json:"workspaceId"`
	Domain      string        `json:"domain"`
	Rules       []RoutingRule `json:"rules"`
}

// Rule returns the rule for the given role, or nil.
func (d *RoutingDescriptor) Rule(role ContainerRole) *RoutingRule {
	for i := range d.Rules {
		if d.Rules[i].Role == role {
			return &d.Rules[i]
		}
	}
	return nil
}
