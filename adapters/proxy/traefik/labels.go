package traefik

// Package traefik builds the declarative routing configuration the reverse
// proxy consumes at discovery time. Rules are attached to containers as
// docker-provider labels; nothing here touches the network or any store.

import (
	"fmt"
	"strconv"

	"github.com/devharbor/devharbor/domain/model"
	"github.com/devharbor/devharbor/internal/naming"
)

// Descriptor derives the routing descriptor for a workspace: one virtual
// host per container role, each mapping to that container's internal port.
// The result is a pure function of (workspace id, base domain, ports); the
// id is validated as a safe hostname component first.
func Descriptor(workspaceID, baseDomain string, agentPort, editorPort int) (*model.RoutingDescriptor, error) {
	if err := naming.ValidateWorkspaceID(workspaceID); err != nil {
		return nil, fmt.Errorf("%w: %s", model.ErrWorkspaceInvalid, err)
	}
	if err := naming.ValidateBaseDomain(baseDomain); err != nil {
		return nil, fmt.Errorf("%w: %s", model.ErrWorkspaceInvalid, err)
	}
	return &model.RoutingDescriptor{
		WorkspaceID: workspaceID,
		Domain:      baseDomain,
		Rules: []model.RoutingRule{
			{Role: model.RoleAgent, Host: naming.AgentHost(workspaceID, baseDomain), Port: agentPort, Enabled: true},
			{Role: model.RoleEditor, Host: naming.EditorHost(workspaceID, baseDomain), Port: editorPort, Enabled: true},
		},
	}, nil
}

// Labels renders one routing rule as docker-provider labels for the proxy.
// The router name embeds the role and workspace id, so distinct workspaces
// never collide for a fixed domain.
func Labels(workspaceID string, rule *model.RoutingRule) map[string]string {
	router := fmt.Sprintf("harbor-%s-%s", rule.Role, workspaceID)
	return map[string]string{
		"traefik.enable": strconv.FormatBool(rule.Enabled),
		fmt.Sprintf("traefik.http.routers.%s.rule", router):                      fmt.Sprintf("Host(`%s`)", rule.Host),
		fmt.Sprintf("traefik.http.routers.%s.service", router):                   router,
		fmt.Sprintf("traefik.http.services.%s.loadbalancer.server.port", router): strconv.Itoa(rule.Port),
	}
}
