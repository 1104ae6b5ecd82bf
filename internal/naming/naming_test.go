package naming

import "testing"

func TestContainerNames(t *testing.T) {
	if got := AgentContainerName("ws-1"); got != "harbor-agent-ws-1" {
		t.Fatalf("AgentContainerName = %q", got)
	}
	if got := EditorContainerName("ws-1"); got != "harbor-editor-ws-1" {
		t.Fatalf("EditorContainerName = %q", got)
	}
}

func TestHosts(t *testing.T) {
	if got := AgentHost("ws-1", "dev.example.com"); got != "agent-ws-1.dev.example.com" {
		t.Fatalf("AgentHost = %q", got)
	}
	if got := EditorHost("ws-1", "dev.example.com"); got != "editor-ws-1.dev.example.com" {
		t.Fatalf("EditorHost = %q", got)
	}
}

func TestHostsDistinctPerWorkspace(t *testing.T) {
	// Distinct ids must never collide for a fixed domain.
	ids := []string{"abc", "abd", "ab", "abc1"}
	seen := map[string]string{}
	for _, id := range ids {
		for _, host := range []string{AgentHost(id, "d.io"), EditorHost(id, "d.io")} {
			if prev, ok := seen[host]; ok {
				t.Fatalf("host %q produced by both %q and %q", host, prev, id)
			}
			seen[host] = id
		}
	}
}
