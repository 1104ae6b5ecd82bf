package harborcfg

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultFileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadMinimal(t *testing.T) {
	path := writeConfig(t, `
version: 1
domain: dev.example.com
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Domain != "dev.example.com" {
		t.Errorf("domain = %q", cfg.Domain)
	}
	// Everything not given falls to defaults.
	if cfg.Engine.Network != "devharbor" {
		t.Errorf("network = %q", cfg.Engine.Network)
	}
	if cfg.Agent.Image != "devharbor/agent:latest" || cfg.Agent.Port != 3284 {
		t.Errorf("agent defaults = %+v", cfg.Agent)
	}
	if cfg.Editor.Image != "devharbor/editor:latest" || cfg.Editor.Port != 8080 {
		t.Errorf("editor defaults = %+v", cfg.Editor)
	}
	if cfg.StopGrace() != 10*time.Second {
		t.Errorf("stop grace = %s", cfg.StopGrace())
	}
	if cfg.ReadyTimeout() != 30*time.Second {
		t.Errorf("ready timeout = %s", cfg.ReadyTimeout())
	}
	if cfg.ExecTimeout() != 10*time.Second {
		t.Errorf("exec timeout = %s", cfg.ExecTimeout())
	}
}

func TestLoadFull(t *testing.T) {
	path := writeConfig(t, `
version: 1
domain: harbor.internal
engine:
  host: tcp://docker.internal:2376
  network: edge
agent:
  image: registry.internal/agent:2.1
  port: 4000
editor:
  image: registry.internal/editor:2.1
  port: 9000
timeout:
  stopGraceSeconds: 3
  readySeconds: 5
  execSeconds: 2
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Engine.Host != "tcp://docker.internal:2376" || cfg.Engine.Network != "edge" {
		t.Errorf("engine = %+v", cfg.Engine)
	}
	if cfg.Agent.Port != 4000 || cfg.Editor.Port != 9000 {
		t.Errorf("ports = %d/%d", cfg.Agent.Port, cfg.Editor.Port)
	}
	if cfg.StopGrace() != 3*time.Second || cfg.ReadyTimeout() != 5*time.Second || cfg.ExecTimeout() != 2*time.Second {
		t.Errorf("timeouts = %s/%s/%s", cfg.StopGrace(), cfg.ReadyTimeout(), cfg.ExecTimeout())
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing domain", "version: 1\n"},
		{"bad domain", "version: 1\ndomain: 'dev..example.com'\n"},
		{"unsupported version", "version: 2\ndomain: dev.example.com\n"},
		{"bad agent port", "version: 1\ndomain: dev.example.com\nagent:\n  port: 70000\n"},
		{"negative timeout", "version: 1\ndomain: dev.example.com\ntimeout:\n  readySeconds: -1\n"},
		{"not yaml", "{{{{"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.content)); err == nil {
				t.Errorf("expected error")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
