package harborcfg

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/devharbor/devharbor/internal/naming"
)

// Environment variable names
const (
	ConfigEnvKey    = "DEVHARBOR_CONFIG"
	DBURLEnvKey     = "DEVHARBOR_DB_URL"
	LogFormatEnvKey = "DEVHARBOR_LOG_FORMAT"
)

// DefaultFileName is the config file loaded when --config is not given.
const DefaultFileName = "devharbor.yml"

// Config is the devharbor.yml contents: the wildcard base domain the
// proxy serves, the engine endpoint, and the container pair definitions.
type Config struct {
	Version int           `yaml:"version"`
	Domain  string        `yaml:"domain"`
	Engine  EngineConfig  `yaml:"engine,omitempty"`
	Agent   RuntimeConfig `yaml:"agent,omitempty"`
	Editor  RuntimeConfig `yaml:"editor,omitempty"`
	Timeout TimeoutConfig `yaml:"timeout,omitempty"`
}

// EngineConfig selects the container engine endpoint and proxy network.
type EngineConfig struct {
	Host    string `yaml:"host,omitempty"`    // empty: standard environment resolution
	Network string `yaml:"network,omitempty"` // docker network shared with the proxy
}

// RuntimeConfig describes one container role of the pair.
type RuntimeConfig struct {
	Image string `yaml:"image,omitempty"`
	Port  int    `yaml:"port,omitempty"` // internal container port
}

// TimeoutConfig bounds engine interactions. All values are seconds.
type TimeoutConfig struct {
	StopGraceSeconds int `yaml:"stopGraceSeconds,omitempty"`
	ReadySeconds     int `yaml:"readySeconds,omitempty"`
	ExecSeconds      int `yaml:"execSeconds,omitempty"`
}

// StopGrace returns the grace period before forced container termination.
func (c *Config) StopGrace() time.Duration {
	return time.Duration(c.Timeout.StopGraceSeconds) * time.Second
}

// ReadyTimeout bounds post-start readiness polling.
func (c *Config) ReadyTimeout() time.Duration {
	return time.Duration(c.Timeout.ReadySeconds) * time.Second
}

// ExecTimeout bounds each exec-based interaction (session probes, live
// variable pushes).
func (c *Config) ExecTimeout() time.Duration {
	return time.Duration(c.Timeout.ExecSeconds) * time.Second
}

// Load reads, defaults, and validates a config file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return &cfg, nil
}

// ApplyDefaults fills unset fields with working defaults.
func (c *Config) ApplyDefaults() {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.Engine.Network == "" {
		c.Engine.Network = "devharbor"
	}
	if c.Agent.Image == "" {
		c.Agent.Image = "devharbor/agent:latest"
	}
	if c.Agent.Port == 0 {
		c.Agent.Port = 3284
	}
	if c.Editor.Image == "" {
		c.Editor.Image = "devharbor/editor:latest"
	}
	if c.Editor.Port == 0 {
		c.Editor.Port = 8080
	}
	if c.Timeout.StopGraceSeconds == 0 {
		c.Timeout.StopGraceSeconds = 10
	}
	if c.Timeout.ReadySeconds == 0 {
		c.Timeout.ReadySeconds = 30
	}
	if c.Timeout.ExecSeconds == 0 {
		c.Timeout.ExecSeconds = 10
	}
}

// Validate checks the config for structural problems.
func (c *Config) Validate() error {
	if c.Version != 1 {
		return fmt.Errorf("unsupported config version: %d", c.Version)
	}
	if err := naming.ValidateBaseDomain(c.Domain); err != nil {
		return err
	}
	if c.Agent.Image == "" || c.Editor.Image == "" {
		return fmt.Errorf("agent and editor images are required")
	}
	if c.Agent.Port <= 0 || c.Agent.Port > 65535 {
		return fmt.Errorf("invalid agent port: %d", c.Agent.Port)
	}
	if c.Editor.Port <= 0 || c.Editor.Port > 65535 {
		return fmt.Errorf("invalid editor port: %d", c.Editor.Port)
	}
	if c.Timeout.StopGraceSeconds < 0 || c.Timeout.ReadySeconds < 0 || c.Timeout.ExecSeconds < 0 {
		return fmt.Errorf("timeouts must not be negative")
	}
	return nil
}
