package docker

// Package docker adapts the Docker Engine API to the domain EnginePort.
// The adapter is a thin capability wrapper: it issues control-plane calls
// and delivers raw attached streams, but never interprets payloads or
// touches the persisted store.

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/network"
	"github.com/docker/docker/client"
	"github.com/docker/docker/errdefs"
	"github.com/docker/go-connections/nat"

	"github.com/devharbor/devharbor/domain/model"
	"github.com/devharbor/devharbor/internal/envmerge"
)

// Engine is a Docker-backed implementation of model.EnginePort. The
// underlying client is safe for concurrent use; the engine itself
// serializes conflicting operations on the same container.
type Engine struct {
	cli     *client.Client
	network string // proxy-facing docker network containers join
}

// Options configures engine construction.
type Options struct {
	// Host is the engine endpoint (unix socket or TCP proxy). Empty means
	// the standard environment resolution (DOCKER_HOST et al).
	Host string
	// Network is the docker network shared with the reverse proxy.
	Network string
}

// New constructs an Engine client. No connection is established until the
// first operation.
func New(opts *Options) (*Engine, error) {
	clientOpts := []client.Opt{client.FromEnv, client.WithAPIVersionNegotiation()}
	if opts != nil && opts.Host != "" {
		clientOpts = append(clientOpts, client.WithHost(opts.Host))
	}
	cli, err := client.NewClientWithOpts(clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("create docker client: %w", err)
	}
	e := &Engine{cli: cli}
	if opts != nil {
		e.network = opts.Network
	}
	return e, nil
}

// CreateContainer creates a container from the spec and returns its id.
func (e *Engine) CreateContainer(ctx context.Context, spec *model.ContainerSpec) (string, error) {
	cfg := &container.Config{
		Image:  spec.Image,
		Env:    envmerge.Slice(spec.Env),
		Labels: spec.Labels,
		Cmd:    spec.Command,
	}
	if spec.InternalPort > 0 {
		port, err := nat.NewPort("tcp", fmt.Sprintf("%d", spec.InternalPort))
		if err != nil {
			return "", fmt.Errorf("invalid internal port %d: %w", spec.InternalPort, err)
		}
		cfg.ExposedPorts = nat.PortSet{port: struct{}{}}
	}
	var netCfg *network.NetworkingConfig
	if e.network != "" {
		netCfg = &network.NetworkingConfig{
			EndpointsConfig: map[string]*network.EndpointSettings{
				e.network: {},
			},
		}
	}
	resp, err := e.cli.ContainerCreate(ctx, cfg, &container.HostConfig{}, netCfg, nil, spec.Name)
	if err != nil {
		return "", fmt.Errorf("create container %s: %w", spec.Name, err)
	}
	return resp.ID, nil
}

// StartContainer starts a created or stopped container.
func (e *Engine) StartContainer(ctx context.Context, ref string) error {
	if err := e.cli.ContainerStart(ctx, ref, container.StartOptions{}); err != nil {
		return fmt.Errorf("start container %s: %w", ref, mapNotFound(err))
	}
	return nil
}

// StopContainer stops a container, escalating to SIGKILL after the grace
// period. The engine treats stopping a stopped container as success.
func (e *Engine) StopContainer(ctx context.Context, ref string, grace time.Duration) error {
	secs := int(grace / time.Second)
	if err := e.cli.ContainerStop(ctx, ref, container.StopOptions{Timeout: &secs}); err != nil {
		return fmt.Errorf("stop container %s: %w", ref, mapNotFound(err))
	}
	return nil
}

// RemoveContainer removes a container; a missing target maps to
// model.ErrContainerNotFound so callers can treat it as already done.
func (e *Engine) RemoveContainer(ctx context.Context, ref string, force bool) error {
	if err := e.cli.ContainerRemove(ctx, ref, container.RemoveOptions{Force: force}); err != nil {
		return fmt.Errorf("remove container %s: %w", ref, mapNotFound(err))
	}
	return nil
}

// InspectContainer returns the live state of a container.
func (e *Engine) InspectContainer(ctx context.Context, ref string) (*model.ContainerState, error) {
	info, err := e.cli.ContainerInspect(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("inspect container %s: %w", ref, mapNotFound(err))
	}
	state := &model.ContainerState{Ref: info.ID}
	if info.State != nil {
		state.Running = info.State.Running
		state.Status = info.State.Status
	}
	return state, nil
}

// Exec runs cmd inside a running container and returns the attached raw
// stream in the engine's multiplexed framing. The caller demultiplexes and
// closes the stream.
func (e *Engine) Exec(ctx context.Context, ref string, cmd []string) (io.ReadCloser, error) {
	created, err := e.cli.ContainerExecCreate(ctx, ref, container.ExecOptions{
		Cmd:          cmd,
		AttachStdout: true,
		AttachStderr: true,
	})
	if err != nil {
		return nil, fmt.Errorf("exec create in %s: %w", ref, mapNotFound(err))
	}
	attached, err := e.cli.ContainerExecAttach(ctx, created.ID, container.ExecAttachOptions{})
	if err != nil {
		return nil, fmt.Errorf("exec attach in %s: %w", ref, err)
	}
	return &execStream{resp: attached}, nil
}

// execStream exposes the hijacked exec connection as an io.ReadCloser.
type execStream struct {
	resp types.HijackedResponse
}

func (s *execStream) Read(p []byte) (int, error) { return s.resp.Reader.Read(p) }

func (s *execStream) Close() error {
	s.resp.Close()
	return nil
}

func mapNotFound(err error) error {
	if errdefs.IsNotFound(err) {
		return model.ErrContainerNotFound
	}
	return err
}

var _ model.EnginePort = (*Engine)(nil)
