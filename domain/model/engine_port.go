package model

import (
	"context"
	"io"
	"time"
)

// ContainerSpec describes a container to create. Env and Labels are
// attached verbatim as engine metadata.
type ContainerSpec struct {
	Name         string
	Image        string
	Env          map[string]string
	Labels       map[string]string
	Command      []string
	InternalPort int // container port exposed to the proxy network
}

// ContainerState is the live engine-side state of a container.
type ContainerState struct {
	Ref     string
	Running bool
	Status  string // engine status string (created, running, exited, ...)
}

// EnginePort is an interface (domain port) for container engine operations.
// All operations are remote calls against the engine control plane and are
// fallible and non-atomic: callers must treat engine success and store
// success as independent facts and reconcile divergence themselves.
type EnginePort interface {
	// CreateContainer creates a container and returns its engine reference.
	CreateContainer(ctx context.Context, spec *ContainerSpec) (string, error)
	// StartContainer starts a created or stopped container.
	StartContainer(ctx context.Context, ref string) error
	// StopContainer stops a running container, escalating to forced
	// termination after the grace period. Stopping a stopped container
	// succeeds.
	StopContainer(ctx context.Context, ref string, grace time.Duration) error
	// RemoveContainer removes a container. A missing container yields
	// ErrContainerNotFound.
	RemoveContainer(ctx context.Context, ref string, force bool) error
	// InspectContainer returns live state, or ErrContainerNotFound.
	InspectContainer(ctx context.Context, ref string) (*ContainerState, error)
	// Exec runs a command inside a running container and returns the raw
	// attached stream in the engine's multiplexed framing. The caller owns
	// demultiplexing and must close the stream.
	Exec(ctx context.Context, ref string, cmd []string) (io.ReadCloser, error)
}
