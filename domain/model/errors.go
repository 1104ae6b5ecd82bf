package model

import "errors"

var (
	ErrWorkspaceNotFound   = errors.New("workspace not found")
	ErrWorkspaceInvalid    = errors.New("workspace invalid")
	ErrEnvironmentNotFound = errors.New("environment not found")
	ErrEnvironmentInvalid  = errors.New("environment invalid")

	// ErrOwnerMismatch rejects linking an environment owned by a different
	// user than the workspace owner.
	ErrOwnerMismatch = errors.New("environment owner does not match workspace owner")

	// ErrContainerNotFound is returned by engine adapters when the target
	// container does not exist. Lifecycle operations whose desired end state
	// is "container absent" treat it as success.
	ErrContainerNotFound = errors.New("container not found")
)
