package workspace

import (
	"time"

	"github.com/moby/locker"

	"github.com/devharbor/devharbor/domain"
	"github.com/devharbor/devharbor/domain/model"
)

// Repos holds repositories needed for workspace use cases.
type Repos struct {
	Workspace   domain.WorkspaceRepository
	Environment domain.EnvironmentRepository
}

// Settings carries the orchestration configuration: the proxy base domain
// and the container pair definitions.
type Settings struct {
	BaseDomain   string
	AgentImage   string
	EditorImage  string
	AgentPort    int // internal port of the agent container
	EditorPort   int // internal port of the editor container
	StopGrace    time.Duration
	ReadyTimeout time.Duration
	ExecTimeout  time.Duration
}

// UseCase is the workspace lifecycle manager. It drives the engine port
// through container pair state transitions and keeps the persisted desired
// state consistent with observed engine outcomes. Operations on the same
// workspace are serialized by a per-workspace named lock; operations on
// different workspaces run concurrently.
type UseCase struct {
	Repos    *Repos
	Engine   model.EnginePort
	Settings *Settings

	locks *locker.Locker
}

// New wires a workspace UseCase.
func New(repos *Repos, engine model.EnginePort, settings *Settings) *UseCase {
	return &UseCase{
		Repos:    repos,
		Engine:   engine,
		Settings: settings,
		locks:    locker.New(),
	}
}

// lock enters the per-workspace critical section and returns the unlock.
func (u *UseCase) lock(id string) func() {
	u.locks.Lock(id)
	return func() { _ = u.locks.Unlock(id) }
}
