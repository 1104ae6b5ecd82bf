package inmem

// Package inmem provides thread-safe in-memory repositories mirroring the
// rdb adapter's behavior. It backs unit tests and the inmem: db-url used
// for throwaway runs.

// Store provides a unified interface for all in-memory repositories.
type Store struct {
	WorkspaceRepo   *WorkspaceRepository
	EnvironmentRepo *EnvironmentRepository
}

// NewStore creates a new in-memory store with all repositories. The
// environment repository is wired to the workspace repository so deleting
// an environment also removes its workspace links, matching the rdb
// adapter's delete transaction.
func NewStore() *Store {
	ws := NewWorkspaceRepository()
	env := NewEnvironmentRepository()
	env.workspaces = ws
	return &Store{
		WorkspaceRepo:   ws,
		EnvironmentRepo: env,
	}
}
