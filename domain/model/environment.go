package model

import "time"

// Environment is a named, reusable set of variables a user can attach
// to workspaces. It has a lifecycle independent of any workspace.
type Environment struct {
	ID          string
	OwnerID     string
	Name        string
	Description string
	Variables   map[string]string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
