package environment

import (
	"context"
	"time"

	"github.com/devharbor/devharbor/domain/model"
)

// UpdateInput carries mutable environment fields. A nil Variables map
// leaves the variables unchanged; a non-nil map replaces them wholesale.
type UpdateInput struct {
	EnvironmentID string            `json:"environment_id"`
	Name          string            `json:"name,omitempty"`
	Description   string            `json:"description,omitempty"`
	Variables     map[string]string `json:"variables,omitempty"`
}

// UpdateOutput wraps the updated environment.
type UpdateOutput struct {
	Environment *model.Environment `json:"environment"`
}

// Update changes environment metadata and variables. Workspaces linked to
// this environment pick up the change on their next sync or start.
func (u *UseCase) Update(ctx context.Context, in *UpdateInput) (*UpdateOutput, error) {
	if in == nil || in.EnvironmentID == "" {
		return nil, model.ErrEnvironmentInvalid
	}
	e, err := u.Repos.Environment.Get(ctx, in.EnvironmentID)
	if err != nil {
		return nil, err
	}
	if in.Name != "" {
		e.Name = in.Name
	}
	if in.Description != "" {
		e.Description = in.Description
	}
	if in.Variables != nil {
		e.Variables = in.Variables
	}
	e.UpdatedAt = time.Now().UTC()
	if err := u.Repos.Environment.Update(ctx, e); err != nil {
		return nil, err
	}
	return &UpdateOutput{Environment: e}, nil
}
