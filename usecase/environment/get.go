package environment

import (
	"context"

	"github.com/devharbor/devharbor/domain/model"
)

// GetInput identifies the environment to fetch.
type GetInput struct {
	EnvironmentID string `json:"environment_id"`
}

// GetOutput wraps the fetched environment.
type GetOutput struct {
	Environment *model.Environment `json:"environment"`
}

// Get fetches an environment by id.
func (u *UseCase) Get(ctx context.Context, in *GetInput) (*GetOutput, error) {
	if in == nil || in.EnvironmentID == "" {
		return nil, model.ErrEnvironmentInvalid
	}
	e, err := u.Repos.Environment.Get(ctx, in.EnvironmentID)
	if err != nil {
		return nil, err
	}
	return &GetOutput{Environment: e}, nil
}
