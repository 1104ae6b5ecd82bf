package environment

import (
	"context"

	"github.com/devharbor/devharbor/domain/model"
)

// DeleteInput identifies the environment to delete.
type DeleteInput struct {
	EnvironmentID string `json:"environment_id"`
}

// DeleteOutput is empty because delete has no return entity.
type DeleteOutput struct{}

// Delete removes an environment. Links from workspaces are removed with
// it; affected workspaces keep their remaining environments in order.
func (u *UseCase) Delete(ctx context.Context, in *DeleteInput) (*DeleteOutput, error) {
	if in == nil || in.EnvironmentID == "" {
		return nil, model.ErrEnvironmentInvalid
	}
	if err := u.Repos.Environment.Delete(ctx, in.EnvironmentID); err != nil {
		return nil, err
	}
	return &DeleteOutput{}, nil
}
