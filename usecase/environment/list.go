package environment

import (
	"context"

	"github.com/devharbor/devharbor/domain/model"
)

// ListInput optionally scopes the listing to one owner.
type ListInput struct {
	OwnerID string `json:"owner_id,omitempty"`
}

// ListOutput carries the matching environments.
type ListOutput struct {
	Environments []*model.Environment `json:"environments"`
}

// List returns environments, scoped to the owner when given.
func (u *UseCase) List(ctx context.Context, in *ListInput) (*ListOutput, error) {
	all, err := u.Repos.Environment.List(ctx)
	if err != nil {
		return nil, err
	}
	if in == nil || in.OwnerID == "" {
		return &ListOutput{Environments: all}, nil
	}
	out := make([]*model.Environment, 0, len(all))
	for _, e := range all {
		if e.OwnerID == in.OwnerID {
			out = append(out, e)
		}
	}
	return &ListOutput{Environments: out}, nil
}
