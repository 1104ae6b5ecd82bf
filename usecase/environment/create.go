package environment

import (
	"context"
	"time"

	"github.com/devharbor/devharbor/domain/model"
)

// CreateInput contains data to create an environment.
type CreateInput struct {
	OwnerID     string            `json:"owner_id"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Variables   map[string]string `json:"variables,omitempty"`
}

// CreateOutput wraps the created environment.
type CreateOutput struct {
	Environment *model.Environment `json:"environment"`
}

// Create persists a new environment.
func (u *UseCase) Create(ctx context.Context, in *CreateInput) (*CreateOutput, error) {
	if in == nil || in.OwnerID == "" || in.Name == "" {
		return nil, model.ErrEnvironmentInvalid
	}
	vars := in.Variables
	if vars == nil {
		vars = map[string]string{}
	}
	now := time.Now().UTC()
	e := &model.Environment{
		OwnerID:     in.OwnerID,
		Name:        in.Name,
		Description: in.Description,
		Variables:   vars,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := u.Repos.Environment.Create(ctx, e); err != nil {
		return nil, err
	}
	return &CreateOutput{Environment: e}, nil
}
