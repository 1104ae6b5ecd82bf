package environment

import "github.com/devharbor/devharbor/domain"

// Repos holds repositories needed for environment use cases.
type Repos struct {
	Environment domain.EnvironmentRepository
}

// UseCase wires repositories needed for environment use cases.
type UseCase struct {
	Repos *Repos
}
