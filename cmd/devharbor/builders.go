package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/devharbor/devharbor/adapters/engine/docker"
	"github.com/devharbor/devharbor/adapters/store/inmem"
	"github.com/devharbor/devharbor/adapters/store/rdb"
	"github.com/devharbor/devharbor/config/harborcfg"
	"github.com/devharbor/devharbor/domain"
	"github.com/devharbor/devharbor/usecase/environment"
	"github.com/devharbor/devharbor/usecase/workspace"
)

// findFlag recursively searches parents for a flag.
func findFlag(cmd *cobra.Command, name string) *pflag.Flag {
	for c := cmd; c != nil; c = c.Parent() {
		if f := c.Flags().Lookup(name); f != nil {
			return f
		}
		if f := c.PersistentFlags().Lookup(name); f != nil {
			return f
		}
	}
	return nil
}

func getFlagString(cmd *cobra.Command, name string) string {
	if f := findFlag(cmd, name); f != nil {
		return f.Value.String()
	}
	return ""
}

// buildRepositories creates repositories based on db-url.
func buildRepositories(cmd *cobra.Command) (*domain.Repositories, error) {
	dbURL := getFlagString(cmd, "db-url")
	switch {
	case strings.HasPrefix(dbURL, "inmem:"):
		store := inmem.NewStore()
		return &domain.Repositories{
			Workspace:   store.WorkspaceRepo,
			Environment: store.EnvironmentRepo,
		}, nil
	case strings.HasPrefix(dbURL, "sqlite:") || strings.HasPrefix(dbURL, "sqlite3:"):
		db, err := rdb.OpenFromURL(dbURL)
		if err != nil {
			return nil, err
		}
		if err := rdb.AutoMigrate(db); err != nil {
			return nil, err
		}
		return &domain.Repositories{
			Workspace:   rdb.NewWorkspaceRepository(db),
			Environment: rdb.NewEnvironmentRepository(db),
		}, nil
	default:
		return nil, fmt.Errorf("unsupported db scheme: %s", dbURL)
	}
}

func loadConfig(cmd *cobra.Command) (*harborcfg.Config, error) {
	return harborcfg.Load(getFlagString(cmd, "config"))
}

// buildWorkspaceUseCase wires the workspace lifecycle manager with its
// store, engine client, and configuration.
func buildWorkspaceUseCase(cmd *cobra.Command) (*workspace.UseCase, error) {
	repos, err := buildRepositories(cmd)
	if err != nil {
		return nil, err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	engine, err := docker.New(&docker.Options{Host: cfg.Engine.Host, Network: cfg.Engine.Network})
	if err != nil {
		return nil, err
	}
	settings := &workspace.Settings{
		BaseDomain:   cfg.Domain,
		AgentImage:   cfg.Agent.Image,
		EditorImage:  cfg.Editor.Image,
		AgentPort:    cfg.Agent.Port,
		EditorPort:   cfg.Editor.Port,
		StopGrace:    cfg.StopGrace(),
		ReadyTimeout: cfg.ReadyTimeout(),
		ExecTimeout:  cfg.ExecTimeout(),
	}
	wsRepos := &workspace.Repos{Workspace: repos.Workspace, Environment: repos.Environment}
	return workspace.New(wsRepos, engine, settings), nil
}

func buildEnvironmentUseCase(cmd *cobra.Command) (*environment.UseCase, error) {
	repos, err := buildRepositories(cmd)
	if err != nil {
		return nil, err
	}
	return &environment.UseCase{Repos: &environment.Repos{Environment: repos.Environment}}, nil
}
