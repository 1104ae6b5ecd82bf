package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/devharbor/devharbor/usecase/workspace"
)

// lifecycleTimeout bounds commands that drive container transitions.
const lifecycleTimeout = 5 * time.Minute

// storeTimeout bounds store-only commands.
const storeTimeout = 5 * time.Second

// workspaceSpec is the YAML/JSON on-disk representation for create.
type workspaceSpec struct {
	Owner        string   `yaml:"owner" json:"owner"`
	Name         string   `yaml:"name" json:"name"`
	RepoURL      string   `yaml:"repoUrl" json:"repoUrl"`
	RepoBranch   string   `yaml:"repoBranch" json:"repoBranch"`
	Environments []string `yaml:"environments" json:"environments"`
}

func newCmdWorkspace() *cobra.Command {
	c := &cobra.Command{
		Use:                "workspace",
		Aliases:            []string{"ws"},
		Short:              "Workspace lifecycle commands",
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	c.AddCommand(newCmdWorkspaceCreate())
	c.AddCommand(newCmdWorkspaceGet())
	c.AddCommand(newCmdWorkspaceList())
	c.AddCommand(newCmdWorkspaceUpdate())
	c.AddCommand(newCmdWorkspaceDelete())
	c.AddCommand(newCmdWorkspaceStart())
	c.AddCommand(newCmdWorkspaceStop())
	c.AddCommand(newCmdWorkspaceRecreate())
	c.AddCommand(newCmdWorkspaceStatus())
	c.AddCommand(newCmdWorkspaceConfigure())
	c.AddCommand(newCmdWorkspaceSync())
	c.AddCommand(newCmdWorkspaceSession())
	return c
}

func readWorkspaceSpec(cmd *cobra.Command, path string) (*workspaceSpec, error) {
	if path == "" {
		return nil, errors.New("spec file required (-f)")
	}
	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var spec workspaceSpec
	if err := yaml.Unmarshal(b, &spec); err != nil {
		return nil, err
	}
	return &spec, nil
}

func encodeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newCmdWorkspaceCreate() *cobra.Command {
	var file string
	c := &cobra.Command{
		Use:                "create",
		Short:              "Provision a workspace (from spec file)",
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			uc, err := buildWorkspaceUseCase(cmd)
			if err != nil {
				return err
			}
			spec, err := readWorkspaceSpec(cmd, file)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), lifecycleTimeout)
			defer cancel()
			ctx, cleanup := withCmdRunLogger(ctx, "workspace.create", spec.Name)
			defer func() { cleanup(err) }()
			out, err := uc.Create(ctx, &workspace.CreateInput{
				OwnerID:        spec.Owner,
				Name:           spec.Name,
				RepoURL:        spec.RepoURL,
				RepoBranch:     spec.RepoBranch,
				EnvironmentIDs: spec.Environments,
			})
			if err != nil {
				return err
			}
			return encodeJSON(cmd, out)
		},
	}
	c.Flags().StringVarP(&file, "file", "f", "", "Workspace spec file (yaml|json, - for stdin)")
	return c
}

func newCmdWorkspaceGet() *cobra.Command {
	return &cobra.Command{
		Use:                "get <id>",
		Short:              "Get a workspace",
		Args:               cobra.ExactArgs(1),
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := buildWorkspaceUseCase(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), storeTimeout)
			defer cancel()
			out, err := uc.Get(ctx, &workspace.GetInput{WorkspaceID: args[0]})
			if err != nil {
				return err
			}
			return encodeJSON(cmd, out)
		},
	}
}

func newCmdWorkspaceList() *cobra.Command {
	var owner string
	c := &cobra.Command{
		Use:                "list",
		Short:              "List workspaces",
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := buildWorkspaceUseCase(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), storeTimeout)
			defer cancel()
			out, err := uc.List(ctx, &workspace.ListInput{OwnerID: owner})
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			for _, it := range out.Workspaces {
				if err := enc.Encode(it); err != nil {
					return err
				}
			}
			return nil
		},
	}
	c.Flags().StringVar(&owner, "owner", "", "Scope listing to an owner id")
	return c
}

func newCmdWorkspaceUpdate() *cobra.Command {
	var name, repoURL, repoBranch string
	c := &cobra.Command{
		Use:                "update <id>",
		Short:              "Update workspace metadata (takes effect on next start)",
		Args:               cobra.ExactArgs(1),
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := buildWorkspaceUseCase(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), storeTimeout)
			defer cancel()
			out, err := uc.Update(ctx, &workspace.UpdateInput{
				WorkspaceID: args[0],
				Name:        name,
				RepoURL:     repoURL,
				RepoBranch:  repoBranch,
			})
			if err != nil {
				return err
			}
			return encodeJSON(cmd, out)
		},
	}
	c.Flags().StringVar(&name, "name", "", "New display name")
	c.Flags().StringVar(&repoURL, "repo-url", "", "New repository URL")
	c.Flags().StringVar(&repoBranch, "repo-branch", "", "New repository branch")
	return c
}

func newCmdWorkspaceDelete() *cobra.Command {
	var keepRecord bool
	c := &cobra.Command{
		Use:                "delete <id>",
		Short:              "Remove a workspace and its containers",
		Args:               cobra.ExactArgs(1),
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			uc, err := buildWorkspaceUseCase(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), lifecycleTimeout)
			defer cancel()
			ctx, cleanup := withCmdRunLogger(ctx, "workspace.delete", args[0])
			defer func() { cleanup(err) }()
			_, err = uc.Delete(ctx, &workspace.DeleteInput{WorkspaceID: args[0], KeepRecord: keepRecord})
			return err
		},
	}
	c.Flags().BoolVar(&keepRecord, "keep-record", false, "Keep the workspace record in deleted status")
	return c
}
