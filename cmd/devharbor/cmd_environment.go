package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/devharbor/devharbor/usecase/environment"
)

// environmentSpec is the YAML/JSON on-disk representation for create/update.
type environmentSpec struct {
	Owner       string            `yaml:"owner" json:"owner"`
	Name        string            `yaml:"name" json:"name"`
	Description string            `yaml:"description" json:"description"`
	Variables   map[string]string `yaml:"variables" json:"variables"`
}

func newCmdEnvironment() *cobra.Command {
	c := &cobra.Command{
		Use:                "environment",
		Aliases:            []string{"env"},
		Short:              "Environment commands",
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	c.AddCommand(newCmdEnvironmentCreate())
	c.AddCommand(newCmdEnvironmentGet())
	c.AddCommand(newCmdEnvironmentList())
	c.AddCommand(newCmdEnvironmentUpdate())
	c.AddCommand(newCmdEnvironmentDelete())
	return c
}

func readEnvironmentSpec(cmd *cobra.Command, path string) (*environmentSpec, error) {
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
	var spec environmentSpec
	if err := yaml.Unmarshal(b, &spec); err != nil {
		return nil, err
	}
	return &spec, nil
}

func newCmdEnvironmentCreate() *cobra.Command {
	var file string
	c := &cobra.Command{
		Use:                "create",
		Short:              "Create an environment (from spec file)",
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := buildEnvironmentUseCase(cmd)
			if err != nil {
				return err
			}
			spec, err := readEnvironmentSpec(cmd, file)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), storeTimeout)
			defer cancel()
			out, err := uc.Create(ctx, &environment.CreateInput{
				OwnerID:     spec.Owner,
				Name:        spec.Name,
				Description: spec.Description,
				Variables:   spec.Variables,
			})
			if err != nil {
				return err
			}
			return encodeJSON(cmd, out.Environment)
		},
	}
	c.Flags().StringVarP(&file, "file", "f", "", "Environment spec file (yaml|json, - for stdin)")
	return c
}

func newCmdEnvironmentGet() *cobra.Command {
	return &cobra.Command{
		Use:                "get <id>",
		Short:              "Get an environment",
		Args:               cobra.ExactArgs(1),
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := buildEnvironmentUseCase(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), storeTimeout)
			defer cancel()
			out, err := uc.Get(ctx, &environment.GetInput{EnvironmentID: args[0]})
			if err != nil {
				return err
			}
			return encodeJSON(cmd, out.Environment)
		},
	}
}

func newCmdEnvironmentList() *cobra.Command {
	var owner string
	c := &cobra.Command{
		Use:                "list",
		Short:              "List environments",
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := buildEnvironmentUseCase(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), storeTimeout)
			defer cancel()
			out, err := uc.List(ctx, &environment.ListInput{OwnerID: owner})
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			for _, it := range out.Environments {
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

func newCmdEnvironmentUpdate() *cobra.Command {
	var file string
	c := &cobra.Command{
		Use:                "update <id>",
		Short:              "Update an environment (from spec file)",
		Args:               cobra.ExactArgs(1),
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := buildEnvironmentUseCase(cmd)
			if err != nil {
				return err
			}
			spec, err := readEnvironmentSpec(cmd, file)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), storeTimeout)
			defer cancel()
			out, err := uc.Update(ctx, &environment.UpdateInput{
				EnvironmentID: args[0],
				Name:          spec.Name,
				Description:   spec.Description,
				Variables:     spec.Variables,
			})
			if err != nil {
				return err
			}
			return encodeJSON(cmd, out.Environment)
		},
	}
	c.Flags().StringVarP(&file, "file", "f", "", "Environment spec file (yaml|json, - for stdin)")
	return c
}

func newCmdEnvironmentDelete() *cobra.Command {
	return &cobra.Command{
		Use:                "delete <id>",
		Short:              "Delete an environment",
		Args:               cobra.ExactArgs(1),
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := buildEnvironmentUseCase(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), storeTimeout)
			defer cancel()
			_, err = uc.Delete(ctx, &environment.DeleteInput{EnvironmentID: args[0]})
			return err
		},
	}
}
