package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/devharbor/devharbor/usecase/workspace"
)

func newCmdWorkspaceStart() *cobra.Command {
	return &cobra.Command{
		Use:                "start <id>",
		Short:              "Start a stopped workspace",
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
			ctx, cleanup := withCmdRunLogger(ctx, "workspace.start", args[0])
			defer func() { cleanup(err) }()
			out, err := uc.Start(ctx, &workspace.StartInput{WorkspaceID: args[0]})
			if err != nil {
				return err
			}
			return encodeJSON(cmd, out)
		},
	}
}

func newCmdWorkspaceStop() *cobra.Command {
	return &cobra.Command{
		Use:                "stop <id>",
		Short:              "Stop a running workspace",
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
			ctx, cleanup := withCmdRunLogger(ctx, "workspace.stop", args[0])
			defer func() { cleanup(err) }()
			out, err := uc.Stop(ctx, &workspace.StopInput{WorkspaceID: args[0]})
			if err != nil {
				return err
			}
			return encodeJSON(cmd, out)
		},
	}
}

func newCmdWorkspaceRecreate() *cobra.Command {
	return &cobra.Command{
		Use:                "recreate <id>",
		Short:              "Tear down and rebuild a workspace's containers",
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
			ctx, cleanup := withCmdRunLogger(ctx, "workspace.recreate", args[0])
			defer func() { cleanup(err) }()
			out, err := uc.Recreate(ctx, &workspace.RecreateInput{WorkspaceID: args[0]})
			if err != nil {
				return err
			}
			return encodeJSON(cmd, out)
		},
	}
}

func newCmdWorkspaceStatus() *cobra.Command {
	return &cobra.Command{
		Use:                "status <id>",
		Short:              "Show persisted and live container state",
		Args:               cobra.ExactArgs(1),
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := buildWorkspaceUseCase(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), lifecycleTimeout)
			defer cancel()
			out, err := uc.Status(ctx, &workspace.StatusInput{WorkspaceID: args[0]})
			if err != nil {
				return err
			}
			return encodeJSON(cmd, out)
		},
	}
}

func newCmdWorkspaceConfigure() *cobra.Command {
	var envIDs []string
	c := &cobra.Command{
		Use:                "configure <id>",
		Short:              "Replace linked environments (order is merge priority)",
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
			ctx, cleanup := withCmdRunLogger(ctx, "workspace.configure", args[0])
			defer func() { cleanup(err) }()
			out, err := uc.ConfigureEnvironments(ctx, &workspace.ConfigureEnvironmentsInput{
				WorkspaceID:    args[0],
				EnvironmentIDs: envIDs,
			})
			if err != nil {
				return err
			}
			return encodeJSON(cmd, out)
		},
	}
	c.Flags().StringArrayVarP(&envIDs, "environment", "e", nil, "Environment id to link (repeatable, order preserved)")
	return c
}

func newCmdWorkspaceSync() *cobra.Command {
	return &cobra.Command{
		Use:                "sync <id>",
		Short:              "Push the current merged variables into the running workspace",
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
			ctx, cleanup := withCmdRunLogger(ctx, "workspace.sync", args[0])
			defer func() { cleanup(err) }()
			out, err := uc.Sync(ctx, &workspace.SyncInput{WorkspaceID: args[0]})
			if err != nil {
				return err
			}
			return encodeJSON(cmd, out)
		},
	}
}

func newCmdWorkspaceSession() *cobra.Command {
	return &cobra.Command{
		Use:                "session <id>",
		Short:              "Probe the agent container for its active session",
		Args:               cobra.ExactArgs(1),
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := buildWorkspaceUseCase(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), lifecycleTimeout)
			defer cancel()
			out, err := uc.Session(ctx, &workspace.SessionInput{WorkspaceID: args[0]})
			if err != nil {
				return err
			}
			return encodeJSON(cmd, out)
		},
	}
}
