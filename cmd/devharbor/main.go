package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/devharbor/devharbor/config/harborcfg"
	"github.com/devharbor/devharbor/internal/logging"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "devharbor",
		Short:   "DevHarbor workspace orchestrator CLI",
		Long:    "DevHarbor provisions per-user containerized development workspaces behind a wildcard-domain reverse proxy.",
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Show help by default when no subcommand is provided.
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	defaultDB := os.Getenv(harborcfg.DBURLEnvKey)
	if defaultDB == "" {
		defaultDB = "sqlite:devharbor.db"
	}
	cmd.PersistentFlags().String("db-url", defaultDB, "Database URL (env DEVHARBOR_DB_URL) (sqlite:/path/to.db | inmem:)")

	defaultConfig := os.Getenv(harborcfg.ConfigEnvKey)
	if defaultConfig == "" {
		defaultConfig = harborcfg.DefaultFileName
	}
	cmd.PersistentFlags().String("config", defaultConfig, "Config file (env DEVHARBOR_CONFIG)")

	cmd.PersistentFlags().String("log-format", "text", "Log format (text|json) (env DEVHARBOR_LOG_FORMAT)")

	cmd.PersistentPreRunE = func(c *cobra.Command, _ []string) error {
		format, _ := c.Flags().GetString("log-format")
		if env := os.Getenv(harborcfg.LogFormatEnvKey); env != "" { // env overrides flag
			format = env
		}
		l, err := logging.New(format, slog.LevelInfo)
		if err != nil {
			return err
		}
		ctx := logging.WithLogger(c.Context(), l)
		c.SetContext(ctx)
		return nil
	}

	cmd.AddCommand(newCmdVersion())
	cmd.AddCommand(newCmdWorkspace())
	cmd.AddCommand(newCmdEnvironment())
	return cmd
}

func main() {
	root := newRootCmd()
	root.SetContext(context.Background())
	executed, err := root.ExecuteC()
	if err != nil {
		ctx := root.Context()
		if executed != nil {
			ctx = executed.Context()
		}
		logging.FromContext(ctx).Errorf(ctx, "Failed: %s", err)
		os.Exit(1)
	}
}
