// Package cli implements the readvoyage command line.
//
// Every command opens the configured store, runs one operation against the
// library and closes the store again, so the CLI and a running server can
// share a SQLite or Redis backend.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mrlokans/readvoyage/internal/config"
	"github.com/mrlokans/readvoyage/internal/entrypoint"
)

// NewRootCmd creates the root command. With no subcommand it starts the server.
func NewRootCmd(cfg *config.Config, version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "readvoyage",
		Short: "Track the books you read",
		Long: `Keep a personal reading library: add books, track reading status,
follow a yearly reading challenge and search the OpenLibrary catalog.

Run without a command to start the HTTP server.`,
		Version:      version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			entrypoint.Run(cfg, version)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&cfg.Storage.Backend, "backend", cfg.Storage.Backend, "Storage backend (sqlite, redis, memory)")
	root.PersistentFlags().StringVar(&cfg.Storage.Path, "db", cfg.Storage.Path, "Path to the SQLite database file")

	root.AddCommand(newServeCmd(cfg, version))
	root.AddCommand(newAddCmd(cfg))
	root.AddCommand(newListCmd(cfg))
	root.AddCommand(newShowCmd(cfg))
	root.AddCommand(newUpdateCmd(cfg))
	root.AddCommand(newDeleteCmd(cfg))
	root.AddCommand(newClearCmd(cfg))
	root.AddCommand(newStatsCmd(cfg))
	root.AddCommand(newSettingsCmd(cfg))
	root.AddCommand(newExportCmd(cfg))
	root.AddCommand(newImportCmd(cfg))
	root.AddCommand(newSearchCmd(cfg))
	root.AddCommand(newChallengeCmd(cfg))
	root.AddCommand(newBackupCmd(cfg))

	return root
}

// withApp opens the application for one command and closes it afterwards.
func withApp(cmd *cobra.Command, cfg *config.Config, fn func(ctx context.Context, app *entrypoint.App) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	app, err := entrypoint.NewApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	return fn(ctx, app)
}

func newServeCmd(cfg *config.Config, version string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entrypoint.Run(cfg, version)
			return nil
		},
	}
}
