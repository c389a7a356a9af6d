package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mrlokans/readvoyage/internal/config"
	"github.com/mrlokans/readvoyage/internal/entrypoint"
)

func newExportCmd(cfg *config.Config) *cobra.Command {
	var format, output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the library and settings",
		Long: `Export the library and settings as one document.

Examples:
  readvoyage export                              # JSON to stdout
  readvoyage export --format yaml                # YAML to stdout
  readvoyage export --output library.json        # Write to a file`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, cfg, func(ctx context.Context, app *entrypoint.App) error {
				var (
					data []byte
					err  error
				)
				switch format {
				case "json":
					data, err = app.Library.ExportSnapshot(ctx)
				case "yaml", "yml":
					data, err = app.Library.ExportYAML(ctx)
				default:
					return fmt.Errorf("unsupported format %q (use json or yaml)", format)
				}
				if err != nil {
					return err
				}

				if output == "" || output == "-" {
					_, err = cmd.OutOrStdout().Write(data)
					return err
				}
				if err := os.WriteFile(output, data, 0644); err != nil {
					return fmt.Errorf("write export: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", output)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format (json, yaml)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to a file instead of stdout")

	return cmd
}

func newImportCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the library and settings from an export",
		Long: `Replace the library and/or settings with the contents of a JSON export.
Sections missing from the file are left untouched. Use "-" to read stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				data []byte
				err  error
			)
			if args[0] == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(args[0])
			}
			if err != nil {
				return fmt.Errorf("read import: %w", err)
			}

			return withApp(cmd, cfg, func(ctx context.Context, app *entrypoint.App) error {
				if err := app.Library.ImportSnapshot(ctx, data); err != nil {
					return err
				}
				books, err := app.Library.ListBooks(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d book(s)\n", len(books))
				return nil
			})
		},
	}
}
