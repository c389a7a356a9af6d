package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrlokans/readvoyage/internal/config"
	"github.com/mrlokans/readvoyage/internal/entrypoint"
)

func newBackupCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Write a snapshot to the backup destinations now",
		Long: `Write one export snapshot to the backup directory and, when
BACKUP_S3_ENDPOINT is set, to the S3 bucket. Nothing is written while the
autoSave setting is off.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, cfg, func(ctx context.Context, app *entrypoint.App) error {
				scheduler, err := app.NewBackupScheduler()
				if err != nil {
					return err
				}
				name, err := scheduler.RunOnce(ctx)
				if err != nil {
					return err
				}
				if name == "" {
					fmt.Fprintln(cmd.OutOrStdout(), "Backup skipped: autoSave is off")
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Backup written: %s\n", name)
				return nil
			})
		},
	}
	return cmd
}
