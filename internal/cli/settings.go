package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mrlokans/readvoyage/internal/config"
	"github.com/mrlokans/readvoyage/internal/entities"
	"github.com/mrlokans/readvoyage/internal/entrypoint"
)

func newSettingsCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change preferences",
	}
	cmd.AddCommand(newSettingsGetCmd(cfg))
	cmd.AddCommand(newSettingsSetCmd(cfg))
	return cmd
}

func printSettings(w io.Writer, s entities.Settings) {
	fmt.Fprintf(w, "theme:         %s\n", s.Theme)
	fmt.Fprintf(w, "layout:        %s\n", s.Layout)
	fmt.Fprintf(w, "readingGoal:   %d\n", s.ReadingGoal)
	fmt.Fprintf(w, "autoSave:      %t\n", s.AutoSave)
	fmt.Fprintf(w, "notifications: %t\n", s.Notifications)
}

func newSettingsGetCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Show current preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, cfg, func(ctx context.Context, app *entrypoint.App) error {
				settings, err := app.Library.GetSettings(ctx)
				if err != nil {
					return err
				}
				printSettings(cmd.OutOrStdout(), settings)
				return nil
			})
		},
	}
}

func newSettingsSetCmd(cfg *config.Config) *cobra.Command {
	var (
		theme, layout           string
		goal                    int
		autoSave, notifications bool
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change preferences",
		Long: `Change preferences. Only the flags given are applied.

Examples:
  readvoyage settings set --theme dark
  readvoyage settings set --goal 30 --auto-save=false`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch entities.SettingsPatch
			flags := cmd.Flags()
			if flags.Changed("theme") {
				t := entities.Theme(theme)
				patch.Theme = &t
			}
			if flags.Changed("layout") {
				l := entities.Layout(layout)
				patch.Layout = &l
			}
			if flags.Changed("goal") {
				patch.ReadingGoal = &goal
			}
			if flags.Changed("auto-save") {
				patch.AutoSave = &autoSave
			}
			if flags.Changed("notifications") {
				patch.Notifications = &notifications
			}

			return withApp(cmd, cfg, func(ctx context.Context, app *entrypoint.App) error {
				settings, err := app.Library.UpdateSettings(ctx, patch)
				if err != nil {
					return err
				}
				printSettings(cmd.OutOrStdout(), settings)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&theme, "theme", "", "Color theme (light, dark)")
	cmd.Flags().StringVar(&layout, "layout", "", "Library layout (grid, list)")
	cmd.Flags().IntVar(&goal, "goal", 0, "Yearly reading goal")
	cmd.Flags().BoolVar(&autoSave, "auto-save", true, "Write scheduled backups")
	cmd.Flags().BoolVar(&notifications, "notifications", true, "Show notifications")

	return cmd
}
