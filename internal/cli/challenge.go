package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mrlokans/readvoyage/internal/config"
	"github.com/mrlokans/readvoyage/internal/entities"
	"github.com/mrlokans/readvoyage/internal/entrypoint"
)

func newChallengeCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "challenge",
		Short: "Track the yearly reading challenge",
		Long: `Track how many books you read this year against a target.

Examples:
  readvoyage challenge show
  readvoyage challenge target 24
  readvoyage challenge read 5
  readvoyage challenge increment`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show progress",
		Args:  cobra.NoArgs,
		RunE: challengeRunE(cfg, func(ctx context.Context, app *entrypoint.App, _ []string) (entities.Challenge, error) {
			return app.Challenge.Get(ctx)
		}),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "target <books>",
		Short: "Set the number of books to read this year",
		Args:  cobra.ExactArgs(1),
		RunE: challengeRunE(cfg, func(ctx context.Context, app *entrypoint.App, args []string) (entities.Challenge, error) {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return entities.Challenge{}, fmt.Errorf("target must be a number: %q", args[0])
			}
			return app.Challenge.SetTarget(ctx, n)
		}),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "read <books>",
		Short: "Set the number of books read so far",
		Args:  cobra.ExactArgs(1),
		RunE: challengeRunE(cfg, func(ctx context.Context, app *entrypoint.App, args []string) (entities.Challenge, error) {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return entities.Challenge{}, fmt.Errorf("books read must be a number: %q", args[0])
			}
			return app.Challenge.SetBooksRead(ctx, n)
		}),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "increment",
		Short: "Count one more book read",
		Args:  cobra.NoArgs,
		RunE: challengeRunE(cfg, func(ctx context.Context, app *entrypoint.App, _ []string) (entities.Challenge, error) {
			return app.Challenge.Increment(ctx)
		}),
	})

	return cmd
}

type challengeOp func(ctx context.Context, app *entrypoint.App, args []string) (entities.Challenge, error)

func challengeRunE(cfg *config.Config, op challengeOp) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, cfg, func(ctx context.Context, app *entrypoint.App) error {
			ch, err := op(ctx, app, args)
			if err != nil {
				return err
			}
			printChallenge(cmd.OutOrStdout(), ch)
			return nil
		})
	}
}

func printChallenge(w io.Writer, ch entities.Challenge) {
	fmt.Fprintf(w, "%d reading challenge: %d/%d books (%.0f%%)\n", ch.Year, ch.BooksRead, ch.Target, ch.Progress())
	if r := ch.Remaining(); r > 0 {
		fmt.Fprintf(w, "%d to go. ", r)
	}
	fmt.Fprintln(w, ch.Motivation())
}
