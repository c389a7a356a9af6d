package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrlokans/readvoyage/internal/config"
	"github.com/mrlokans/readvoyage/internal/entrypoint"
)

func newSearchCmd(cfg *config.Config) *cobra.Command {
	var authors bool
	var add int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the OpenLibrary catalog",
		Long: `Search the OpenLibrary catalog for books or authors.

Examples:
  readvoyage search dune herbert        # Numbered list of books
  readvoyage search dune --add 1        # Add the first result to the library
  readvoyage search --authors tolkien   # Search authors instead`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			out := cmd.OutOrStdout()

			return withApp(cmd, cfg, func(ctx context.Context, app *entrypoint.App) error {
				if authors {
					results, message := app.Search.FindAuthors(ctx, query)
					if message != "" {
						fmt.Fprintln(out, message)
						return nil
					}
					for i, a := range results {
						fmt.Fprintf(out, "%2d. %s", i+1, a.Name)
						if a.BirthDate != "" {
							fmt.Fprintf(out, " (b. %s)", a.BirthDate)
						}
						if a.TopWork != "" {
							fmt.Fprintf(out, " - %s", a.TopWork)
						}
						fmt.Fprintln(out)
					}
					return nil
				}

				results, message := app.Search.Find(ctx, query)
				if message != "" {
					fmt.Fprintln(out, message)
					return nil
				}

				if add > 0 {
					if add > len(results) {
						return fmt.Errorf("--add %d is out of range (1-%d)", add, len(results))
					}
					book, err := app.Library.AddSearchResult(ctx, results[add-1])
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "Added %q by %s (%s)\n", book.Title, book.Author, book.ID)
					return nil
				}

				for i, r := range results {
					fmt.Fprintf(out, "%2d. %s", i+1, r.Title)
					if r.FirstPublishYear > 0 {
						fmt.Fprintf(out, " (%d)", r.FirstPublishYear)
					}
					if len(r.Authors) > 0 {
						fmt.Fprintf(out, " by %s", strings.Join(r.Authors, ", "))
					}
					fmt.Fprintln(out)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&authors, "authors", false, "Search authors instead of books")
	cmd.Flags().IntVar(&add, "add", 0, "Add the Nth book result to the library")

	return cmd
}
