package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mrlokans/readvoyage/internal/config"
	"github.com/mrlokans/readvoyage/internal/entities"
	"github.com/mrlokans/readvoyage/internal/entrypoint"
	"github.com/mrlokans/readvoyage/internal/library"
)

func parseStatusFlag(raw string) (entities.ReadingStatus, error) {
	status, ok := entities.ParseStatus(raw)
	if !ok {
		return "", fmt.Errorf("unknown status %q (use unread, reading or completed)", raw)
	}
	return status, nil
}

func newAddCmd(cfg *config.Config) *cobra.Command {
	var nb entities.NewBook
	var status, category string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a book to the library",
		Long: `Add a book to the library.

Examples:
  readvoyage add "Dune" --author "Frank Herbert"
  readvoyage add "Emma" --author "Jane Austen" --status completed --category fiction`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nb.Title = strings.Join(args, " ")
			s, err := parseStatusFlag(status)
			if err != nil {
				return err
			}
			nb.Status = s
			nb.Category = entities.Category(category)

			return withApp(cmd, cfg, func(ctx context.Context, app *entrypoint.App) error {
				book, err := app.Library.AddBook(ctx, nb)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %q by %s (%s)\n", book.Title, book.Author, book.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&nb.Author, "author", "a", "", "Author name")
	cmd.Flags().StringVarP(&status, "status", "s", "unread", "Reading status (unread, reading, completed)")
	cmd.Flags().StringVarP(&category, "category", "c", "", "Category, e.g. fiction or science-fiction")
	cmd.Flags().IntVar(&nb.Pages, "pages", 0, "Page count")
	cmd.Flags().StringVar(&nb.CoverID, "cover-id", "", "OpenLibrary cover id")
	cmd.Flags().StringVar(&nb.Description, "description", "", "Short description")

	return cmd
}

func newListCmd(cfg *config.Config) *cobra.Command {
	var status, query string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List books in the library",
		Long: `List books in insertion order.

Examples:
  readvoyage list                     # List all books
  readvoyage list --status reading    # Only books in progress
  readvoyage list --query herbert     # Match title or author`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, cfg, func(ctx context.Context, app *entrypoint.App) error {
				var (
					books []entities.Book
					err   error
				)
				if status != "" {
					s, perr := parseStatusFlag(status)
					if perr != nil {
						return perr
					}
					books, err = app.Library.ListByStatus(ctx, s)
					books = library.MatchText(books, query)
				} else {
					books, err = app.Library.SearchLibrary(ctx, query)
				}
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if len(books) == 0 {
					fmt.Fprintln(out, "No books found.")
					return nil
				}
				printBookTable(out, books)
				fmt.Fprintf(out, "\nTotal: %d book(s)\n", len(books))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&status, "status", "s", "", "Filter by status")
	cmd.Flags().StringVarP(&query, "query", "q", "", "Filter by title or author")

	return cmd
}

func printBookTable(w io.Writer, books []entities.Book) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tAUTHOR\tSTATUS")
	for _, b := range books {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", b.ID, truncate(b.Title, 45), truncate(b.Author, 30), b.Status)
	}
	tw.Flush()
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

func printBook(w io.Writer, b entities.Book) {
	fmt.Fprintf(w, "ID:        %s\n", b.ID)
	fmt.Fprintf(w, "Title:     %s\n", b.Title)
	fmt.Fprintf(w, "Author:    %s\n", b.Author)
	fmt.Fprintf(w, "Status:    %s\n", b.Status)
	if b.Category != "" {
		fmt.Fprintf(w, "Category:  %s\n", b.Category)
	}
	if b.Pages > 0 {
		fmt.Fprintf(w, "Pages:     %d\n", b.Pages)
	}
	if b.FirstPublishYear > 0 {
		fmt.Fprintf(w, "Published: %d\n", b.FirstPublishYear)
	}
	if len(b.Subjects) > 0 {
		fmt.Fprintf(w, "Subjects:  %s\n", strings.Join(b.Subjects, ", "))
	}
	if b.Description != "" {
		fmt.Fprintf(w, "\n%s\n\n", b.Description)
	}
	fmt.Fprintf(w, "Added:     %s\n", b.AddedDate.Format("2006-01-02 15:04"))
	fmt.Fprintf(w, "Updated:   %s\n", b.LastUpdated.Format("2006-01-02 15:04"))
}

func newShowCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, cfg, func(ctx context.Context, app *entrypoint.App) error {
				book, err := app.Library.GetBook(ctx, args[0])
				if err != nil {
					return err
				}
				printBook(cmd.OutOrStdout(), book)
				return nil
			})
		},
	}
}

func newUpdateCmd(cfg *config.Config) *cobra.Command {
	var (
		title, author, status, category, description string
		pages                                        int
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of a book",
		Long: `Change fields of a book. Only the flags given are applied.

Examples:
  readvoyage update book_123 --status completed
  readvoyage update book_123 --title "Dune Messiah" --pages 256`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch entities.BookPatch
			flags := cmd.Flags()
			if flags.Changed("title") {
				patch.Title = &title
			}
			if flags.Changed("author") {
				patch.Author = &author
			}
			if flags.Changed("status") {
				s, err := parseStatusFlag(status)
				if err != nil {
					return err
				}
				patch.Status = &s
			}
			if flags.Changed("category") {
				c := entities.Category(category)
				patch.Category = &c
			}
			if flags.Changed("pages") {
				patch.Pages = &pages
			}
			if flags.Changed("description") {
				patch.Description = &description
			}

			return withApp(cmd, cfg, func(ctx context.Context, app *entrypoint.App) error {
				book, err := app.Library.UpdateBook(ctx, args[0], patch)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated %q (%s)\n", book.Title, book.Status)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVarP(&author, "author", "a", "", "New author")
	cmd.Flags().StringVarP(&status, "status", "s", "", "New reading status")
	cmd.Flags().StringVarP(&category, "category", "c", "", "New category")
	cmd.Flags().IntVar(&pages, "pages", 0, "New page count")
	cmd.Flags().StringVar(&description, "description", "", "New description")

	return cmd
}

func newDeleteCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a book from the library",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, cfg, func(ctx context.Context, app *entrypoint.App) error {
				if err := app.Library.DeleteBook(ctx, args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
				return nil
			})
		},
	}
}

func newClearCmd(cfg *config.Config) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every book from the library",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to clear the library without --yes")
			}
			return withApp(cmd, cfg, func(ctx context.Context, app *entrypoint.App) error {
				if err := app.Library.ClearLibrary(ctx); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Library cleared")
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm clearing the library")
	return cmd
}

func newStatsCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show library statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, cfg, func(ctx context.Context, app *entrypoint.App) error {
				stats, err := app.Library.GetStats(ctx)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Total:     %d\n", stats.Total)
				fmt.Fprintf(out, "Reading:   %d\n", stats.Reading)
				fmt.Fprintf(out, "Completed: %d\n", stats.Completed)
				fmt.Fprintf(out, "Unread:    %d\n", stats.Unread)
				return nil
			})
		},
	}
}
