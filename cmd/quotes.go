package cmd

import (
	"fmt"
	"strings"

	"github.com/jon4hz/quotevault/internal/domain"
	"github.com/jon4hz/quotevault/internal/engine"
	"github.com/jon4hz/quotevault/internal/repository"
	"github.com/spf13/cobra"
)

var pageFlags struct {
	Page     int
	PageSize int
}

func addPageFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&pageFlags.Page, "page", 0, "Page to show, starting at 0")
	cmd.Flags().IntVar(&pageFlags.PageSize, "page-size", 0, "Quotes per page, defaults to the configured page size")
}

func pageSize(a *app) int {
	if pageFlags.PageSize > 0 {
		return pageFlags.PageSize
	}
	return a.cfg.PageSize
}

var quotesCmd = &cobra.Command{
	Use:     "quotes",
	Aliases: []string{"q"},
	Short:   "Browse the cached quotes",
}

var quotesCategory string

var quotesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List quotes page by page",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd.Context(), func(a *app) error {
			var (
				page repository.Page[domain.Quote]
				err  error
			)
			if quotesCategory != "" {
				page, err = a.engine.Quotes().QuotesByCategoryPaginated(cmd.Context(), quotesCategory, pageFlags.Page, pageSize(a))
			} else {
				page, err = a.engine.Quotes().QuotesPaginated(cmd.Context(), pageFlags.Page, pageSize(a))
			}
			if err != nil {
				return err
			}
			printPage(cmd.OutOrStdout(), page)
			return nil
		})
	},
}

var quotesSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search quote text and authors",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")
		return withApp(cmd.Context(), func(a *app) error {
			quotes, err := a.engine.Quotes().SearchQuotesNow(cmd.Context(), query)
			if err != nil {
				return err
			}
			printQuotes(cmd.OutOrStdout(), quotes)
			return nil
		})
	},
}

var quotesAuthorCmd = &cobra.Command{
	Use:   "author <name>",
	Short: "List the quotes of an author",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		author := strings.Join(args, " ")
		return withApp(cmd.Context(), func(a *app) error {
			quotes, err := a.engine.Quotes().QuotesByAuthorNow(cmd.Context(), author)
			if err != nil {
				return err
			}
			printQuotes(cmd.OutOrStdout(), quotes)
			return nil
		})
	},
}

var quotesShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a single quote",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(a *app) error {
			q, err := a.engine.Quotes().GetQuote(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if q == nil {
				return engine.ErrQuoteNotFound
			}
			printQuoteDetail(cmd.OutOrStdout(), *q)
			return nil
		})
	},
}

var quotesRandomCmd = &cobra.Command{
	Use:   "random",
	Short: "Show a random quote",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd.Context(), func(a *app) error {
			q, err := a.engine.Quotes().GetRandomQuote(cmd.Context())
			if err != nil {
				return err
			}
			if q == nil {
				return engine.ErrQuoteNotFound
			}
			printQuoteDetail(cmd.OutOrStdout(), *q)
			return nil
		})
	},
}

var quotesCategoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the categories",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd.Context(), func(a *app) error {
			categories, err := a.engine.Quotes().CategoriesNow(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if len(categories) == 0 {
				fmt.Fprintln(w, "No categories cached, run `quotevault refresh` first.")
				return nil
			}
			for _, c := range categories {
				fmt.Fprintf(w, "%s %-16s %-12s %s\n", c.Icon(), c.DisplayName, c.ID, count(c.QuoteCount, "quote"))
			}
			return nil
		})
	},
}

var quoteOfDayCmd = &cobra.Command{
	Use:   "qod",
	Short: "Show the quote of the day",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd.Context(), func(a *app) error {
			q, err := a.engine.Quotes().GetQuoteOfDay(cmd.Context())
			if err != nil {
				return err
			}
			if q == nil {
				return engine.ErrNoQuoteOfDay
			}
			printQuoteDetail(cmd.OutOrStdout(), *q)
			return nil
		})
	},
}

func init() {
	addPageFlags(quotesListCmd)
	quotesListCmd.Flags().StringVar(&quotesCategory, "category", "", "Only list quotes of this category ID")

	quotesCmd.AddCommand(quotesListCmd, quotesSearchCmd, quotesAuthorCmd, quotesShowCmd, quotesRandomCmd, quotesCategoriesCmd)
	rootCmd.AddCommand(quotesCmd, quoteOfDayCmd)
}
