package cmd

import (
	"fmt"

	"github.com/jon4hz/quotevault/internal/engine"
	"github.com/spf13/cobra"
)

var favoritesCmd = &cobra.Command{
	Use:     "favorites",
	Aliases: []string{"fav"},
	Short:   "Manage your favorite quotes",
}

var favoritesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your favorite quotes, newest first",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd.Context(), func(a *app) error {
			page, err := a.engine.Favorites().FavoriteQuotesPaginated(cmd.Context(), pageFlags.Page, pageSize(a))
			if err != nil {
				return err
			}
			printPage(cmd.OutOrStdout(), page)
			return nil
		})
	},
}

var favoritesToggleCmd = &cobra.Command{
	Use:   "toggle <quote-id>",
	Short: "Add a quote to your favorites or remove it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(a *app) error {
			if err := quoteExists(cmd, a, args[0]); err != nil {
				return err
			}
			fav, err := a.engine.Favorites().ToggleFavorite(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if fav {
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s to your favorites.\n", args[0])
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from your favorites.\n", args[0])
			}
			return nil
		})
	},
}

var favoritesAddCmd = &cobra.Command{
	Use:   "add <quote-id>",
	Short: "Add a quote to your favorites",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(a *app) error {
			if err := quoteExists(cmd, a, args[0]); err != nil {
				return err
			}
			if err := a.engine.Favorites().AddFavorite(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s to your favorites.\n", args[0])
			return nil
		})
	},
}

var favoritesRemoveCmd = &cobra.Command{
	Use:     "remove <quote-id>",
	Aliases: []string{"rm"},
	Short:   "Remove a quote from your favorites",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(a *app) error {
			if err := a.engine.Favorites().RemoveFavorite(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from your favorites.\n", args[0])
			return nil
		})
	},
}

func quoteExists(cmd *cobra.Command, a *app, id string) error {
	q, err := a.engine.Quotes().GetQuote(cmd.Context(), id)
	if err != nil {
		return err
	}
	if q == nil {
		return engine.ErrQuoteNotFound
	}
	return nil
}

func init() {
	addPageFlags(favoritesListCmd)
	favoritesCmd.AddCommand(favoritesListCmd, favoritesToggleCmd, favoritesAddCmd, favoritesRemoveCmd)
	rootCmd.AddCommand(favoritesCmd)
}
