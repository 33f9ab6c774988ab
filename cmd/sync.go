package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Pull categories and quotes from the backend",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd.Context(), func(a *app) error {
			if err := a.engine.Refresh(cmd.Context()); err != nil {
				return err
			}
			categories, err := a.db.ListCategories(cmd.Context())
			if err != nil {
				return err
			}
			quotes, err := a.db.ListQuotes(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cache holds %s in %s.\n", count(len(quotes), "quote"), count(len(categories), "category"))
			return nil
		})
	},
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Pull favorites, collections and settings of the signed in user",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd.Context(), func(a *app) error {
			if err := a.engine.Sync(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "User data synced.")
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(refreshCmd, syncCmd)
}
