package cmd

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/jon4hz/quotevault/internal/domain"
	"github.com/spf13/cobra"
)

var shareChannels []string

var shareCmd = &cobra.Command{
	Use:   "share <quote-id>",
	Short: "Print the share message of a quote and optionally send it",
	Example: `quotevault share 42
quotevault share 42 --via ntfy --via email`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(a *app) error {
			msg, err := a.engine.Share(cmd.Context(), args[0], shareChannels...)
			if msg != "" {
				w := cmd.OutOrStdout()
				fmt.Fprintln(w, msg)
				fmt.Fprintln(w)
				fmt.Fprintln(w, domain.QuoteLink(args[0]))
			}
			if err != nil {
				return err
			}
			if len(shareChannels) > 0 {
				log.Info("quote shared", "quote", args[0], "channels", shareChannels)
			}
			return nil
		})
	},
}

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Send the quote of the day through every enabled notification channel",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd.Context(), func(a *app) error {
			return a.engine.DeliverDailyQuote(cmd.Context())
		})
	},
}

func init() {
	shareCmd.Flags().StringSliceVar(&shareChannels, "via", nil, "Notification channel to send through: ntfy, email or webpush")
	rootCmd.AddCommand(shareCmd, dailyCmd)
}
