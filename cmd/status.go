package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show session, job and cache status",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd.Context(), func(a *app) error {
			st := a.engine.Status()
			w := cmd.OutOrStdout()

			fmt.Fprintf(w, "Logged in: %t\n", st.LoggedIn)
			channels := "none"
			if len(st.Notifiers) > 0 {
				channels = strings.Join(st.Notifiers, ", ")
			}
			fmt.Fprintf(w, "Channels:  %s\n", channels)

			fmt.Fprintln(w, "\nJobs:")
			for _, j := range st.Jobs {
				fmt.Fprintf(w, "  %-22s %-10s %s\n", j.ID, j.Status, j.Schedule)
			}

			fmt.Fprintln(w, "\nCaches:")
			for _, c := range st.Cache {
				if c.Stats == nil {
					continue
				}
				fmt.Fprintf(w, "  %-22s hits %d, misses %d\n", c.CacheName, c.Hits, c.Miss)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
