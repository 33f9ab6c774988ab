package cmd

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/jon4hz/quotevault/internal/api"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the QuoteVault server",
	Long:  `Start the periodic sync jobs and serve the local cache over HTTP.`,
	Example: `quotevault serve --config config.yml
quotevault serve -c /path/to/config.yml --log-level debug
`,
	RunE: startServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func startServer(cmd *cobra.Command, _ []string) error {
	return withApp(cmd.Context(), func(a *app) error {
		server, err := api.New(a.cfg, a.engine)
		if err != nil {
			return fmt.Errorf("failed to create API server: %w", err)
		}

		g, ctx := errgroup.WithContext(cmd.Context())
		g.Go(func() error {
			return a.engine.Run(ctx)
		})
		g.Go(func() error {
			return server.Run(ctx)
		})

		log.Info("quotevault started successfully", "listen", a.cfg.Listen)
		err = g.Wait()
		log.Info("shutting down gracefully...")
		return err
	})
}
