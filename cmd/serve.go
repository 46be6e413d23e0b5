package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bnema/fanthom/internal/adapters/httpapi"
)

func newServeCmd(app *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the credits and generation API over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			generator, err := app.generator(ctx)
			if err != nil {
				return err
			}
			completion, err := app.completionService(ctx)
			if err != nil {
				return err
			}

			server := httpapi.NewServer(app.ledger, generator, completion, app.completionSettings(), app.logger)
			return server.Run(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", app.cfg.Server.Addr, "Listen address")

	return cmd
}
