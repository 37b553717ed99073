package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/insightdelivered/paypay-statement-converter/internal/api"
	"github.com/insightdelivered/paypay-statement-converter/internal/converter"
	"github.com/insightdelivered/paypay-statement-converter/internal/logger"
)

func newServeCmd(opts *options) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the conversion HTTP API",
		Long: `Starts an HTTP server exposing:

  GET  /api/health   liveness probe
  POST /api/convert  multipart upload (field "file") of a statement page`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = opts.cfg.Server.Addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			log := logger.FromContext(ctx)
			app := api.NewApp(&api.Handler{
				Converter: converter.New(opts.cfg),
				Logger:    log,
				Version:   version,
			})

			log.Info().Str("addr", addr).Msg("listening")
			return api.Serve(ctx, app, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	return cmd
}
