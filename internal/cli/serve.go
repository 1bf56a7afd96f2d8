package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/example/searchops/internal/adapters/httpapi"
	"github.com/example/searchops/internal/wire"
)

// ServeCmd returns the serve command that exposes the JSON API.
func ServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the allocation API over HTTP",
		Long: `Serve the JSON API, /healthz and /metrics.

The listen address defaults to http_addr from the config. Callers identify
themselves with the X-Operator header.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := wire.Config()
			logger := wire.Logger()
			defer func() { _ = logger.Sync() }()

			if addr == "" {
				addr = cfg.HTTPAddr
			}
			if cfg.LogLevel != "debug" {
				gin.SetMode(gin.ReleaseMode)
			}

			handlers := httpapi.NewHandlers(
				wire.AllocationService(),
				wire.PremiseService(),
				wire.ResourceService(),
				logger,
			)
			router := httpapi.NewRouter(handlers, wire.Registry())

			ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger.Info("starting searchops api", zap.String("operator", operator))
			return httpapi.Serve(ctx, addr, router, logger)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides http_addr)")

	return cmd
}
