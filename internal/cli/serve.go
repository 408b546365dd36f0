package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/preston-bernstein/schedule-builder/internal/config"
	"github.com/preston-bernstein/schedule-builder/internal/logging"
	"github.com/preston-bernstein/schedule-builder/internal/server"
)

var runServer = func(ctx context.Context, stop context.CancelFunc, cfg config.Config, logger *slog.Logger) {
	server.New(cfg, logger).Run(ctx, stop)
}

func newServeCommand(opts *options, version string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			logger := logging.NewLogger(logging.Config{
				Level:   cfg.Logging.Level,
				Format:  cfg.Logging.Format,
				Service: serviceName,
				Version: version,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			runServer(ctx, stop, cfg, logger)
			return nil
		},
	}
}
