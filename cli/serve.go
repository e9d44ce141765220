package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	httpLayer "income-tax/http"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			cfg, logger := opts.cfg, opts.logger
			a, err := newApp(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer a.Close()

			limiter := httpLayer.NewRateLimiter(cfg.RateLimit.Capacity, cfg.RateLimit.Window)
			defer limiter.Stop()

			router := httpLayer.NewRouter(a.dependencies(limiter, logger))
			server := httpLayer.NewServer(httpLayer.ServerConfig{
				Addr:            cfg.Server.Addr,
				ReadTimeout:     cfg.Server.ReadTimeout,
				WriteTimeout:    cfg.Server.WriteTimeout,
				IdleTimeout:     cfg.Server.IdleTimeout,
				ShutdownTimeout: cfg.Server.ShutdownTimeout,
			}, router, logger)

			logger.Info().
				Str("rule_set", a.tax.Rules().DefaultName()).
				Strs("rule_sets", a.tax.Rules().Names()).
				Msg("rule sets loaded")

			return server.Run(ctx)
		},
	}
}
