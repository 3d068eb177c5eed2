package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/openmetab/keggmatch/internal/config"
	"github.com/openmetab/keggmatch/internal/infrastructure/monitoring/logging"
	"github.com/openmetab/keggmatch/internal/infrastructure/monitoring/prometheus"
	httpiface "github.com/openmetab/keggmatch/internal/interfaces/http"
	"github.com/openmetab/keggmatch/internal/interfaces/http/handlers"
	"github.com/openmetab/keggmatch/internal/interfaces/http/middleware"
)

// NewServeCmd creates the "serve" subcommand: run the HTTP API.
func NewServeCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the keggmatch HTTP API server",
		Long: "serve starts the HTTP API exposing single and batch compound matching,\n" +
			"health probes and Prometheus metrics. The server shuts down gracefully\n" +
			"on SIGINT or SIGTERM.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			cfg := cliCtx.Config
			if port > 0 {
				cfg.Server.Port = port
			}

			// The server logs in the configured format, not CLI console.
			logger, err := logging.NewLogger(cfg.Log)
			if err != nil {
				return err
			}

			svc, err := buildService(cliCtx, 0)
			if err != nil {
				return err
			}

			deps := httpiface.RouterDeps{
				Matcher: svc,
				Logger:  logger.Named("http"),
				Health:  handlers.NewHealthHandler(Version),
			}

			if cfg.Metrics.Enabled {
				collector, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{
					Namespace:            cfg.Metrics.Namespace,
					EnableProcessMetrics: cfg.Metrics.EnableProcessMetrics,
					EnableGoMetrics:      cfg.Metrics.EnableGoMetrics,
				}, logger.Named("metrics"))
				if err != nil {
					return err
				}
				deps.Metrics = prometheus.NewAppMetrics(collector)
				deps.MetricsHandler = collector.Handler()
			}

			var limiter *middleware.TokenBucketLimiter
			if cfg.Server.RateLimitRPS > 0 {
				limiter = middleware.NewTokenBucketLimiter(
					cfg.Server.RateLimitRPS,
					cfg.Server.RateLimitBurst,
					middleware.DefaultRateLimitConfig().CleanupInterval,
				)
				defer limiter.Stop()
				deps.Limiter = limiter
			}

			// Hot-reload the safe subset of settings when the config file
			// changes on disk. Env-only deployments have no file to watch.
			if cliCtx.ConfigPath != "" {
				config.Watch(cliCtx.ConfigPath, func(next *config.Config) {
					if limiter != nil {
						limiter.SetLimits(next.Server.RateLimitRPS, next.Server.RateLimitBurst)
					}
					logger.Info("configuration reloaded",
						logging.String("path", cliCtx.ConfigPath),
						logging.Float64("rate_limit_rps", next.Server.RateLimitRPS),
						logging.Int("rate_limit_burst", next.Server.RateLimitBurst),
					)
				})
			}

			router := httpiface.NewRouter(cfg, deps)
			srv := httpiface.NewServer(cfg, router, logger.Named("server"))

			errCh := make(chan error, 1)
			go func() { errCh <- srv.Start() }()
			deps.Health.SetReady(true)

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-errCh:
				return err
			case sig := <-stop:
				logger.Info("signal received, shutting down", logging.String("signal", sig.String()))
				deps.Health.SetReady(false)
				if err := srv.Stop(context.Background()); err != nil {
					return err
				}
				return <-errCh
			}
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "listen port (default from config)")
	return cmd
}
