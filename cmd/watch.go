package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/inboxping/inboxping/internal/config"
	"github.com/inboxping/inboxping/internal/instrumentation"
	"github.com/inboxping/inboxping/internal/logging"
	"github.com/inboxping/inboxping/internal/monitor"
	"github.com/inboxping/inboxping/internal/server"
)

func newWatchCmd() *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Keep processing batches on an interval until interrupted",
		Long: `Run the pipeline immediately and then once per interval until the
process receives SIGINT or SIGTERM. Per-run failures are logged and do
not stop the loop.

When instrumentation is enabled (INSTRUMENTATION_ENABLED=true), a
Prometheus metrics server is started on METRICS_ADDR alongside health
endpoints for liveness and readiness probes.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			logger := logging.Setup(cfg.LogLevel, cfg.LogFormat)

			if interval > 0 {
				cfg.WatchInterval = interval
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			// Initialize instrumentation provider
			instrConfig := instrumentation.DefaultConfig()
			instrConfig.ServiceVersion = version

			provider, err := instrumentation.NewProvider(ctx, instrConfig)
			if err != nil {
				return fmt.Errorf("failed to create instrumentation provider: %w", err)
			}
			defer func() {
				if err := provider.Shutdown(ctx); err != nil {
					logger.Error("instrumentation shutdown failed", logging.Err(err))
				}
			}()

			// Start the metrics server when instrumentation is on
			var metricsServer *server.MetricsServer
			if provider.Enabled() {
				metricsServer, err = server.NewMetricsServer(server.MetricsServerConfig{
					Addr:                    cfg.MetricsAddr,
					InstrumentationProvider: provider,
				})
				if err != nil {
					return fmt.Errorf("failed to create metrics server: %w", err)
				}

				// Use ready channel to confirm the metrics server started
				metricsReady := make(chan struct{})
				metricsErr := make(chan error, 1)
				go func() {
					if err := metricsServer.StartWithReadySignal(metricsReady); err != nil && err != http.ErrServerClosed {
						metricsErr <- err
					}
					close(metricsErr)
				}()

				select {
				case <-metricsReady:
					logger.Info("metrics server started", "addr", metricsServer.Addr())
				case err := <-metricsErr:
					return fmt.Errorf("metrics server failed to start: %w", err)
				case <-time.After(5 * time.Second):
					return fmt.Errorf("metrics server startup timed out")
				}

				defer func() {
					// The signal context is already cancelled here.
					shutdownCtx, cancel := context.WithTimeout(context.Background(), server.DefaultShutdownTimeout)
					defer cancel()
					if err := metricsServer.Shutdown(shutdownCtx); err != nil {
						logger.Error("metrics server shutdown failed", logging.Err(err))
					}
				}()
			}

			dispatcher, err := buildDispatcher(ctx, cfg, logger, provider.Metrics())
			if err != nil {
				return err
			}

			watcher, err := monitor.NewWatcher(dispatcher, cfg.WatchInterval, logger)
			if err != nil {
				return err
			}

			return watcher.Run(ctx)
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 0, "Pause between runs (default: WATCH_INTERVAL or 5m)")
	return cmd
}
