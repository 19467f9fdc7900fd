package monitor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/inboxping/inboxping/internal/logging"
)

// DefaultWatchInterval is the pause between runs when none is configured.
const DefaultWatchInterval = 5 * time.Minute

// Watcher re-runs a Dispatcher on a fixed interval until the context is
// cancelled. It replaces the cron scheduling of a one-shot deployment.
// Runs never overlap: the next tick waits for the current run to finish.
type Watcher struct {
	dispatcher *Dispatcher
	interval   time.Duration
	logger     *slog.Logger
}

// NewWatcher returns a Watcher driving the given dispatcher.
func NewWatcher(dispatcher *Dispatcher, interval time.Duration, logger *slog.Logger) (*Watcher, error) {
	if dispatcher == nil {
		return nil, fmt.Errorf("watcher requires a dispatcher")
	}
	if interval <= 0 {
		interval = DefaultWatchInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		dispatcher: dispatcher,
		interval:   interval,
		logger:     logger,
	}, nil
}

// Run executes one pipeline run immediately, then one per interval.
// Per-run errors (including fatal listing errors) are logged and do not
// stop the loop; only context cancellation ends it. Returns nil once
// the context is done.
func (w *Watcher) Run(ctx context.Context) error {
	logger := logging.WithOperation(w.logger, "watch")
	logger.Info("watch started", slog.Duration("interval", w.interval))

	w.runOnce(ctx, logger)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("watch stopped")
			return nil
		case <-ticker.C:
			w.runOnce(ctx, logger)
		}
	}
}

func (w *Watcher) runOnce(ctx context.Context, logger *slog.Logger) {
	summary, err := w.dispatcher.Run(ctx)
	if err != nil {
		logger.Error("run failed", logging.Err(err))
		return
	}
	logger.Info("run summary",
		slog.Int("total", summary.Total),
		slog.Int("notified", summary.Notified),
		slog.Int("failed", summary.Failed))
}
