package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inboxping/inboxping/internal/config"
	"github.com/inboxping/inboxping/internal/logging"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Process one batch of unread mail and exit",
		Long: `Scan the mailbox once for unread messages within the lookback window,
categorize each by subject, push an alert per message, and mark alerted
messages read. Prints a summary and exits, which makes it suitable for cron.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			logger := logging.Setup(cfg.LogLevel, cfg.LogFormat)
			ctx := context.Background()

			dispatcher, err := buildDispatcher(ctx, cfg, logger, nil)
			if err != nil {
				return err
			}

			summary, err := dispatcher.Run(ctx)
			if err != nil {
				return err
			}

			fmt.Print(summary.String())
			return nil
		},
	}

	return cmd
}
