package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the inboxping application
var rootCmd = &cobra.Command{
	Use:   "inboxping",
	Short: "Watches a mailbox and pushes categorized alerts for unread mail",
	Long: `inboxping scans your mailbox for unread messages from the last day,
sorts each one into a category by its subject line, and pushes an alert
to Slack or WhatsApp. Alerted messages are marked read so they are not
reported twice.

It can run as:
  - A one-shot batch (default), suitable for cron
  - A long-running watcher (watch) with Prometheus metrics`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "inboxping version %s\n" .Version}}`)

	// If no subcommand is provided, run one batch by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "run")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newVersionCmd())
}
