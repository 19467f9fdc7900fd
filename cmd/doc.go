// Package cmd implements the command-line interface for inboxping.
//
// This package provides the following commands:
//   - run: Process one batch of unread mail and exit
//   - watch: Keep processing batches on an interval until interrupted
//   - auth: Run the interactive Google OAuth flow and cache the token
//   - version: Display version information
//
// The run command is the default command when no subcommand is specified.
package cmd
