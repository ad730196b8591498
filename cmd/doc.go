// Package cmd implements the command-line interface for phaunabot.
//
// This package provides the following commands:
//   - serve: Run the Telegram bot and its auth/metrics HTTP servers
//   - auth: Helpers for the Google OAuth consent flow
//   - version: Display version information
//
// The serve command is the default command when no subcommand is specified.
package cmd
