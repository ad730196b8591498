package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the phaunabot application
var rootCmd = &cobra.Command{
	Use:   "phaunabot",
	Short: "Telegram front end for Google Calendar",
	Long: `phaunabot is a Telegram bot that manages a Google Calendar from chat
commands: listing upcoming events, creating timed events and creating
multi-day all-day events.

Only chats on the configured allow-list are served; everyone else gets
"Access Denied".`,
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
	rootCmd.SetVersionTemplate(`{{printf "phaunabot version %s\n" .Version}}`)

	// If no subcommand is provided, run the serve command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newVersionCmd())
}
