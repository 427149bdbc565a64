package commands

import (
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "agenda",
	Short: "Weekly agenda server with conflict checks and email reminders",
	Long: `agenda serves a personal weekly agenda over HTTP. Tasks on the same day
may not overlap, and tasks with a reminder get one notification before they start.

Configuration is read from the environment and an optional .env file.`,
	SilenceUsage: true,
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(remindCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(versionCmd)
}
