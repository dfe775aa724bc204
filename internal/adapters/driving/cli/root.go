// Package cli implements the trackbot command-line interface using cobra.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/trackbot/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	configPath  string
	verboseMode bool
)

// rootCmd is the base command for trackbot.
var rootCmd = &cobra.Command{
	Use:   "trackbot",
	Short: "Telegram bot bridging a team chat to a YouTrack backlog",
	Long: `Trackbot connects a Telegram chat to a YouTrack instance.

It serves the team backlog as a paged inline keyboard, lets members vote
on issues with a single tap, and walks them through filing a new issue
step by step. Members sign in to the tracker with /login, which runs an
OAuth flow against the tracker's hub.

Configuration is read from a TOML file, with secrets taken from the
environment (TELEGRAM_BOT_TOKEN, YOUTRACK_CLIENTSECRET, ...).`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseMode)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "trackbot.toml", "path to the configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verboseMode, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
