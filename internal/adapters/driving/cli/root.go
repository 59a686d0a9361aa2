// Package cli implements the scrybe command-line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/scrybe-labs/scrybe-cli/internal/core/ports/driven"
	"github.com/scrybe-labs/scrybe-cli/internal/logger"
)

// version is set from main via Execute.
var version = "dev"

// Services wired in from main. Commands check for nil and fail with a
// clear message instead of panicking.
var (
	archiveClient driven.ArchiveClient
	configStore   driven.ConfigStore
	historyStore  driven.HistoryStore
)

var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:   "scrybe",
	Short: "Browse and search a video transcript archive",
	Long: `Scrybe is a client for a video archive: search time-coded transcript
segments, video titles, and descriptions, and browse archived channels
and playlists.

Run without arguments to launch the interactive terminal UI.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Bare invocation drops into the TUI.
		return runTUI(cmd, args)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command with the given build version.
func Execute(v string) error {
	if v != "" {
		version = v
	}
	return rootCmd.Execute()
}

// SetArchiveClient wires the archive API client used by all commands.
func SetArchiveClient(c driven.ArchiveClient) {
	archiveClient = c
}

// SetConfigStore wires the configuration store.
func SetConfigStore(s driven.ConfigStore) {
	configStore = s
}

// SetHistoryStore wires the search history store.
func SetHistoryStore(h driven.HistoryStore) {
	historyStore = h
}
