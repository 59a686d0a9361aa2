package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/spf13/cobra"

	"github.com/scrybe-labs/scrybe-cli/internal/adapters/driving/tui"
	"github.com/scrybe-labs/scrybe-cli/internal/core/services"
	"github.com/scrybe-labs/scrybe-cli/internal/logger"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for Scrybe.

The TUI searches the archive as you type, with one result section per
source (titles, descriptions, transcripts), and lets you browse archived
channels and playlists.

Controls:
  (type)   - Live search
  Tab      - Next result section
  ↑/k, ↓/j - Navigate matches
  r        - Retry a failed section
  m        - More transcript matches
  ?        - Help
  q        - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

// newLiveOrchestrator builds the debounced orchestrator backing the TUI.
// Unlike the one-shot CLI search, keystrokes arrive continuously, so the
// configured debounce interval applies.
func newLiveOrchestrator() (*services.Orchestrator, error) {
	if archiveClient == nil {
		return nil, errors.New("archive client not configured")
	}

	cfg := services.OrchestratorConfig{}
	if configStore != nil {
		if ms := configStore.GetInt("search.debounce_ms"); ms > 0 {
			cfg.DebounceInterval = time.Duration(ms) * time.Millisecond
		}
		cfg.SegmentPageSize = configStore.GetInt("search.segment_page_size")
		cfg.CappedLimit = configStore.GetInt("search.capped_limit")
		cfg.Language = configStore.GetString("search.language")
	}

	orch := services.NewOrchestrator(archiveClient, cfg)
	if historyStore != nil {
		orch.SetHistoryStore(historyStore)
	}
	return orch, nil
}

// watchConfig reloads configuration edits live for the duration of the
// TUI session. A broken watcher or a bad edit only logs; it never takes
// the UI down.
func watchConfig(ctx context.Context) {
	if configStore == nil {
		return
	}
	err := configStore.Watch(ctx, func() {
		logger.Info("configuration reloaded from %s", configStore.Path())
	})
	if err != nil {
		logger.Warn("watching config file: %v", err)
	}
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Panic recovery keeps a readable stack trace when the alt screen is
	// torn down.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	orch, err := newLiveOrchestrator()
	if err != nil {
		return err
	}
	defer orch.Stop()

	watchCtx, cancelWatch := context.WithCancel(cmd.Context())
	defer cancelWatch()
	watchConfig(watchCtx)

	app, err := tui.NewApp(tui.NewPorts(orch, archiveClient))
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context())

	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
