package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	historyLimit int
	historyClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent searches",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of entries")
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "clear the search history")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if historyStore == nil {
		return errors.New("history store not configured")
	}

	if historyClear {
		if err := historyStore.Clear(cmd.Context()); err != nil {
			return fmt.Errorf("clearing history: %w", err)
		}
		cmd.Println("Search history cleared.")
		return nil
	}

	entries, err := historyStore.Recent(cmd.Context(), historyLimit)
	if err != nil {
		return fmt.Errorf("reading history: %w", err)
	}

	if len(entries) == 0 {
		cmd.Println("No recorded searches.")
		return nil
	}

	for _, e := range entries {
		names := make([]string, len(e.Sources))
		for i, t := range e.Sources {
			names[i] = string(t)
		}
		cmd.Printf("  %s  %-30q %s\n",
			e.SearchedAt.Local().Format("2006-01-02 15:04"),
			e.Text,
			strings.Join(names, ","))
	}
	return nil
}
