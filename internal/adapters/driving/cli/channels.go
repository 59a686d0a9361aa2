package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var channelsLimit int

var channelsCmd = &cobra.Command{
	Use:   "channels",
	Short: "List archived channels",
	RunE:  runChannels,
}

func init() {
	channelsCmd.Flags().IntVarP(&channelsLimit, "limit", "n", 50, "maximum number of channels")
	rootCmd.AddCommand(channelsCmd)
}

func runChannels(cmd *cobra.Command, _ []string) error {
	if archiveClient == nil {
		return errors.New("archive client not configured")
	}

	channels, total, err := archiveClient.ListChannels(cmd.Context(), 0, channelsLimit)
	if err != nil {
		return fmt.Errorf("listing channels: %w", err)
	}

	if len(channels) == 0 {
		cmd.Println("No channels archived.")
		return nil
	}

	cmd.Printf("Channels (%d of %d):\n\n", len(channels), total)
	for _, ch := range channels {
		cmd.Printf("  %-24s %5d videos  %s\n", ch.ID, ch.VideoCount, ch.Title)
	}
	return nil
}
