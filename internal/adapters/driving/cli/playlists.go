package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var playlistsLimit int

var playlistsCmd = &cobra.Command{
	Use:   "playlists",
	Short: "List archived playlists",
	RunE:  runPlaylists,
}

func init() {
	playlistsCmd.Flags().IntVarP(&playlistsLimit, "limit", "n", 50, "maximum number of playlists")
	rootCmd.AddCommand(playlistsCmd)
}

func runPlaylists(cmd *cobra.Command, _ []string) error {
	if archiveClient == nil {
		return errors.New("archive client not configured")
	}

	playlists, total, err := archiveClient.ListPlaylists(cmd.Context(), 0, playlistsLimit)
	if err != nil {
		return fmt.Errorf("listing playlists: %w", err)
	}

	if len(playlists) == 0 {
		cmd.Println("No playlists archived.")
		return nil
	}

	cmd.Printf("Playlists (%d of %d):\n\n", len(playlists), total)
	for _, p := range playlists {
		cmd.Printf("  %-24s %5d items  %s\n", p.ID, p.ItemCount, p.Title)
	}
	return nil
}
