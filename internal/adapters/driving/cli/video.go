package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/scrybe-labs/scrybe-cli/internal/core/domain"
)

var videoCmd = &cobra.Command{
	Use:   "video [id]",
	Short: "Show archived video metadata",
	Args:  cobra.ExactArgs(1),
	RunE:  runVideo,
}

func init() {
	rootCmd.AddCommand(videoCmd)
}

func runVideo(cmd *cobra.Command, args []string) error {
	if archiveClient == nil {
		return errors.New("archive client not configured")
	}

	v, err := archiveClient.GetVideo(cmd.Context(), args[0])
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("video %q is not archived", args[0])
		}
		return fmt.Errorf("fetching video: %w", err)
	}

	cmd.Printf("%s\n", v.Title)
	cmd.Printf("  Channel:    %s\n", v.ChannelTitle)
	cmd.Printf("  Duration:   %s\n", v.Duration)
	cmd.Printf("  Published:  %s\n", v.PublishedAt.Format("2006-01-02"))
	if v.HasTranscript {
		cmd.Printf("  Transcript: yes (%s)\n", strings.Join(v.Languages, ", "))
	} else {
		cmd.Println("  Transcript: no")
	}
	if v.Description != "" {
		cmd.Printf("\n%s\n", v.Description)
	}
	return nil
}
