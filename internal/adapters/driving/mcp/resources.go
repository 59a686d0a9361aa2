package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/scrybe-labs/scrybe-cli/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for Scrybe resources.
	uriScheme = "scrybe://"

	// browseLimit caps how many channels or playlists a resource read returns.
	browseLimit = 200
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for listing channels.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "channels",
		Name:        "channels",
		Description: "List of all archived channels",
		MIMEType:    "application/json",
	}, s.handleChannelsResource)

	// Static resource for listing playlists.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "playlists",
		Name:        "playlists",
		Description: "List of all archived playlists",
		MIMEType:    "application/json",
	}, s.handlePlaylistsResource)

	// Template for video metadata.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "videos/{videoId}",
		Name:        "video-metadata",
		Description: "Metadata for a specific archived video",
		MIMEType:    "application/json",
	}, s.handleVideoResource)
}

// handleChannelsResource returns a list of all archived channels.
func (s *Server) handleChannelsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	channels, _, err := s.ports.Archive.ListChannels(ctx, 0, browseLimit)
	if err != nil {
		return nil, fmt.Errorf("listing channels: %w", err)
	}

	type channelInfo struct {
		ID         string `json:"id"`
		Title      string `json:"title"`
		VideoCount int    `json:"video_count"`
	}

	infos := make([]channelInfo, len(channels))
	for i, ch := range channels {
		infos[i] = channelInfo{
			ID:         ch.ID,
			Title:      ch.Title,
			VideoCount: ch.VideoCount,
		}
	}

	return jsonResourceResult(req.Params.URI, infos)
}

// handlePlaylistsResource returns a list of all archived playlists.
func (s *Server) handlePlaylistsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	playlists, _, err := s.ports.Archive.ListPlaylists(ctx, 0, browseLimit)
	if err != nil {
		return nil, fmt.Errorf("listing playlists: %w", err)
	}

	type playlistInfo struct {
		ID        string `json:"id"`
		Title     string `json:"title"`
		ChannelID string `json:"channel_id"`
		ItemCount int    `json:"item_count"`
	}

	infos := make([]playlistInfo, len(playlists))
	for i, p := range playlists {
		infos[i] = playlistInfo{
			ID:        p.ID,
			Title:     p.Title,
			ChannelID: p.ChannelID,
			ItemCount: p.ItemCount,
		}
	}

	return jsonResourceResult(req.Params.URI, infos)
}

// handleVideoResource returns metadata for a specific video.
func (s *Server) handleVideoResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	videoID := extractVideoID(req.Params.URI)
	if videoID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	v, err := s.ports.Archive.GetVideo(ctx, videoID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, mcp.ResourceNotFoundError(req.Params.URI)
		}
		return nil, fmt.Errorf("getting video: %w", err)
	}

	return jsonResourceResult(req.Params.URI, GetVideoOutput{
		ID:            v.ID,
		Title:         v.Title,
		Description:   v.Description,
		ChannelTitle:  v.ChannelTitle,
		DurationSec:   int(v.Duration.Seconds()),
		HasTranscript: v.HasTranscript,
		Languages:     v.Languages,
	})
}

// jsonResourceResult marshals v as an application/json resource payload.
func jsonResourceResult(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractVideoID extracts the video ID from a URI like scrybe://videos/{videoId}.
func extractVideoID(uri string) string {
	const prefix = uriScheme + "videos/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	return strings.TrimPrefix(uri, prefix)
}
