package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/scrybe-labs/scrybe-cli/internal/core/domain"
	"github.com/scrybe-labs/scrybe-cli/internal/core/services"
)

// SearchInput is the input schema for the search_archive tool.
type SearchInput struct {
	Query   string   `json:"query" jsonschema:"the text to search the archive for"`
	Sources []string `json:"sources,omitempty" jsonschema:"sources to search: titles, descriptions, segments (default all)"`
}

// SearchOutput is the output schema for the search_archive tool.
type SearchOutput struct {
	Summary  string          `json:"summary"`
	Sections []SectionOutput `json:"sections"`
}

// SectionOutput is one source's slice of the search result.
type SectionOutput struct {
	Source     string          `json:"source"`
	TotalCount int             `json:"total_count"`
	Error      string          `json:"error,omitempty"`
	Segments   []SegmentOutput `json:"segments,omitempty"`
	Videos     []VideoOutput   `json:"videos,omitempty"`
}

// SegmentOutput is a transcript segment match.
type SegmentOutput struct {
	VideoID    string `json:"video_id"`
	VideoTitle string `json:"video_title"`
	Timestamp  string `json:"timestamp"`
	Text       string `json:"text"`
}

// VideoOutput is a title or description match.
type VideoOutput struct {
	VideoID      string `json:"video_id"`
	Title        string `json:"title"`
	Snippet      string `json:"snippet,omitempty"`
	ChannelTitle string `json:"channel_title,omitempty"`
}

// GetVideoInput is the input schema for the get_video tool.
type GetVideoInput struct {
	VideoID string `json:"video_id" jsonschema:"the archived video id"`
}

// GetVideoOutput is the output schema for the get_video tool.
type GetVideoOutput struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description,omitempty"`
	ChannelTitle  string   `json:"channel_title"`
	DurationSec   int      `json:"duration_sec"`
	HasTranscript bool     `json:"has_transcript"`
	Languages     []string `json:"languages,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_archive",
		Description: "Search the video archive across transcript segments, titles, and descriptions",
	}, s.handleSearchArchive)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_video",
		Description: "Fetch metadata for one archived video",
	}, s.handleGetVideo)
}

// handleSearchArchive handles the search_archive tool invocation. Each
// call runs one synchronous search to completion.
func (s *Server) handleSearchArchive(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	sources, err := parseSources(input.Sources)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	cfg := s.ports.SearchConfig
	cfg.DebounceInterval = -1
	orch := services.NewOrchestrator(s.ports.Archive, cfg)
	defer orch.Stop()
	if s.ports.History != nil {
		orch.SetHistoryStore(s.ports.History)
	}

	_, sections, err := services.SearchOnce(ctx, orch, input.Query, sources)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{}
	if sentence, _ := orch.Announcement(); sentence != "" {
		output.Summary = sentence
	}

	for _, t := range domain.ActiveSourceTypes() {
		st, ok := sections[t]
		if !ok || st.Phase == domain.PhaseIdle {
			continue
		}
		output.Sections = append(output.Sections, sectionOutput(t, st))
	}

	return nil, output, nil
}

// handleGetVideo handles the get_video tool invocation.
func (s *Server) handleGetVideo(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetVideoInput,
) (*mcp.CallToolResult, GetVideoOutput, error) {
	v, err := s.ports.Archive.GetVideo(ctx, input.VideoID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, GetVideoOutput{}, fmt.Errorf("video %q is not archived", input.VideoID)
		}
		return nil, GetVideoOutput{}, err
	}

	return nil, GetVideoOutput{
		ID:            v.ID,
		Title:         v.Title,
		Description:   v.Description,
		ChannelTitle:  v.ChannelTitle,
		DurationSec:   int(v.Duration.Seconds()),
		HasTranscript: v.HasTranscript,
		Languages:     v.Languages,
	}, nil
}

// parseSources maps the requested source names to domain types.
// An empty list selects every wired source.
func parseSources(names []string) ([]domain.SourceType, error) {
	if len(names) == 0 {
		return domain.ActiveSourceTypes(), nil
	}

	var out []domain.SourceType
	for _, name := range names {
		t, ok := domain.ParseSourceType(name)
		if !ok || !t.Wired() {
			return nil, fmt.Errorf("unknown source %q (valid: titles, descriptions, segments)", name)
		}
		out = append(out, t)
	}
	return out, nil
}

// sectionOutput folds one section state into the tool output shape.
func sectionOutput(t domain.SourceType, st domain.SectionState) SectionOutput {
	out := SectionOutput{
		Source:     string(t),
		TotalCount: st.Count(),
	}
	if st.Err != nil {
		out.Error = st.Err.Error()
		return out
	}

	for _, item := range st.Items {
		switch v := item.(type) {
		case domain.Segment:
			out.Segments = append(out.Segments, SegmentOutput{
				VideoID:    v.VideoID,
				VideoTitle: v.VideoTitle,
				Timestamp:  v.Timestamp(),
				Text:       v.Text,
			})
		case domain.VideoMatch:
			out.Videos = append(out.Videos, VideoOutput{
				VideoID:      v.VideoID,
				Title:        v.Title,
				Snippet:      v.Snippet,
				ChannelTitle: v.ChannelTitle,
			})
		}
	}
	return out
}
