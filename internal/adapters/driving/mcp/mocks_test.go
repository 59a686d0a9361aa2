package mcp

import (
	"context"

	"github.com/scrybe-labs/scrybe-cli/internal/core/domain"
	"github.com/scrybe-labs/scrybe-cli/internal/core/ports/driven"
)

// mockArchive is a mock implementation of driven.ArchiveClient.
type mockArchive struct {
	segments     *driven.SegmentPage
	segmentsErr  error
	titles       *driven.VideoPage
	titlesErr    error
	descriptions *driven.VideoPage
	descErr      error

	channels  []domain.Channel
	playlists []domain.Playlist
	video     *domain.Video
	err       error
}

func newMockArchive() *mockArchive {
	return &mockArchive{
		segments:     &driven.SegmentPage{},
		titles:       &driven.VideoPage{},
		descriptions: &driven.VideoPage{},
	}
}

func (m *mockArchive) SearchSegments(_ context.Context, _ string, _, _ int, _ string) (*driven.SegmentPage, error) {
	if m.segmentsErr != nil {
		return nil, m.segmentsErr
	}
	return m.segments, nil
}

func (m *mockArchive) SearchTitles(_ context.Context, _ string, _ int) (*driven.VideoPage, error) {
	if m.titlesErr != nil {
		return nil, m.titlesErr
	}
	return m.titles, nil
}

func (m *mockArchive) SearchDescriptions(_ context.Context, _ string, _ int) (*driven.VideoPage, error) {
	if m.descErr != nil {
		return nil, m.descErr
	}
	return m.descriptions, nil
}

func (m *mockArchive) ListChannels(_ context.Context, _, _ int) ([]domain.Channel, int, error) {
	return m.channels, len(m.channels), m.err
}

func (m *mockArchive) ListPlaylists(_ context.Context, _, _ int) ([]domain.Playlist, int, error) {
	return m.playlists, len(m.playlists), m.err
}

func (m *mockArchive) GetVideo(_ context.Context, _ string) (*domain.Video, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.video == nil {
		return nil, domain.ErrNotFound
	}
	return m.video, nil
}
