package tui

import (
	"context"

	"github.com/scrybe-labs/scrybe-cli/internal/core/domain"
	"github.com/scrybe-labs/scrybe-cli/internal/core/ports/driven"
	"github.com/scrybe-labs/scrybe-cli/internal/core/ports/driving"
)

// stubOrchestrator is a hand-rolled stub for driving.SearchOrchestrator.
type stubOrchestrator struct {
	sections map[domain.SourceType]domain.SectionState
	updates  chan struct{}
	stopped  bool
}

var _ driving.SearchOrchestrator = (*stubOrchestrator)(nil)

func newStubOrchestrator() *stubOrchestrator {
	sections := make(map[domain.SourceType]domain.SectionState)
	for _, t := range domain.ActiveSourceTypes() {
		sections[t] = domain.NewSectionState(0)
	}
	return &stubOrchestrator{
		sections: sections,
		updates:  make(chan struct{}, 1),
	}
}

func (s *stubOrchestrator) SetInput(string, map[domain.SourceType]bool) error { return nil }

func (s *stubOrchestrator) Query() domain.Query { return domain.Query{} }

func (s *stubOrchestrator) Section(t domain.SourceType) domain.SectionState {
	return s.sections[t]
}

func (s *stubOrchestrator) Sections() map[domain.SourceType]domain.SectionState {
	return s.sections
}

func (s *stubOrchestrator) RetrySection(domain.SourceType) {}

func (s *stubOrchestrator) LoadMoreSegments() {}

func (s *stubOrchestrator) Aggregate() domain.AggregateStatus { return domain.AggregateStatus{} }

func (s *stubOrchestrator) Announcement() (string, bool) { return "", false }

func (s *stubOrchestrator) Updates() <-chan struct{} { return s.updates }

func (s *stubOrchestrator) Stop() { s.stopped = true }

// mockArchive is a minimal stub for driven.ArchiveClient.
type mockArchive struct {
	channels  []domain.Channel
	playlists []domain.Playlist
}

var _ driven.ArchiveClient = (*mockArchive)(nil)

func (m *mockArchive) SearchSegments(_ context.Context, _ string, _, _ int, _ string) (*driven.SegmentPage, error) {
	return &driven.SegmentPage{}, nil
}

func (m *mockArchive) SearchTitles(_ context.Context, _ string, _ int) (*driven.VideoPage, error) {
	return &driven.VideoPage{}, nil
}

func (m *mockArchive) SearchDescriptions(_ context.Context, _ string, _ int) (*driven.VideoPage, error) {
	return &driven.VideoPage{}, nil
}

func (m *mockArchive) ListChannels(_ context.Context, _, _ int) ([]domain.Channel, int, error) {
	return m.channels, len(m.channels), nil
}

func (m *mockArchive) ListPlaylists(_ context.Context, _, _ int) ([]domain.Playlist, int, error) {
	return m.playlists, len(m.playlists), nil
}

func (m *mockArchive) GetVideo(_ context.Context, _ string) (*domain.Video, error) {
	return nil, domain.ErrNotFound
}
