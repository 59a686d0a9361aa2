package cli

import (
	"bytes"
	"context"
	"sort"
	"testing"

	"github.com/scrybe-labs/scrybe-cli/internal/core/domain"
	"github.com/scrybe-labs/scrybe-cli/internal/core/ports/driven"
)

// mockArchive is a configurable mock of driven.ArchiveClient.
type mockArchive struct {
	segments     *driven.SegmentPage
	segmentPages map[int]*driven.SegmentPage
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

func (m *mockArchive) SearchSegments(_ context.Context, _ string, offset, _ int, _ string) (*driven.SegmentPage, error) {
	if m.segmentsErr != nil {
		return nil, m.segmentsErr
	}
	if m.segmentPages != nil {
		if page, ok := m.segmentPages[offset]; ok {
			return page, nil
		}
		return &driven.SegmentPage{}, nil
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

// memoryHistory is an in-memory driven.HistoryStore.
type memoryHistory struct {
	entries map[string]driven.HistoryEntry
}

func newMemoryHistory() *memoryHistory {
	return &memoryHistory{entries: make(map[string]driven.HistoryEntry)}
}

func (m *memoryHistory) Record(_ context.Context, entry driven.HistoryEntry) error {
	m.entries[entry.Text] = entry
	return nil
}

func (m *memoryHistory) Recent(_ context.Context, limit int) ([]driven.HistoryEntry, error) {
	out := make([]driven.HistoryEntry, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SearchedAt.After(out[j].SearchedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memoryHistory) Clear(_ context.Context) error {
	m.entries = make(map[string]driven.HistoryEntry)
	return nil
}

func (m *memoryHistory) Close() error { return nil }

// executeCommand runs the root command with the given args, returning the
// combined output. Wired services are restored afterwards.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return buf.String(), err
}

// mockConfig is an in-memory driven.ConfigStore.
type mockConfig struct {
	values   map[string]any
	watching bool
	watchErr error
	onChange func()
}

func newMockConfig() *mockConfig {
	return &mockConfig{values: make(map[string]any)}
}

func (m *mockConfig) Get(key string) (any, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *mockConfig) GetString(key string) string {
	if v, ok := m.values[key].(string); ok {
		return v
	}
	return ""
}

func (m *mockConfig) GetInt(key string) int {
	if v, ok := m.values[key].(int); ok {
		return v
	}
	return 0
}

func (m *mockConfig) GetFloat(key string) float64 {
	if v, ok := m.values[key].(float64); ok {
		return v
	}
	return 0
}

func (m *mockConfig) GetBool(key string) bool {
	if v, ok := m.values[key].(bool); ok {
		return v
	}
	return false
}

func (m *mockConfig) GetStringSlice(key string) []string {
	if v, ok := m.values[key].([]string); ok {
		return v
	}
	return nil
}

func (m *mockConfig) Set(key string, value any) error {
	m.values[key] = value
	return nil
}

func (m *mockConfig) Save() error { return nil }
func (m *mockConfig) Load() error { return nil }

func (m *mockConfig) Watch(_ context.Context, onChange func()) error {
	if m.watchErr != nil {
		return m.watchErr
	}
	m.watching = true
	m.onChange = onChange
	return nil
}

func (m *mockConfig) Path() string { return "/tmp/scrybe-test/config.toml" }

// withServices wires test doubles for the duration of one test.
func withServices(t *testing.T, archive driven.ArchiveClient, history driven.HistoryStore) {
	t.Helper()

	prevArchive, prevHistory := archiveClient, historyStore
	archiveClient = archive
	historyStore = history
	t.Cleanup(func() {
		archiveClient = prevArchive
		historyStore = prevHistory
	})
}

// withConfig wires a config store double for the duration of one test.
func withConfig(t *testing.T, cfg driven.ConfigStore) {
	t.Helper()

	prev := configStore
	configStore = cfg
	t.Cleanup(func() { configStore = prev })
}
