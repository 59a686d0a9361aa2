package channels

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scrybe-labs/scrybe-cli/internal/adapters/driving/tui/messages"
	"github.com/scrybe-labs/scrybe-cli/internal/core/domain"
	"github.com/scrybe-labs/scrybe-cli/internal/core/ports/driven"
)

// mockArchive stubs the channel listing calls of driven.ArchiveClient.
type mockArchive struct {
	channels []domain.Channel
	err      error
	calls    int
}

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
	m.calls++
	if m.err != nil {
		return nil, 0, m.err
	}
	return m.channels, len(m.channels), nil
}

func (m *mockArchive) ListPlaylists(_ context.Context, _, _ int) ([]domain.Playlist, int, error) {
	return nil, 0, nil
}

func (m *mockArchive) GetVideo(_ context.Context, _ string) (*domain.Video, error) {
	return nil, domain.ErrNotFound
}

func TestView_InitLoadsChannels(t *testing.T) {
	archive := &mockArchive{
		channels: []domain.Channel{
			{ID: "ch1", Title: "GopherCon", VideoCount: 214},
			{ID: "ch2", Title: "Cloud Talks", VideoCount: 58},
		},
	}
	v := NewView(nil, archive)

	cmd := v.Init()
	require.NotNil(t, cmd)

	msg := cmd()
	loaded, ok := msg.(messages.ChannelsLoaded)
	require.True(t, ok)
	require.NoError(t, loaded.Err)
	assert.Len(t, loaded.Channels, 2)

	v, _ = v.Update(loaded)
	assert.Len(t, v.Channels(), 2)
	assert.NoError(t, v.Err())
}

func TestView_LoadError(t *testing.T) {
	archive := &mockArchive{err: errors.New("connection refused")}
	v := NewView(nil, archive)

	msg := v.Init()()
	v, _ = v.Update(msg)

	require.Error(t, v.Err())
	assert.Contains(t, v.View(), "connection refused")
	assert.Contains(t, v.View(), "[r] retry")
}

func TestView_RetryReloads(t *testing.T) {
	archive := &mockArchive{err: errors.New("boom")}
	v := NewView(nil, archive)
	v, _ = v.Update(v.Init()().(messages.ChannelsLoaded))
	require.Error(t, v.Err())

	archive.err = nil
	archive.channels = []domain.Channel{{ID: "ch1", Title: "GopherCon"}}

	v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	require.NotNil(t, cmd)

	v, _ = v.Update(cmd().(messages.ChannelsLoaded))
	assert.NoError(t, v.Err())
	assert.Len(t, v.Channels(), 1)
	assert.Equal(t, 2, archive.calls)
}

func TestView_Navigation(t *testing.T) {
	archive := &mockArchive{
		channels: []domain.Channel{
			{ID: "ch1", Title: "One"},
			{ID: "ch2", Title: "Two"},
		},
	}
	v := NewView(nil, archive)
	v, _ = v.Update(v.Init()().(messages.ChannelsLoaded))

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	assert.Equal(t, 1, v.Selected())

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	assert.Equal(t, 1, v.Selected(), "selection stops at the last channel")

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("k")})
	assert.Equal(t, 0, v.Selected())
}

func TestView_ViewRendersChannels(t *testing.T) {
	archive := &mockArchive{
		channels: []domain.Channel{
			{ID: "ch1", Title: "GopherCon", VideoCount: 214},
		},
	}
	v := NewView(nil, archive)
	v.SetDimensions(100, 30)
	v, _ = v.Update(v.Init()().(messages.ChannelsLoaded))

	out := v.View()
	assert.Contains(t, out, "Channels (1)")
	assert.Contains(t, out, "GopherCon")
	assert.Contains(t, out, "214 videos")
}

func TestView_EmptyArchive(t *testing.T) {
	v := NewView(nil, &mockArchive{})
	v, _ = v.Update(v.Init()().(messages.ChannelsLoaded))

	assert.Contains(t, v.View(), "No channels archived")
}
