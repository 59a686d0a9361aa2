// Package playlists provides the playlist browse view for the TUI.
package playlists

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/scrybe-labs/scrybe-cli/internal/adapters/driving/tui/messages"
	"github.com/scrybe-labs/scrybe-cli/internal/adapters/driving/tui/styles"
	"github.com/scrybe-labs/scrybe-cli/internal/core/domain"
	"github.com/scrybe-labs/scrybe-cli/internal/core/ports/driven"
)

// pageLimit bounds one playlist listing request.
const pageLimit = 100

// View is the archived playlists browse view.
type View struct {
	styles  *styles.Styles
	archive driven.ArchiveClient

	playlists []domain.Playlist
	total     int
	selected  int
	width     int
	height    int
	ready     bool
	err       error
	loading   bool
}

// NewView creates a new playlists view.
func NewView(s *styles.Styles, archive driven.ArchiveClient) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:  s,
		archive: archive,
	}
}

// Init initialises the view and loads playlists.
func (v *View) Init() tea.Cmd {
	v.loading = true
	return v.loadPlaylists()
}

// loadPlaylists returns a command that lists playlists from the archive.
func (v *View) loadPlaylists() tea.Cmd {
	return func() tea.Msg {
		if v.archive == nil {
			return messages.PlaylistsLoaded{Err: fmt.Errorf("archive client not available")}
		}

		playlists, total, err := v.archive.ListPlaylists(context.Background(), 0, pageLimit)
		if err != nil {
			return messages.PlaylistsLoaded{Err: err}
		}
		return messages.PlaylistsLoaded{Playlists: playlists, Total: total}
	}
}

// Update handles messages for the playlists view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.selected > 0 {
				v.selected--
			}
		case "down", "j":
			if v.selected < len(v.playlists)-1 {
				v.selected++
			}
		case "r":
			if v.err != nil {
				v.err = nil
				v.loading = true
				return v, v.loadPlaylists()
			}
		}
		return v, nil

	case messages.PlaylistsLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
		} else {
			v.playlists = msg.Playlists
			v.total = msg.Total
			v.err = nil
			if v.selected >= len(v.playlists) {
				v.selected = 0
			}
		}
		return v, nil
	}

	return v, nil
}

// View renders the playlists list.
func (v *View) View() string {
	var b strings.Builder

	header := fmt.Sprintf("Playlists (%d)", v.total)
	b.WriteString(v.styles.Title.Render(header))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render("[r] retry"))
	case len(v.playlists) == 0:
		b.WriteString(v.styles.Muted.Render("No playlists archived"))
	default:
		for i, pl := range v.playlists {
			b.WriteString(v.renderPlaylist(i, pl))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[j/k] Navigate  [esc] Back  [q] Quit"))
	return b.String()
}

// renderPlaylist formats one playlist row.
func (v *View) renderPlaylist(index int, pl domain.Playlist) string {
	cursor := "  "
	if index == v.selected {
		cursor = "> "
	}

	line := fmt.Sprintf("%s%-30s %5d items", cursor, pl.Title, pl.ItemCount)
	if index == v.selected {
		return v.styles.Selected.Render(line)
	}
	return v.styles.Normal.Render(line)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Selected returns the currently selected index.
func (v *View) Selected() int {
	return v.selected
}

// Playlists returns the loaded playlists.
func (v *View) Playlists() []domain.Playlist {
	return v.playlists
}

// Err returns the last load error.
func (v *View) Err() error {
	return v.err
}
