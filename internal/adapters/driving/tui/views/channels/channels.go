// Package channels provides the channel browse view for the TUI.
package channels

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

// pageLimit bounds one channel listing request.
const pageLimit = 100

// View is the archived channels browse view.
type View struct {
	styles  *styles.Styles
	archive driven.ArchiveClient

	channels []domain.Channel
	total    int
	selected int
	width    int
	height   int
	ready    bool
	err      error
	loading  bool
}

// NewView creates a new channels view.
func NewView(s *styles.Styles, archive driven.ArchiveClient) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:  s,
		archive: archive,
	}
}

// Init initialises the view and loads channels.
func (v *View) Init() tea.Cmd {
	v.loading = true
	return v.loadChannels()
}

// loadChannels returns a command that lists channels from the archive.
func (v *View) loadChannels() tea.Cmd {
	return func() tea.Msg {
		if v.archive == nil {
			return messages.ChannelsLoaded{Err: fmt.Errorf("archive client not available")}
		}

		channels, total, err := v.archive.ListChannels(context.Background(), 0, pageLimit)
		if err != nil {
			return messages.ChannelsLoaded{Err: err}
		}
		return messages.ChannelsLoaded{Channels: channels, Total: total}
	}
}

// Update handles messages for the channels view.
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
			if v.selected < len(v.channels)-1 {
				v.selected++
			}
		case "r":
			if v.err != nil {
				v.err = nil
				v.loading = true
				return v, v.loadChannels()
			}
		}
		return v, nil

	case messages.ChannelsLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
		} else {
			v.channels = msg.Channels
			v.total = msg.Total
			v.err = nil
			if v.selected >= len(v.channels) {
				v.selected = 0
			}
		}
		return v, nil
	}

	return v, nil
}

// View renders the channels list.
func (v *View) View() string {
	var b strings.Builder

	header := fmt.Sprintf("Channels (%d)", v.total)
	b.WriteString(v.styles.Title.Render(header))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render("[r] retry"))
	case len(v.channels) == 0:
		b.WriteString(v.styles.Muted.Render("No channels archived"))
	default:
		for i, ch := range v.channels {
			b.WriteString(v.renderChannel(i, ch))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[j/k] Navigate  [esc] Back  [q] Quit"))
	return b.String()
}

// renderChannel formats one channel row.
func (v *View) renderChannel(index int, ch domain.Channel) string {
	cursor := "  "
	if index == v.selected {
		cursor = "> "
	}

	line := fmt.Sprintf("%s%-30s %5d videos", cursor, ch.Title, ch.VideoCount)
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

// Channels returns the loaded channels.
func (v *View) Channels() []domain.Channel {
	return v.channels
}

// Err returns the last load error.
func (v *View) Err() error {
	return v.err
}
