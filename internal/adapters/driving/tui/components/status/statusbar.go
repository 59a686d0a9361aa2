// Package status provides the status bar component for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/scrybe-labs/scrybe-cli/internal/adapters/driving/tui/keymap"
	"github.com/scrybe-labs/scrybe-cli/internal/adapters/driving/tui/styles"
)

// Bar displays the search announcement and keybinding hints.
type Bar struct {
	styles       *styles.Styles
	keymap       *keymap.KeyMap
	announcement string
	isError      bool
	browsing     bool
	width        int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		width:  80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update handles status bar messages.
func (s *Bar) Update(msg tea.Msg) (*Bar, tea.Cmd) {
	// Bar is passive, updated via Set methods
	return s, nil
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	leftLen := lipgloss.Width(left)
	rightLen := lipgloss.Width(right)
	padding := s.width - leftLen - rightLen
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

// renderLeft renders the announcement side of the status bar.
func (s *Bar) renderLeft() string {
	if s.announcement == "" {
		return s.styles.Muted.Render("Ready")
	}
	if s.isError {
		return s.styles.Error.Render(s.announcement)
	}
	return s.styles.Normal.Render(s.announcement)
}

// renderRight renders keybinding hints.
func (s *Bar) renderRight() string {
	var bindings []key.Binding
	if s.browsing {
		bindings = s.keymap.ResultsHelp()
	} else {
		bindings = s.keymap.ShortHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetAnnouncement sets the announcement text shown on the left.
func (s *Bar) SetAnnouncement(text string, isError bool) {
	s.announcement = text
	s.isError = isError
}

// Announcement returns the current announcement text.
func (s *Bar) Announcement() string {
	return s.announcement
}

// SetBrowsing toggles the result-browsing hint set.
func (s *Bar) SetBrowsing(browsing bool) {
	s.browsing = browsing
}

// Browsing returns whether the browsing hint set is active.
func (s *Bar) Browsing() bool {
	return s.browsing
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}

// Clear resets the status bar to its default state.
func (s *Bar) Clear() {
	s.announcement = ""
	s.isError = false
	s.browsing = false
}
