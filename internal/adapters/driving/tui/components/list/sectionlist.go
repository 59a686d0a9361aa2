// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/scrybe-labs/scrybe-cli/internal/adapters/driving/tui/styles"
	"github.com/scrybe-labs/scrybe-cli/internal/core/domain"
)

// SectionList displays one search section in a navigable list.
// It renders the section's lifecycle phase alongside its accumulated items.
type SectionList struct {
	source   domain.SourceType
	state    domain.SectionState
	selected int
	focused  bool
	styles   *styles.Styles
	width    int
	height   int
}

// NewSectionList creates a list for the given section.
func NewSectionList(s *styles.Styles, source domain.SourceType) *SectionList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &SectionList{
		source: source,
		state:  domain.NewSectionState(0),
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the section list.
func (l *SectionList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (l *SectionList) Update(msg tea.Msg) (*SectionList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && l.focused {
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		}
	}
	return l, nil
}

// View renders the section.
func (l *SectionList) View() string {
	var b strings.Builder

	b.WriteString(l.renderHeader())
	b.WriteString("\n")

	switch {
	case l.state.Phase == domain.PhaseIdle:
		b.WriteString(l.styles.Muted.Render("  (off)"))

	case l.state.FreshLoading():
		b.WriteString(l.styles.Muted.Render("  Loading..."))

	case l.state.Phase == domain.PhaseError:
		msg := "request failed"
		if l.state.Err != nil {
			msg = l.state.Err.Error()
		}
		b.WriteString(l.styles.Error.Render("  " + msg))
		b.WriteString(l.styles.Muted.Render("  [r] retry"))

	case len(l.state.Items) == 0:
		b.WriteString(l.styles.Muted.Render("  No matches"))

	default:
		b.WriteString(l.renderItems())
	}

	return b.String()
}

// renderHeader renders the section title with its best-known count.
func (l *SectionList) renderHeader() string {
	label := l.source.Label()
	if l.state.TotalCount != domain.TotalCountUnknown {
		label = fmt.Sprintf("%s (%d)", label, l.state.TotalCount)
	}

	style := l.styles.SectionHeader
	if l.focused {
		style = l.styles.FocusedSection
		label = "▸ " + label
	} else {
		label = "  " + label
	}
	return style.Render(label)
}

// renderItems renders the visible window of accumulated items.
func (l *SectionList) renderItems() string {
	visible := l.height - 2
	if visible < 1 {
		visible = 1
	}

	start := 0
	if l.selected >= visible {
		start = l.selected - visible + 1
	}
	end := start + visible
	if end > len(l.state.Items) {
		end = len(l.state.Items)
	}

	lines := make([]string, 0, end-start+1)
	for i := start; i < end; i++ {
		lines = append(lines, l.renderItem(i, l.state.Items[i]))
	}

	switch {
	case l.state.IsFetchingMore:
		lines = append(lines, l.styles.Muted.Render("    Loading more..."))
	case l.state.HasMore:
		lines = append(lines, l.styles.Muted.Render("    [m] load more"))
	}

	return strings.Join(lines, "\n")
}

// renderItem formats a single result line.
func (l *SectionList) renderItem(index int, item domain.ResultItem) string {
	cursor := "  "
	if l.focused && index == l.selected {
		cursor = "> "
	}

	var line string
	switch it := item.(type) {
	case domain.Segment:
		ts := l.styles.Timestamp.Render(it.Timestamp())
		line = fmt.Sprintf("%s%s  %s  %s", cursor, ts, clip(it.VideoTitle, 30), clip(it.Text, l.width-44))
	case domain.VideoMatch:
		line = fmt.Sprintf("%s%s", cursor, clip(it.Title, l.width-30))
		if it.ChannelTitle != "" {
			line += l.styles.Muted.Render("  " + clip(it.ChannelTitle, 24))
		}
	default:
		line = cursor + item.Key()
	}

	if l.focused && index == l.selected {
		return l.styles.Selected.Render(line)
	}
	return l.styles.Normal.Render(line)
}

// clip truncates s to at most max runes, appending an ellipsis.
func clip(s string, max int) string {
	if max < 4 {
		max = 4
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

// SetState replaces the rendered section snapshot, clamping the selection
// so it stays within the new item list.
func (l *SectionList) SetState(state domain.SectionState) {
	l.state = state
	if l.selected >= len(state.Items) {
		l.selected = len(state.Items) - 1
	}
	if l.selected < 0 {
		l.selected = 0
	}
}

// State returns the current section snapshot.
func (l *SectionList) State() domain.SectionState {
	return l.state
}

// Source returns the section's source type.
func (l *SectionList) Source() domain.SourceType {
	return l.source
}

// Selected returns the index of the selected item.
func (l *SectionList) Selected() int {
	return l.selected
}

// SelectedItem returns the currently selected item, or nil if none.
func (l *SectionList) SelectedItem() domain.ResultItem {
	if len(l.state.Items) == 0 || l.selected < 0 || l.selected >= len(l.state.Items) {
		return nil
	}
	return l.state.Items[l.selected]
}

// MoveUp moves the selection up.
func (l *SectionList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves the selection down.
func (l *SectionList) MoveDown() {
	if l.selected < len(l.state.Items)-1 {
		l.selected++
	}
}

// AtBottom reports whether the selection sits on the last accumulated item.
func (l *SectionList) AtBottom() bool {
	return len(l.state.Items) > 0 && l.selected == len(l.state.Items)-1
}

// SetFocused toggles keyboard focus for this section.
func (l *SectionList) SetFocused(focused bool) {
	l.focused = focused
}

// Focused returns whether this section has keyboard focus.
func (l *SectionList) Focused() bool {
	return l.focused
}

// SetDimensions sets the component dimensions.
func (l *SectionList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Count returns the number of accumulated items.
func (l *SectionList) Count() int {
	return len(l.state.Items)
}
