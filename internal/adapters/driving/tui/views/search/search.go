// Package search provides the live search view for the TUI.
package search

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/scrybe-labs/scrybe-cli/internal/adapters/driving/tui/components/input"
	"github.com/scrybe-labs/scrybe-cli/internal/adapters/driving/tui/components/list"
	"github.com/scrybe-labs/scrybe-cli/internal/adapters/driving/tui/components/status"
	"github.com/scrybe-labs/scrybe-cli/internal/adapters/driving/tui/keymap"
	"github.com/scrybe-labs/scrybe-cli/internal/adapters/driving/tui/messages"
	"github.com/scrybe-labs/scrybe-cli/internal/adapters/driving/tui/styles"
	"github.com/scrybe-labs/scrybe-cli/internal/core/domain"
	"github.com/scrybe-labs/scrybe-cli/internal/core/ports/driving"
)

// View is the live search view: a query input above one result section per
// enabled source, with the status announcement in the bottom bar. Keystrokes
// feed the orchestrator as they arrive; the orchestrator debounces and the
// view re-reads section snapshots whenever it signals an update.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.SearchInput
	statusbar *status.Bar

	orch driving.SearchOrchestrator

	// sections holds one list per wired source, in display order.
	sections []*list.SectionList
	enabled  map[domain.SourceType]bool

	// focusInput toggles between typing mode and result browsing.
	focusInput bool
	focused    int

	inputErr error
	width    int
	height   int
	ready    bool
}

// NewView creates a new search view backed by the given orchestrator.
func NewView(s *styles.Styles, orch driving.SearchOrchestrator) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	km := keymap.DefaultKeyMap()

	sources := domain.ActiveSourceTypes()
	sections := make([]*list.SectionList, 0, len(sources))
	enabled := make(map[domain.SourceType]bool, len(sources))
	for _, t := range sources {
		sections = append(sections, list.NewSectionList(s, t))
		enabled[t] = true
	}

	return &View{
		styles:     s,
		keymap:     km,
		input:      input.NewSearchInput(s),
		statusbar:  status.NewBar(s, km),
		orch:       orch,
		sections:   sections,
		enabled:    enabled,
		focusInput: true,
		width:      80,
		height:     24,
	}
}

// Init starts the input cursor and subscribes to orchestrator updates.
func (v *View) Init() tea.Cmd {
	return tea.Batch(v.input.Init(), v.waitForUpdates())
}

// waitForUpdates blocks on the orchestrator's update channel and converts
// each signal into a message. The command re-issues itself from Update.
func (v *View) waitForUpdates() tea.Cmd {
	if v.orch == nil {
		return nil
	}
	ch := v.orch.Updates()
	return func() tea.Msg {
		<-ch
		return messages.SectionsUpdated{}
	}
}

// Update handles messages for the search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.SectionsUpdated:
		v.refresh()
		return v, v.waitForUpdates()

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	if v.focusInput {
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}
	return v, nil
}

// handleKeyMsg routes keys to either the input or the focused section.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.focusInput {
		return v.handleInputKey(msg)
	}
	return v.handleBrowseKey(msg)
}

// handleInputKey handles keys while the query input has focus. Every edit
// is forwarded to the orchestrator, which owns debouncing.
func (v *View) handleInputKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	case "enter", "tab", "down":
		v.setFocusInput(false)
		return v, nil
	}

	before := v.input.Value()
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)

	if v.input.Value() != before {
		v.inputErr = v.orch.SetInput(v.input.Value(), v.enabledCopy())
		v.refresh()
	}
	return v, cmd
}

// handleBrowseKey handles keys while browsing result sections.
func (v *View) handleBrowseKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	km := v.keymap
	keyStr := msg.String()

	switch {
	case keymap.Matches(keyStr, km.Back):
		v.setFocusInput(true)
		return v, v.input.Focus()

	case keymap.Matches(keyStr, km.FocusInput):
		v.setFocusInput(true)
		return v, v.input.Focus()

	case keymap.Matches(keyStr, km.Quit):
		return v, tea.Quit

	case keymap.Matches(keyStr, km.NextSection):
		v.focusNextSection()
		return v, nil

	case keymap.Matches(keyStr, km.Retry):
		return v, v.retryFocused()

	case keymap.Matches(keyStr, km.LoadMore):
		return v, v.loadMoreSegments()

	case keymap.Matches(keyStr, km.Up), keymap.Matches(keyStr, km.Down):
		sec := v.focusedSection()
		if sec == nil {
			return v, nil
		}
		atBottom := sec.AtBottom()
		sec.Update(msg)
		// Scrolling past the last transcript segment fetches the next page.
		if keymap.Matches(keyStr, km.Down) && atBottom {
			return v, v.loadMoreSegments()
		}
		return v, nil

	case keyStr == "1", keyStr == "2", keyStr == "3":
		v.toggleSource(keyStr)
		return v, nil
	}

	return v, nil
}

// retryFocused re-issues the failed request of the focused section.
func (v *View) retryFocused() tea.Cmd {
	sec := v.focusedSection()
	if sec == nil || sec.State().Phase != domain.PhaseError {
		return nil
	}
	source := sec.Source()
	return func() tea.Msg {
		v.orch.RetrySection(source)
		return nil
	}
}

// loadMoreSegments requests the next transcript page when the segment
// section has keyboard focus.
func (v *View) loadMoreSegments() tea.Cmd {
	sec := v.focusedSection()
	if sec == nil || sec.Source() != domain.SourceSegments {
		return nil
	}
	return func() tea.Msg {
		v.orch.LoadMoreSegments()
		return nil
	}
}

// toggleSource flips one source on or off and re-issues the current query.
// The last remaining source cannot be disabled.
func (v *View) toggleSource(keyStr string) {
	sources := domain.ActiveSourceTypes()
	idx := int(keyStr[0] - '1')
	if idx < 0 || idx >= len(sources) {
		return
	}
	t := sources[idx]

	if v.enabled[t] && v.enabledCount() == 1 {
		return
	}
	v.enabled[t] = !v.enabled[t]
	v.inputErr = v.orch.SetInput(v.input.Value(), v.enabledCopy())
	v.refresh()
}

func (v *View) enabledCount() int {
	n := 0
	for _, on := range v.enabled {
		if on {
			n++
		}
	}
	return n
}

func (v *View) enabledCopy() map[domain.SourceType]bool {
	out := make(map[domain.SourceType]bool, len(v.enabled))
	for t, on := range v.enabled {
		out[t] = on
	}
	return out
}

// setFocusInput switches between typing and browsing modes.
func (v *View) setFocusInput(focus bool) {
	v.focusInput = focus
	if focus {
		v.input.Focus()
	} else {
		v.input.Blur()
	}
	v.statusbar.SetBrowsing(!focus)
	for i, sec := range v.sections {
		sec.SetFocused(!focus && i == v.focused)
	}
}

// focusNextSection cycles keyboard focus across enabled sections.
func (v *View) focusNextSection() {
	if len(v.sections) == 0 {
		return
	}
	for range v.sections {
		v.focused = (v.focused + 1) % len(v.sections)
		if v.enabled[v.sections[v.focused].Source()] {
			break
		}
	}
	for i, sec := range v.sections {
		sec.SetFocused(i == v.focused)
	}
}

// focusedSection returns the section holding keyboard focus.
func (v *View) focusedSection() *list.SectionList {
	if v.focused < 0 || v.focused >= len(v.sections) {
		return nil
	}
	return v.sections[v.focused]
}

// refresh re-reads section snapshots and the announcement.
func (v *View) refresh() {
	allErrored := true
	anyEnabled := false
	for _, sec := range v.sections {
		st := v.orch.Section(sec.Source())
		sec.SetState(st)
		if v.enabled[sec.Source()] {
			anyEnabled = true
			if st.Phase != domain.PhaseError {
				allErrored = false
			}
		}
	}

	if text, changed := v.orch.Announcement(); changed {
		v.statusbar.SetAnnouncement(text, anyEnabled && allErrored)
	}
}

// View renders the search view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.input.View())
	b.WriteString("\n")

	if v.inputErr != nil {
		b.WriteString(v.styles.Error.Render(v.inputErr.Error()))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for _, sec := range v.sections {
		if !v.enabled[sec.Source()] {
			continue
		}
		b.WriteString(sec.View())
		b.WriteString("\n\n")
	}

	content := b.String()
	bar := v.statusbar.View()

	gap := v.height - lipgloss.Height(content) - lipgloss.Height(bar)
	if gap > 0 {
		content += strings.Repeat("\n", gap)
	}
	return content + bar
}

// Query returns the current input text.
func (v *View) Query() string {
	return v.input.Value()
}

// Focused reports whether the query input has keyboard focus.
func (v *View) Focused() bool {
	return v.focusInput
}

// FocusedSource returns the source of the section with keyboard focus.
func (v *View) FocusedSource() domain.SourceType {
	sec := v.focusedSection()
	if sec == nil {
		return ""
	}
	return sec.Source()
}

// Announcement returns the status bar announcement text.
func (v *View) Announcement() string {
	return v.statusbar.Announcement()
}

// Enabled reports whether a source is currently enabled.
func (v *View) Enabled(t domain.SourceType) bool {
	return v.enabled[t]
}

// Reset clears the input and returns focus to it.
func (v *View) Reset() {
	v.input.Reset()
	v.inputErr = nil
	if v.orch != nil {
		_ = v.orch.SetInput("", v.enabledCopy())
	}
	v.setFocusInput(true)
	v.refresh()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.input.SetWidth(width)
	v.statusbar.SetWidth(width)

	sectionHeight := (height - 6) / len(v.sections)
	if sectionHeight < 4 {
		sectionHeight = 4
	}
	for _, sec := range v.sections {
		sec.SetDimensions(width, sectionHeight)
	}
}
