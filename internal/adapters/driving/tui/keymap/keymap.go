// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Help shows the help view.
	Help key.Binding

	// Back returns to the previous view.
	Back key.Binding

	// Up navigates up in a list.
	Up key.Binding

	// Down navigates down in a list.
	Down key.Binding

	// Select confirms a selection.
	Select key.Binding

	// NextSection cycles focus across result sections.
	NextSection key.Binding

	// Retry re-issues the failed request for the focused section.
	Retry key.Binding

	// LoadMore fetches the next page of transcript matches.
	LoadMore key.Binding

	// FocusInput returns focus to the query input.
	FocusInput key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		NextSection: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next section"),
		),
		Retry: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "retry"),
		),
		LoadMore: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "more"),
		),
		FocusInput: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "edit query"),
		),
	}
}

// ShortHelp returns a short list of keybindings for the help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Help}
}

// ResultsHelp returns keybindings shown while browsing search results.
func (k *KeyMap) ResultsHelp() []key.Binding {
	return []key.Binding{k.NextSection, k.Up, k.Retry, k.LoadMore, k.FocusInput}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.NextSection, k.Retry, k.LoadMore},
		{k.FocusInput, k.Back, k.Help, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
