// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/scrybe-labs/scrybe-cli/internal/core/domain"
)

// SectionsUpdated signals that one or more search sections changed state.
// The receiving view re-reads section snapshots from the orchestrator.
type SectionsUpdated struct{}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewSearch is the live search view.
	ViewSearch
	// ViewChannels lists archived channels.
	ViewChannels
	// ViewPlaylists lists archived playlists.
	ViewPlaylists
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewSearch:
		return "search"
	case ViewChannels:
		return "channels"
	case ViewPlaylists:
		return "playlists"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ChannelsLoaded carries the list of archived channels.
type ChannelsLoaded struct {
	Channels []domain.Channel
	Total    int
	Err      error
}

// PlaylistsLoaded carries the list of archived playlists.
type PlaylistsLoaded struct {
	Playlists []domain.Playlist
	Total     int
	Err       error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
