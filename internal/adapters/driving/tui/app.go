package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/scrybe-labs/scrybe-cli/internal/adapters/driving/tui/messages"
	"github.com/scrybe-labs/scrybe-cli/internal/adapters/driving/tui/styles"
	"github.com/scrybe-labs/scrybe-cli/internal/adapters/driving/tui/views/channels"
	"github.com/scrybe-labs/scrybe-cli/internal/adapters/driving/tui/views/menu"
	"github.com/scrybe-labs/scrybe-cli/internal/adapters/driving/tui/views/playlists"
	"github.com/scrybe-labs/scrybe-cli/internal/adapters/driving/tui/views/search"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// menuView is the main navigation menu.
	menuView *menu.View

	// searchView is the live search view.
	searchView *search.View

	// channelsView is the channel browse view.
	channelsView *channels.View

	// playlistsView is the playlist browse view.
	playlistsView *playlists.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()

	return &App{
		ports:         ports,
		ctx:           context.Background(),
		styles:        s,
		menuView:      menu.NewView(s),
		searchView:    search.NewView(s, ports.Search),
		channelsView:  channels.NewView(s, ports.Archive),
		playlistsView: playlists.NewView(s, ports.Archive),
		currentView:   messages.ViewMenu,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("scrybe - Archive Search"),
		a.searchView.Init(),
	)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		// Forward to all views for proper sizing
		a.menuView.SetDimensions(msg.Width, msg.Height)
		a.searchView.SetDimensions(msg.Width, msg.Height)
		a.channelsView.SetDimensions(msg.Width, msg.Height)
		a.playlistsView.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			a.stop()
			return a, tea.Quit
		}

		switch a.currentView {
		case messages.ViewMenu:
			a.menuView, cmd = a.menuView.Update(msg)
			return a, cmd

		case messages.ViewSearch:
			a.searchView, cmd = a.searchView.Update(msg)
			return a, cmd

		case messages.ViewChannels:
			if msg.Type == tea.KeyEsc {
				a.currentView = messages.ViewMenu
				return a, nil
			}
			if msg.String() == "q" {
				a.stop()
				return a, tea.Quit
			}
			a.channelsView, cmd = a.channelsView.Update(msg)
			return a, cmd

		case messages.ViewPlaylists:
			if msg.Type == tea.KeyEsc {
				a.currentView = messages.ViewMenu
				return a, nil
			}
			if msg.String() == "q" {
				a.stop()
				return a, tea.Quit
			}
			a.playlistsView, cmd = a.playlistsView.Update(msg)
			return a, cmd

		case messages.ViewHelp:
			if msg.Type == tea.KeyEsc {
				a.currentView = messages.ViewMenu
				return a, nil
			}
			return a, nil
		}
		return a, nil

	case messages.SectionsUpdated:
		// Always reaches the search view so the update subscription stays
		// alive while another view is active.
		a.searchView, cmd = a.searchView.Update(msg)
		return a, cmd

	case messages.ViewChanged:
		a.currentView = msg.View
		switch msg.View {
		case messages.ViewChannels:
			return a, a.channelsView.Init()
		case messages.ViewPlaylists:
			return a, a.playlistsView.Init()
		case messages.ViewMenu, messages.ViewSearch, messages.ViewHelp:
			// The search view keeps its state so returning to it
			// preserves the query and accumulated results.
		}
		return a, nil

	case messages.ChannelsLoaded:
		a.channelsView, cmd = a.channelsView.Update(msg)
		return a, cmd

	case messages.PlaylistsLoaded:
		a.playlistsView, cmd = a.playlistsView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		return a, nil

	case messages.Quit:
		a.stop()
		return a, tea.Quit
	}

	// Forward other messages to active view
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewSearch:
		a.searchView, cmd = a.searchView.Update(msg)
	case messages.ViewChannels:
		a.channelsView, cmd = a.channelsView.Update(msg)
	case messages.ViewPlaylists:
		a.playlistsView, cmd = a.playlistsView.Update(msg)
	case messages.ViewHelp:
		// Help view doesn't need to handle other messages
	}

	return a, cmd
}

// stop shuts down background search work before exit.
func (a *App) stop() {
	if a.ports != nil && a.ports.Search != nil {
		a.ports.Search.Stop()
	}
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewMenu:
		return a.menuView.View()
	case messages.ViewSearch:
		return a.searchView.View()
	case messages.ViewChannels:
		return a.channelsView.View()
	case messages.ViewPlaylists:
		return a.playlistsView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.menuView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Navigation:
  esc         Back to Menu
  ctrl+c      Quit

Menu:
  j/k, ↑/↓    Navigate options
  enter       Select option
  q           Quit

Search:
  (type)      Live search as you type
  enter/tab   Browse results
  esc         Back to Menu

Results:
  tab         Next section
  j/k, ↑/↓    Navigate matches
  r           Retry a failed section
  m           More transcript matches
  1/2/3       Toggle title/description/transcript search
  /           Edit query

[esc] back to menu`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	a.stop()
	return err
}

// Query returns the current search query.
func (a *App) Query() string {
	return a.searchView.Query()
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.searchView.SetDimensions(width, height)
}
