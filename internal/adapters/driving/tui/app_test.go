package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scrybe-labs/scrybe-cli/internal/adapters/driving/tui/messages"
	"github.com/scrybe-labs/scrybe-cli/internal/core/domain"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	app, err := NewApp(NewPorts(newStubOrchestrator(), &mockArchive{}))
	require.NoError(t, err)
	return app
}

func TestNewApp(t *testing.T) {
	t.Run("valid ports", func(t *testing.T) {
		app := newTestApp(t)
		assert.Equal(t, messages.ViewMenu, app.CurrentView())
		assert.False(t, app.Ready())
	})

	t.Run("invalid ports", func(t *testing.T) {
		app, err := NewApp(&Ports{})
		require.Error(t, err)
		assert.Nil(t, app)
	})
}

func TestApp_WindowSizeReadiesApp(t *testing.T) {
	app := newTestApp(t)

	model, _ := app.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	app, ok := model.(*App)
	require.True(t, ok)
	assert.True(t, app.Ready())
}

func TestApp_ViewChangedSwitchesView(t *testing.T) {
	app := newTestApp(t)

	model, _ := app.Update(messages.ViewChanged{View: messages.ViewSearch})

	app = model.(*App)
	assert.Equal(t, messages.ViewSearch, app.CurrentView())
}

func TestApp_ViewChangedToChannelsLoads(t *testing.T) {
	app := newTestApp(t)

	model, cmd := app.Update(messages.ViewChanged{View: messages.ViewChannels})

	app = model.(*App)
	assert.Equal(t, messages.ViewChannels, app.CurrentView())
	require.NotNil(t, cmd, "switching to channels kicks off a load")
}

func TestApp_CtrlCQuitsAndStops(t *testing.T) {
	orch := newStubOrchestrator()
	app, err := NewApp(NewPorts(orch, &mockArchive{}))
	require.NoError(t, err)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, orch.stopped)
}

func TestApp_EscFromHelpReturnsToMenu(t *testing.T) {
	app := newTestApp(t)
	model, _ := app.Update(messages.ViewChanged{View: messages.ViewHelp})
	app = model.(*App)

	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyEsc})

	app = model.(*App)
	assert.Equal(t, messages.ViewMenu, app.CurrentView())
}

func TestApp_SectionsUpdatedKeepsSubscriptionAlive(t *testing.T) {
	app := newTestApp(t)

	// The update lands while the menu is active and must still re-issue the
	// wait command from the search view.
	_, cmd := app.Update(messages.SectionsUpdated{})

	assert.NotNil(t, cmd)
	assert.Equal(t, messages.ViewMenu, app.CurrentView())
}

func TestApp_View(t *testing.T) {
	app := newTestApp(t)

	assert.Contains(t, app.View(), "Initialising")

	app.SetDimensions(100, 30)
	model, _ := app.Update(messages.ViewChanged{View: messages.ViewHelp})
	app = model.(*App)
	assert.Contains(t, app.View(), "Help")
}

func TestApp_MenuEnterOpensSearch(t *testing.T) {
	app := newTestApp(t)
	app.SetDimensions(100, 30)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg := cmd()
	changed, ok := msg.(messages.ViewChanged)
	require.True(t, ok)
	assert.Equal(t, messages.ViewSearch, changed.View)
}

func TestApp_QueryAccessor(t *testing.T) {
	app := newTestApp(t)
	model, _ := app.Update(messages.ViewChanged{View: messages.ViewSearch})
	app = model.(*App)

	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("go")})
	app = model.(*App)

	assert.Equal(t, "go", app.Query())
}

func TestApp_ErrorOccurred(t *testing.T) {
	app := newTestApp(t)

	model, _ := app.Update(messages.ErrorOccurred{Err: domain.ErrQueryTooShort})

	app = model.(*App)
	assert.ErrorIs(t, app.Err(), domain.ErrQueryTooShort)
}
