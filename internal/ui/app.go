package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/johanforsgren/reporoulette/internal/logger"
	"github.com/johanforsgren/reporoulette/internal/roulette"
	"github.com/johanforsgren/reporoulette/internal/ui/components"
	"github.com/johanforsgren/reporoulette/internal/ui/views"
)

type ViewState int

const (
	ViewHome ViewState = iota
	ViewRoulette
)

var tabNames = []string{"Home", "GitHub Repos"}

func (s ViewState) String() string {
	if int(s) < len(tabNames) {
		return tabNames[s]
	}
	return "Unknown"
}

func (s ViewState) next() ViewState {
	return ViewState((int(s) + 1) % len(tabNames))
}

func (s ViewState) prev() ViewState {
	return ViewState((int(s) + len(tabNames) - 1) % len(tabNames))
}

type Model struct {
	state           ViewState
	width           int
	height          int
	topBar          *components.TopBarModel
	statusBar       *components.StatusBarModel
	commandBar      *components.CommandBarModel
	homeView        *views.HomeViewModel
	rouletteView    *views.RouletteViewModel
	logsView        *views.LogsViewModel
	commandRegistry *CommandRegistry
}

func NewModel(ctx context.Context, fetcher views.Fetcher) Model {
	m := Model{
		state:           ViewHome,
		topBar:          components.NewTopBar(tabNames...),
		statusBar:       components.NewStatusBar(),
		commandBar:      components.NewCommandBar(),
		homeView:        views.NewHomeView(),
		rouletteView:    views.NewRouletteView(ctx, fetcher),
		logsView:        views.NewLogsView(),
		commandRegistry: NewCommandRegistry(),
	}
	m.commandBar.SetSuggestions(commandNames)
	m.updateShortcuts()
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.SetWindowTitle("reporoulette")
}

// isInInputMode reports whether keys should go to a text field or overlay
// instead of the global bindings.
func (m Model) isInInputMode() bool {
	if m.commandBar.IsActive() {
		return true
	}
	if m.logsView.IsActive() {
		return true
	}
	if m.state == ViewRoulette && m.rouletteView.IsEditing() {
		return true
	}
	return false
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.topBar.SetWidth(msg.Width)
		m.statusBar.SetWidth(msg.Width)
		m.commandBar.SetWidth(msg.Width)
		m.homeView.SetSize(msg.Width, msg.Height)
		m.rouletteView.SetSize(msg.Width, msg.Height)
		m.logsView.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		key := msg.String()
		if key == "ctrl+c" {
			return m, tea.Quit
		}

		if m.isInInputMode() {
			if m.commandBar.IsActive() {
				switch key {
				case "enter":
					return m.handleCommand()
				case "esc":
					m.commandBar.Deactivate()
					return m, nil
				default:
					cmd = m.commandBar.Update(msg)
					return m, cmd
				}
			}

			if m.logsView.IsActive() {
				switch key {
				case "esc", "q":
					m.logsView.Deactivate()
					return m, nil
				default:
					cmd = m.logsView.Update(msg)
					return m, cmd
				}
			}

			switch key {
			case "tab", "shift+tab", "ctrl+l":
			default:
				cmd = m.rouletteView.Update(msg)
				m.clearStaleError()
				return m, cmd
			}
		}

		newModel, cmd, handled := m.commandRegistry.HandleKey(m, msg)
		if handled {
			return newModel, cmd
		}

	case views.FetchCompletedMsg:
		return m.handleFetchCompleted(msg), nil

	case spinner.TickMsg:
		cmd = m.rouletteView.Update(msg)
		return m, cmd

	}

	if m.state == ViewRoulette {
		cmd = m.rouletteView.Update(msg)
		m.clearStaleError()
	}
	return m, cmd
}

// clearStaleError removes a previous failure from the status bar once a new
// fetch is in flight.
func (m *Model) clearStaleError() {
	if m.rouletteView.Session().IsLoading() && m.statusBar.IsError() {
		logger.Log("UI: Clearing status %q", m.statusBar.Message())
		m.statusBar.ClearMessage()
	}
}

func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var content string

	if m.logsView.IsActive() {
		content = m.logsView.View()
	} else {
		switch m.state {
		case ViewHome:
			content = m.homeView.View()
		case ViewRoulette:
			content = m.rouletteView.View()
		}
	}

	content = ContentStyle.Width(m.width).Render(content)

	topBar := m.topBar.View()
	statusBar := m.statusBar.View()
	commandBar := m.commandBar.View()

	if commandBar != "" {
		return topBar + "\n" + content + "\n" + commandBar
	}

	return topBar + "\n" + content + "\n" + statusBar
}

func (m Model) handleCommand() (tea.Model, tea.Cmd) {
	input := m.commandBar.Value()
	m.commandBar.Deactivate()

	command := ParseCommand(input)
	if command.Name == "" {
		return m, nil
	}

	logger.Log("UI: Executing command: %s %v", command.Name, command.Args)
	return m.commandRegistry.ExecuteCommand(m, command)
}

// switchTo changes the active tab. Leaving the roulette tab unmounts it, so
// its session is discarded.
func (m Model) switchTo(state ViewState) Model {
	if state == m.state {
		return m
	}

	logger.Log("UI: Navigating from %s to %s", m.state, state)
	if m.state == ViewRoulette {
		m.rouletteView.Unmount()
		m.topBar.SetContext("")
	}

	m.state = state
	m.topBar.SetActiveTab(int(state))
	m.statusBar.ClearMessage()

	if state == ViewRoulette {
		m.rouletteView.Mount()
	}

	m.updateShortcuts()
	return m
}

func (m Model) handleFetchCompleted(msg views.FetchCompletedMsg) Model {
	if !m.rouletteView.Apply(msg) {
		logger.Log("UI: Dropped result for fetch %s", msg.ID)
		return m
	}

	state := m.rouletteView.Session().State()
	switch state.Status {
	case roulette.StatusSuccess:
		m.topBar.SetContext(state.Repository.FullName)
		m.statusBar.SetMessage(fmt.Sprintf("Picked %s", state.Repository.FullName), false)
	case roulette.StatusFailure:
		m.statusBar.SetMessage(state.Message, true)
	}
	return m
}

func (m Model) updateShortcuts() {
	shortcuts := m.commandRegistry.GetContextualShortcuts(m.state)
	m.topBar.SetShortcuts(shortcuts)
}
