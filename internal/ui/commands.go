package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/johanforsgren/reporoulette/internal/logger"
)

type CommandType int

const (
	CommandUnknown CommandType = iota
	CommandQuit
	CommandHome
	CommandRepos
	CommandFetch
	CommandLogs
	CommandHelp
)

type Command struct {
	Type CommandType
	Name string
	Args []string
}

// commandNames are offered as completions in the command bar.
var commandNames = []string{"quit", "home", "repos", "fetch", "logs", "help"}

func ParseCommand(input string) Command {
	input = strings.TrimSpace(input)

	if !strings.HasPrefix(input, ":") {
		return Command{Type: CommandUnknown}
	}

	input = strings.TrimPrefix(input, ":")
	parts := strings.Fields(input)

	if len(parts) == 0 {
		return Command{Type: CommandUnknown}
	}

	cmd := parts[0]
	args := parts[1:]

	switch cmd {
	case "q", "quit":
		return Command{Type: CommandQuit, Name: cmd, Args: args}
	case "home":
		return Command{Type: CommandHome, Name: cmd, Args: args}
	case "r", "repos":
		return Command{Type: CommandRepos, Name: cmd, Args: args}
	case "f", "fetch":
		return Command{Type: CommandFetch, Name: cmd, Args: args}
	case "l", "logs":
		return Command{Type: CommandLogs, Name: cmd, Args: args}
	case "h", "help":
		return Command{Type: CommandHelp, Name: cmd, Args: args}
	default:
		return Command{Type: CommandUnknown, Name: cmd, Args: args}
	}
}

type keyHandler func(m Model) (Model, tea.Cmd)

type keyCommand struct {
	binding key.Binding
	handler keyHandler
	// views lists where the binding applies; empty means everywhere.
	views []ViewState
}

func (c keyCommand) appliesTo(state ViewState) bool {
	if len(c.views) == 0 {
		return true
	}
	for _, v := range c.views {
		if v == state {
			return true
		}
	}
	return false
}

// CommandRegistry maps global key bindings and ':' commands to model
// transitions.
type CommandRegistry struct {
	keys []keyCommand
}

func NewCommandRegistry() *CommandRegistry {
	return &CommandRegistry{
		keys: []keyCommand{
			{
				binding: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "Next tab")),
				handler: func(m Model) (Model, tea.Cmd) { return m.switchTo(m.state.next()), nil },
			},
			{
				binding: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "Previous tab")),
				handler: func(m Model) (Model, tea.Cmd) { return m.switchTo(m.state.prev()), nil },
			},
			{
				binding: key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "Home")),
				handler: func(m Model) (Model, tea.Cmd) { return m.switchTo(ViewHome), nil },
			},
			{
				binding: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "GitHub Repos")),
				handler: func(m Model) (Model, tea.Cmd) { return m.switchTo(ViewRoulette), nil },
			},
			{
				binding: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "Fetch random repo")),
				views:   []ViewState{ViewRoulette},
			},
			{
				binding: key.NewBinding(key.WithKeys("i", "/"), key.WithHelp("i", "Edit username")),
				views:   []ViewState{ViewRoulette},
			},
			{
				binding: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "Command")),
				handler: func(m Model) (Model, tea.Cmd) {
					m.commandBar.Activate()
					return m, nil
				},
			},
			{
				binding: key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "Logs")),
				handler: func(m Model) (Model, tea.Cmd) {
					m.logsView.Activate()
					return m, nil
				},
			},
			{
				binding: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "Quit")),
				handler: func(m Model) (Model, tea.Cmd) { return m, tea.Quit },
			},
		},
	}
}

// HandleKey runs the first binding matching msg in the current view. Bindings
// without a handler only document keys the active view handles itself.
func (r *CommandRegistry) HandleKey(m Model, msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	for _, c := range r.keys {
		if c.handler == nil || !c.appliesTo(m.state) || !key.Matches(msg, c.binding) {
			continue
		}
		newModel, cmd := c.handler(m)
		return newModel, cmd, true
	}
	return m, nil, false
}

func (r *CommandRegistry) ExecuteCommand(m Model, command Command) (Model, tea.Cmd) {
	switch command.Type {
	case CommandQuit:
		return m, tea.Quit
	case CommandHome:
		return m.switchTo(ViewHome), nil
	case CommandRepos:
		return m.switchTo(ViewRoulette), nil
	case CommandFetch:
		username := strings.Join(command.Args, " ")
		if strings.TrimSpace(username) == "" {
			m.statusBar.SetMessage("Usage: :fetch <username>", true)
			return m, nil
		}
		m = m.switchTo(ViewRoulette)
		cmd := m.rouletteView.SubmitUsername(username)
		if cmd == nil && m.rouletteView.Session().IsLoading() {
			m.statusBar.SetMessage("A fetch is already in progress", true)
		} else {
			m.clearStaleError()
		}
		return m, cmd
	case CommandLogs:
		m.logsView.Activate()
		return m, nil
	case CommandHelp:
		m.statusBar.SetMessage("Commands: :"+strings.Join(commandNames, " :")+" | Keys: "+strings.Join(r.GetContextualShortcuts(m.state), " "), false)
		return m, nil
	default:
		logger.LogError("COMMAND", command.Name, fmt.Errorf("unknown command"))
		m.statusBar.SetMessage(fmt.Sprintf("Unknown command: %s", command.Name), true)
		return m, nil
	}
}

// GetContextualShortcuts returns "<key> description" entries for the top bar.
func (r *CommandRegistry) GetContextualShortcuts(state ViewState) []string {
	var shortcuts []string
	for _, c := range r.keys {
		if !c.appliesTo(state) {
			continue
		}
		help := c.binding.Help()
		shortcuts = append(shortcuts, fmt.Sprintf("<%s> %s", help.Key, help.Desc))
	}
	return shortcuts
}
