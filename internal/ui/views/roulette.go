package views

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/johanforsgren/reporoulette/internal/domain"
	"github.com/johanforsgren/reporoulette/internal/logger"
	"github.com/johanforsgren/reporoulette/internal/roulette"
)

var (
	accentColor = lipgloss.Color("#6366F1")
	mutedColor  = lipgloss.Color("#6B7280")
	errorColor  = lipgloss.Color("#EF4444")
	textColor   = lipgloss.Color("#F9FAFB")

	headerTitleStyle = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	headerSubStyle   = lipgloss.NewStyle().Foreground(mutedColor).Italic(true)
	labelStyle       = lipgloss.NewStyle().Foreground(textColor).Bold(true)
	inlineErrorStyle = lipgloss.NewStyle().Foreground(errorColor).Bold(true)
	helpStyle        = lipgloss.NewStyle().Foreground(mutedColor).Italic(true)
	buttonStyle      = lipgloss.NewStyle().
				Foreground(textColor).
				Background(accentColor).
				Bold(true).
				Padding(0, 2)
	disabledButtonStyle = buttonStyle.Background(mutedColor)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(1, 2)
	cardTitleStyle = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	cardOwnerStyle = lipgloss.NewStyle().Foreground(mutedColor)
	statLabelStyle = lipgloss.NewStyle().Foreground(mutedColor)
	statValueStyle = lipgloss.NewStyle().Foreground(textColor).Bold(true)
	languageStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
)

// Fetcher runs one already-triggered request. It must always return an
// Outcome, even when the underlying fetch fails.
type Fetcher interface {
	Execute(ctx context.Context, req roulette.Request) roulette.Outcome
}

// FetchCompletedMsg carries the outcome of a request back into the UI loop.
type FetchCompletedMsg struct {
	ID      string
	Outcome roulette.Outcome
}

type RouletteViewModel struct {
	ctx     context.Context
	session *roulette.Session
	fetcher Fetcher
	input   textinput.Model
	spinner spinner.Model
	width   int
	height  int
}

func NewRouletteView(ctx context.Context, fetcher Fetcher) *RouletteViewModel {
	ti := textinput.New()
	ti.Placeholder = "Enter username..."
	ti.CharLimit = 100
	ti.Width = 40

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(accentColor)

	return &RouletteViewModel{
		ctx:     ctx,
		session: roulette.NewSession(),
		fetcher: fetcher,
		input:   ti,
		spinner: sp,
	}
}

func (m *RouletteViewModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	if width > 20 {
		m.input.Width = min(width-12, 60)
	}
}

func (m *RouletteViewModel) Session() *roulette.Session {
	return m.session
}

// Mount focuses the username input when the screen becomes visible.
func (m *RouletteViewModel) Mount() {
	if !m.session.IsLoading() {
		m.input.Focus()
	}
}

// Unmount discards everything the screen holds. A fetch still in flight
// will be ignored when its result arrives.
func (m *RouletteViewModel) Unmount() {
	m.session.Dismiss()
	m.input.SetValue("")
	m.input.Blur()
}

func (m *RouletteViewModel) IsEditing() bool {
	return m.input.Focused()
}

func (m *RouletteViewModel) StopEditing() {
	m.input.Blur()
}

func (m *RouletteViewModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !m.session.IsLoading() {
			return nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd

	case tea.KeyMsg:
		if m.session.IsLoading() {
			return nil
		}

		switch msg.String() {
		case "enter":
			return m.Submit()
		case "esc":
			if m.input.Focused() {
				m.input.Blur()
				return nil
			}
		case "i", "/":
			if !m.input.Focused() {
				m.input.Focus()
				return nil
			}
		}

		if !m.input.Focused() {
			return nil
		}

		before := m.input.Value()
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if m.input.Value() != before {
			m.session.SetUsername(m.input.Value())
		}
		return cmd
	}

	return nil
}

// Submit triggers a fetch for the current input. Validation failures and
// triggers while loading produce no command.
func (m *RouletteViewModel) Submit() tea.Cmd {
	m.session.SetUsername(m.input.Value())
	req, err := m.session.Trigger()
	if err != nil {
		logger.Log("Roulette: trigger rejected: %v", err)
		return nil
	}

	m.input.Blur()
	return tea.Batch(m.spinner.Tick, m.fetch(req))
}

// SubmitUsername replaces the input with username and triggers a fetch.
func (m *RouletteViewModel) SubmitUsername(username string) tea.Cmd {
	if m.session.IsLoading() {
		return nil
	}
	m.input.SetValue(username)
	return m.Submit()
}

func (m *RouletteViewModel) fetch(req roulette.Request) tea.Cmd {
	ctx := m.ctx
	fetcher := m.fetcher
	return func() tea.Msg {
		return FetchCompletedMsg{ID: req.ID, Outcome: fetcher.Execute(ctx, req)}
	}
}

// Apply resolves the session with a completed fetch and reports whether the
// result belonged to the current request.
func (m *RouletteViewModel) Apply(msg FetchCompletedMsg) bool {
	if !m.session.Resolve(msg.ID, msg.Outcome) {
		return false
	}
	m.input.Focus()
	return true
}

func (m *RouletteViewModel) View() string {
	var b strings.Builder

	b.WriteString(headerTitleStyle.Render("GitHub Repository Roulette"))
	b.WriteString("\n")
	b.WriteString(headerSubStyle.Render("Discover random repositories"))
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("GitHub Username"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	state := m.session.State()
	if state.IsLoading() {
		b.WriteString(disabledButtonStyle.Render(m.spinner.View() + " Fetching..."))
	} else {
		b.WriteString(buttonStyle.Render("Fetch Random Repo"))
	}
	b.WriteString("\n")

	if msg := m.session.Error(); msg != "" {
		b.WriteString("\n")
		b.WriteString(inlineErrorStyle.Render(msg))
		b.WriteString("\n")
	}

	if state.Status == roulette.StatusSuccess && state.Repository != nil {
		b.WriteString("\n")
		b.WriteString(RenderRepositoryCard(*state.Repository, m.width-4))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.input.Focused() {
		b.WriteString(helpStyle.Render("Enter: Fetch | Esc: Stop editing"))
	} else if !state.IsLoading() {
		b.WriteString(helpStyle.Render("Enter: Fetch | i: Edit username | Tab: Switch tab | :: Command"))
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

// RenderRepositoryCard renders repo the way the roulette screen shows a
// result. A non-positive width leaves the card unconstrained.
func RenderRepositoryCard(repo domain.Repository, width int) string {
	var lines []string

	lines = append(lines, cardTitleStyle.Render(repo.Name))
	lines = append(lines, cardOwnerStyle.Render(repo.OwnerLogin))

	if repo.HasDescription() {
		lines = append(lines, "", repo.Description)
	}

	stats := []string{
		renderStat("★", "Stars", repo.StarCount),
		renderStat("⑂", "Forks", repo.ForkCount),
		renderStat("◉", "Watches", repo.WatcherCount),
	}
	lines = append(lines, "", strings.Join(stats, "   "))

	if repo.HasLanguage() {
		lines = append(lines, "", languageStyle.Render("● "+repo.Language))
	}

	style := cardStyle
	if width > 0 {
		style = style.Width(width)
	}
	return style.Render(strings.Join(lines, "\n"))
}

func renderStat(icon, label string, value int) string {
	return statLabelStyle.Render(icon+" "+label+" ") + statValueStyle.Render(humanize.Comma(int64(value)))
}
