package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type TopBarModel struct {
	width     int
	tabs      []string
	activeTab int
	context   string
	shortcuts []string
}

var (
	titleStyle        = lipgloss.NewStyle().Padding(1, 2, 0, 2)
	titleAccentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6366F1")).Bold(true)
	valueWhiteStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	shortcutBlueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true)
	descGrayStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("246"))

	activeTabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F9FAFB")).
			Background(lipgloss.Color("#6366F1")).
			Bold(true).
			Padding(0, 2)
	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("246")).
				Padding(0, 2)
)

func NewTopBar(tabs ...string) *TopBarModel {
	return &TopBarModel{tabs: tabs}
}

func (m *TopBarModel) SetWidth(width int) {
	m.width = width
}

func (m *TopBarModel) SetActiveTab(index int) {
	if index >= 0 && index < len(m.tabs) {
		m.activeTab = index
	}
}

// SetContext sets the one-line summary shown next to the title, such as the
// last picked repository.
func (m *TopBarModel) SetContext(context string) {
	m.context = context
}

func (m *TopBarModel) SetShortcuts(shortcuts []string) {
	m.shortcuts = shortcuts
}

func (m *TopBarModel) View() string {
	titleLine := titleAccentStyle.Render("reporoulette")
	if m.context != "" {
		titleLine += "  " + descGrayStyle.Render("🎲 ") + valueWhiteStyle.Render(m.context)
	}

	lines := []string{titleLine, "", m.renderTabs()}
	if shortcuts := m.renderShortcuts(); shortcuts != "" {
		lines = append(lines, "", shortcuts)
	}

	return titleStyle.Width(m.width).Render(strings.Join(lines, "\n"))
}

func (m *TopBarModel) renderTabs() string {
	rendered := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		label := tab
		if i < 9 {
			label = string(rune('1'+i)) + " " + tab
		}
		if i == m.activeTab {
			rendered = append(rendered, activeTabStyle.Render(label))
		} else {
			rendered = append(rendered, inactiveTabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

// renderShortcuts lays "<key> description" pairs out on as many rows as
// the width needs.
func (m *TopBarModel) renderShortcuts() string {
	const gap = "   "

	var rows []string
	var row string
	for _, shortcut := range m.shortcuts {
		parts := strings.SplitN(shortcut, ">", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimPrefix(parts[0], "<")
		desc := strings.TrimSpace(parts[1])
		formatted := shortcutBlueStyle.Render("<"+key+">") + " " + descGrayStyle.Render(desc)

		if row != "" && m.width > 0 && lipgloss.Width(row+gap+formatted) > m.width-4 {
			rows = append(rows, row)
			row = ""
		}
		if row != "" {
			row += gap
		}
		row += formatted
	}
	if row != "" {
		rows = append(rows, row)
	}

	return strings.Join(rows, "\n")
}
