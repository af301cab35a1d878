package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/johanforsgren/reporoulette/internal/logger"
)

const homeMarkdown = `# Hello, Developer! 👋

Welcome to your awesome app

## 🚀 Get Started

Explore GitHub repositories and discover amazing projects

## Features

- **GitHub Integration**: Fetch random repositories
- **Easy Search**: Find repos by username
- **Discover**: Explore amazing projects

---

Made with ❤️ by Sakib
`

// HomeViewModel renders the static welcome screen. The markdown is
// rendered once per width.
type HomeViewModel struct {
	width     int
	height    int
	rendered  string
	rendWidth int
}

func NewHomeView() *HomeViewModel {
	return &HomeViewModel{}
}

func (m *HomeViewModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *HomeViewModel) render() string {
	wrap := m.width - 4
	if wrap < 20 {
		wrap = 80
	}
	if m.rendered != "" && m.rendWidth == wrap {
		return m.rendered
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(wrap),
		glamour.WithEmoji(),
	)
	if err != nil {
		logger.LogError("RENDER_HOME", "glamour", err)
		return homeMarkdown
	}

	out, err := renderer.Render(homeMarkdown)
	if err != nil {
		logger.LogError("RENDER_HOME", "glamour", err)
		return homeMarkdown
	}

	m.rendered = strings.TrimRight(out, "\n")
	m.rendWidth = wrap
	return m.rendered
}

func (m *HomeViewModel) View() string {
	hint := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#6B7280")).
		Italic(true).
		PaddingLeft(2).
		Render("Press 2 or tab to open GitHub Repos")

	return m.render() + "\n\n" + hint
}
