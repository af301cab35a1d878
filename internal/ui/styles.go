package ui

import "github.com/charmbracelet/lipgloss"

var foregroundColor = lipgloss.Color("#F9FAFB")

var ContentStyle = lipgloss.NewStyle().
	Foreground(foregroundColor)
