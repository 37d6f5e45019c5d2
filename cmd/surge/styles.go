package main

import "github.com/charmbracelet/lipgloss"

// Minimal color palette
var (
	dimColor    = lipgloss.Color("#6c6c6c")
	accentColor = lipgloss.Color("#7aa2f7")
	okColor     = lipgloss.Color("#9ece6a")
	errColor    = lipgloss.Color("#f7768e")
)

var (
	titleStyle  = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(dimColor)
	okStyle     = lipgloss.NewStyle().Foreground(okColor)
	errStyle    = lipgloss.NewStyle().Foreground(errColor)
	methodStyle = lipgloss.NewStyle().Foreground(okColor).Width(7)
)

// statusStyle picks a style for an HTTP status code.
func statusStyle(status int) lipgloss.Style {
	if status >= 400 {
		return errStyle
	}
	return okStyle
}
