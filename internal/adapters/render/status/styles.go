package status

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title      lipgloss.Style
	header     lipgloss.Style
	healthy    lipgloss.Style
	busy       lipgloss.Style
	warning    lipgloss.Style
	detail     lipgloss.Style
	section    lipgloss.Style
	counterKey lipgloss.Style
	counterVal lipgloss.Style
	barBracket lipgloss.Style
	barFill    lipgloss.Style
	barEmpty   lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:      lipgloss.NewStyle().Bold(true),
		header:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		healthy:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		busy:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		warning:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		detail:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		section:    lipgloss.NewStyle().MarginTop(1),
		counterKey: lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		counterVal: lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		barBracket: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		barFill:    lipgloss.NewStyle().Foreground(lipgloss.Color("159")),
		barEmpty:   lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	}
}
