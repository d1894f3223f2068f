package tui

import "github.com/charmbracelet/lipgloss"

// Theme holds the styles shared by the menus.
type Theme struct {
	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	ItemNormal  lipgloss.Style
	ItemActive  lipgloss.Style
	ItemDetail  lipgloss.Style
	Description lipgloss.Style
	Controls    lipgloss.Style
}

// DefaultTheme returns the lava-coloured menu theme.
func DefaultTheme() Theme {
	return Theme{
		Title:       lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true),
		Subtitle:    lipgloss.NewStyle().Foreground(lipgloss.Color("229")),
		ItemNormal:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		ItemActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		ItemDetail:  lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Description: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Controls:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}
