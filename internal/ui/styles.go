package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title      lipgloss.Style
	Box        lipgloss.Style
	ActiveBox  lipgloss.Style
	ListTitle  lipgloss.Style
	Item       lipgloss.Style
	Selected   lipgloss.Style
	Ignored    lipgloss.Style
	Status     lipgloss.Style
	StatusMode lipgloss.Style
	Dim        lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")),
		ActiveBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")),
		ListTitle:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")),
		Item:       lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Selected:   lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Background(lipgloss.Color("238")).Bold(true),
		Ignored:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Status:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1),
		StatusMode: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Dim:        lipgloss.NewStyle().Faint(true),
	}
}
