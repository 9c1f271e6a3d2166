package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Brand       lipgloss.Style
	NavLink     lipgloss.Style
	NavBar      lipgloss.Style
	NavScrolled lipgloss.Style
	Locale      lipgloss.Style
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style
	Pending     lipgloss.Style // reveal block not yet in view
	Revealed    lipgloss.Style
	Menu        lipgloss.Style
	Lightbox    lipgloss.Style
	Help        lipgloss.Style
	Status      lipgloss.Style
	StatusError lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Brand:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")),
		NavLink: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		NavBar:  lipgloss.NewStyle().Padding(0, 1),
		NavScrolled: lipgloss.NewStyle().
			Padding(0, 1).
			Background(lipgloss.Color("238")).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("241")),
		Locale:      lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		TabActive:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).Underline(true),
		TabInactive: lipgloss.NewStyle().Faint(true),
		Pending:     lipgloss.NewStyle().Foreground(lipgloss.Color("236")),
		Revealed:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Menu: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(1, 2).
			BorderForeground(lipgloss.Color("99")),
		Lightbox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 2).
			BorderForeground(lipgloss.Color("220")),
		Help:        lipgloss.NewStyle().Faint(true),
		Status:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		StatusError: lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
	}
}
