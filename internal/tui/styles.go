package tui

import "github.com/charmbracelet/lipgloss"

// Shared palette. Deck accents come from each deck's ColorTag; these cover
// the chrome around them.
var (
	ColorWhite  = lipgloss.Color("255")
	ColorGray   = lipgloss.Color("245")
	ColorDim    = lipgloss.Color("240")
	ColorGold   = lipgloss.Color("220")
	ColorRose   = lipgloss.Color("205")
	ColorGreen  = lipgloss.Color("42")
	ColorRed    = lipgloss.Color("196")
	ColorAccent = lipgloss.Color("141")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	helpStyle = lipgloss.NewStyle().
			Foreground(ColorDim)

	errorStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	selectedItemStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorWhite)

	itemStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	favoriteStyle = lipgloss.NewStyle().
			Foreground(ColorRose)
)

// deckColor resolves a deck's ColorTag into a lipgloss color, falling back to
// the accent when a custom deck carries an empty tag.
func deckColor(tag string) lipgloss.Color {
	if tag == "" {
		return ColorAccent
	}
	return lipgloss.Color(tag)
}

// cardStyle builds the bordered card face in the deck's accent color.
func cardStyle(tag string, width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(width).
		Padding(1, 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(deckColor(tag))
}
