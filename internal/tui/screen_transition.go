package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// viewTransition renders the interstitial shown between journey decks. The
// phase only changes how bright the text is; the preload happening behind it
// is invisible.
func (m *Model) viewTransition() string {
	deck, ok := m.session.TransitionDeck()
	if !ok {
		return ""
	}

	nameStyle := lipgloss.NewStyle().Bold(true).Foreground(deckColor(deck.ColorTag))
	descStyle := subtitleStyle

	switch m.transitionPhase {
	case phasePending:
		nameStyle = nameStyle.Foreground(ColorDim)
		descStyle = helpStyle
	case phaseExit:
		nameStyle = nameStyle.Faint(true)
		descStyle = descStyle.Faint(true)
	}

	lead := helpStyle.Render("next up")
	name := nameStyle.Render(deck.Name)
	desc := descStyle.Render(deck.Description)
	hint := helpStyle.Render("esc: skip")

	block := lipgloss.JoinVertical(lipgloss.Center, lead, "", name, desc, "", hint)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, block)
}
