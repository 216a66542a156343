package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/unfoldapp/unfold/internal/catalog"
)

func (m *Model) updateJourneySetup(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	st := m.session.State()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Escape):
		m.session.ResetToMenu()
	case key.Matches(msg, m.keys.More):
		m.session.SetCardsPerDeck(st.Journey.CardsPerDeck + 1)
	case key.Matches(msg, m.keys.Less):
		m.session.SetCardsPerDeck(st.Journey.CardsPerDeck - 1)
	case key.Matches(msg, m.keys.Enter):
		m.session.StartJourney()
		return m, m.maybeStartTransition()
	case key.Matches(msg, m.keys.Help):
		m.PushModal(NewHelpModal(m.keys))
	}

	return m, nil
}

func (m *Model) viewJourneySetup() string {
	st := m.session.State()
	perDeck := st.Journey.CardsPerDeck
	deckCount := m.session.JourneyDeckCount()

	title := titleStyle.Render("Journey")
	intro := subtitleStyle.Render("travel through every deck, from light to deep")

	names := make([]string, 0, deckCount)
	for _, id := range catalog.JourneyOrder {
		if d, ok := m.session.Deck(id); ok {
			names = append(names, lipgloss.NewStyle().Foreground(deckColor(d.ColorTag)).Render(d.Name))
		}
	}
	path := strings.Join(names, helpStyle.Render(" → "))

	counter := fmt.Sprintf("cards per deck:  - [ %d ] +", perDeck)
	if perDeck <= 1 {
		counter = fmt.Sprintf("cards per deck:    [ %d ] +", perDeck)
	} else if perDeck >= m.session.MaxCardsPerDeck() {
		counter = fmt.Sprintf("cards per deck:  - [ %d ]", perDeck)
	}
	total := helpStyle.Render(fmt.Sprintf("%d cards in total", perDeck*deckCount))

	status := helpStyle.Render("+/-: adjust | enter: begin | esc: menu")

	block := lipgloss.JoinVertical(lipgloss.Center,
		title, intro, "", path, "",
		selectedItemStyle.Render(counter), total, "", status,
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, block)
}
