package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/unfoldapp/unfold/internal/game"
)

func (m *Model) updateCard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	st := m.session.State()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Escape):
		m.cancelSwap()
		if st.Mode == game.ModeFreeplay {
			m.session.BackToDeckSelect()
		} else {
			m.session.ResetToMenu()
		}

	case key.Matches(msg, m.keys.Flip):
		if !m.swapPending {
			m.session.Flip()
		}

	case key.Matches(msg, m.keys.Next):
		if m.swapPending {
			return m, nil
		}
		cmd := m.stageCardSwap(m.drawNext)
		return m, tea.Batch(cmd, m.maybeStartTransition())

	case key.Matches(msg, m.keys.Skip):
		if m.swapPending {
			return m, nil
		}
		cmd := m.stageCardSwap(m.session.SkipCurrent)
		return m, cmd

	case key.Matches(msg, m.keys.Favorite):
		m.session.ToggleFavorite()

	case key.Matches(msg, m.keys.ResetDeck):
		if st.Mode == game.ModeFreeplay && m.session.AvailableCount(st.ActiveDeck) == 0 {
			m.cancelSwap()
			m.session.ResetDeck(st.ActiveDeck)
			m.session.Draw()
		}

	case key.Matches(msg, m.keys.EndRound):
		m.cancelSwap()
		m.session.EndRound()

	case key.Matches(msg, m.keys.History):
		m.PushModal(NewHistoryModal(m))

	case key.Matches(msg, m.keys.Help):
		m.PushModal(NewHelpModal(m.keys))
	}

	return m, nil
}

// drawNext advances to the next card for the current mode.
func (m *Model) drawNext() {
	switch m.session.State().Mode {
	case game.ModeJourney:
		m.session.JourneyNext()
	case game.ModeShuffle:
		m.session.DrawShuffle()
	default:
		m.session.Draw()
	}
}

// maybeStartTransition kicks off the interstitial timers when the session
// has just requested a deck transition.
func (m *Model) maybeStartTransition() tea.Cmd {
	if m.session.State().TransitionDeck != "" && m.transitionPhase == phaseIdle {
		return m.startTransition()
	}
	return nil
}

func (m *Model) cancelSwap() {
	m.swapGen++
	m.swapPending = false
	m.pendingSwap = nil
}

func (m *Model) viewCard() string {
	st := m.session.State()
	card := st.CurrentCard
	if card == nil {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			helpStyle.Render("No cards left. Press esc to go back."))
	}

	header := m.cardHeader(st)

	cardWidth := min(m.width-8, 64)
	style := cardStyle(card.ColorTag, cardWidth)

	var face string
	if st.Flipped {
		label := subtitleStyle.Render("follow-up")
		face = lipgloss.JoinVertical(lipgloss.Left, label, "", card.FollowUp)
	} else {
		label := lipgloss.NewStyle().Foreground(deckColor(card.ColorTag)).Render(card.Category)
		face = lipgloss.JoinVertical(lipgloss.Left, label, "", card.Question)
	}
	if m.session.IsCurrentFavorite() {
		face = lipgloss.JoinVertical(lipgloss.Left, face, "", favoriteStyle.Render("♥ saved"))
	}

	help := "space: flip | n: next | s: skip | f: favorite | e: end | esc: back"
	if st.Mode == game.ModeFreeplay && m.session.AvailableCount(st.ActiveDeck) == 0 {
		help = "deck finished | r: reset deck | e: end | esc: back"
	}
	status := helpStyle.Render(help)

	block := lipgloss.JoinVertical(lipgloss.Center, header, "", style.Render(face), "", status)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, block)
}

func (m *Model) cardHeader(st game.State) string {
	switch st.Mode {
	case game.ModeJourney:
		j := st.Journey
		return subtitleStyle.Render(fmt.Sprintf(
			"Journey · deck %d/%d · card %d/%d",
			j.DeckIndex+1, m.session.JourneyDeckCount(), j.CardInDeck, j.CardsPerDeck,
		))
	case game.ModeShuffle:
		return subtitleStyle.Render(fmt.Sprintf(
			"Shuffle · %d cards left", m.session.TotalAvailable(),
		))
	default:
		return subtitleStyle.Render(fmt.Sprintf(
			"%s · %d of %d left",
			st.CurrentCard.Category,
			m.session.AvailableCount(st.ActiveDeck),
			m.session.TotalCount(st.ActiveDeck),
		))
	}
}
