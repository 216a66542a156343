package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/unfoldapp/unfold/internal/game"
)

func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case transitionPhaseMsg:
		return m, m.handleTransitionPhase(msg)

	case cardSwapMsg:
		return m, m.handleCardSwap(msg)
	}

	return m, nil
}

// handleKeyPress dispatches key events: modal stack first, then the active
// screen's handler.
func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}

	// Modal on stack gets the event first.
	if modal := m.TopModal(); modal != nil {
		pop, cmd := modal.Update(msg)
		if pop {
			m.PopModal()
		}
		return m, cmd
	}

	// The interstitial swallows input; esc skips it for impatient players.
	if m.session.State().TransitionDeck != "" && m.transitionPhase != phaseIdle {
		if key.Matches(msg, m.keys.Escape) {
			preloaded := m.transitionPhase >= phasePreload
			m.cancelTransition()
			if !preloaded {
				m.session.PreloadJourneyDeck()
			}
			m.session.FinishTransition()
		}
		return m, nil
	}

	switch m.session.State().Screen {
	case game.ScreenMenu:
		return m.updateMenu(msg)
	case game.ScreenFreeplaySelect:
		return m.updateDeckSelect(msg)
	case game.ScreenFreeplayCard, game.ScreenJourneyCard, game.ScreenShuffleCard:
		return m.updateCard(msg)
	case game.ScreenJourneySetup:
		return m.updateJourneySetup(msg)
	case game.ScreenDeckBuilder:
		return m.updateBuilder(msg)
	case game.ScreenGameComplete:
		return m.updateComplete(msg)
	}

	return m, nil
}

// View renders the active screen, or the topmost modal when one is open.
func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return "Starting..."
	}
	if m.width < 50 || m.height < 16 {
		return "Terminal too small. Resize to at least 50x16."
	}

	if modal := m.TopModal(); modal != nil {
		return modal.View(m.width, m.height)
	}

	st := m.session.State()
	if st.TransitionDeck != "" && m.transitionPhase != phaseIdle {
		return m.viewTransition()
	}

	switch st.Screen {
	case game.ScreenMenu:
		return m.viewMenu()
	case game.ScreenFreeplaySelect:
		return m.viewDeckSelect()
	case game.ScreenFreeplayCard, game.ScreenJourneyCard, game.ScreenShuffleCard:
		return m.viewCard()
	case game.ScreenJourneySetup:
		return m.viewJourneySetup()
	case game.ScreenDeckBuilder:
		return m.viewBuilder()
	case game.ScreenGameComplete:
		return m.viewComplete()
	}

	return ""
}
