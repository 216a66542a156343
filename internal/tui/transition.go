package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// transitionPhase tracks how far through the deck interstitial we are. The
// phases drive both styling and the two side effects: the next deck's first
// card is drawn partway through (so it is ready the instant the overlay
// lifts), and the overlay closes at the end.
type transitionPhase int

const (
	phaseIdle transitionPhase = iota
	phasePending
	phaseEnter
	phasePreload
	phaseExit
)

const (
	transitionEnterAfter    = 50 * time.Millisecond
	transitionPreloadAfter  = 400 * time.Millisecond
	transitionExitAfter     = 1200 * time.Millisecond
	transitionCompleteAfter = 1500 * time.Millisecond

	cardSwapDelay = 200 * time.Millisecond
)

// transitionPhaseMsg advances the interstitial. Messages carrying a stale
// generation belong to a cancelled interstitial and are dropped.
type transitionPhaseMsg struct {
	gen   int
	phase transitionPhase
	done  bool
}

// cardSwapMsg completes a staged card swap after the unflip settles.
type cardSwapMsg struct {
	gen int
}

// startTransition begins the interstitial for the session's pending deck.
// With reduce motion the whole sequence collapses into an immediate preload
// and close.
func (m *Model) startTransition() tea.Cmd {
	m.transitionGen++
	gen := m.transitionGen

	if m.reduceMotion {
		m.transitionPhase = phaseIdle
		m.session.PreloadJourneyDeck()
		m.session.FinishTransition()
		return nil
	}

	m.transitionPhase = phasePending
	return tea.Batch(
		transitionTick(transitionEnterAfter, gen, phaseEnter, false),
		transitionTick(transitionPreloadAfter, gen, phasePreload, false),
		transitionTick(transitionExitAfter, gen, phaseExit, false),
		transitionTick(transitionCompleteAfter, gen, phaseIdle, true),
	)
}

func transitionTick(after time.Duration, gen int, phase transitionPhase, done bool) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return transitionPhaseMsg{gen: gen, phase: phase, done: done}
	})
}

// cancelTransition abandons any in-flight interstitial timers.
func (m *Model) cancelTransition() {
	m.transitionGen++
	m.transitionPhase = phaseIdle
}

// handleTransitionPhase applies one phase message, performing the preload and
// completion side effects exactly once per generation.
func (m *Model) handleTransitionPhase(msg transitionPhaseMsg) tea.Cmd {
	if msg.gen != m.transitionGen {
		return nil
	}

	if msg.done {
		m.transitionPhase = phaseIdle
		m.session.FinishTransition()
		return nil
	}

	m.transitionPhase = msg.phase
	if msg.phase == phasePreload {
		m.session.PreloadJourneyDeck()
	}
	return nil
}

// stageCardSwap unflips the current card, waits for the motion to settle,
// then performs the swap. With reduce motion the swap runs immediately.
func (m *Model) stageCardSwap(swap func()) tea.Cmd {
	if m.reduceMotion || !m.session.State().Flipped {
		swap()
		return nil
	}

	m.session.Unflip()
	m.swapGen++
	m.swapPending = true
	gen := m.swapGen
	m.pendingSwap = swap
	return tea.Tick(cardSwapDelay, func(time.Time) tea.Msg {
		return cardSwapMsg{gen: gen}
	})
}

// handleCardSwap completes a staged swap if it is still current. The swap
// itself can request a deck transition (journey deck boundary), so the
// interstitial check runs after it, not just on the keypress.
func (m *Model) handleCardSwap(msg cardSwapMsg) tea.Cmd {
	if msg.gen != m.swapGen || !m.swapPending {
		return nil
	}
	m.swapPending = false
	if m.pendingSwap != nil {
		m.pendingSwap()
		m.pendingSwap = nil
	}
	return m.maybeStartTransition()
}
