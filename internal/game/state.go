// Package game implements the session state machine: the current screen and
// mode, the active deck, the drawn card, session statistics, and the journey
// sub-state. Transitions are a pure reducer over a closed event set; the
// Session orchestrator layers draw and persistence side effects on top.
package game

import "github.com/unfoldapp/unfold/internal/model"

// Screen identifies the active UI screen.
type Screen int

const (
	ScreenMenu Screen = iota
	ScreenFreeplaySelect
	ScreenFreeplayCard
	ScreenJourneySetup
	ScreenJourneyCard
	ScreenShuffleCard
	ScreenGameComplete
	ScreenDeckBuilder
)

func (s Screen) String() string {
	switch s {
	case ScreenMenu:
		return "menu"
	case ScreenFreeplaySelect:
		return "freeplay-select"
	case ScreenFreeplayCard:
		return "freeplay-card"
	case ScreenJourneySetup:
		return "journey-setup"
	case ScreenJourneyCard:
		return "journey-card"
	case ScreenShuffleCard:
		return "shuffle-card"
	case ScreenGameComplete:
		return "game-complete"
	case ScreenDeckBuilder:
		return "deck-builder"
	default:
		return "unknown"
	}
}

// Mode is the selected game mode. ModeNone means no round is in progress.
type Mode int

const (
	ModeNone Mode = iota
	ModeFreeplay
	ModeJourney
	ModeShuffle
)

func (m Mode) String() string {
	switch m {
	case ModeFreeplay:
		return "freeplay"
	case ModeJourney:
		return "journey"
	case ModeShuffle:
		return "shuffle"
	default:
		return "none"
	}
}

// JourneyState is the guided multi-deck traversal sub-state.
type JourneyState struct {
	CardsPerDeck int
	DeckIndex    int
	CardInDeck   int
	TotalPlayed  int
}

// State is the single source of truth for UI rendering. It is owned and
// mutated exclusively by the reducer; readers get value copies.
type State struct {
	Screen      Screen
	Mode        Mode
	ActiveDeck  string
	CurrentCard *model.DrawnCard
	Flipped     bool

	// Session statistics, reset on mode entry and play-again.
	PlayedQuestions []model.PlayedQuestion
	DeckStats       map[string]int
	SkippedCount    int

	Journey JourneyState

	// TransitionDeck is the target of the running interstitial, empty when
	// no interstitial is showing.
	TransitionDeck string
}

// NewState returns the initial state: menu screen, no mode, default journey
// sizing.
func NewState(cardsPerDeck int) State {
	if cardsPerDeck < model.MinCardsPerDeck {
		cardsPerDeck = model.DefaultCardsPerDeck
	}
	return State{
		Screen:    ScreenMenu,
		Mode:      ModeNone,
		DeckStats: make(map[string]int),
		Journey:   JourneyState{CardsPerDeck: cardsPerDeck},
	}
}
