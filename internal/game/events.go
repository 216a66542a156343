package game

import "github.com/unfoldapp/unfold/internal/model"

// Event is a member of the closed set of state machine inputs. The empty
// method seals the set to this package.
type Event interface {
	isEvent()
}

// SetScreen switches the visible screen.
type SetScreen struct{ Screen Screen }

// SetMode selects the game mode for the round being started.
type SetMode struct{ Mode Mode }

// SetActiveDeck records which deck draws come from. Empty clears it.
type SetActiveDeck struct{ DeckID string }

// SetCurrentCard replaces the displayed card. Nil clears it.
type SetCurrentCard struct{ Card *model.DrawnCard }

// FlipCard toggles between the question and follow-up faces.
type FlipCard struct{}

// UnflipCard forces the question face, used when staging a card swap.
type UnflipCard struct{}

// AddPlayedQuestion appends to this session's recap list.
type AddPlayedQuestion struct{ Question model.PlayedQuestion }

// IncrementDeckStat bumps the per-deck draw counter for this session.
type IncrementDeckStat struct{ DeckID string }

// IncrementSkipped bumps the skip counter for this session.
type IncrementSkipped struct{}

// ResetSessionStats clears played questions, deck stats, and the skip count.
type ResetSessionStats struct{}

// SetCardsPerDeck changes the journey sizing preference.
type SetCardsPerDeck struct{ Count int }

// SetJourneyDeckIndex moves the journey to the deck at the given position.
type SetJourneyDeckIndex struct{ Index int }

// IncrementJourneyCard advances both the per-deck and total journey counters.
type IncrementJourneyCard struct{}

// SetJourneyProgress overwrites the per-deck and total journey counters,
// used when entering a deck through the interstitial preload.
type SetJourneyProgress struct {
	CardInDeck  int
	TotalPlayed int
}

// ResetJourney zeroes the traversal counters, keeping cards-per-deck.
type ResetJourney struct{}

// ShowDeckTransition starts the interstitial targeting the given deck.
type ShowDeckTransition struct{ DeckID string }

// HideDeckTransition ends the interstitial.
type HideDeckTransition struct{}

// ResetToMenu returns to the menu, preserving only the cards-per-deck
// preference (the history log lives outside this state).
type ResetToMenu struct{}

// ResetForNewGame clears round state ahead of a play-again re-entry.
type ResetForNewGame struct{}

func (SetScreen) isEvent()            {}
func (SetMode) isEvent()              {}
func (SetActiveDeck) isEvent()        {}
func (SetCurrentCard) isEvent()       {}
func (FlipCard) isEvent()             {}
func (UnflipCard) isEvent()           {}
func (AddPlayedQuestion) isEvent()    {}
func (IncrementDeckStat) isEvent()    {}
func (IncrementSkipped) isEvent()     {}
func (ResetSessionStats) isEvent()    {}
func (SetCardsPerDeck) isEvent()      {}
func (SetJourneyDeckIndex) isEvent()  {}
func (IncrementJourneyCard) isEvent() {}
func (SetJourneyProgress) isEvent()   {}
func (ResetJourney) isEvent()         {}
func (ShowDeckTransition) isEvent()   {}
func (HideDeckTransition) isEvent()   {}
func (ResetToMenu) isEvent()          {}
func (ResetForNewGame) isEvent()      {}
