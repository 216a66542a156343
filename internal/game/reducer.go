package game

import "github.com/unfoldapp/unfold/internal/model"

// Reduce applies one event to the state and returns the next state. It is
// pure: the input state is never mutated, and the same (state, event) pair
// always yields the same result. All transitions are deterministic; the only
// failure surfaced to callers is draw exhaustion, which the Session handles
// before dispatching.
func Reduce(s State, ev Event) State {
	switch ev := ev.(type) {
	case SetScreen:
		s.Screen = ev.Screen

	case SetMode:
		s.Mode = ev.Mode

	case SetActiveDeck:
		s.ActiveDeck = ev.DeckID

	case SetCurrentCard:
		if ev.Card == nil {
			s.CurrentCard = nil
		} else {
			card := *ev.Card
			s.CurrentCard = &card
		}

	case FlipCard:
		s.Flipped = !s.Flipped

	case UnflipCard:
		s.Flipped = false

	case AddPlayedQuestion:
		s.PlayedQuestions = append(clonePlayed(s.PlayedQuestions), ev.Question)

	case IncrementDeckStat:
		stats := cloneStats(s.DeckStats)
		stats[ev.DeckID]++
		s.DeckStats = stats

	case IncrementSkipped:
		s.SkippedCount++

	case ResetSessionStats:
		s.PlayedQuestions = nil
		s.DeckStats = make(map[string]int)
		s.SkippedCount = 0

	case SetCardsPerDeck:
		s.Journey.CardsPerDeck = ev.Count

	case SetJourneyDeckIndex:
		s.Journey.DeckIndex = ev.Index

	case IncrementJourneyCard:
		s.Journey.CardInDeck++
		s.Journey.TotalPlayed++

	case SetJourneyProgress:
		s.Journey.CardInDeck = ev.CardInDeck
		s.Journey.TotalPlayed = ev.TotalPlayed

	case ResetJourney:
		s.Journey.DeckIndex = 0
		s.Journey.CardInDeck = 0
		s.Journey.TotalPlayed = 0

	case ShowDeckTransition:
		s.TransitionDeck = ev.DeckID

	case HideDeckTransition:
		s.TransitionDeck = ""

	case ResetToMenu:
		next := NewState(s.Journey.CardsPerDeck)
		return next

	case ResetForNewGame:
		s.PlayedQuestions = nil
		s.DeckStats = make(map[string]int)
		s.SkippedCount = 0
		s.CurrentCard = nil
		s.Flipped = false
		s.ActiveDeck = ""
	}

	return s
}

func clonePlayed(in []model.PlayedQuestion) []model.PlayedQuestion {
	out := make([]model.PlayedQuestion, len(in))
	copy(out, in)
	return out
}

func cloneStats(in map[string]int) map[string]int {
	out := make(map[string]int, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
