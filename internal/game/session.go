package game

import (
	"encoding/json"
	"log/slog"

	"github.com/unfoldapp/unfold/internal/catalog"
	"github.com/unfoldapp/unfold/internal/deck"
	"github.com/unfoldapp/unfold/internal/favorites"
	"github.com/unfoldapp/unfold/internal/history"
	"github.com/unfoldapp/unfold/internal/model"
	"github.com/unfoldapp/unfold/internal/store"
)

// Session orchestrates one player's run: it owns the reducer state and
// performs the draw, history, and favorites side effects around each
// transition. All methods run on the UI goroutine; there is no locking
// because there is no preemption between a read and its write.
type Session struct {
	state  State
	cat    *catalog.Catalog
	engine *deck.Engine
	custom *deck.Registry
	favs   *favorites.Registry
	hist   *history.Log
	kv     store.KV
	log    *slog.Logger
}

// NewSession wires the session from its collaborators and restores the
// cards-per-deck preference from the store.
func NewSession(cat *catalog.Catalog, engine *deck.Engine, custom *deck.Registry, favs *favorites.Registry, hist *history.Log, kv store.KV, log *slog.Logger) *Session {
	s := &Session{
		cat:    cat,
		engine: engine,
		custom: custom,
		favs:   favs,
		hist:   hist,
		kv:     kv,
		log:    log,
	}

	cardsPerDeck := model.DefaultCardsPerDeck
	if raw, ok, err := kv.Get(model.KeyCardsPerDeck); err != nil {
		log.Warn("loading cards-per-deck preference failed, using default", "error", err)
	} else if ok {
		var n int
		if err := json.Unmarshal(raw, &n); err == nil {
			cardsPerDeck = n
		}
	}
	s.state = NewState(s.clampCardsPerDeck(cardsPerDeck))
	return s
}

// State returns the current state for rendering.
func (s *Session) State() State {
	return s.state
}

func (s *Session) dispatch(events ...Event) {
	for _, ev := range events {
		s.state = Reduce(s.state, ev)
	}
}

// SelectMode starts a round of the given mode from the menu. Session
// statistics reset on every mode entry; shuffle draws its first card
// immediately.
func (s *Session) SelectMode(m Mode) {
	s.dispatch(ResetSessionStats{}, SetMode{Mode: m})

	switch m {
	case ModeFreeplay:
		s.dispatch(SetScreen{Screen: ScreenFreeplaySelect})
	case ModeShuffle:
		s.dispatch(SetScreen{Screen: ScreenShuffleCard})
		s.DrawShuffle()
	case ModeJourney:
		s.dispatch(SetScreen{Screen: ScreenJourneySetup})
	}
}

// SelectDeck enters freeplay on the chosen deck and draws the first card.
func (s *Session) SelectDeck(deckID string) {
	s.dispatch(SetActiveDeck{DeckID: deckID}, SetScreen{Screen: ScreenFreeplayCard})
	s.Draw()
}

// Draw draws the next card from the active deck. Returns false when the
// deck is exhausted (or no deck is active); the current card is untouched so
// the UI can offer a reset instead.
func (s *Session) Draw() bool {
	if s.state.ActiveDeck == "" {
		return false
	}
	card, ok := s.engine.DrawOne(s.state.ActiveDeck)
	if !ok {
		return false
	}
	s.applyDraw(card)
	return true
}

// DrawShuffle draws from the union of every deck. Exhaustion of the union
// forces the round to game-complete.
func (s *Session) DrawShuffle() bool {
	card, ok := s.engine.DrawFromAnyDeck()
	if !ok {
		s.dispatch(SetScreen{Screen: ScreenGameComplete})
		return false
	}
	s.applyDraw(card)
	return true
}

func (s *Session) applyDraw(card model.DrawnCard) {
	s.dispatch(
		SetCurrentCard{Card: &card},
		UnflipCard{},
		AddPlayedQuestion{Question: model.PlayedQuestion{
			Question: card.Question,
			FollowUp: card.FollowUp,
			DeckID:   card.DeckID,
		}},
		IncrementDeckStat{DeckID: card.DeckID},
	)
	s.hist.Append(card.Question, card.Category)
}

// SkipCurrent returns the current card to its deck's pool, counts the skip,
// and draws a replacement for the current mode. The skipped card may come
// straight back by chance.
func (s *Session) SkipCurrent() {
	card := s.state.CurrentCard
	if card == nil {
		return
	}
	s.engine.Skip(card.DeckID, card.QuestionIndex)
	s.dispatch(IncrementSkipped{})

	if s.state.Mode == ModeShuffle {
		s.DrawShuffle()
		return
	}
	if s.state.ActiveDeck != "" {
		s.Draw()
	}
}

// Flip toggles the card between question and follow-up.
func (s *Session) Flip() {
	s.dispatch(FlipCard{})
}

// Unflip forces the question face, used when staging a card swap.
func (s *Session) Unflip() {
	s.dispatch(UnflipCard{})
}

// EndRound finishes the round and shows the recap.
func (s *Session) EndRound() {
	s.dispatch(SetScreen{Screen: ScreenGameComplete})
}

// BackToDeckSelect leaves the freeplay card screen for the deck selector.
func (s *Session) BackToDeckSelect() {
	s.dispatch(
		SetActiveDeck{},
		SetCurrentCard{},
		UnflipCard{},
		SetScreen{Screen: ScreenFreeplaySelect},
	)
}

// StartJourney begins the guided traversal: every deck's pool is restored,
// session statistics and journey counters reset, and the interstitial for
// the first deck starts.
func (s *Session) StartJourney() {
	s.engine.ResetAll()
	s.dispatch(
		ResetSessionStats{},
		ResetJourney{},
		ShowDeckTransition{DeckID: catalog.JourneyOrder[0]},
	)
}

// PreloadJourneyDeck fires partway through the interstitial: it activates
// the target deck, draws its first card, and seeds the journey counters so
// the card is ready the instant the transition ends.
func (s *Session) PreloadJourneyDeck() {
	deckID := s.state.TransitionDeck
	if deckID == "" {
		return
	}
	s.dispatch(
		SetActiveDeck{DeckID: deckID},
		SetScreen{Screen: ScreenJourneyCard},
	)
	totalPlayed := s.state.Journey.TotalPlayed
	if card, ok := s.engine.DrawOne(deckID); ok {
		s.applyDraw(card)
	}
	s.dispatch(SetJourneyProgress{CardInDeck: 1, TotalPlayed: totalPlayed + 1})
}

// FinishTransition ends the interstitial overlay.
func (s *Session) FinishTransition() {
	s.dispatch(HideDeckTransition{})
}

// JourneyNext advances the journey: another card from the current deck, the
// interstitial for the next deck, or the recap when the last deck is done.
func (s *Session) JourneyNext() {
	j := s.state.Journey

	if j.CardInDeck >= j.CardsPerDeck {
		nextDeck := j.DeckIndex + 1
		if nextDeck >= len(catalog.JourneyOrder) {
			s.dispatch(SetScreen{Screen: ScreenGameComplete})
			return
		}
		s.dispatch(
			SetJourneyDeckIndex{Index: nextDeck},
			SetJourneyProgress{CardInDeck: 0, TotalPlayed: j.TotalPlayed},
			ShowDeckTransition{DeckID: catalog.JourneyOrder[nextDeck]},
		)
		return
	}

	if s.Draw() {
		s.dispatch(IncrementJourneyCard{})
	}
}

// SetCardsPerDeck updates the journey sizing preference, clamped to what the
// smallest journey deck can supply, and persists it.
func (s *Session) SetCardsPerDeck(n int) {
	n = s.clampCardsPerDeck(n)
	s.dispatch(SetCardsPerDeck{Count: n})

	raw, err := json.Marshal(n)
	if err == nil {
		err = s.kv.Set(model.KeyCardsPerDeck, raw)
	}
	if err != nil {
		s.log.Warn("persisting cards-per-deck preference failed", "error", err)
	}
}

func (s *Session) clampCardsPerDeck(n int) int {
	if n < model.MinCardsPerDeck {
		return model.MinCardsPerDeck
	}
	if maxCards := s.cat.MinJourneySize(); n > maxCards {
		return maxCards
	}
	return n
}

// ToggleFavorite pins or unpins the current card.
func (s *Session) ToggleFavorite() {
	card := s.state.CurrentCard
	if card == nil {
		return
	}
	s.favs.Toggle(model.FavoriteCard{
		ID:       card.ID,
		Question: card.Question,
		FollowUp: card.FollowUp,
		DeckID:   card.DeckID,
		DeckName: card.Category,
		ColorTag: card.ColorTag,
	})
}

// IsCurrentFavorite reports whether the displayed card is pinned.
func (s *Session) IsCurrentFavorite() bool {
	if s.state.CurrentCard == nil {
		return false
	}
	return s.favs.IsFavorite(s.state.CurrentCard.ID)
}

// RemoveFavorite unpins by card id (used from the history panel).
func (s *Session) RemoveFavorite(cardID string) {
	s.favs.Remove(cardID)
}

// Favorites returns the pinned cards.
func (s *Session) Favorites() []model.FavoriteCard {
	return s.favs.Cards()
}

// History returns the persisted draw history, newest first.
func (s *Session) History() []model.HistoryItem {
	return s.hist.Items()
}

// ClearHistory empties the history log and restores every deck's pool, the
// paired reset the history panel offers.
func (s *Session) ClearHistory() {
	s.hist.Clear()
	s.engine.ResetAll()
}

// ResetToMenu returns to the menu. Only the history log and the
// cards-per-deck preference survive.
func (s *Session) ResetToMenu() {
	s.dispatch(ResetToMenu{})
}

// PlayAgain clears round state and re-enters the current mode at its start.
func (s *Session) PlayAgain() {
	mode := s.state.Mode
	s.dispatch(ResetForNewGame{})

	switch mode {
	case ModeJourney:
		s.StartJourney()
	case ModeShuffle:
		s.dispatch(SetScreen{Screen: ScreenShuffleCard})
		s.DrawShuffle()
	default:
		s.dispatch(SetScreen{Screen: ScreenFreeplaySelect})
	}
}

// OpenDeckBuilder shows the custom deck builder.
func (s *Session) OpenDeckBuilder() {
	s.dispatch(SetScreen{Screen: ScreenDeckBuilder})
}

// SaveCustomDeck validates and persists a new custom deck, returning to the
// menu on success. Validation failures leave the builder open.
func (s *Session) SaveCustomDeck(name, description string, questions []model.QuestionPair) error {
	if _, err := s.custom.Create(name, description, questions); err != nil {
		return err
	}
	s.dispatch(SetScreen{Screen: ScreenMenu})
	return nil
}

// ResetDeck restores a single deck's full pool.
func (s *Session) ResetDeck(deckID string) {
	s.engine.ResetDeck(deckID)
}

// AvailableCount returns the undrawn count for a deck.
func (s *Session) AvailableCount(deckID string) int {
	return s.engine.AvailableCount(deckID)
}

// TotalCount returns the full size of a deck.
func (s *Session) TotalCount(deckID string) int {
	return s.engine.TotalCount(deckID)
}

// TotalAvailable returns the undrawn count across every deck.
func (s *Session) TotalAvailable() int {
	return s.engine.TotalAvailable()
}

// BuiltinDecks returns the catalog decks in display order.
func (s *Session) BuiltinDecks() []model.Deck {
	return s.cat.Decks()
}

// Deck resolves a built-in deck by id.
func (s *Session) Deck(id string) (model.Deck, bool) {
	return s.cat.Deck(id)
}

// CustomDecks returns the user-authored decks in creation order.
func (s *Session) CustomDecks() []model.CustomDeck {
	return s.custom.Decks()
}

// CustomDeckCount returns how many custom decks exist.
func (s *Session) CustomDeckCount() int {
	return s.custom.Count()
}

// DeleteCustomDeck removes a user-authored deck.
func (s *Session) DeleteCustomDeck(id string) {
	s.custom.Delete(id)
}

// MaxCardsPerDeck returns the upper bound for the journey sizing control.
func (s *Session) MaxCardsPerDeck() int {
	return s.cat.MinJourneySize()
}

// TransitionDeck resolves the interstitial's target deck for rendering.
func (s *Session) TransitionDeck() (model.Deck, bool) {
	if s.state.TransitionDeck == "" {
		return model.Deck{}, false
	}
	return s.cat.Deck(s.state.TransitionDeck)
}

// JourneyDeckCount returns how many decks a journey traverses.
func (s *Session) JourneyDeckCount() int {
	return len(catalog.JourneyOrder)
}
