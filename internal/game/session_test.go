package game

import (
	"log/slog"
	"testing"

	"github.com/unfoldapp/unfold/internal/catalog"
	"github.com/unfoldapp/unfold/internal/deck"
	"github.com/unfoldapp/unfold/internal/favorites"
	"github.com/unfoldapp/unfold/internal/history"
	"github.com/unfoldapp/unfold/internal/model"
	"github.com/unfoldapp/unfold/internal/store"
)

func newTestSession(t *testing.T) (*Session, store.KV) {
	t.Helper()
	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("catalog.Load() error: %v", err)
	}
	kv := store.NewMemory()
	log := slog.New(slog.DiscardHandler)

	custom := deck.NewRegistry(kv, log)
	engine := deck.NewEngine(cat, custom, kv, log)
	favs := favorites.New(kv, log)
	hist := history.New(kv, log)
	return NewSession(cat, engine, custom, favs, hist, kv, log), kv
}

func TestFreeplayFlow(t *testing.T) {
	s, _ := newTestSession(t)

	s.SelectMode(ModeFreeplay)
	if got := s.State().Screen; got != ScreenFreeplaySelect {
		t.Fatalf("screen after mode select = %v", got)
	}

	s.SelectDeck("surface")
	st := s.State()
	if st.Screen != ScreenFreeplayCard || st.ActiveDeck != "surface" {
		t.Fatalf("screen=%v activeDeck=%q", st.Screen, st.ActiveDeck)
	}
	if st.CurrentCard == nil {
		t.Fatal("no card drawn on deck select")
	}
	if st.DeckStats["surface"] != 1 || len(st.PlayedQuestions) != 1 {
		t.Errorf("stats not updated: %v %d", st.DeckStats, len(st.PlayedQuestions))
	}
	if len(s.History()) != 1 {
		t.Errorf("history length = %d, want 1", len(s.History()))
	}

	// Draw the deck dry; draws beyond exhaustion leave the card unchanged.
	total := s.TotalCount("surface")
	for i := 1; i < total; i++ {
		if !s.Draw() {
			t.Fatalf("draw %d exhausted early", i)
		}
	}
	last := s.State().CurrentCard.ID
	if s.Draw() {
		t.Fatal("draw succeeded beyond deck size")
	}
	if s.State().CurrentCard.ID != last {
		t.Error("exhausted draw replaced the current card")
	}
	if s.AvailableCount("surface") != 0 {
		t.Errorf("AvailableCount = %d after drawing dry", s.AvailableCount("surface"))
	}

	s.ResetDeck("surface")
	if s.AvailableCount("surface") != total {
		t.Error("reset did not restore the pool")
	}
	if !s.Draw() {
		t.Error("draw after reset failed")
	}
}

func TestFreeplayBackToSelect(t *testing.T) {
	s, _ := newTestSession(t)
	s.SelectMode(ModeFreeplay)
	s.SelectDeck("surface")
	s.Flip()

	s.BackToDeckSelect()
	st := s.State()
	if st.Screen != ScreenFreeplaySelect || st.ActiveDeck != "" || st.CurrentCard != nil || st.Flipped {
		t.Errorf("state after back: %+v", st)
	}
}

func TestShuffleDrawsImmediatelyAndCompletesOnExhaustion(t *testing.T) {
	s, _ := newTestSession(t)

	s.SelectMode(ModeShuffle)
	st := s.State()
	if st.Screen != ScreenShuffleCard || st.CurrentCard == nil {
		t.Fatalf("shuffle entry: screen=%v card=%v", st.Screen, st.CurrentCard)
	}

	// One card is already drawn; drain the rest of the union.
	remaining := s.TotalAvailable()
	for i := 0; i < remaining; i++ {
		if !s.DrawShuffle() {
			t.Fatalf("union exhausted early at %d of %d", i, remaining)
		}
	}
	if s.DrawShuffle() {
		t.Fatal("draw succeeded beyond the union size")
	}
	if got := s.State().Screen; got != ScreenGameComplete {
		t.Fatalf("screen after union exhaustion = %v, want game-complete", got)
	}
}

func TestJourneyFullRun(t *testing.T) {
	s, _ := newTestSession(t)

	s.SelectMode(ModeJourney)
	if got := s.State().Screen; got != ScreenJourneySetup {
		t.Fatalf("screen after journey select = %v", got)
	}
	s.SetCardsPerDeck(2)
	s.StartJourney()

	if got := s.State().TransitionDeck; got != catalog.JourneyOrder[0] {
		t.Fatalf("first transition targets %q", got)
	}

	completions := 0
	for i := 0; i < 100; i++ {
		st := s.State()
		if st.Screen == ScreenGameComplete {
			completions++
			break
		}
		if st.TransitionDeck != "" {
			s.PreloadJourneyDeck()
			s.FinishTransition()
			continue
		}
		s.JourneyNext()
	}

	st := s.State()
	if completions != 1 {
		t.Fatalf("journey did not complete exactly once (screen=%v)", st.Screen)
	}
	want := 2 * len(catalog.JourneyOrder)
	if st.Journey.TotalPlayed != want {
		t.Errorf("TotalPlayed = %d, want %d", st.Journey.TotalPlayed, want)
	}
	if len(st.PlayedQuestions) != want {
		t.Errorf("PlayedQuestions = %d, want %d", len(st.PlayedQuestions), want)
	}
}

func TestJourneyPreloadSeedsCounters(t *testing.T) {
	s, _ := newTestSession(t)
	s.SelectMode(ModeJourney)
	s.StartJourney()

	s.PreloadJourneyDeck()
	st := s.State()
	if st.Screen != ScreenJourneyCard || st.ActiveDeck != catalog.JourneyOrder[0] {
		t.Fatalf("after preload: screen=%v deck=%q", st.Screen, st.ActiveDeck)
	}
	if st.CurrentCard == nil {
		t.Fatal("preload did not draw the first card")
	}
	if st.Journey.CardInDeck != 1 || st.Journey.TotalPlayed != 1 {
		t.Errorf("journey counters after preload = %+v", st.Journey)
	}

	s.FinishTransition()
	if s.State().TransitionDeck != "" {
		t.Error("transition still showing after finish")
	}
}

func TestSkipKeepsJourneyCountersAndCountsSkip(t *testing.T) {
	s, _ := newTestSession(t)
	s.SelectMode(ModeJourney)
	s.StartJourney()
	s.PreloadJourneyDeck()
	s.FinishTransition()

	before := s.State().Journey
	s.SkipCurrent()
	st := s.State()
	if st.SkippedCount != 1 {
		t.Errorf("SkippedCount = %d, want 1", st.SkippedCount)
	}
	if st.Journey != before {
		t.Errorf("skip changed journey counters: %+v -> %+v", before, st.Journey)
	}
	if st.CurrentCard == nil {
		t.Error("skip did not draw a replacement")
	}
}

func TestCardsPerDeckClampAndPersistence(t *testing.T) {
	s, kv := newTestSession(t)

	s.SetCardsPerDeck(999)
	if got := s.State().Journey.CardsPerDeck; got != s.MaxCardsPerDeck() {
		t.Errorf("CardsPerDeck = %d, want clamp to %d", got, s.MaxCardsPerDeck())
	}
	s.SetCardsPerDeck(0)
	if got := s.State().Journey.CardsPerDeck; got != 1 {
		t.Errorf("CardsPerDeck = %d, want clamp to 1", got)
	}

	s.SetCardsPerDeck(4)

	// A new session over the same store restores the preference.
	cat, _ := catalog.Load()
	log := slog.New(slog.DiscardHandler)
	custom := deck.NewRegistry(kv, log)
	engine := deck.NewEngine(cat, custom, kv, log)
	s2 := NewSession(cat, engine, custom, favorites.New(kv, log), history.New(kv, log), kv, log)
	if got := s2.State().Journey.CardsPerDeck; got != 4 {
		t.Errorf("restored CardsPerDeck = %d, want 4", got)
	}
}

func TestToggleFavoriteOnCurrentCard(t *testing.T) {
	s, _ := newTestSession(t)
	s.SelectMode(ModeFreeplay)
	s.SelectDeck("surface")

	if s.IsCurrentFavorite() {
		t.Fatal("fresh card already favorited")
	}
	s.ToggleFavorite()
	if !s.IsCurrentFavorite() || len(s.Favorites()) != 1 {
		t.Fatal("toggle did not pin the card")
	}
	s.ToggleFavorite()
	if s.IsCurrentFavorite() || len(s.Favorites()) != 0 {
		t.Fatal("second toggle did not unpin the card")
	}
}

func TestResetToMenuPreservesHistory(t *testing.T) {
	s, _ := newTestSession(t)
	s.SelectMode(ModeFreeplay)
	s.SelectDeck("surface")
	s.Draw()

	historyLen := len(s.History())
	if historyLen == 0 {
		t.Fatal("no history recorded")
	}

	s.ResetToMenu()
	st := s.State()
	if st.Screen != ScreenMenu || st.CurrentCard != nil {
		t.Errorf("state after reset: screen=%v card=%v", st.Screen, st.CurrentCard)
	}
	if len(s.History()) != historyLen {
		t.Error("reset to menu touched the history log")
	}
}

func TestClearHistoryRestoresPools(t *testing.T) {
	s, _ := newTestSession(t)
	full := s.TotalAvailable()

	s.SelectMode(ModeFreeplay)
	s.SelectDeck("surface")
	s.Draw()
	if s.TotalAvailable() == full {
		t.Fatal("draws did not consume the pool")
	}

	s.ClearHistory()
	if len(s.History()) != 0 {
		t.Error("history not cleared")
	}
	if s.TotalAvailable() != full {
		t.Error("clear history did not restore used indices")
	}
}

func TestPlayAgain(t *testing.T) {
	s, _ := newTestSession(t)

	s.SelectMode(ModeFreeplay)
	s.SelectDeck("surface")
	s.EndRound()
	if got := s.State().Screen; got != ScreenGameComplete {
		t.Fatalf("screen after end round = %v", got)
	}
	s.PlayAgain()
	st := s.State()
	if st.Screen != ScreenFreeplaySelect || st.CurrentCard != nil || len(st.DeckStats) != 0 {
		t.Errorf("freeplay play-again state: %+v", st)
	}

	s2, _ := newTestSession(t)
	s2.SelectMode(ModeShuffle)
	s2.EndRound()
	s2.PlayAgain()
	st2 := s2.State()
	if st2.Screen != ScreenShuffleCard || st2.CurrentCard == nil {
		t.Errorf("shuffle play-again: screen=%v card=%v", st2.Screen, st2.CurrentCard)
	}

	s3, _ := newTestSession(t)
	s3.SelectMode(ModeJourney)
	s3.StartJourney()
	s3.PreloadJourneyDeck()
	s3.FinishTransition()
	s3.EndRound()
	s3.PlayAgain()
	st3 := s3.State()
	if st3.TransitionDeck != catalog.JourneyOrder[0] {
		t.Errorf("journey play-again transition = %q", st3.TransitionDeck)
	}
	if st3.Journey.TotalPlayed != 0 {
		t.Errorf("journey counters not reset: %+v", st3.Journey)
	}
}

func TestSaveCustomDeckReturnsToMenu(t *testing.T) {
	s, _ := newTestSession(t)
	s.OpenDeckBuilder()
	if got := s.State().Screen; got != ScreenDeckBuilder {
		t.Fatalf("screen = %v", got)
	}

	if err := s.SaveCustomDeck("", "desc", nil); err == nil {
		t.Fatal("invalid deck accepted")
	}
	if got := s.State().Screen; got != ScreenDeckBuilder {
		t.Error("builder closed on validation failure")
	}

	err := s.SaveCustomDeck("Mine", "my deck", []model.QuestionPair{{Question: "q", FollowUp: "f"}})
	if err != nil {
		t.Fatalf("SaveCustomDeck() error: %v", err)
	}
	if got := s.State().Screen; got != ScreenMenu {
		t.Errorf("screen after save = %v", got)
	}
	if s.CustomDeckCount() != 1 {
		t.Errorf("CustomDeckCount = %d", s.CustomDeckCount())
	}
}
