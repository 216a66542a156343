package tui

import (
	"log/slog"
	"strings"
	"testing"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/unfoldapp/unfold/internal/catalog"
	"github.com/unfoldapp/unfold/internal/deck"
	"github.com/unfoldapp/unfold/internal/favorites"
	"github.com/unfoldapp/unfold/internal/game"
	"github.com/unfoldapp/unfold/internal/history"
	"github.com/unfoldapp/unfold/internal/store"
)

func newTestModel(t *testing.T, cfg Config) *Model {
	t.Helper()
	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("catalog.Load() error: %v", err)
	}
	kv := store.NewMemory()
	log := slog.New(slog.DiscardHandler)

	custom := deck.NewRegistry(kv, log)
	engine := deck.NewEngine(cat, custom, kv, log)
	session := game.NewSession(cat, engine, custom, favorites.New(kv, log), history.New(kv, log), kv, log)

	m := NewModel(session, cfg, log)
	m.width = 100
	m.height = 30
	return m
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "ctrl+a":
		return tea.KeyMsg{Type: tea.KeyCtrlA}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m *Model, keys ...string) tea.Cmd {
	var last tea.Cmd
	for _, k := range keys {
		_, last = m.Update(keyMsg(k))
	}
	return last
}

func TestMenuRoutesToModes(t *testing.T) {
	m := newTestModel(t, Config{})

	press(m, "enter") // first item: freeplay
	if got := m.session.State().Screen; got != game.ScreenFreeplaySelect {
		t.Fatalf("screen = %v, want freeplay select", got)
	}

	press(m, "esc")
	if got := m.session.State().Screen; got != game.ScreenMenu {
		t.Fatalf("esc did not return to menu, screen = %v", got)
	}

	press(m, "down", "enter") // journey
	if got := m.session.State().Screen; got != game.ScreenJourneySetup {
		t.Fatalf("screen = %v, want journey setup", got)
	}
}

func TestFreeplayKeyFlow(t *testing.T) {
	m := newTestModel(t, Config{ReduceMotion: true})

	press(m, "enter")          // freeplay
	press(m, "enter")          // first deck
	st := m.session.State()
	if st.Screen != game.ScreenFreeplayCard || st.CurrentCard == nil {
		t.Fatalf("deck select did not draw: %+v", st)
	}

	press(m, "space")
	if !m.session.State().Flipped {
		t.Error("space did not flip the card")
	}

	first := m.session.State().CurrentCard.ID
	press(m, "n")
	st = m.session.State()
	if st.CurrentCard.ID == first {
		t.Error("n did not advance the card")
	}
	if st.Flipped {
		t.Error("new card arrived flipped")
	}

	press(m, "f")
	if !m.session.IsCurrentFavorite() {
		t.Error("f did not favorite the card")
	}

	press(m, "e")
	if got := m.session.State().Screen; got != game.ScreenGameComplete {
		t.Errorf("e did not end the round, screen = %v", got)
	}
}

func TestCardSwapIsStagedWhenFlipped(t *testing.T) {
	m := newTestModel(t, Config{})

	press(m, "enter", "enter") // freeplay, first deck
	press(m, "space")          // flip
	first := m.session.State().CurrentCard.ID

	press(m, "n")
	st := m.session.State()
	if st.Flipped {
		t.Error("staged swap did not unflip first")
	}
	if st.CurrentCard.ID != first {
		t.Fatal("card swapped before the settle delay")
	}
	if !m.swapPending {
		t.Fatal("no swap pending after n")
	}

	// A stale generation must not fire.
	m.Update(cardSwapMsg{gen: m.swapGen - 1})
	if m.session.State().CurrentCard.ID != first {
		t.Fatal("stale swap message replaced the card")
	}

	m.Update(cardSwapMsg{gen: m.swapGen})
	if m.session.State().CurrentCard.ID == first {
		t.Fatal("current swap message did not replace the card")
	}
	if m.swapPending {
		t.Error("swap still pending after completion")
	}
}

func TestJourneyTransitionPhases(t *testing.T) {
	m := newTestModel(t, Config{})

	press(m, "down", "enter") // journey setup
	press(m, "enter")         // begin
	if m.transitionPhase != phasePending {
		t.Fatalf("transition phase = %v, want pending", m.transitionPhase)
	}
	gen := m.transitionGen

	m.Update(transitionPhaseMsg{gen: gen, phase: phaseEnter})
	if m.transitionPhase != phaseEnter {
		t.Fatalf("phase = %v after enter", m.transitionPhase)
	}

	m.Update(transitionPhaseMsg{gen: gen, phase: phasePreload})
	st := m.session.State()
	if st.CurrentCard == nil || st.Journey.CardInDeck != 1 {
		t.Fatalf("preload did not seed the deck: %+v", st.Journey)
	}

	m.Update(transitionPhaseMsg{gen: gen, phase: phaseExit})
	m.Update(transitionPhaseMsg{gen: gen, phase: phaseIdle, done: true})
	st = m.session.State()
	if st.TransitionDeck != "" {
		t.Error("transition still showing after the final phase")
	}
	if m.transitionPhase != phaseIdle {
		t.Errorf("phase = %v after completion", m.transitionPhase)
	}
}

func TestStaleTransitionMessagesDropped(t *testing.T) {
	m := newTestModel(t, Config{})

	press(m, "down", "enter", "enter") // into the first interstitial
	staleGen := m.transitionGen

	m.cancelTransition()
	m.Update(transitionPhaseMsg{gen: staleGen, phase: phasePreload})
	if m.session.State().CurrentCard != nil {
		t.Fatal("stale preload message drew a card")
	}
	m.Update(transitionPhaseMsg{gen: staleGen, phase: phaseIdle, done: true})
	if m.session.State().TransitionDeck == "" {
		t.Fatal("stale completion message closed the interstitial")
	}
}

func TestReduceMotionCollapsesTransition(t *testing.T) {
	m := newTestModel(t, Config{ReduceMotion: true})

	press(m, "down", "enter", "enter")
	st := m.session.State()
	if st.TransitionDeck != "" {
		t.Error("interstitial still open with reduce motion")
	}
	if st.CurrentCard == nil || st.Screen != game.ScreenJourneyCard {
		t.Errorf("reduce motion did not land on the first card: %+v", st)
	}
}

func TestJourneyAdvancesThroughDecks(t *testing.T) {
	m := newTestModel(t, Config{ReduceMotion: true})

	press(m, "down", "enter") // journey setup
	m.session.SetCardsPerDeck(1)
	press(m, "enter") // begin; reduce motion lands on card 1 of deck 1

	press(m, "n") // past deck 1's only card; next interstitial collapses too
	st := m.session.State()
	if st.Journey.DeckIndex != 1 {
		t.Fatalf("DeckIndex = %d after finishing the first deck", st.Journey.DeckIndex)
	}
	if st.CurrentCard == nil {
		t.Fatal("no card after the second deck's preload")
	}

	press(m, "n", "n", "n")
	if got := m.session.State().Screen; got != game.ScreenGameComplete {
		t.Fatalf("screen = %v after finishing every deck", got)
	}
}

func TestFlippedJourneyBoundaryStartsInterstitial(t *testing.T) {
	m := newTestModel(t, Config{})

	press(m, "down", "enter") // journey setup
	m.session.SetCardsPerDeck(1)
	press(m, "enter") // begin; interstitial for deck 1

	gen := m.transitionGen
	m.Update(transitionPhaseMsg{gen: gen, phase: phasePreload})
	m.Update(transitionPhaseMsg{gen: gen, phase: phaseIdle, done: true})
	if m.session.State().CurrentCard == nil {
		t.Fatal("no card after the first deck's preload")
	}

	press(m, "space") // flip, so n stages the swap behind the settle delay
	press(m, "n")
	if !m.swapPending {
		t.Fatal("no swap staged for the flipped card")
	}
	if m.transitionPhase != phaseIdle {
		t.Fatal("interstitial started before the swap ran")
	}

	_, cmd := m.Update(cardSwapMsg{gen: m.swapGen})
	if m.transitionPhase != phasePending {
		t.Fatalf("transition phase = %v after the deferred swap, want pending", m.transitionPhase)
	}
	if cmd == nil {
		t.Fatal("deferred swap returned no interstitial timers")
	}

	gen = m.transitionGen
	m.Update(transitionPhaseMsg{gen: gen, phase: phasePreload})
	m.Update(transitionPhaseMsg{gen: gen, phase: phaseIdle, done: true})

	st := m.session.State()
	if st.Journey.DeckIndex != 1 || st.CurrentCard == nil {
		t.Fatalf("journey state after the deck boundary: %+v", st.Journey)
	}
	if st.CurrentCard.DeckID != catalog.JourneyOrder[1] {
		t.Fatalf("card drawn from deck %q after entering deck 2", st.CurrentCard.DeckID)
	}
	if st.Journey.CardInDeck != 1 || st.Journey.TotalPlayed != 2 {
		t.Fatalf("journey counters after the deck boundary: %+v", st.Journey)
	}
}

func TestFreeplayDeckResetFromCardScreen(t *testing.T) {
	m := newTestModel(t, Config{ReduceMotion: true})

	press(m, "enter", "enter") // freeplay, first deck
	deckID := m.session.State().ActiveDeck
	total := m.session.TotalCount(deckID)

	press(m, "r") // deck not exhausted yet, must be a no-op
	if got := m.session.AvailableCount(deckID); got != total-1 {
		t.Fatalf("reset fired mid-deck, AvailableCount = %d", got)
	}

	for m.session.AvailableCount(deckID) > 0 {
		press(m, "n")
	}

	press(m, "r")
	if got := m.session.AvailableCount(deckID); got != total-1 {
		t.Fatalf("AvailableCount = %d after reset, want %d", got, total-1)
	}
	st := m.session.State()
	if st.CurrentCard == nil {
		t.Fatal("no card after the reset redraw")
	}
	if st.Screen != game.ScreenFreeplayCard {
		t.Fatalf("screen = %v after reset", st.Screen)
	}
}

func TestTruncateKeepsRunesIntact(t *testing.T) {
	got := truncate(strings.Repeat("ä", 10), 8)
	if got != strings.Repeat("ä", 5)+"..." {
		t.Fatalf("truncate = %q", got)
	}
	if truncate("short", 10) != "short" {
		t.Fatal("truncate modified a short string")
	}
	if !utf8.ValidString(truncate(strings.Repeat("情", 20), 10)) {
		t.Fatal("truncate produced invalid UTF-8")
	}
}

func TestBuilderValidationGatesSave(t *testing.T) {
	m := newTestModel(t, Config{})

	press(m, "down", "down", "down", "enter") // create a deck
	if got := m.session.State().Screen; got != game.ScreenDeckBuilder {
		t.Fatalf("screen = %v, want deck builder", got)
	}

	press(m, "ctrl+s")
	if m.builderErr == "" {
		t.Error("empty deck saved without an error")
	}
	if got := m.session.State().Screen; got != game.ScreenDeckBuilder {
		t.Fatal("builder closed on invalid save")
	}

	m.builderInputs[fieldName].SetValue("Ours")
	m.builderInputs[fieldDescription].SetValue("questions for us")
	m.builderInputs[fieldQuestion].SetValue("What made you laugh today?")
	m.builderInputs[fieldFollowUp].SetValue("Why that, of all things?")
	press(m, "ctrl+a")
	if len(m.builderStaged) != 1 {
		t.Fatalf("staged = %d after ctrl+a", len(m.builderStaged))
	}

	press(m, "ctrl+s")
	if got := m.session.State().Screen; got != game.ScreenMenu {
		t.Fatalf("screen = %v after valid save", got)
	}
	if m.session.CustomDeckCount() != 1 {
		t.Errorf("CustomDeckCount = %d", m.session.CustomDeckCount())
	}
}

func TestHistoryModalOpensAndCloses(t *testing.T) {
	m := newTestModel(t, Config{})

	press(m, "h")
	if m.TopModal() == nil {
		t.Fatal("h did not open the history modal")
	}
	if !strings.Contains(m.View(), "History") {
		t.Error("modal view missing header")
	}

	press(m, "esc")
	if m.TopModal() != nil {
		t.Fatal("esc did not close the modal")
	}
}

func TestViewRendersEveryScreen(t *testing.T) {
	m := newTestModel(t, Config{ReduceMotion: true})

	if !strings.Contains(m.View(), "Unfold") {
		t.Error("menu view missing title")
	}

	press(m, "enter")
	if !strings.Contains(m.View(), "Choose a deck") {
		t.Error("deck select view missing title")
	}

	press(m, "enter")
	if m.View() == "" {
		t.Error("card view empty")
	}

	press(m, "e")
	if !strings.Contains(m.View(), "Round complete") {
		t.Error("recap view missing title")
	}
}
