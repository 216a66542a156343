package favorites

import (
	"log/slog"
	"testing"

	"github.com/unfoldapp/unfold/internal/model"
	"github.com/unfoldapp/unfold/internal/store"
)

func testCard(id string) model.FavoriteCard {
	return model.FavoriteCard{
		ID:       id,
		Question: "q",
		FollowUp: "f",
		DeckID:   "surface",
		DeckName: "Surface",
		ColorTag: "75",
	}
}

func newTestRegistry() *Registry {
	return New(store.NewMemory(), slog.New(slog.DiscardHandler))
}

func TestToggleRoundTrip(t *testing.T) {
	r := newTestRegistry()
	card := testCard("surface-1")

	r.Toggle(card)
	if !r.IsFavorite(card.ID) {
		t.Fatal("card not favorited after first toggle")
	}
	if r.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", r.Count())
	}
	if saved := r.Cards()[0]; saved.SavedAt.IsZero() {
		t.Error("SavedAt not stamped")
	}

	// Toggling again leaves membership exactly as before.
	r.Toggle(card)
	if r.IsFavorite(card.ID) || r.Count() != 0 {
		t.Fatalf("after second toggle: favorite=%v count=%d", r.IsFavorite(card.ID), r.Count())
	}
}

func TestNoDuplicateIDs(t *testing.T) {
	r := newTestRegistry()
	r.Toggle(testCard("surface-1"))
	r.Toggle(testCard("surface-2"))
	r.Toggle(testCard("surface-1")) // removes, set semantics

	if r.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", r.Count())
	}
	if !r.IsFavorite("surface-2") {
		t.Error("unrelated favorite lost")
	}
}

func TestRemoveAndClear(t *testing.T) {
	r := newTestRegistry()
	r.Toggle(testCard("a-0"))
	r.Toggle(testCard("b-1"))

	r.Remove("a-0")
	if r.IsFavorite("a-0") || !r.IsFavorite("b-1") {
		t.Fatal("Remove affected the wrong card")
	}
	r.Remove("ghost") // no-op

	r.Clear()
	if r.Count() != 0 {
		t.Fatalf("Count() after Clear = %d", r.Count())
	}
}

func TestPersistsAcrossLoads(t *testing.T) {
	kv := store.NewMemory()
	log := slog.New(slog.DiscardHandler)

	r := New(kv, log)
	r.Toggle(testCard("surface-3"))

	r2 := New(kv, log)
	if !r2.IsFavorite("surface-3") {
		t.Fatal("favorite lost across reload")
	}
}
