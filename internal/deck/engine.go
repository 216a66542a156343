// Package deck implements the draw engine and the custom deck registry.
//
// The engine draws cards without replacement: per deck it keeps a persisted
// record of already-drawn indices and picks uniformly at random among the
// remaining ones. Each draw is an independent uniform choice, not a shuffled
// walk, so interleaved draws from different decks do not affect each other.
package deck

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/unfoldapp/unfold/internal/model"
	"github.com/unfoldapp/unfold/internal/store"
)

// BuiltinSource supplies the immutable built-in decks. *catalog.Catalog
// satisfies it; tests use small fixture catalogs.
type BuiltinSource interface {
	Deck(id string) (model.Deck, bool)
	Decks() []model.Deck
}

// CustomSource supplies user-authored decks to the engine.
type CustomSource interface {
	Decks() []model.CustomDeck
	Deck(id string) (model.CustomDeck, bool)
}

// Engine draws cards and owns the persisted used-index record.
type Engine struct {
	catalog BuiltinSource
	custom  CustomSource
	kv      store.KV
	log     *slog.Logger

	// intn picks a uniform int in [0, n). Injectable for deterministic tests.
	intn func(n int) int

	// used maps deck id to the indices drawn since that deck's last reset.
	used map[string][]int
}

// NewEngine loads the used-index record from kv and returns a ready engine.
// A read failure degrades to an empty record and is logged, never fatal.
func NewEngine(cat BuiltinSource, custom CustomSource, kv store.KV, log *slog.Logger) *Engine {
	e := &Engine{
		catalog: cat,
		custom:  custom,
		kv:      kv,
		log:     log,
		intn:    rand.IntN,
		used:    make(map[string][]int),
	}

	raw, ok, err := kv.Get(model.KeyUsedIndices)
	if err != nil {
		log.Warn("loading used-index record failed, starting empty", "error", err)
		return e
	}
	if ok {
		if err := json.Unmarshal(raw, &e.used); err != nil {
			log.Warn("used-index record is malformed, starting empty", "error", err)
			e.used = make(map[string][]int)
		}
		e.sanitize()
	}
	return e
}

// sanitize drops used indices that no longer fit their deck. A record can
// desync from the catalog when deck content changes between runs; out-of-range
// or duplicate entries must never make a deck look emptier than it is.
func (e *Engine) sanitize() {
	for id, indices := range e.used {
		d, ok := e.deck(id)
		if !ok {
			continue
		}
		seen := make(map[int]struct{}, len(indices))
		kept := indices[:0]
		for _, i := range indices {
			if i < 0 || i >= len(d.Questions) {
				continue
			}
			if _, dup := seen[i]; dup {
				continue
			}
			seen[i] = struct{}{}
			kept = append(kept, i)
		}
		if len(kept) != len(indices) {
			e.log.Warn("dropping stale used indices", "deck", id, "dropped", len(indices)-len(kept))
			e.used[id] = kept
		}
	}
}

// SetRandFunc overrides the uniform picker. Tests use this to make draws
// deterministic.
func (e *Engine) SetRandFunc(intn func(n int) int) {
	e.intn = intn
}

// deck resolves a deck id against the catalog and then the custom registry.
func (e *Engine) deck(id string) (model.Deck, bool) {
	if d, ok := e.catalog.Deck(id); ok {
		return d, true
	}
	if e.custom != nil {
		if cd, ok := e.custom.Deck(id); ok {
			return cd.AsDeck(), true
		}
	}
	return model.Deck{}, false
}

// allDecks returns every playable deck, built-in first in catalog order, then
// custom decks in creation order. The ordering keeps shuffle-mode unions
// deterministic for a given random sequence.
func (e *Engine) allDecks() []model.Deck {
	decks := e.catalog.Decks()
	if e.custom != nil {
		for _, cd := range e.custom.Decks() {
			decks = append(decks, cd.AsDeck())
		}
	}
	return decks
}

// TotalCount returns the number of questions in the deck, 0 if unknown.
func (e *Engine) TotalCount(deckID string) int {
	d, ok := e.deck(deckID)
	if !ok {
		return 0
	}
	return len(d.Questions)
}

// AvailableCount returns the number of not-yet-drawn questions in the deck,
// 0 if unknown.
func (e *Engine) AvailableCount(deckID string) int {
	d, ok := e.deck(deckID)
	if !ok {
		return 0
	}
	return len(e.availableIndices(d))
}

// TotalAvailable returns the count of undrawn cards across every deck,
// built-in and custom. Shuffle mode shows this as its remaining count.
func (e *Engine) TotalAvailable() int {
	total := 0
	for _, d := range e.allDecks() {
		total += len(e.availableIndices(d))
	}
	return total
}

// DrawOne draws one card from the deck without replacement. The second
// return is false when the deck is unknown or exhausted.
func (e *Engine) DrawOne(deckID string) (model.DrawnCard, bool) {
	d, ok := e.deck(deckID)
	if !ok {
		return model.DrawnCard{}, false
	}

	available := e.availableIndices(d)
	if len(available) == 0 {
		return model.DrawnCard{}, false
	}

	idx := available[e.intn(len(available))]
	e.used[deckID] = append(e.used[deckID], idx)
	e.persist()

	return e.buildCard(d, idx), true
}

// DrawFromAnyDeck draws uniformly from the union of undrawn (deck, index)
// pairs across every deck. A deck with more remaining cards is
// proportionally more likely to supply the card; that falls out of the
// uniform choice over the flattened union.
func (e *Engine) DrawFromAnyDeck() (model.DrawnCard, bool) {
	type pair struct {
		deck model.Deck
		idx  int
	}
	var union []pair
	for _, d := range e.allDecks() {
		for _, idx := range e.availableIndices(d) {
			union = append(union, pair{deck: d, idx: idx})
		}
	}

	if len(union) == 0 {
		return model.DrawnCard{}, false
	}

	choice := union[e.intn(len(union))]
	e.used[choice.deck.ID] = append(e.used[choice.deck.ID], choice.idx)
	e.persist()

	return e.buildCard(choice.deck, choice.idx), true
}

// Skip returns index to the deck's available pool. The card may be redrawn
// immediately by chance. Session statistics are the caller's concern.
func (e *Engine) Skip(deckID string, index int) {
	current, ok := e.used[deckID]
	if !ok {
		return
	}
	next := current[:0]
	for _, i := range current {
		if i != index {
			next = append(next, i)
		}
	}
	e.used[deckID] = next
	e.persist()
}

// ResetDeck clears the deck's used-index record, restoring the full pool.
// Idempotent.
func (e *Engine) ResetDeck(deckID string) {
	delete(e.used, deckID)
	e.persist()
}

// ResetAll clears the entire used-index record.
func (e *Engine) ResetAll() {
	e.used = make(map[string][]int)
	e.persist()
}

// UsedCount returns how many indices are recorded as drawn for the deck.
func (e *Engine) UsedCount(deckID string) int {
	return len(e.used[deckID])
}

func (e *Engine) availableIndices(d model.Deck) []int {
	usedSet := make(map[int]struct{}, len(e.used[d.ID]))
	for _, i := range e.used[d.ID] {
		usedSet[i] = struct{}{}
	}
	available := make([]int, 0, len(d.Questions))
	for i := range d.Questions {
		if _, taken := usedSet[i]; !taken {
			available = append(available, i)
		}
	}
	return available
}

func (e *Engine) buildCard(d model.Deck, idx int) model.DrawnCard {
	q := d.Questions[idx]
	return model.DrawnCard{
		ID:            fmt.Sprintf("%s-%d", d.ID, idx),
		Question:      q.Question,
		FollowUp:      q.FollowUp,
		Category:      d.Name,
		ColorTag:      d.ColorTag,
		DeckID:        d.ID,
		QuestionIndex: idx,
	}
}

// persist writes the used-index record through to the store. A write failure
// keeps the in-memory record authoritative and is logged.
func (e *Engine) persist() {
	raw, err := json.Marshal(e.used)
	if err != nil {
		e.log.Warn("marshaling used-index record failed", "error", err)
		return
	}
	if err := e.kv.Set(model.KeyUsedIndices, raw); err != nil {
		e.log.Warn("persisting used-index record failed", "error", err)
	}
}
