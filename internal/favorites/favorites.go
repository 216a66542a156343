// Package favorites keeps the set of cards the user has pinned.
package favorites

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/unfoldapp/unfold/internal/model"
	"github.com/unfoldapp/unfold/internal/store"
)

// Registry is a persisted set of favorite cards keyed by composite card id.
type Registry struct {
	kv    store.KV
	log   *slog.Logger
	cards []model.FavoriteCard
}

// New loads the favorites list from kv. A read failure degrades to an empty
// set and is logged.
func New(kv store.KV, log *slog.Logger) *Registry {
	r := &Registry{kv: kv, log: log}

	raw, ok, err := kv.Get(model.KeyFavorites)
	if err != nil {
		log.Warn("loading favorites failed, starting empty", "error", err)
		return r
	}
	if ok {
		if err := json.Unmarshal(raw, &r.cards); err != nil {
			log.Warn("favorites record is malformed, starting empty", "error", err)
			r.cards = nil
		}
	}
	return r
}

// IsFavorite reports whether the card id is pinned.
func (r *Registry) IsFavorite(cardID string) bool {
	for _, c := range r.cards {
		if c.ID == cardID {
			return true
		}
	}
	return false
}

// Toggle pins the card if absent, unpins it if present.
func (r *Registry) Toggle(card model.FavoriteCard) {
	if r.IsFavorite(card.ID) {
		r.Remove(card.ID)
		return
	}
	card.SavedAt = time.Now()
	r.cards = append(r.cards, card)
	r.persist()
}

// Remove unpins the card with the given id, if present.
func (r *Registry) Remove(cardID string) {
	next := r.cards[:0]
	for _, c := range r.cards {
		if c.ID != cardID {
			next = append(next, c)
		}
	}
	r.cards = next
	r.persist()
}

// Cards returns the favorites in the order they were saved.
func (r *Registry) Cards() []model.FavoriteCard {
	return append([]model.FavoriteCard(nil), r.cards...)
}

// Count returns the number of pinned cards.
func (r *Registry) Count() int {
	return len(r.cards)
}

// Clear unpins everything.
func (r *Registry) Clear() {
	r.cards = nil
	r.persist()
}

func (r *Registry) persist() {
	raw, err := json.Marshal(r.cards)
	if err != nil {
		r.log.Warn("marshaling favorites failed", "error", err)
		return
	}
	if err := r.kv.Set(model.KeyFavorites, raw); err != nil {
		r.log.Warn("persisting favorites failed", "error", err)
	}
}
