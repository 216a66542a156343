package deck

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/unfoldapp/unfold/internal/catalog"
	"github.com/unfoldapp/unfold/internal/model"
	"github.com/unfoldapp/unfold/internal/store"
)

// Draft is a custom deck as entered in the deck builder, before it gets an
// id and a palette slot. Fields are trimmed before validation so whitespace
// never counts as content.
type Draft struct {
	Name        string          `validate:"required"`
	Description string          `validate:"required"`
	Questions   []draftQuestion `validate:"required,min=1,dive"`
}

type draftQuestion struct {
	Question string `validate:"required"`
	FollowUp string `validate:"required"`
}

// Registry owns the user-authored decks layered on top of the catalog.
type Registry struct {
	kv       store.KV
	log      *slog.Logger
	validate *validator.Validate

	decks []model.CustomDeck
	// created counts every deck ever created, so palette slots are stable
	// across deletions: the Nth created deck always gets slot N mod palette.
	created int
}

// customRecord is the persisted shape of the registry.
type customRecord struct {
	Decks   []model.CustomDeck `json:"decks"`
	Created int                `json:"created"`
}

// NewRegistry loads the custom deck list from kv. A read failure degrades to
// an empty registry and is logged.
func NewRegistry(kv store.KV, log *slog.Logger) *Registry {
	r := &Registry{
		kv:       kv,
		log:      log,
		validate: validator.New(),
	}

	raw, ok, err := kv.Get(model.KeyCustomDecks)
	if err != nil {
		log.Warn("loading custom decks failed, starting empty", "error", err)
		return r
	}
	if ok {
		var rec customRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			log.Warn("custom deck record is malformed, starting empty", "error", err)
			return r
		}
		r.decks = rec.Decks
		r.created = rec.Created
		if r.created < len(r.decks) {
			r.created = len(r.decks)
		}
	}
	return r
}

// Create validates the draft and persists a new custom deck. The deck id is
// generated here and is stable for the registry's lifetime.
func (r *Registry) Create(name, description string, questions []model.QuestionPair) (model.CustomDeck, error) {
	draft := Draft{
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
	}
	for _, q := range questions {
		draft.Questions = append(draft.Questions, draftQuestion{
			Question: strings.TrimSpace(q.Question),
			FollowUp: strings.TrimSpace(q.FollowUp),
		})
	}

	if err := r.validate.Struct(draft); err != nil {
		return model.CustomDeck{}, fmt.Errorf("deck: invalid custom deck: %w", err)
	}

	pairs := make([]model.QuestionPair, len(draft.Questions))
	for i, q := range draft.Questions {
		pairs[i] = model.QuestionPair{Question: q.Question, FollowUp: q.FollowUp}
	}

	d := model.CustomDeck{
		ID:          "custom-" + uuid.NewString(),
		Name:        draft.Name,
		Description: draft.Description,
		ColorTag:    catalog.Palette[r.created%len(catalog.Palette)],
		Questions:   pairs,
		CreatedAt:   time.Now(),
	}

	r.decks = append(r.decks, d)
	r.created++
	r.persist()
	return d, nil
}

// Decks returns the custom decks in creation order.
func (r *Registry) Decks() []model.CustomDeck {
	return append([]model.CustomDeck(nil), r.decks...)
}

// Deck returns the custom deck with the given id.
func (r *Registry) Deck(id string) (model.CustomDeck, bool) {
	for _, d := range r.decks {
		if d.ID == id {
			return d, true
		}
	}
	return model.CustomDeck{}, false
}

// Count returns the number of custom decks currently registered.
func (r *Registry) Count() int {
	return len(r.decks)
}

// Delete removes the deck with the given id. The palette creation counter is
// deliberately not decremented.
func (r *Registry) Delete(id string) {
	next := r.decks[:0]
	for _, d := range r.decks {
		if d.ID != id {
			next = append(next, d)
		}
	}
	r.decks = next
	r.persist()
}

// AddQuestion appends a question pair to an existing custom deck.
func (r *Registry) AddQuestion(deckID string, q model.QuestionPair) error {
	q.Question = strings.TrimSpace(q.Question)
	q.FollowUp = strings.TrimSpace(q.FollowUp)
	if q.Question == "" || q.FollowUp == "" {
		return fmt.Errorf("deck: question and follow-up must be non-empty")
	}
	for i := range r.decks {
		if r.decks[i].ID == deckID {
			r.decks[i].Questions = append(r.decks[i].Questions, q)
			r.persist()
			return nil
		}
	}
	return fmt.Errorf("deck: unknown custom deck %q", deckID)
}

// RemoveQuestion removes the question at index from a custom deck.
// Subsequent questions are re-indexed, which makes previously recorded used
// indices and favorite ids for this deck stale — a known limitation carried
// over from the original data model.
func (r *Registry) RemoveQuestion(deckID string, index int) error {
	for i := range r.decks {
		if r.decks[i].ID != deckID {
			continue
		}
		qs := r.decks[i].Questions
		if index < 0 || index >= len(qs) {
			return fmt.Errorf("deck: question index %d out of range", index)
		}
		r.decks[i].Questions = append(qs[:index], qs[index+1:]...)
		r.persist()
		return nil
	}
	return fmt.Errorf("deck: unknown custom deck %q", deckID)
}

func (r *Registry) persist() {
	raw, err := json.Marshal(customRecord{Decks: r.decks, Created: r.created})
	if err != nil {
		r.log.Warn("marshaling custom decks failed", "error", err)
		return
	}
	if err := r.kv.Set(model.KeyCustomDecks, raw); err != nil {
		r.log.Warn("persisting custom decks failed", "error", err)
	}
}
