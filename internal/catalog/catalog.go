// Package catalog holds the built-in deck catalog. The deck content ships as
// an embedded YAML document so the binary is self-contained.
package catalog

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/unfoldapp/unfold/internal/model"
)

//go:embed decks.yml
var decksYAML []byte

// JourneyOrder is the fixed deck traversal order for journey mode.
// It covers built-in decks only; custom decks never join a journey.
var JourneyOrder = []string{"surface", "connect", "deepen", "unfold"}

// Palette is the five-slot color palette cycled through by custom decks.
// The Nth created custom deck gets slot N mod len(Palette), independent of
// deletions.
var Palette = []string{"205", "51", "42", "208", "99"}

type deckSpec struct {
	ID          string               `yaml:"id"`
	Name        string               `yaml:"name"`
	Description string               `yaml:"desc"`
	Color       string               `yaml:"color"`
	Questions   []model.QuestionPair `yaml:"questions"`
}

type deckFile struct {
	Decks []deckSpec `yaml:"decks"`
}

// Catalog is the immutable set of built-in decks, fixed at process start.
type Catalog struct {
	decks map[string]model.Deck
	order []string
}

// Load parses the embedded deck catalog.
func Load() (*Catalog, error) {
	var file deckFile
	if err := yaml.Unmarshal(decksYAML, &file); err != nil {
		return nil, fmt.Errorf("catalog: parse embedded decks: %w", err)
	}
	if len(file.Decks) == 0 {
		return nil, fmt.Errorf("catalog: embedded catalog is empty")
	}

	c := &Catalog{
		decks: make(map[string]model.Deck, len(file.Decks)),
		order: make([]string, 0, len(file.Decks)),
	}
	for _, spec := range file.Decks {
		if spec.ID == "" || spec.Name == "" {
			return nil, fmt.Errorf("catalog: deck with missing id or name")
		}
		if len(spec.Questions) == 0 {
			return nil, fmt.Errorf("catalog: deck %q has no questions", spec.ID)
		}
		if _, dup := c.decks[spec.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate deck id %q", spec.ID)
		}
		c.decks[spec.ID] = model.Deck{
			ID:          spec.ID,
			Name:        spec.Name,
			Description: spec.Description,
			ColorTag:    spec.Color,
			Questions:   spec.Questions,
		}
		c.order = append(c.order, spec.ID)
	}

	for _, id := range JourneyOrder {
		if _, ok := c.decks[id]; !ok {
			return nil, fmt.Errorf("catalog: journey order references unknown deck %q", id)
		}
	}
	return c, nil
}

// Deck returns the built-in deck with the given id.
func (c *Catalog) Deck(id string) (model.Deck, bool) {
	d, ok := c.decks[id]
	return d, ok
}

// Decks returns all built-in decks in declared order.
func (c *Catalog) Decks() []model.Deck {
	out := make([]model.Deck, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.decks[id])
	}
	return out
}

// IDs returns the built-in deck ids in declared order.
func (c *Catalog) IDs() []string {
	return append([]string(nil), c.order...)
}

// MinJourneySize returns the size of the smallest journey deck. Journey
// setup clamps cards-per-deck to this so every deck can supply enough cards.
func (c *Catalog) MinJourneySize() int {
	minSize := 0
	for i, id := range JourneyOrder {
		n := len(c.decks[id].Questions)
		if i == 0 || n < minSize {
			minSize = n
		}
	}
	return minSize
}
