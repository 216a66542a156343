package model

import "time"

// QuestionPair is one card: the opening question on the front and the
// follow-up on the back. Immutable once drawn.
type QuestionPair struct {
	Question string `yaml:"q" json:"q"`
	FollowUp string `yaml:"followUp" json:"followUp"`
}

// Deck is a playable deck. Built-in decks come from the embedded catalog and
// are fixed at process start; custom decks come from the registry. Questions
// are ordered — a question's index is its identity within the deck.
type Deck struct {
	ID          string
	Name        string
	Description string
	ColorTag    string // terminal color for the deck's accent
	Questions   []QuestionPair
}

// DrawnCard is the result of a single draw. ID is the composite
// "deckID-questionIndex" identity used for favoriting. It is derived, not
// stored, and goes stale if a custom deck is re-indexed after a removal.
type DrawnCard struct {
	ID            string
	Question      string
	FollowUp      string
	Category      string // deck display name
	ColorTag      string
	DeckID        string
	QuestionIndex int
}

// FavoriteCard is a pinned card, persisted across sessions.
type FavoriteCard struct {
	ID       string    `json:"id"`
	Question string    `json:"q"`
	FollowUp string    `json:"followUp"`
	DeckID   string    `json:"deckId"`
	DeckName string    `json:"deckName"`
	ColorTag string    `json:"colorTag"`
	SavedAt  time.Time `json:"savedAt"`
}

// HistoryItem is one entry of the persisted draw history.
type HistoryItem struct {
	Question string    `json:"q"`
	Category string    `json:"cat"`
	Time     time.Time `json:"time"`
}

// PlayedQuestion records one drawn card for the current session's recap.
// Unlike HistoryItem it does not survive a return to the menu.
type PlayedQuestion struct {
	Question string
	FollowUp string
	DeckID   string
}

// CustomDeck is a user-authored deck stored in the key-value store.
type CustomDeck struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	ColorTag    string         `json:"colorTag"`
	Questions   []QuestionPair `json:"questions"`
	CreatedAt   time.Time      `json:"createdAt"`
}

// AsDeck converts a custom deck to the common Deck shape used by the engine.
func (c CustomDeck) AsDeck() Deck {
	return Deck{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		ColorTag:    c.ColorTag,
		Questions:   c.Questions,
	}
}
