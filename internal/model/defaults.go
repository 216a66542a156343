package model

// Shared defaults used by the session and the CLI binary.
const (
	DefaultCardsPerDeck = 3
	MinCardsPerDeck     = 1
)

// Store keys for the persisted blobs. Absence of a key is an empty default;
// there is no schema versioning (see SPEC notes on persistence).
const (
	KeyUsedIndices  = "unfold.used-indices"
	KeyCustomDecks  = "unfold.custom-decks"
	KeyFavorites    = "unfold.favorites"
	KeyHistory      = "unfold.history"
	KeyCardsPerDeck = "unfold.cards-per-deck"
)
