package tui

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/unfoldapp/unfold/internal/game"
	"github.com/unfoldapp/unfold/internal/model"
)

// deckRow is one selectable entry on the deck selector screen.
type deckRow struct {
	ID       string
	Name     string
	Tagline  string
	ColorTag string
	Custom   bool
}

// builderField indexes the focusable inputs on the deck builder screen.
type builderField int

const (
	fieldName builderField = iota
	fieldDescription
	fieldQuestion
	fieldFollowUp
	fieldCount
)

// Model is the top-level Bubble Tea model. All game semantics live in the
// session; the model owns presentation state only: cursors, input widgets,
// the modal stack, and the animation timers.
type Model struct {
	session *game.Session
	keys    KeyMap
	log     *slog.Logger

	width  int
	height int

	modalStack []Modal

	reduceMotion bool

	// Menu and deck selector cursors.
	menuCursor int
	deckCursor int

	// Card swap staging. swapGen invalidates in-flight swap timers whenever
	// the displayed card changes by other means.
	swapGen     int
	swapPending bool
	pendingSwap func()

	// Deck transition interstitial. transitionGen invalidates the phase
	// timers of an interstitial that was cancelled or superseded.
	transitionGen   int
	transitionPhase transitionPhase

	// Deck builder state.
	builderInputs [fieldCount]textinput.Model
	builderFocus  builderField
	builderStaged []model.QuestionPair
	builderErr    string
}

// Config carries presentation settings into the model.
type Config struct {
	ReduceMotion bool
}

// NewModel wires the model around a session.
func NewModel(session *game.Session, cfg Config, log *slog.Logger) *Model {
	m := &Model{
		session:      session,
		keys:         DefaultKeyMap(),
		log:          log,
		reduceMotion: cfg.ReduceMotion,
	}

	labels := [fieldCount]string{"Deck name", "Description", "Question", "Follow-up"}
	for i := range m.builderInputs {
		in := textinput.New()
		in.Placeholder = labels[i]
		in.CharLimit = 200
		in.Width = 48
		m.builderInputs[i] = in
	}
	m.builderInputs[fieldName].Focus()

	return m
}

// PushModal pushes a modal onto the stack. Deduplicates by ID.
func (m *Model) PushModal(modal Modal) {
	for _, existing := range m.modalStack {
		if existing.ID() == modal.ID() {
			return
		}
	}
	m.modalStack = append(m.modalStack, modal)
}

// PopModal removes the topmost modal from the stack.
func (m *Model) PopModal() {
	if len(m.modalStack) > 0 {
		m.modalStack = m.modalStack[:len(m.modalStack)-1]
	}
}

// TopModal returns the topmost modal, or nil if the stack is empty.
func (m *Model) TopModal() Modal {
	if len(m.modalStack) == 0 {
		return nil
	}
	return m.modalStack[len(m.modalStack)-1]
}

// deckRows lists the built-in decks followed by the custom ones, the order
// the selector displays them in.
func (m *Model) deckRows() []deckRow {
	var rows []deckRow
	for _, d := range m.session.BuiltinDecks() {
		rows = append(rows, deckRow{
			ID:       d.ID,
			Name:     d.Name,
			Tagline:  d.Description,
			ColorTag: d.ColorTag,
		})
	}
	for _, d := range m.session.CustomDecks() {
		rows = append(rows, deckRow{
			ID:       d.ID,
			Name:     d.Name,
			Tagline:  d.Description,
			ColorTag: d.ColorTag,
			Custom:   true,
		})
	}
	return rows
}

func (m *Model) clampDeckCursor() {
	if n := len(m.deckRows()); m.deckCursor >= n {
		m.deckCursor = n - 1
	}
	if m.deckCursor < 0 {
		m.deckCursor = 0
	}
}

// resetBuilder clears all builder inputs and staged questions.
func (m *Model) resetBuilder() {
	for i := range m.builderInputs {
		m.builderInputs[i].SetValue("")
		m.builderInputs[i].Blur()
	}
	m.builderInputs[fieldName].Focus()
	m.builderFocus = fieldName
	m.builderStaged = nil
	m.builderErr = ""
}
