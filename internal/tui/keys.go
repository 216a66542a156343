package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings with built-in help text.
type KeyMap struct {
	// Global
	Quit      key.Binding
	ForceQuit key.Binding
	Help      key.Binding
	Escape    key.Binding
	History   key.Binding

	// Navigation
	Up    key.Binding
	Down  key.Binding
	Enter key.Binding

	// Card screen
	Flip     key.Binding
	Next     key.Binding
	Skip     key.Binding
	Favorite key.Binding
	EndRound key.Binding

	// Deck selector
	ResetDeck  key.Binding
	DeleteDeck key.Binding

	// Journey setup
	More key.Binding
	Less key.Binding

	// Recap
	PlayAgain key.Binding
	Home      key.Binding

	// Deck builder
	NextField   key.Binding
	AddQuestion key.Binding
	SaveDeck    key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "force quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Escape: key.NewBinding(
			key.WithKeys("escape", "esc"),
			key.WithHelp("esc", "back/close"),
		),
		History: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "history & favorites"),
		),

		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),

		Flip: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "flip card"),
		),
		Next: key.NewBinding(
			key.WithKeys("n", "enter"),
			key.WithHelp("n", "next card"),
		),
		Skip: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "skip card"),
		),
		Favorite: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "favorite"),
		),
		EndRound: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "end round"),
		),

		ResetDeck: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset deck"),
		),
		DeleteDeck: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete custom deck"),
		),

		More: key.NewBinding(
			key.WithKeys("+", "=", "right", "l"),
			key.WithHelp("+/→", "more cards"),
		),
		Less: key.NewBinding(
			key.WithKeys("-", "left"),
			key.WithHelp("-/←", "fewer cards"),
		),

		PlayAgain: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "play again"),
		),
		Home: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "main menu"),
		),

		NextField: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		AddQuestion: key.NewBinding(
			key.WithKeys("ctrl+a"),
			key.WithHelp("ctrl+a", "add question"),
		),
		SaveDeck: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save deck"),
		),
	}
}
