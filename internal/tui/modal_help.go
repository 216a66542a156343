package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// HelpModal displays the key binding reference.
type HelpModal struct {
	viewport viewport.Model
	content  string
}

func NewHelpModal(keys KeyMap) *HelpModal {
	return &HelpModal{
		viewport: viewport.New(80, 20),
		content:  renderHelpContent(keys),
	}
}

func (h *HelpModal) ID() string { return "help" }

func (h *HelpModal) Update(msg tea.Msg) (bool, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			h.viewport.ScrollUp(1)
			return false, nil
		case "down", "j":
			h.viewport.ScrollDown(1)
			return false, nil
		case "pgup":
			h.viewport.HalfPageUp()
			return false, nil
		case "pgdown":
			h.viewport.HalfPageDown()
			return false, nil
		case "?", "escape", "esc", "q":
			return true, nil
		}
		var cmd tea.Cmd
		h.viewport, cmd = h.viewport.Update(msg)
		return false, cmd
	}
	return false, nil
}

func (h *HelpModal) View(width, height int) string {
	modalWidth := width - 8
	modalHeight := height - 4

	contentWidth := modalWidth - 4
	contentHeight := modalHeight - 4

	h.viewport.Width = contentWidth
	h.viewport.Height = contentHeight
	h.viewport.SetContent(h.content)

	contentPane := lipgloss.NewStyle().
		Width(contentWidth).
		Height(contentHeight).
		Border(lipgloss.NormalBorder()).
		BorderForeground(ColorGray).
		Render(h.viewport.View())

	header := lipgloss.NewStyle().
		Width(contentWidth).
		Foreground(ColorAccent).
		Bold(true).
		Render("Help")

	statusBar := helpStyle.Render("up/down: scroll | esc: close")

	modal := lipgloss.JoinVertical(lipgloss.Left, header, contentPane, statusBar)

	finalModal := lipgloss.NewStyle().
		Width(modalWidth).
		Height(modalHeight).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorAccent).
		Render(modal)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, finalModal)
}

func renderHelpContent(keys KeyMap) string {
	section := func(title string, bindings ...key.Binding) string {
		lines := []string{titleStyle.Render(title)}
		for _, b := range bindings {
			h := b.Help()
			lines = append(lines, fmt.Sprintf("  %-12s %s", h.Key, h.Desc))
		}
		return strings.Join(lines, "\n")
	}

	return strings.Join([]string{
		section("Everywhere", keys.Help, keys.History, keys.Escape, keys.Quit, keys.ForceQuit),
		section("Menus", keys.Up, keys.Down, keys.Enter),
		section("On a card", keys.Flip, keys.Next, keys.Skip, keys.Favorite, keys.EndRound),
		section("Deck selector", keys.ResetDeck, keys.DeleteDeck),
		section("Journey setup", keys.More, keys.Less),
		section("After a round", keys.PlayAgain, keys.Home),
		section("Deck builder", keys.NextField, keys.AddQuestion, keys.SaveDeck),
	}, "\n\n")
}
