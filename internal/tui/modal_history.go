package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type historyTab int

const (
	tabHistory historyTab = iota
	tabFavorites
)

// HistoryModal shows the draw history and the favorites list side by side,
// switchable with tab. Favorites can be removed from here; clearing the
// history also refills every deck.
type HistoryModal struct {
	m        *Model
	viewport viewport.Model
	tab      historyTab
	cursor   int
}

func NewHistoryModal(m *Model) *HistoryModal {
	return &HistoryModal{
		m:        m,
		viewport: viewport.New(80, 20),
	}
}

func (h *HistoryModal) ID() string { return "history" }

func (h *HistoryModal) Update(msg tea.Msg) (bool, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return false, nil
	}

	switch keyMsg.String() {
	case "escape", "esc", "q":
		return true, nil
	case "tab":
		if h.tab == tabHistory {
			h.tab = tabFavorites
		} else {
			h.tab = tabHistory
		}
		h.cursor = 0
		h.viewport.GotoTop()
	case "up", "k":
		if h.tab == tabFavorites && h.cursor > 0 {
			h.cursor--
		}
		h.viewport.ScrollUp(1)
	case "down", "j":
		if h.tab == tabFavorites && h.cursor < len(h.m.session.Favorites())-1 {
			h.cursor++
		}
		h.viewport.ScrollDown(1)
	case "pgup":
		h.viewport.HalfPageUp()
	case "pgdown":
		h.viewport.HalfPageDown()
	case "x":
		if h.tab == tabFavorites {
			favs := h.m.session.Favorites()
			if h.cursor < len(favs) {
				h.m.session.RemoveFavorite(favs[h.cursor].ID)
				if h.cursor >= len(favs)-1 && h.cursor > 0 {
					h.cursor--
				}
			}
		}
	case "c":
		if h.tab == tabHistory {
			h.m.session.ClearHistory()
		}
	}

	return false, nil
}

func (h *HistoryModal) View(width, height int) string {
	modalWidth := width - 8
	modalHeight := height - 4

	contentWidth := modalWidth - 4
	contentHeight := modalHeight - 4

	h.viewport.Width = contentWidth
	h.viewport.Height = contentHeight
	h.viewport.SetContent(h.renderContent(contentWidth))

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
		Render(h.headerText())

	statusBar := helpStyle.Render(h.statusText())

	modal := lipgloss.JoinVertical(lipgloss.Left, header, contentPane, statusBar)

	finalModal := lipgloss.NewStyle().
		Width(modalWidth).
		Height(modalHeight).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorAccent).
		Render(modal)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, finalModal)
}

func (h *HistoryModal) headerText() string {
	if h.tab == tabFavorites {
		return fmt.Sprintf("Favorites (%d)  ·  [tab] history", len(h.m.session.Favorites()))
	}
	return fmt.Sprintf("History (%d)  ·  [tab] favorites", len(h.m.session.History()))
}

func (h *HistoryModal) statusText() string {
	if h.tab == tabFavorites {
		return "up/down: move | x: remove | tab: switch | esc: close"
	}
	return "up/down: scroll | c: clear history & refill decks | tab: switch | esc: close"
}

func (h *HistoryModal) renderContent(width int) string {
	if h.tab == tabFavorites {
		return h.renderFavorites(width)
	}
	return h.renderHistory(width)
}

func (h *HistoryModal) renderHistory(width int) string {
	items := h.m.session.History()
	if len(items) == 0 {
		return helpStyle.Render("Nothing drawn yet.")
	}

	var b strings.Builder
	for _, item := range items {
		when := item.Time.Format("Jan 2 15:04")
		fmt.Fprintf(&b, "%s  %s\n",
			helpStyle.Render(when),
			subtitleStyle.Render(item.Category))
		b.WriteString(truncate(item.Question, width-2) + "\n\n")
	}
	return b.String()
}

func (h *HistoryModal) renderFavorites(width int) string {
	favs := h.m.session.Favorites()
	if len(favs) == 0 {
		return helpStyle.Render("No favorites yet. Press f on a card to save it.")
	}

	var b strings.Builder
	for i, fav := range favs {
		marker := "  "
		if i == h.cursor {
			marker = "> "
		}
		name := lipgloss.NewStyle().Foreground(deckColor(fav.ColorTag)).Render(fav.DeckName)
		b.WriteString(marker + name + "\n")
		b.WriteString("  " + truncate(fav.Question, width-4) + "\n")
		b.WriteString("  " + helpStyle.Render(truncate(fav.FollowUp, width-4)) + "\n\n")
	}
	return b.String()
}

// truncate shortens s to max runes, never splitting a multi-byte rune.
func truncate(s string, max int) string {
	if max < 4 {
		return s
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
