package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/unfoldapp/unfold/internal/game"
)

type menuItem struct {
	title    string
	subtitle string
	action   func(m *Model) tea.Cmd
}

func menuItems(m *Model) []menuItem {
	items := []menuItem{
		{
			title:    "Freeplay",
			subtitle: "pick a deck, draw at your own pace",
			action: func(m *Model) tea.Cmd {
				m.deckCursor = 0
				m.session.SelectMode(game.ModeFreeplay)
				return nil
			},
		},
		{
			title:    "Journey",
			subtitle: "a guided path through every deck",
			action: func(m *Model) tea.Cmd {
				m.session.SelectMode(game.ModeJourney)
				return nil
			},
		},
		{
			title:    "Shuffle",
			subtitle: "every deck in the mix",
			action: func(m *Model) tea.Cmd {
				m.session.SelectMode(game.ModeShuffle)
				return nil
			},
		},
		{
			title:    "Create a deck",
			subtitle: "write your own questions",
			action: func(m *Model) tea.Cmd {
				m.resetBuilder()
				m.session.OpenDeckBuilder()
				return nil
			},
		},
		{
			title:    "History & favorites",
			subtitle: "cards you have drawn and saved",
			action: func(m *Model) tea.Cmd {
				m.PushModal(NewHistoryModal(m))
				return nil
			},
		},
	}
	if n := m.session.CustomDeckCount(); n > 0 {
		items[3].subtitle = fmt.Sprintf("write your own questions (%d saved)", n)
	}
	return items
}

func (m *Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := menuItems(m)

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.menuCursor > 0 {
			m.menuCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.menuCursor < len(items)-1 {
			m.menuCursor++
		}
	case key.Matches(msg, m.keys.Enter):
		return m, items[m.menuCursor].action(m)
	case key.Matches(msg, m.keys.History):
		m.PushModal(NewHistoryModal(m))
	case key.Matches(msg, m.keys.Help):
		m.PushModal(NewHelpModal(m.keys))
	}

	return m, nil
}

func (m *Model) viewMenu() string {
	title := titleStyle.Render("Unfold")
	tagline := subtitleStyle.Render("conversation prompts for going deeper")

	items := menuItems(m)
	lines := make([]string, 0, len(items))
	for i, item := range items {
		cursor := "  "
		style := itemStyle
		if i == m.menuCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		line := cursor + style.Render(item.title) + "  " + helpStyle.Render(item.subtitle)
		lines = append(lines, line)
	}

	menu := lipgloss.JoinVertical(lipgloss.Left, lines...)
	status := helpStyle.Render("↑/↓: move | enter: select | ?: help | q: quit")

	block := lipgloss.JoinVertical(lipgloss.Center, title, tagline, "", menu, "", status)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, block)
}
