package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (m *Model) updateDeckSelect(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := m.deckRows()
	m.clampDeckCursor()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Escape):
		m.session.ResetToMenu()
	case key.Matches(msg, m.keys.Up):
		if m.deckCursor > 0 {
			m.deckCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.deckCursor < len(rows)-1 {
			m.deckCursor++
		}
	case key.Matches(msg, m.keys.Enter):
		if len(rows) > 0 {
			row := rows[m.deckCursor]
			if m.session.AvailableCount(row.ID) > 0 {
				m.session.SelectDeck(row.ID)
			}
		}
	case key.Matches(msg, m.keys.ResetDeck):
		if len(rows) > 0 {
			m.session.ResetDeck(rows[m.deckCursor].ID)
		}
	case key.Matches(msg, m.keys.DeleteDeck):
		if len(rows) > 0 && rows[m.deckCursor].Custom {
			m.session.DeleteCustomDeck(rows[m.deckCursor].ID)
			m.clampDeckCursor()
		}
	case key.Matches(msg, m.keys.History):
		m.PushModal(NewHistoryModal(m))
	case key.Matches(msg, m.keys.Help):
		m.PushModal(NewHelpModal(m.keys))
	}

	return m, nil
}

func (m *Model) viewDeckSelect() string {
	title := titleStyle.Render("Choose a deck")

	rows := m.deckRows()
	lines := make([]string, 0, len(rows))
	for i, row := range rows {
		avail := m.session.AvailableCount(row.ID)
		total := m.session.TotalCount(row.ID)

		cursor := "  "
		nameStyle := lipgloss.NewStyle().Foreground(deckColor(row.ColorTag))
		if i == m.deckCursor {
			cursor = "> "
			nameStyle = nameStyle.Bold(true)
		}

		count := fmt.Sprintf("%d/%d", avail, total)
		countStyle := helpStyle
		if avail == 0 {
			count += " (empty — r to reset)"
			countStyle = errorStyle
		}
		badge := ""
		if row.Custom {
			badge = subtitleStyle.Render(" · custom")
		}

		line := cursor + nameStyle.Render(row.Name) + badge + "  " + countStyle.Render(count)
		lines = append(lines, line)
		if i == m.deckCursor && row.Tagline != "" {
			lines = append(lines, "    "+helpStyle.Render(row.Tagline))
		}
	}

	list := lipgloss.JoinVertical(lipgloss.Left, lines...)
	status := helpStyle.Render("enter: play | r: reset deck | d: delete custom | esc: menu")

	block := lipgloss.JoinVertical(lipgloss.Center, title, "", list, "", status)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, block)
}
