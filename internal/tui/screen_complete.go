package tui

import (
	"fmt"
	"sort"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (m *Model) updateComplete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.PlayAgain):
		m.session.PlayAgain()
		return m, m.maybeStartTransition()
	case key.Matches(msg, m.keys.Home), key.Matches(msg, m.keys.Escape):
		m.session.ResetToMenu()
	case key.Matches(msg, m.keys.History):
		m.PushModal(NewHistoryModal(m))
	case key.Matches(msg, m.keys.Help):
		m.PushModal(NewHelpModal(m.keys))
	}

	return m, nil
}

func (m *Model) viewComplete() string {
	st := m.session.State()

	title := titleStyle.Render("Round complete")

	drawn := len(st.PlayedQuestions)
	recap := subtitleStyle.Render(fmt.Sprintf("%d cards drawn · %d skipped", drawn, st.SkippedCount))

	chart := m.renderDeckStatsChart(st.DeckStats)

	status := helpStyle.Render("p: play again | m: main menu | h: history | q: quit")

	parts := []string{title, "", recap}
	if chart != "" {
		parts = append(parts, "", chart)
	}
	parts = append(parts, "", status)

	block := lipgloss.JoinVertical(lipgloss.Center, parts...)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, block)
}

// renderDeckStatsChart draws one bar per deck that contributed cards this
// round, in each deck's accent color, with a legend beside it.
func (m *Model) renderDeckStatsChart(stats map[string]int) string {
	if len(stats) == 0 {
		return ""
	}

	type deckStat struct {
		name  string
		color string
		count int
	}

	var rows []deckStat
	for deckID, count := range stats {
		if count == 0 {
			continue
		}
		name, tag := deckID, ""
		if d, ok := m.session.Deck(deckID); ok {
			name, tag = d.Name, d.ColorTag
		} else {
			for _, cd := range m.session.CustomDecks() {
				if cd.ID == deckID {
					name, tag = cd.Name, cd.ColorTag
					break
				}
			}
		}
		rows = append(rows, deckStat{name: name, color: tag, count: count})
	}
	if len(rows) == 0 {
		return ""
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].name < rows[j].name })

	chartWidth := len(rows) * 3
	chartHeight := 6

	bc := barchart.New(chartWidth, chartHeight,
		barchart.WithBarGap(1),
		barchart.WithBarWidth(2),
		barchart.WithNoAxis(),
	)

	legend := make([]string, 0, len(rows))
	for _, row := range rows {
		style := lipgloss.NewStyle().
			Foreground(deckColor(row.color)).
			Background(deckColor(row.color))
		bc.Push(barchart.BarData{
			Label: "",
			Values: []barchart.BarValue{
				{Name: row.name, Value: float64(row.count), Style: style},
			},
		})
		legend = append(legend, lipgloss.NewStyle().
			Foreground(deckColor(row.color)).
			Render(fmt.Sprintf("■ %s: %d", row.name, row.count)))
	}
	bc.Draw()

	legendBlock := lipgloss.JoinVertical(lipgloss.Left, legend...)
	return lipgloss.JoinHorizontal(lipgloss.Center, bc.View(), "  ", legendBlock)
}
