package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/unfoldapp/unfold/internal/model"
)

func (m *Model) updateBuilder(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Escape):
		m.resetBuilder()
		m.session.ResetToMenu()
		return m, nil

	case key.Matches(msg, m.keys.NextField):
		m.builderInputs[m.builderFocus].Blur()
		m.builderFocus = (m.builderFocus + 1) % fieldCount
		m.builderInputs[m.builderFocus].Focus()
		return m, nil

	case key.Matches(msg, m.keys.AddQuestion):
		q := strings.TrimSpace(m.builderInputs[fieldQuestion].Value())
		f := strings.TrimSpace(m.builderInputs[fieldFollowUp].Value())
		if q == "" || f == "" {
			m.builderErr = "a card needs both a question and a follow-up"
			return m, nil
		}
		m.builderStaged = append(m.builderStaged, model.QuestionPair{Question: q, FollowUp: f})
		m.builderInputs[fieldQuestion].SetValue("")
		m.builderInputs[fieldFollowUp].SetValue("")
		m.builderErr = ""
		return m, nil

	case key.Matches(msg, m.keys.SaveDeck):
		err := m.session.SaveCustomDeck(
			m.builderInputs[fieldName].Value(),
			m.builderInputs[fieldDescription].Value(),
			m.builderStaged,
		)
		if err != nil {
			m.builderErr = builderErrMessage(err)
			return m, nil
		}
		m.resetBuilder()
		return m, nil
	}

	// Everything else goes to the focused text input.
	var cmd tea.Cmd
	m.builderInputs[m.builderFocus], cmd = m.builderInputs[m.builderFocus].Update(msg)
	return m, cmd
}

// builderErrMessage turns validation failures into a short human line.
func builderErrMessage(err error) string {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "Name"):
		return "the deck needs a name"
	case strings.Contains(msg, "Questions"):
		return "add at least one question before saving"
	default:
		return "could not save: " + msg
	}
}

func (m *Model) viewBuilder() string {
	title := titleStyle.Render("Create a deck")

	var fields []string
	labels := [fieldCount]string{"Name", "Description", "Question", "Follow-up"}
	for i := range m.builderInputs {
		label := helpStyle.Render(labels[i])
		if builderField(i) == m.builderFocus {
			label = selectedItemStyle.Render(labels[i])
		}
		fields = append(fields, label, m.builderInputs[i].View())
	}

	staged := helpStyle.Render("no cards yet")
	if n := len(m.builderStaged); n > 0 {
		lines := make([]string, 0, n+1)
		lines = append(lines, subtitleStyle.Render(fmt.Sprintf("%d card(s) staged:", n)))
		for i, q := range m.builderStaged {
			lines = append(lines, helpStyle.Render(fmt.Sprintf("  %d. %s", i+1, truncate(q.Question, 50))))
		}
		staged = lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	var errLine string
	if m.builderErr != "" {
		errLine = errorStyle.Render(m.builderErr)
	}

	status := helpStyle.Render("tab: next field | ctrl+a: add card | ctrl+s: save deck | esc: cancel")

	parts := []string{title, ""}
	parts = append(parts, fields...)
	parts = append(parts, "", staged)
	if errLine != "" {
		parts = append(parts, "", errLine)
	}
	parts = append(parts, "", status)

	block := lipgloss.JoinVertical(lipgloss.Left, parts...)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, block)
}
