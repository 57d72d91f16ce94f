package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/elab/internal/core/domain"
	"go.trai.ch/elab/internal/ui/style"
)

const listWidthRatio = 0.4

// View implements tea.Model.
func (m *Model) View() string {
	if len(m.Rows) == 0 {
		return "Waiting for models..."
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, m.list(), m.detail())
}

func (m *Model) list() string {
	var s strings.Builder
	s.WriteString(titleStyle.Render("MODELS") + "\n\n")

	for i, row := range m.Rows {
		icon, color := style.Outcome(row.Outcome.Kind())
		line := fmt.Sprintf("%s %s", icon, row.Name)

		cursor := "  "
		rowStyle := lipgloss.NewStyle().Foreground(color)
		if row.Generation == 0 {
			line = style.Circle + " " + row.Name
			rowStyle = faintStyle
		}
		if i == m.SelectedIdx {
			cursor = selectedStyle.Render("> ")
		}
		s.WriteString(cursor + rowStyle.Render(line) + "\n")
	}

	width := 0
	if m.Width > 0 {
		width = int(float64(m.Width) * listWidthRatio)
	}
	return lipgloss.NewStyle().Width(width).Render(s.String())
}

func (m *Model) detail() string {
	row := m.Selected()
	if row == nil {
		return ""
	}

	lines := []string{
		selectedStyle.Render(row.Name),
		faintStyle.Render(fmt.Sprintf("%s  generation %d", row.Key.String(), row.Generation)),
		"",
	}

	outcome := row.Outcome
	switch {
	case row.Generation == 0:
		lines = append(lines, faintStyle.Render("not elaborated yet"))
	case outcome.Kind() == domain.OutcomeValid:
		lines = append(lines, "valid")
	case outcome.Kind() == domain.OutcomeInvalid:
		lines = append(lines, "invalid:")
		for _, e := range outcome.Errors() {
			lines = append(lines, "  → "+e.Error())
		}
	default:
		lines = append(lines, errorStyle.Render("ill-formed: "+outcome.Message()))
	}

	if row.Err != nil {
		lines = append(lines, "", errorStyle.Render(style.Cross+" "+row.Err.Error()))
	}
	return detailStyle.Render(strings.Join(lines, "\n"))
}
