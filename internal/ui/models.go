package ui

import (
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/theburrowhub/aicommit/internal/ollama"
)

// ModelsTable renders the installed models.
func ModelsTable(models []ollama.ModelInfo) string {
	rows := make([][]string, 0, len(models))
	for _, m := range models {
		name := m.Model
		if name == "" {
			name = m.Name
		}
		rows = append(rows, []string{
			name,
			m.Details.Format,
			m.Details.ParameterSize,
			m.Details.QuantizationLevel,
			m.ModifiedAt.Format(time.DateTime),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(accentColor)).
		Headers("Model", "Format", "Parameter Size", "Quantization Level", "Modified").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return boldStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Rows(rows...)

	return panelTitleStyle.Render("Ollama models") + "\n" + t.Render()
}
