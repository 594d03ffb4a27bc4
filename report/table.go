package report

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/AnnaCarter465/tax-footprint/tax"
)

const (
	colorBlue    lipgloss.Color = "#89b4fa"
	colorText    lipgloss.Color = "#cdd6f4"
	colorSubtext lipgloss.Color = "#a6adc8"
	colorPeach   lipgloss.Color = "#fab387"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorBlue)
	labelStyle  = lipgloss.NewStyle().Foreground(colorText).Width(48)
	amountStyle = lipgloss.NewStyle().Foreground(colorSubtext).Width(16).Align(lipgloss.Right)
	totalStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorPeach)
)

// Table renders summary rows for a terminal.
func Table(rows []tax.SummaryRow) string {
	lines := make([]string, 0, len(rows)+2)

	lines = append(lines, headerStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top,
		labelStyle.Render("Category"),
		amountStyle.Render("Annual"),
		amountStyle.Render("Monthly"),
	)))
	lines = append(lines, strings.Repeat("─", 48+16+16))

	for _, row := range rows {
		line := lipgloss.JoinHorizontal(lipgloss.Top,
			labelStyle.Render(row.Category),
			amountStyle.Render(Rand(row.Annual)),
			amountStyle.Render(Rand(row.Monthly)),
		)

		if row.Category == tax.TotalLabel {
			line = totalStyle.Render(line)
		}

		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}
