package formatter

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

const cellGap = 2

// RenderTable lays rows out under headers with a single rule below the
// header and no outer frame. Short rows are padded with empty cells.
func RenderTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderColumn(false).
		BorderHeader(true).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return titleStyle.PaddingRight(cellGap)
			}
			return lipgloss.NewStyle().PaddingRight(cellGap)
		})

	for _, r := range rows {
		cells := make([]string, len(headers))
		copy(cells, r)
		t.Row(cells...)
	}
	return t.String() + "\n"
}
