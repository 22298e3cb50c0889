package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/specialistvlad/lookupgo/internal/config"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))
)

// render writes rows to the app output in the configured style.
func (a *App) render(headers []string, rows [][]string) error {
	if a.cfg.Output.Style == config.StyleTable {
		t := table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(borderStyle).
			StyleFunc(func(row, _ int) lipgloss.Style {
				if row == table.HeaderRow {
					return headerStyle
				}
				return cellStyle
			}).
			Headers(headers...).
			Rows(rows...)
		_, err := fmt.Fprintln(a.outW, t.String())
		return err
	}

	for _, row := range rows {
		if _, err := fmt.Fprintln(a.outW, strings.Join(row, "\t")); err != nil {
			return err
		}
	}
	return nil
}
