package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	tableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	tableValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	tableDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Table is a bordered text table for command output.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// SeparatorRow marks a horizontal rule inside the body, used before
// totals rows.
var SeparatorRow = []string{"---"}

// RenderTable renders a bordered table with headers and rows. The first
// column is left-aligned, the rest right-aligned.
func RenderTable(t Table) string {
	numCols := len(t.Headers)
	if numCols == 0 {
		return ""
	}

	widths := make([]int, numCols)
	for i, h := range t.Headers {
		widths[i] = len(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < numCols && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var b strings.Builder

	if t.Title != "" {
		b.WriteString("  ")
		b.WriteString(tableHeaderStyle.Render(t.Title))
		b.WriteString("\n")
	}

	rule := func(left, mid, right string) {
		b.WriteString(tableDimStyle.Render(left))
		for i, w := range widths {
			b.WriteString(tableDimStyle.Render(strings.Repeat("─", w+2)))
			if i < numCols-1 {
				b.WriteString(tableDimStyle.Render(mid))
			}
		}
		b.WriteString(tableDimStyle.Render(right))
		b.WriteString("\n")
	}

	rule("╭", "┬", "╮")

	b.WriteString(tableDimStyle.Render("│"))
	for i, h := range t.Headers {
		b.WriteString(tableHeaderStyle.Render(fmt.Sprintf(" %-*s ", widths[i], h)))
		if i < numCols-1 {
			b.WriteString(tableDimStyle.Render("│"))
		}
	}
	b.WriteString(tableDimStyle.Render("│"))
	b.WriteString("\n")
	rule("├", "┼", "┤")

	for _, row := range t.Rows {
		if len(row) == 1 && row[0] == "---" {
			rule("├", "┼", "┤")
			continue
		}
		b.WriteString(tableDimStyle.Render("│"))
		for i := 0; i < numCols; i++ {
			w := widths[i]
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			var padded string
			if i == 0 {
				padded = fmt.Sprintf(" %-*s ", w, cell)
			} else {
				padded = fmt.Sprintf(" %*s ", w, cell)
			}
			b.WriteString(tableValueStyle.Render(padded))
			if i < numCols-1 {
				b.WriteString(tableDimStyle.Render("│"))
			}
		}
		b.WriteString(tableDimStyle.Render("│"))
		b.WriteString("\n")
	}

	rule("╰", "┴", "╯")
	return b.String()
}
