// Package report renders analyses and history as plain text.
package report

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// table lays out cells in space-separated columns. Cells may carry ANSI
// color; widths are measured on the visible text only. The last column is
// never padded on the right, so trailing bars and empty cells leave no
// trailing spaces.
type table struct {
	headers []string
	rows    [][]string
	right   map[int]bool
}

func newTable(headers []string, rightAligned ...int) *table {
	right := make(map[int]bool, len(rightAligned))
	for _, col := range rightAligned {
		right[col] = true
	}
	return &table{headers: headers, right: right}
}

func (t *table) addRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *table) columnWidths() []int {
	count := len(t.headers)
	for _, row := range t.rows {
		count = max(count, len(row))
	}
	widths := make([]int, count)
	for i, header := range t.headers {
		widths[i] = displayWidth(header)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			widths[i] = max(widths[i], displayWidth(cell))
		}
	}
	return widths
}

// lines returns the header line (when headers are set) followed by one line
// per row.
func (t *table) lines() []string {
	widths := t.columnWidths()
	if len(widths) == 0 {
		return nil
	}
	out := make([]string, 0, len(t.rows)+1)
	if len(t.headers) > 0 {
		out = append(out, t.line(t.headers, widths))
	}
	for _, row := range t.rows {
		out = append(out, t.line(row, widths))
	}
	return out
}

func (t *table) line(row []string, widths []int) string {
	var b strings.Builder
	last := len(widths) - 1
	for i, width := range widths {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		if i > 0 {
			b.WriteByte(' ')
		}
		pad := max(width-displayWidth(cell), 0)
		switch {
		case t.right[i]:
			b.WriteString(strings.Repeat(" ", pad))
			b.WriteString(cell)
		case i == last:
			b.WriteString(cell)
		default:
			b.WriteString(cell)
			b.WriteString(strings.Repeat(" ", pad))
		}
	}
	return strings.TrimRight(b.String(), " ")
}

// displayWidth counts the terminal cells of the visible text so colored and
// wide cells keep columns aligned.
func displayWidth(value string) int {
	return runewidth.StringWidth(ansi.Strip(value))
}
