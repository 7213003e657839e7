package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const columnGap = 4

// ListWriter builds a column-aligned table.
//
// Usage:
//
//	lw := output.NewListWriter(w, "TASK", "STATUS", "DATE")
//	lw.Row("Design landing page", "Assigned", "May 10, 2024")
//	lw.Row("Write copy", "In progress", "No Date")
//	lw.FlushWithFooter("Total: 2 task(s)")
//
// Widths are measured in terminal cells, so titles with accents or emoji
// stay aligned.
type ListWriter struct {
	w       io.Writer
	headers []string
	rows    [][]string
}

// NewListWriter creates a ListWriter with the given column headers.
// Headers should be in ALL CAPS.
func NewListWriter(w io.Writer, headers ...string) *ListWriter {
	return &ListWriter{
		w:       w,
		headers: headers,
	}
}

// Row adds a row of values. Missing trailing values render as empty cells.
func (lw *ListWriter) Row(values ...string) {
	lw.rows = append(lw.rows, values)
}

// Len returns the number of rows added so far.
func (lw *ListWriter) Len() int {
	return len(lw.rows)
}

// Flush renders the table without a footer.
func (lw *ListWriter) Flush() {
	lw.FlushWithFooter("")
}

// FlushWithFooter renders headers, a separator, the rows, and a footer line.
// Pass an empty string to omit the footer.
func (lw *ListWriter) FlushWithFooter(footer string) {
	colCount := len(lw.headers)
	if colCount == 0 {
		return
	}

	widths := make([]int, colCount)
	for i, h := range lw.headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range lw.rows {
		for i := 0; i < colCount && i < len(row); i++ {
			if cw := lipgloss.Width(row[i]); cw > widths[i] {
				widths[i] = cw
			}
		}
	}

	lw.printRow(lw.headers, widths, true)

	totalWidth := (colCount - 1) * columnGap
	for _, w := range widths {
		totalWidth += w
	}
	if totalWidth < separatorWidth {
		totalWidth = separatorWidth
	}
	fmt.Fprintln(lw.w, strings.Repeat("─", totalWidth))

	for _, row := range lw.rows {
		lw.printRow(row, widths, false)
	}

	if footer != "" {
		fmt.Fprintln(lw.w)
		fmt.Fprintln(lw.w, footer)
	}
}

func (lw *ListWriter) printRow(values []string, widths []int, isHeader bool) {
	var b strings.Builder
	for i, width := range widths {
		raw := ""
		if i < len(values) {
			raw = values[i]
		}
		val := raw
		if isHeader {
			val = Bold(raw)
		}
		b.WriteString(val)
		if i < len(widths)-1 {
			// Pad on the unstyled width so ANSI codes don't skew columns.
			b.WriteString(strings.Repeat(" ", width-lipgloss.Width(raw)+columnGap))
		}
	}
	fmt.Fprintln(lw.w, strings.TrimRight(b.String(), " "))
}
