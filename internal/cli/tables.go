package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/rocketlang/rocket/internal/diagnostics"
)

// printTable renders a diagnostics.Table as a simple fixed-width grid,
// the same plain-text shape the teacher's --debug trace output uses for
// its own ad hoc dumps.
func printTable(w io.Writer, t diagnostics.Table) {
	if len(t.Header) == 0 {
		return
	}
	fmt.Fprintf(w, "== %s ==\n", t.Title)

	widths := make([]int, len(t.Header))
	for i, h := range t.Header {
		widths[i] = len(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	writeRow(w, t.Header, widths)
	for _, row := range t.Rows {
		writeRow(w, row, widths)
	}
	fmt.Fprintln(w)
}

func writeRow(w io.Writer, cells []string, widths []int) {
	parts := make([]string, len(cells))
	for i, c := range cells {
		width := 0
		if i < len(widths) {
			width = widths[i]
		}
		parts[i] = c + strings.Repeat(" ", width-len(c))
	}
	fmt.Fprintln(w, strings.Join(parts, "  "))
}
