// Package strings holds text helpers shared by emsctl's output code.
package strings

import (
	"strings"
)

// Ellipsis marks a shortened cell.
const Ellipsis = "..."

// MinCellWidth is the narrowest width Cell honours: one character plus
// the ellipsis.
const MinCellWidth = len(Ellipsis) + 1

// Cell prepares a free-text value, such as performance remarks, for a
// table cell. Runs of whitespace including newlines collapse to a single
// space, and the result is cut to at most width runes.
func Cell(s string, width int) string {
	if width < MinCellWidth {
		width = MinCellWidth
	}

	s = strings.Join(strings.Fields(s), " ")

	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-len(Ellipsis)]) + Ellipsis
}
