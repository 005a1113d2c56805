package common

import (
	"strings"

	"golang.org/x/text/width"
)

// DisplayWidth returns the number of terminal/spreadsheet columns s occupies.
// East Asian wide and fullwidth runes count as two.
func DisplayWidth(s string) int {
	n := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			n += 2
		default:
			n++
		}
	}
	return n
}

// Pad right-pads s with spaces to the display width n
func Pad(s string, n int) string {
	w := DisplayWidth(s)
	if w >= n {
		return s
	}
	return s + strings.Repeat(" ", n-w)
}

// ColumnWidths returns the widest display width of every column of a table
func ColumnWidths(table [][]string) []int {
	var widths []int
	for _, row := range table {
		for j, cell := range row {
			for len(widths) <= j {
				widths = append(widths, 0)
			}
			if w := DisplayWidth(cell); w > widths[j] {
				widths[j] = w
			}
		}
	}
	return widths
}
