package model

import (
	"strconv"
	"strings"
)

// CellKind represents the semantic type of a spreadsheet value
type CellKind int

const (
	CellEmpty CellKind = iota
	CellText
	CellNumber
)

// String returns the string representation of the cell kind
func (k CellKind) String() string {
	switch k {
	case CellEmpty:
		return "empty"
	case CellText:
		return "text"
	case CellNumber:
		return "number"
	default:
		return "unknown"
	}
}

// Cell is a single values-only spreadsheet value
type Cell struct {
	Kind   CellKind
	Text   string  // Raw text (CellText only)
	Number float64 // Numeric value (CellNumber only)
}

// Empty returns an empty cell
func Empty() Cell {
	return Cell{Kind: CellEmpty}
}

// Text returns a text cell
func Text(s string) Cell {
	return Cell{Kind: CellText, Text: s}
}

// Number returns a numeric cell
func Number(v float64) Cell {
	return Cell{Kind: CellNumber, Number: v}
}

// IsEmpty reports whether the cell carries no value.
// Whitespace-only text counts as empty.
func (c Cell) IsEmpty() bool {
	switch c.Kind {
	case CellEmpty:
		return true
	case CellText:
		return strings.TrimSpace(c.Text) == ""
	default:
		return false
	}
}

// IsText reports whether the cell is a text value
func (c Cell) IsText() bool {
	return c.Kind == CellText
}

// IsNumber reports whether the cell is a numeric value
func (c Cell) IsNumber() bool {
	return c.Kind == CellNumber
}

// String renders the cell for display; integral numbers have no decimal point
func (c Cell) String() string {
	switch c.Kind {
	case CellText:
		return c.Text
	case CellNumber:
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	default:
		return ""
	}
}

// Trimmed returns the display text with surrounding whitespace removed
func (c Cell) Trimmed() string {
	return strings.TrimSpace(c.String())
}
