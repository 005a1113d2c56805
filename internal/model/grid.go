package model

// Grid is a row-major table of cells read from the first worksheet.
// Rows may be ragged; out-of-range reads return empty cells.
type Grid [][]Cell

// At returns the cell at (row, col), or an empty cell when out of range
func (g Grid) At(row, col int) Cell {
	if row < 0 || row >= len(g) {
		return Empty()
	}
	r := g[row]
	if col < 0 || col >= len(r) {
		return Empty()
	}
	return r[col]
}

// Width returns the length of the longest row
func (g Grid) Width() int {
	w := 0
	for _, r := range g {
		if len(r) > w {
			w = len(r)
		}
	}
	return w
}

// RowEmpty reports whether every cell of the row is empty
func (g Grid) RowEmpty(row int) bool {
	if row < 0 || row >= len(g) {
		return true
	}
	for _, c := range g[row] {
		if !c.IsEmpty() {
			return false
		}
	}
	return true
}

// NewGrid builds a Grid from plain values, mainly for tests and CSV input.
// Supported values: nil (empty), string (text), int, int64, float64 (number).
func NewGrid(rows ...[]interface{}) Grid {
	g := make(Grid, len(rows))
	for i, row := range rows {
		cells := make([]Cell, len(row))
		for j, v := range row {
			switch val := v.(type) {
			case nil:
				cells[j] = Empty()
			case string:
				if val == "" {
					cells[j] = Empty()
				} else {
					cells[j] = Text(val)
				}
			case int:
				cells[j] = Number(float64(val))
			case int64:
				cells[j] = Number(float64(val))
			case float64:
				cells[j] = Number(val)
			case Cell:
				cells[j] = val
			default:
				cells[j] = Empty()
			}
		}
		g[i] = cells
	}
	return g
}
