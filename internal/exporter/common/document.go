package common

import (
	"time"

	"species-matrix/internal/coerce"
	"species-matrix/internal/matrix"
	"species-matrix/internal/model"
)

// Document is everything an exporter renders
type Document struct {
	Matrix      *matrix.Matrix
	Summary     model.Summary
	Source      string    // Input file name
	HeaderLabel string    // Label of the species column
	SheetName   string    // Worksheet or document title
	AutoWidth   bool      // Size spreadsheet columns to their content
	Generated   time.Time // Run timestamp
}

// Header returns the header row of the matrix
func (d *Document) Header() []string {
	return d.Matrix.Header(d.HeaderLabel)
}

// Table renders the matrix as strings, header first.
// Integral values have no decimal point.
func (d *Document) Table() [][]string {
	rows := d.Matrix.Rows()
	out := make([][]string, 0, len(rows)+1)
	out = append(out, d.Header())
	for _, r := range rows {
		line := make([]string, 0, len(r.Values)+1)
		line = append(line, r.Species)
		for _, v := range r.Values {
			line = append(line, coerce.Format(v))
		}
		out = append(out, line)
	}
	return out
}

// Date returns the generation date in the report format
func (d *Document) Date() string {
	if d.Generated.IsZero() {
		return ""
	}
	return d.Generated.Format("2006-01-02 15:04:05")
}
